package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// readTimeout is the deadline SerialPort puts on every underlying read.
// go.bug.st/serial documents a timed-out read as returning (0, nil) — that
// signal is what ReadByte maps to ErrWouldBlock.
const readTimeout = 5 * time.Millisecond

// SerialPort adapts a real UART, opened through go.bug.st/serial, to the
// engine's ByteReader/ByteWriter interfaces.
type SerialPort struct {
	port serial.Port
	rbuf [1]byte
}

// OpenSerialPort opens device at baud 8N1 and configures it for the short
// read deadline SerialPort needs to stay non-blocking.
func OpenSerialPort(device string, baud int) (*SerialPort, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("transport: opening %s: %w", device, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("transport: setting read timeout on %s: %w", device, err)
	}

	return &SerialPort{port: port}, nil
}

// ReadByte reads one byte, mapping the library's documented timeout signal
// (a zero-length, nil-error read) to ErrWouldBlock.
func (s *SerialPort) ReadByte() (byte, error) {
	n, err := s.port.Read(s.rbuf[:])
	if err != nil {
		return 0, fmt.Errorf("transport: read: %w", err)
	}
	if n == 0 {
		return 0, ErrWouldBlock
	}
	return s.rbuf[0], nil
}

// WriteByte writes one byte. go.bug.st/serial's Write is synchronous, so at
// the single-byte granularity the engine uses this never returns
// ErrWouldBlock — a deliberate simplification of "non-blocking" for this
// particular transport, documented rather than left implicit.
func (s *SerialPort) WriteByte(b byte) error {
	s.rbuf[0] = b
	if _, err := s.port.Write(s.rbuf[:]); err != nil {
		return fmt.Errorf("transport: write: %w", err)
	}
	return nil
}

// Close releases the underlying port.
func (s *SerialPort) Close() error {
	return s.port.Close()
}
