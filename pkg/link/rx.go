package link

import (
	"github.com/librescoot/uart-link/pkg/cobs"
	"github.com/librescoot/uart-link/pkg/crc16x25"
	"github.com/librescoot/uart-link/pkg/frame"
)

type rxKind int

const (
	rxWantDelim rxKind = iota
	rxWantCobsHeader
	rxWantFrameType
	rxWantLength
	rxWantPayload
	rxWantChecksumFirst
	rxWantChecksumSecond
)

// rxState is the receive half of the engine: a byte-at-a-time COBS
// destuffer layered under a byte-at-a-time frame parser. content
// accumulates the destuffed [type][length][payload...] bytes the checksum
// is validated over.
type rxState struct {
	kind rxKind

	cobsCounter byte
	content     []byte

	frameType byte
	length    byte
	received  int

	checksumHi byte
}

var destuffer cobs.Destuffer

// TickRX reads and processes at most one byte from the transport. A 0x00
// byte always resynchronises to the start of a new frame, regardless of
// what state the parser was in — this is what lets the receiver recover
// from a corrupted or truncated frame without any special-case error path.
func (e *Engine) TickRX() error {
	b, err := e.reader().ReadByte()
	if err != nil {
		return err
	}

	if b == 0x00 {
		e.rx.kind = rxWantCobsHeader
		e.rx.content = e.rx.content[:0]
		return nil
	}

	switch e.rx.kind {
	case rxWantDelim:
		return nil
	case rxWantCobsHeader:
		e.rx.cobsCounter = b
		e.rx.content = e.rx.content[:0]
		e.rx.kind = rxWantFrameType
		return nil
	default:
		counter, decoded := destuffer.Step(e.rx.cobsCounter, b)
		e.rx.cobsCounter = counter
		return e.consumeDestuffed(decoded)
	}
}

func (e *Engine) consumeDestuffed(b byte) error {
	switch e.rx.kind {
	case rxWantFrameType:
		e.rx.frameType = b
		e.rx.content = append(e.rx.content, b)
		e.rx.kind = rxWantLength

	case rxWantLength:
		if int(b) > e.maxPayload {
			// malformed length for this buffer capacity: drop and resync
			e.rx.kind = rxWantDelim
			return nil
		}
		e.rx.length = b
		e.rx.content = append(e.rx.content, b)
		e.rx.received = 0
		if b == 0 {
			e.rx.kind = rxWantChecksumFirst
		} else {
			e.rx.kind = rxWantPayload
		}

	case rxWantPayload:
		e.rx.content = append(e.rx.content, b)
		e.rx.received++
		if e.rx.received >= int(e.rx.length) {
			e.rx.kind = rxWantChecksumFirst
		}

	case rxWantChecksumFirst:
		e.rx.checksumHi = b
		e.rx.kind = rxWantChecksumSecond

	case rxWantChecksumSecond:
		e.rx.kind = rxWantDelim
		return e.dispatch(crc16x25.Parse(e.rx.checksumHi, b))
	}
	return nil
}

// dispatch runs once a complete frame's checksum has arrived. A bad
// checksum schedules a NACK and nothing else; a good one is routed by
// frame type.
func (e *Engine) dispatch(crc uint16) error {
	content := e.rx.content

	if !crc16x25.Validate(content, crc) {
		e.pendingSFrame = frame.NACKFrame
		return nil
	}

	switch e.rx.frameType {
	case frame.ACK:
		if e.tx.kind == txWaitAck {
			e.tx.kind = txIdle
			e.tx.buffered = false
			e.tx.colour = e.tx.colour.Next()
		}
		return nil

	case frame.NACK:
		if e.tx.kind == txWaitAck {
			e.tx.kind = txIdle
		}
		return nil
	}

	colour, ok := frame.ColourOf(e.rx.frameType)
	if !ok {
		return nil
	}

	e.pendingSFrame = frame.ACKFrame

	if !colour.Matches(e.expectedRXColour) {
		return nil // duplicate, already acked, drop silently
	}
	e.expectedRXColour = colour.Next()

	payload := content[2 : 2+int(e.rx.length)]
	return e.deliver(payload)
}
