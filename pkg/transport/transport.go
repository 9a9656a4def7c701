// Package transport defines the non-blocking byte interfaces the link
// engine's tick functions drive, plus a concrete serial adapter.
package transport

import "errors"

// ErrWouldBlock is returned by ReadByte when no byte is currently available
// and by WriteByte when the transport has no room — a transient condition,
// not a logical suspension, and never a reason to retry before the next
// tick.
var ErrWouldBlock = errors.New("transport: would block")

// ByteWriter writes a single byte without blocking the caller.
type ByteWriter interface {
	WriteByte(b byte) error
}

// ByteReader reads a single byte without blocking the caller.
type ByteReader interface {
	ReadByte() (byte, error)
}
