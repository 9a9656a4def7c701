// Package cobs implements Consistent Overhead Byte Stuffing for the
// single-byte-overhead variant used by the link frame codec: payloads up to
// 254 bytes between delimiters, one overhead byte per encoded block.
package cobs

import "errors"

// MaxBlock is the largest payload this codec can stuff in one block. Longer
// payloads need the multi-block COBS variant, which this frame format does
// not use.
const MaxBlock = 254

// ErrTooLarge is returned by Encode when src exceeds MaxBlock bytes.
var ErrTooLarge = errors.New("cobs: payload exceeds single-block limit")

// Encode writes the COBS encoding of src into dst, which must have room for
// len(src)+1 bytes, and returns the number of bytes written. The output
// contains no 0x00 bytes; the caller is responsible for bracketing the
// result with the framing delimiters.
func Encode(dst, src []byte) (int, error) {
	if len(src) > MaxBlock {
		return 0, ErrTooLarge
	}
	if len(dst) < len(src)+1 {
		return 0, errors.New("cobs: dst too small")
	}

	lastCode := 0
	for i, b := range src {
		if b == 0 {
			dst[lastCode] = byte(i - lastCode + 1)
			lastCode = i + 1
		} else {
			dst[i+1] = b
		}
	}
	dst[lastCode] = byte(len(src) - lastCode + 1)
	return len(src) + 1, nil
}

// Destuffer drives the incremental, one-byte-at-a-time decode the receive
// state machine uses: it never sees a whole block at once, only a running
// counter and the next raw byte.
type Destuffer struct{}

// Step consumes one post-delimiter byte given the current COBS counter and
// returns the updated counter and the destuffed byte to emit. When counter
// reaches 1, next is itself the new counter and the destuffed byte is the
// synthetic zero COBS removed; otherwise the counter simply decrements and
// next passes through unchanged.
func (Destuffer) Step(counter, next byte) (newCounter, decoded byte) {
	if counter == 1 {
		return next, 0
	}
	return counter - 1, next
}
