// Package frame defines the wire-level frame layout this link speaks:
// frame-type constants, the two-colour duplicate-rejection tag, and the
// precomputed supervisory (ACK/NACK) frames.
package frame

import (
	"fmt"

	"github.com/librescoot/uart-link/pkg/cobs"
	"github.com/librescoot/uart-link/pkg/crc16x25"
)

// Frame type byte values. An I-frame's type byte doubles as its colour tag;
// ACK and NACK carry no colour.
const (
	IFramePurple byte = 0x01
	IFrameBlue   byte = 0x11
	IFrameRed    byte = 0x21
	ACK          byte = 0x02
	NACK         byte = 0x03
)

// Colour is the one-bit sequence number stop-and-wait uses to reject
// duplicates, plus the post-reset wildcard.
type Colour int

const (
	Purple Colour = iota
	Red
	Blue
)

func (c Colour) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return "purple"
	}
}

// Next returns the colour that follows c in the alternation. Purple, the
// post-reset wildcard, is followed by Blue — an arbitrary but fixed
// tie-break, same as any other transition.
func (c Colour) Next() Colour {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return Blue
	}
}

// Matches reports whether c and other are compatible: either is Purple, or
// they are the same colour.
func (c Colour) Matches(other Colour) bool {
	return c == Purple || other == Purple || c == other
}

// IFrameType returns the wire frame-type byte for an I-frame tagged with c.
func IFrameType(c Colour) byte {
	switch c {
	case Red:
		return IFrameRed
	case Blue:
		return IFrameBlue
	default:
		return IFramePurple
	}
}

// ColourOf reports the colour encoded in an I-frame type byte, and whether
// t is in fact one of the I-frame type constants.
func ColourOf(t byte) (Colour, bool) {
	switch t {
	case IFramePurple:
		return Purple, true
	case IFrameBlue:
		return Blue, true
	case IFrameRed:
		return Red, true
	default:
		return Purple, false
	}
}

// ACKFrame and NACKFrame are the COBS-encoded bodies (no framing delimiters)
// of the zero-length supervisory frames, computed once at init from a fresh
// CRC-16/X.25 rather than carried as a hand-transcribed literal — this is
// what keeps the checksum from silently drifting out of sync with the
// generator, regardless of which draft a constant might otherwise have been
// copied from.
var (
	ACKFrame  []byte
	NACKFrame []byte
)

func init() {
	ACKFrame = mustSupervisoryBody(ACK)
	NACKFrame = mustSupervisoryBody(NACK)
}

func mustSupervisoryBody(frameType byte) []byte {
	content := []byte{frameType, 0}
	crc := crc16x25.Generate(content)
	content = append(content, crc16x25.Hi(crc), crc16x25.Lo(crc))

	body := make([]byte, len(content)+1)
	n, err := cobs.Encode(body, content)
	if err != nil {
		panic(fmt.Sprintf("frame: encoding supervisory frame 0x%02x: %v", frameType, err))
	}
	return body[:n]
}
