package link

import (
	"github.com/librescoot/uart-link/pkg/cobs"
	"github.com/librescoot/uart-link/pkg/crc16x25"
	"github.com/librescoot/uart-link/pkg/frame"
)

// txKind discriminates the TX state machine. Go has no sum types, so this
// is the conventional translation: a kind constant plus the struct fields
// that are meaningful for that kind.
type txKind int

const (
	txIdle txKind = iota
	txDelimStart
	txBody
	txDelimEnd
	txWaitAck
)

// txState is the transmit half of the engine. body/pos walk whatever is
// currently being materialised onto the wire — either the engine's own
// stuffed I-frame buffer or one of the static supervisory frames.
type txState struct {
	kind txKind

	body []byte
	pos  int

	isIFrame bool // false while draining a supervisory (ACK/NACK) frame
	buffered bool // an I-frame is sitting in the TX buffer awaiting ack

	colour frame.Colour

	polls     int
	pollLimit int
}

// Submit encodes v through the configured Codec and queues it as the next
// I-frame. It fails with ErrPacketInFlight if a previous I-frame is still
// unacknowledged — only one may be outstanding at a time.
func (e *Engine) Submit(v any) error {
	if e.tx.buffered {
		return ErrPacketInFlight
	}

	n, err := e.codec.Encode(v, e.payloadScratch)
	if err != nil {
		return err
	}

	content := e.txContent[:0]
	content = append(content, frame.IFrameType(e.tx.colour), byte(n))
	content = append(content, e.payloadScratch[:n]...)
	crc := crc16x25.Generate(content)
	content = append(content, crc16x25.Hi(crc), crc16x25.Lo(crc))
	e.txContent = content

	stuffed := e.txStuffed[:cap(e.txStuffed)]
	sn, err := cobs.Encode(stuffed, e.txContent)
	if err != nil {
		return ErrMessageTooLarge
	}
	e.txStuffed = stuffed[:sn]

	// Only start transmitting immediately if TX is idle. If it is mid-way
	// through draining a supervisory frame, let that finish — the txIdle
	// branch of TickTX picks up the now-buffered I-frame as soon as TX
	// returns to idle, rather than this cutting the supervisory frame off
	// mid-byte.
	if e.tx.kind == txIdle {
		e.tx.body = e.txStuffed
		e.tx.pos = 0
		e.tx.isIFrame = true
		e.tx.kind = txDelimStart
	}
	e.tx.buffered = true
	e.tx.polls = 0
	return nil
}

// TickTX advances the TX machine by at most one byte of transport I/O.
// ErrWouldBlock from the writer is returned verbatim and leaves state
// unchanged, so the caller can simply retry on the next tick.
func (e *Engine) TickTX() error {
	switch e.tx.kind {
	case txIdle:
		if e.tx.buffered {
			e.tx.body = e.txStuffed
			e.tx.pos = 0
			e.tx.isIFrame = true
			e.tx.kind = txDelimStart
			return nil
		}
		if e.pendingSFrame != nil {
			e.tx.body = e.pendingSFrame
			e.pendingSFrame = nil
			e.tx.pos = 0
			e.tx.isIFrame = false
			e.tx.kind = txDelimStart
			return nil
		}
		return nil

	case txDelimStart:
		if err := e.writer().WriteByte(0x00); err != nil {
			return err
		}
		e.tx.kind = txBody
		return nil

	case txBody:
		if err := e.writer().WriteByte(e.tx.body[e.tx.pos]); err != nil {
			return err
		}
		e.tx.pos++
		if e.tx.pos >= len(e.tx.body) {
			e.tx.kind = txDelimEnd
		}
		return nil

	case txDelimEnd:
		if err := e.writer().WriteByte(0x00); err != nil {
			return err
		}
		if e.tx.isIFrame {
			e.tx.kind = txWaitAck
			e.tx.polls = 0
		} else {
			e.tx.kind = txIdle
		}
		return nil

	case txWaitAck:
		if e.tx.polls >= e.tx.pollLimit {
			e.tx.pos = 0
			e.tx.body = e.txStuffed
			e.tx.kind = txDelimStart
		} else {
			e.tx.polls++
		}
		return nil
	}
	return nil
}
