// Package link implements the non-blocking, tick-driven stop-and-wait ARQ
// engine: COBS-framed, CRC-16/X.25-guarded I-frames exchanged over a
// byte-oriented transport, one forward step per Tick call, no internal
// goroutines and no dynamic allocation once constructed.
package link

import (
	"fmt"

	"github.com/librescoot/uart-link/pkg/frame"
	"github.com/librescoot/uart-link/pkg/transport"
)

// Engine owns one link's TX buffer, RX buffer, both state machines, and the
// colour-tracking stop-and-wait coordinator. It is not safe for concurrent
// use: exactly one goroutine may call Submit, TickTX, TickRX, and Reset.
type Engine struct {
	cfg Config

	codec      Codec
	capacity   int
	maxPayload int

	payloadScratch []byte
	txContent      []byte
	txStuffed      []byte

	tx txState
	rx rxState

	expectedRXColour frame.Colour
	pendingSFrame    []byte
}

// New constructs an Engine from cfg. Codec defaults to CBORCodec, Capacity
// to DefaultCapacity, and PollLimit to DefaultPollLimit when left zero.
func New(cfg Config) (*Engine, error) {
	if cfg.Writer == nil || cfg.Reader == nil {
		return nil, fmt.Errorf("link: Config.Writer and Config.Reader are required")
	}
	if cfg.OnDeliver == nil && cfg.OnMessage == nil {
		return nil, ErrNoDeliveryHandler
	}

	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity <= 4 {
		return nil, fmt.Errorf("link: Capacity %d leaves no room for a frame header", capacity)
	}

	pollLimit := cfg.PollLimit
	if pollLimit == 0 {
		pollLimit = DefaultPollLimit
	}

	codec := cfg.Codec
	if codec == nil {
		codec = CBORCodec{}
	}

	maxPayload := capacity - 4
	e := &Engine{
		cfg:        cfg,
		codec:      codec,
		capacity:   capacity,
		maxPayload: maxPayload,

		payloadScratch: make([]byte, maxPayload),
		txContent:      make([]byte, 0, capacity),
		txStuffed:      make([]byte, 0, capacity+1),

		tx: txState{
			kind:      txIdle,
			colour:    frame.Purple,
			pollLimit: pollLimit,
		},
		rx: rxState{
			kind:    rxWantDelim,
			content: make([]byte, 0, capacity-2),
		},
		expectedRXColour: frame.Purple,
	}
	return e, nil
}

func (e *Engine) writer() transport.ByteWriter { return e.cfg.Writer }
func (e *Engine) reader() transport.ByteReader { return e.cfg.Reader }

// Space reports whether Submit would currently succeed: no I-frame is
// buffered awaiting acknowledgement.
func (e *Engine) Space() bool {
	return !e.tx.buffered
}

// Reset forces the TX machine back to idle, abandons any buffered,
// unacknowledged I-frame, and drops any scheduled-but-unsent supervisory
// frame, so a Submit immediately afterward is guaranteed to succeed. It
// does not touch the RX machine's expected colour — a reset link still
// rejects true duplicates from before the reset, it only gives up on what
// it itself was waiting to hear back about or send.
func (e *Engine) Reset() {
	e.tx.kind = txIdle
	e.tx.buffered = false
	e.tx.polls = 0
	e.pendingSFrame = nil
}

// deliver routes a validated I-frame payload to whichever callback cfg
// configured.
func (e *Engine) deliver(payload []byte) error {
	if e.cfg.OnDeliver != nil {
		return e.cfg.OnDeliver(payload)
	}
	var v map[string]any
	if err := e.codec.Decode(payload, &v); err != nil {
		return err
	}
	return e.cfg.OnMessage(v)
}
