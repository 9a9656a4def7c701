// Package bridge is the host-scheduler analogue: a small daemon that owns
// the link engine's tick loop, relays its deliveries onto Redis Pub/Sub,
// and submits outbound application messages arriving from a Redis list.
// This is the out-of-core-scope "host scheduler and transport owner" made
// concrete for a runnable repository.
package bridge

import (
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/librescoot/uart-link/pkg/link"
	"github.com/librescoot/uart-link/pkg/transport"
)

// Config configures a Bridge.
type Config struct {
	Engine *link.Engine
	Redis  *RedisClient

	// PublishChannel receives one message per delivered I-frame: the
	// payload hex-encoded, since the bridge does not know the
	// application-level schema and stays opaque to payload contents.
	PublishChannel string

	// CommandListKey is the Redis list WatchCommands pops hex-encoded
	// outbound payloads from.
	CommandListKey string

	// TickInterval is the cadence of the TickTX/TickRX loop.
	TickInterval time.Duration
}

// Bridge serialises all access to a link.Engine through a single goroutine
// (Run's tick loop), preserving the engine's single-writer invariant.
// WatchCommands runs in a second goroutine and hands outbound payloads to
// the tick loop over a buffered channel rather than calling Submit itself.
type Bridge struct {
	cfg      Config
	outbound chan []byte
	stopCh   chan struct{}
}

// New constructs a Bridge. cfg.Engine may be left nil and supplied later
// through SetEngine — the engine's own Config.OnDeliver needs to close
// over the Bridge, so construction order is necessarily bridge, then
// engine, then SetEngine.
func New(cfg Config) *Bridge {
	b := &Bridge{
		cfg:      cfg,
		outbound: make(chan []byte, 16),
		stopCh:   make(chan struct{}),
	}
	return b
}

// SetEngine attaches the link engine Run and WatchCommands drive. It must
// be called once, before Run or WatchCommands starts.
func (b *Bridge) SetEngine(e *link.Engine) {
	b.cfg.Engine = e
}

// OnDeliver is the link.Config.OnDeliver callback: publish the payload,
// hex-encoded, on the configured channel.
func (b *Bridge) OnDeliver(payload []byte) error {
	return b.cfg.Redis.Publish(b.cfg.PublishChannel, hex.EncodeToString(payload))
}

// Run owns the tick loop: it calls TickTX and TickRX back to back at
// TickInterval, logs permanent transport errors and ignores
// ErrWouldBlock, and drains the outbound channel into Submit between
// ticks. It blocks until Stop is called.
func (b *Bridge) Run() {
	ticker := time.NewTicker(b.cfg.TickInterval)
	defer ticker.Stop()

	var pending []byte
	for {
		// While a payload is still waiting for Submit, take no new one from
		// the channel, so the waiting payload is not overwritten.
		outbound := b.outbound
		if pending != nil {
			outbound = nil
		}
		select {
		case <-b.stopCh:
			return
		case payload := <-outbound:
			pending = payload
		case <-ticker.C:
			if pending != nil {
				switch err := b.cfg.Engine.Submit(pending); {
				case err == nil:
					pending = nil
				case errors.Is(err, link.ErrPacketInFlight):
					// leave pending set; retry once the ticks below ack
					// the I-frame currently occupying the TX buffer
				default:
					log.Printf("bridge: submit failed, dropping message: %v", err)
					pending = nil
				}
			}

			if err := b.cfg.Engine.TickTX(); err != nil && !errors.Is(err, transport.ErrWouldBlock) {
				log.Printf("bridge: TickTX: %v", err)
			}
			if err := b.cfg.Engine.TickRX(); err != nil && !errors.Is(err, transport.ErrWouldBlock) {
				log.Printf("bridge: TickRX: %v", err)
			}
		}
	}
}

// WatchCommands blocks popping hex-encoded outbound payloads off
// cfg.CommandListKey and handing them to Run's tick loop. It mirrors the
// fleet's own Redis-list command-watcher goroutine, generalised from
// scooter command names to opaque link payloads.
func (b *Bridge) WatchCommands() {
	for {
		select {
		case <-b.stopCh:
			return
		default:
		}

		command, err := b.cfg.Redis.BRPop(b.cfg.CommandListKey)
		if err != nil {
			log.Printf("bridge: error watching command list %s: %v", b.cfg.CommandListKey, err)
			time.Sleep(time.Second)
			continue
		}
		if command == "" {
			continue
		}

		payload, err := hex.DecodeString(command)
		if err != nil {
			log.Printf("bridge: command list %s carried non-hex payload %q: %v", b.cfg.CommandListKey, command, err)
			continue
		}

		select {
		case b.outbound <- payload:
		case <-b.stopCh:
			return
		}
	}
}

// Stop signals Run and WatchCommands to return.
func (b *Bridge) Stop() {
	close(b.stopCh)
}
