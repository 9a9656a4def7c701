package link

import "github.com/librescoot/uart-link/pkg/transport"

// DefaultCapacity and DefaultPollLimit mirror the reference configuration:
// a 66-byte frame buffer (62 bytes of payload budget) and 100 ticks of
// WaitAck patience before retransmitting.
const (
	DefaultCapacity  = 66
	DefaultPollLimit = 100
)

// Config configures a new Engine. Writer and Reader are mandatory. Codec
// defaults to CBORCodec when left nil. At least one of OnDeliver or
// OnMessage must be set — New returns ErrNoDeliveryHandler otherwise. When
// both are set, OnDeliver is used and OnMessage is never called.
type Config struct {
	Writer transport.ByteWriter
	Reader transport.ByteReader

	Codec     Codec
	Capacity  int
	PollLimit int

	// OnDeliver receives the raw payload bytes of every matched-colour
	// I-frame, undecoded. Use this with RawCodec or when the caller wants
	// to decode lazily.
	OnDeliver func(payload []byte) error

	// OnMessage receives a payload already decoded through Codec.Decode
	// into a fresh map[string]any. Ignored when OnDeliver is set.
	OnMessage func(v any) error
}
