package link

import "errors"

// Sentinel errors the engine returns. Callers that need to distinguish a
// cause should use errors.Is/errors.As rather than comparing formatted
// strings.
var (
	// ErrPacketInFlight is returned by Submit when an I-frame is already
	// buffered and awaiting acknowledgement.
	ErrPacketInFlight = errors.New("link: packet already in flight")

	// ErrMessageTooLarge is returned when an encoded payload would not fit
	// the capacity − 4 bytes left after the frame header and checksum.
	ErrMessageTooLarge = errors.New("link: encoded message exceeds buffer capacity")

	// ErrEncode wraps a failure from the configured Codec's Encode method.
	ErrEncode = errors.New("link: codec encode failed")

	// ErrDecode wraps a failure from the configured Codec's Decode method.
	ErrDecode = errors.New("link: codec decode failed")

	// ErrNoDeliveryHandler is returned by New when neither OnDeliver nor
	// OnMessage is configured — a silently-dropped delivery is never valid.
	ErrNoDeliveryHandler = errors.New("link: Config needs OnDeliver or OnMessage")
)
