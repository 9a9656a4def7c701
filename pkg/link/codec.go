package link

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Codec turns an application-level message into payload bytes and back. The
// engine treats the payload as opaque; Codec is the one place domain schema
// knowledge lives.
type Codec interface {
	Encode(v any, dst []byte) (int, error)
	Decode(data []byte, v any) error
}

// CBORCodec encodes messages with CBOR, the corpus's own choice for framed
// UART payloads to an embedded peer.
type CBORCodec struct{}

// Encode marshals v and copies the result into dst, which must have room for
// the encoded form. It returns ErrMessageTooLarge rather than growing dst.
func (CBORCodec) Encode(v any, dst []byte) (int, error) {
	b, err := cbor.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if len(b) > len(dst) {
		return 0, ErrMessageTooLarge
	}
	return copy(dst, b), nil
}

// Decode unmarshals data into the pointer v.
func (CBORCodec) Decode(data []byte, v any) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// RawCodec treats the payload as opaque bytes: Encode expects v to be a
// []byte, Decode expects v to be a *[]byte. It is used where the caller
// (such as pkg/bridge) does not know or care about the application schema.
type RawCodec struct{}

func (RawCodec) Encode(v any, dst []byte) (int, error) {
	b, ok := v.([]byte)
	if !ok {
		return 0, fmt.Errorf("%w: RawCodec.Encode wants []byte, got %T", ErrEncode, v)
	}
	if len(b) > len(dst) {
		return 0, ErrMessageTooLarge
	}
	return copy(dst, b), nil
}

func (RawCodec) Decode(data []byte, v any) error {
	out, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("%w: RawCodec.Decode wants *[]byte, got %T", ErrDecode, v)
	}
	*out = append((*out)[:0], data...)
	return nil
}
