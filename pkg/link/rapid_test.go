package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestRapidRoundTrip exercises Submit -> TickTX -> (wire) -> TickRX -> ACK
// -> TickRX for arbitrary payloads up to the capacity budget, on a fresh
// pair of engines each time.
func TestRapidRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		const capacity = 66
		maxPayload := capacity - 4

		payload := rapid.SliceOfN(rapid.Byte(), 0, maxPayload).Draw(t, "payload")

		var delivered []byte
		a, aw, ar := newEngineForRapid(t, capacity)
		b, bw, br := newEngineForRapid(t, capacity)
		b.cfg.OnDeliver = func(p []byte) error {
			delivered = append([]byte(nil), p...)
			return nil
		}

		if err := a.Submit(payload); err != nil {
			t.Fatalf("submit: %v", err)
		}

		for i := 0; i < 4*capacity; i++ {
			_ = a.TickTX()
			_ = b.TickTX()

			br.feed(rapidDrain(aw))
			ar.feed(rapidDrain(bw))

			_ = a.TickRX()
			_ = b.TickRX()

			if delivered != nil && a.Space() {
				break
			}
		}

		assert.Equal(t, payload, delivered)
		assert.True(t, a.Space())
	})
}

func newEngineForRapid(t *rapid.T, capacity int) (*Engine, *byteQueue, *byteQueue) {
	w := &byteQueue{}
	r := &byteQueue{}
	e, err := New(Config{
		Writer:    w,
		Reader:    r,
		Codec:     RawCodec{},
		Capacity:  capacity,
		PollLimit: 1000,
		OnDeliver: func([]byte) error { return nil },
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e, w, r
}

func rapidDrain(q *byteQueue) []byte {
	out := q.buf
	q.buf = nil
	return out
}
