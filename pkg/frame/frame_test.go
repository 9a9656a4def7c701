package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestColourNext(t *testing.T) {
	assert.Equal(t, Blue, Red.Next())
	assert.Equal(t, Red, Blue.Next())
	assert.Equal(t, Blue, Purple.Next())
}

func TestColourMatches(t *testing.T) {
	assert.True(t, Purple.Matches(Red))
	assert.True(t, Red.Matches(Purple))
	assert.True(t, Red.Matches(Red))
	assert.False(t, Red.Matches(Blue))
}

func TestIFrameTypeRoundTrip(t *testing.T) {
	for _, c := range []Colour{Red, Blue, Purple} {
		got, ok := ColourOf(IFrameType(c))
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
}

func TestColourOfRejectsSupervisoryTypes(t *testing.T) {
	_, ok := ColourOf(ACK)
	assert.False(t, ok)
	_, ok = ColourOf(NACK)
	assert.False(t, ok)
}

func TestSupervisoryFramesContainNoInteriorZero(t *testing.T) {
	for _, body := range [][]byte{ACKFrame, NACKFrame} {
		assert.NotContains(t, body, byte(0x00))
	}
}

func TestColourAlternationHasNoFixedPoint(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := Colour(rapid.IntRange(0, 2).Draw(t, "colour"))
		assert.NotEqual(t, c, c.Next())
	})
}
