package crc16x25

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCheckValue(t *testing.T) {
	// The CRC-16/X.25 "check" value from the CRC catalogue: the CRC of the
	// ASCII string "123456789" is 0x906E.
	got := Generate([]byte("123456789"))
	assert.Equal(t, uint16(0x906E), got)
}

func TestHiLoRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		crc := rapid.Uint16().Draw(t, "crc")
		assert.Equal(t, crc, Parse(Hi(crc), Lo(crc)))
	})
}

func TestGenerateValidateRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 256).Draw(t, "data")
		crc := Generate(data)
		assert.True(t, Validate(data, crc))
	})
}

func TestValidateRejectsCorruption(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 1, 256).Draw(t, "data")
		crc := Generate(data)

		idx := rapid.IntRange(0, len(data)-1).Draw(t, "idx")
		flip := rapid.IntRange(1, 255).Draw(t, "flip")
		corrupted := append([]byte(nil), data...)
		corrupted[idx] ^= byte(flip)

		assert.False(t, Validate(corrupted, crc))
	})
}
