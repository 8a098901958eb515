package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRLERoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var input = rapid.SliceOf(rapid.Byte()).Draw(t, "input")
		var encoded = rle_encode(input)
		var decoded = rle_decode(encoded)
		assert.Equal(t, input, decoded)
	})
}

func TestRLEOnTwoRuns(t *testing.T) {
	// Concrete scenario from spec.md section 8.
	var input = make([]byte, 100)
	for i := 0; i < 50; i++ {
		input[i] = 0xAA
	}
	for i := 50; i < 100; i++ {
		input[i] = 0xBB
	}
	var encoded = rle_encode(input)
	assert.LessOrEqual(t, len(encoded), 8)
	assert.Equal(t, input, rle_decode(encoded))
}

func TestRLEMonotoneWorstCase(t *testing.T) {
	// Adding a repeated byte cannot push RLE output past 1 byte/symbol
	// worst case (spec.md section 8, compression ratio law).
	var input = []byte{1, 2, 3, 4, 5}
	var encoded = rle_encode(input)
	assert.LessOrEqual(t, len(encoded), len(input))
}

func TestRLEHandlesEscapeByteLiteral(t *testing.T) {
	var input = []byte{0x01, 0x00, 0x02}
	var encoded = rle_encode(input)
	assert.Equal(t, input, rle_decode(encoded))
}

func TestRLERunOfEscapeBytes(t *testing.T) {
	var input = make([]byte, 10)
	var encoded = rle_encode(input)
	assert.Equal(t, input, rle_decode(encoded))
	assert.Less(t, len(encoded), len(input))
}
