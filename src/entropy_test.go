package rfcore

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShannonEntropyUniformRandom(t *testing.T) {
	// Concrete scenario from spec.md section 8.
	var data = make([]byte, 100)
	var r = rand.New(rand.NewSource(1))
	r.Read(data)
	var freq = byte_frequency_table(data)
	var h = shannon_entropy(freq)
	assert.Greater(t, fixed_to_float(h), 4.0)
}

func TestShannonEntropyConstant(t *testing.T) {
	var data = make([]byte, 100)
	for i := range data {
		data[i] = 0x42
	}
	var freq = byte_frequency_table(data)
	var h = shannon_entropy(freq)
	assert.Less(t, fixed_to_float(h), 0.1)
}

func TestShannonEntropySixteenValues(t *testing.T) {
	var data []byte
	for i := 0; i < 160; i++ {
		data = append(data, byte(i%16))
	}
	var freq = byte_frequency_table(data)
	var h = shannon_entropy(freq)
	assert.Greater(t, fixed_to_float(h), 3.0)
	assert.Less(t, fixed_to_float(h), 5.0)
}

func TestShannonEntropyEmptyIsZero(t *testing.T) {
	var freq [256]int
	assert.Equal(t, fixed_t(0), shannon_entropy(freq))
}
