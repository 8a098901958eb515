package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistogramBasic(t *testing.T) {
	var h = histogram_new(int_to_fixed(0), int_to_fixed(100), 10)
	for i := 0; i < 95; i += 5 {
		assert.True(t, h.add(int_to_fixed(i)))
	}
	assert.Equal(t, 19, h.total_samples)
	var sum = 0
	for _, c := range h.bins[:h.num_bins] {
		sum += c
	}
	assert.Equal(t, h.total_samples, sum)
	assert.Equal(t, h.peak_count, h.bins[h.peak_bin])
}

func TestHistogramRejectsOutOfRange(t *testing.T) {
	var h = histogram_new(int_to_fixed(0), int_to_fixed(10), 5)
	assert.False(t, h.add(int_to_fixed(-1)))
	assert.False(t, h.add(int_to_fixed(11)))
	assert.Equal(t, 0, h.total_samples)
}

func TestHistogramMedianPercentile(t *testing.T) {
	var h = histogram_new(int_to_fixed(0), int_to_fixed(10), 10)
	for i := 0; i < 10; i++ {
		h.add(int_to_fixed(i))
	}
	var median = h.median()
	assert.InDelta(t, 5.0, fixed_to_float(median), 1.5)
}
