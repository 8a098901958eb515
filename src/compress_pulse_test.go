package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPulseSequenceRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var n = rapid.IntRange(0, 40).Draw(t, "n")
		var pulses = make([]pulse_t, n)
		for i := range pulses {
			pulses[i] = pulse_t{
				level:    uint8(rapid.IntRange(0, 1).Draw(t, "level")),
				width_us: uint16(rapid.IntRange(1, 65535).Draw(t, "width")),
			}
		}
		var encoded = pulse_sequence_encode(pulses)
		var decoded = pulse_sequence_decode(encoded)
		assert.Equal(t, len(pulses), len(decoded))
		for i := range pulses {
			assert.Equal(t, pulses[i].level, decoded[i].level)
			assert.Equal(t, pulses[i].width_us, decoded[i].width_us)
		}
	})
}

func TestPulseSequenceEmpty(t *testing.T) {
	var encoded = pulse_sequence_encode(nil)
	var decoded = pulse_sequence_decode(encoded)
	assert.Empty(t, decoded)
}

func TestPulseLevelRunsCapped(t *testing.T) {
	var pulses = make([]pulse_t, 300)
	for i := range pulses {
		pulses[i] = pulse_t{level: 1, width_us: 100}
	}
	var runs = pulse_level_runs_encode(pulses)
	assert.Greater(t, len(runs), 1, "run length cap of 127 must split a 300-pulse run into multiple bytes")
}
