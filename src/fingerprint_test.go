package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func syntheticFrame(i int) frame_t {
	return frame_t{
		timestamp_us: uint32(1000 * i),
		duration_us:  500,
		rssi_dbm:     -60,
		length:       8,
	}
}

func TestFingerprintEngineStateMachine(t *testing.T) {
	var e = fingerprint_engine_new()
	assert.Equal(t, FP_STATE_IDLE, e.state)

	e.start()
	assert.Equal(t, FP_STATE_SAMPLING, e.state)

	for i := 0; i < 10; i++ {
		e.onFrame(syntheticFrame(i))
	}
	assert.Equal(t, FP_STATE_SAMPLING, e.state)
	assert.Equal(t, 10, e.frames_captured)

	e.stop()
	assert.Equal(t, FP_STATE_IDLE, e.state)
}

func TestFingerprintEngineSamplingTerminatesAt1000Frames(t *testing.T) {
	var e = fingerprint_engine_new()
	e.start()
	for i := 0; i < FP_SAMPLING_FRAME_LIMIT; i++ {
		e.onFrame(syntheticFrame(i))
	}
	assert.Equal(t, FP_STATE_MATCHING, e.state)
	assert.Equal(t, FP_SAMPLING_FRAME_LIMIT, e.frames_captured)
}

func TestFingerprintEngineProgress(t *testing.T) {
	var e = fingerprint_engine_new()
	assert.Equal(t, 0, e.progress())
	e.start()
	for i := 0; i < 500; i++ {
		e.onFrame(syntheticFrame(i))
	}
	assert.Equal(t, 50, e.progress())
}

func TestFingerprintEngineRSSISampleRingBounded(t *testing.T) {
	var e = fingerprint_engine_new()
	e.start()
	for i := 0; i < FP_RSSI_SAMPLE_RING+50; i++ {
		e.onRSSISample(uint8(i % 256))
	}
	assert.Equal(t, FP_RSSI_SAMPLE_RING, e.rssi_samples_n)
}

func TestFingerprintAnalyzeProducesStableRecord(t *testing.T) {
	var e = fingerprint_engine_new()
	e.start()
	for i := 0; i < 50; i++ {
		e.onFrame(syntheticFrame(i))
		e.onRSSISample(uint8(60 + i%5))
	}
	e.stop()

	assert.NotEqual(t, fixed_t(0), e.result.drift_mean, "constant-interval frames should still yield a nonzero mean interval")
	assert.LessOrEqual(t, int(e.result.clock_stability_ppm), 255)

	// unique_hash must be deterministic and reproducible from the record.
	var again = fingerprint_hash(e.result)
	assert.Equal(t, e.result.unique_hash, again)
}

func TestClockStabilityPPMClampedTo255(t *testing.T) {
	// Wildly varying timings relative to a tiny mean should clamp, not overflow.
	var timings = []fixed_t{int_to_fixed(1), int_to_fixed(1000), int_to_fixed(1), int_to_fixed(1000)}
	var ppm = clockStabilityPPM(timings)
	assert.LessOrEqual(t, int(ppm), 255)
}

func TestClockStabilityPPMNeedsAtLeastTwoSamples(t *testing.T) {
	assert.Equal(t, uint8(0), clockStabilityPPM(nil))
	assert.Equal(t, uint8(0), clockStabilityPPM([]fixed_t{int_to_fixed(5)}))
}

func TestRSSISlopeAveragesSeparatesRiseAndFall(t *testing.T) {
	var samples = []fixed_t{int_to_fixed(0), int_to_fixed(10), int_to_fixed(5), int_to_fixed(15)}
	var rise, fall = rssiSlopeAverages(samples)
	assert.Greater(t, rise, fixed_t(0))
	assert.Less(t, fall, fixed_t(0))
}
