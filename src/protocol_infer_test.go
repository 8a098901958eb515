package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ookPulseTrain(n int) []pulse_t {
	var pulses []pulse_t
	for i := 0; i < n; i++ {
		var level uint8 = uint8(i % 2)
		var width uint16 = 1500
		if level == 0 {
			width = 500
		}
		pulses = append(pulses, pulse_t{level: level, width_us: width, timestamp_us: uint32(i * 2000)})
	}
	return pulses
}

func TestProtocolEngineNotReadyYieldsZeroHypothesis(t *testing.T) {
	var e protocol_infer_engine_t
	var hyp = e.analyze()
	assert.Equal(t, MODULATION_UNKNOWN, hyp.modulation)
	assert.Equal(t, 0, hyp.overall_confidence)
}

func TestProtocolEngineReadyOnPulseCount(t *testing.T) {
	var e protocol_infer_engine_t
	for _, p := range ookPulseTrain(PI_MIN_PULSES_FOR_ANALYSIS) {
		e.onPulse(p)
	}
	assert.True(t, e.ready())
}

func TestProtocolEngineClassifiesOOK(t *testing.T) {
	var e protocol_infer_engine_t
	for _, p := range ookPulseTrain(60) {
		e.onPulse(p)
	}
	var hyp = e.analyze()
	assert.Equal(t, MODULATION_OOK, hyp.modulation)
	assert.GreaterOrEqual(t, hyp.modulation_confidence, 40)
}

func TestProtocolEnginePulseRingSaturates(t *testing.T) {
	var e protocol_infer_engine_t
	for i := 0; i < MAX_PULSE_COUNT+10; i++ {
		e.onPulse(pulse_t{level: uint8(i % 2), width_us: 100})
	}
	assert.Equal(t, MAX_PULSE_COUNT, e.pulseCount)
}

func TestPeakClusterFindsUpToThreePeaks(t *testing.T) {
	var h = histogram_new(int_to_fixed(0), int_to_fixed(100), 10)
	// Bin 2 and bin 7 become clear peaks, well above total/20.
	for i := 0; i < 30; i++ {
		h.add(int_to_fixed(25))
	}
	for i := 0; i < 30; i++ {
		h.add(int_to_fixed(75))
	}
	var clusters, count = peakCluster(h)
	assert.GreaterOrEqual(t, count, 1)
	assert.LessOrEqual(t, count, PI_MAX_CLUSTERS)
	_ = clusters
}

func TestClassifyEncodingManchesterOnMidRangeTransitionRate(t *testing.T) {
	// Levels 0,0,1,1,0,0,...: 9 transitions over 19 pulse pairs gives a
	// transition rate of ~0.47, inside the Manchester band [0.4, 0.6].
	var pulses []pulse_t
	for i := 0; i < 20; i++ {
		pulses = append(pulses, pulse_t{level: uint8((i / 2) % 2), width_us: 500})
	}
	var encoding, confidence = classifyEncoding(pulses, nil, 0)
	assert.Equal(t, ENCODING_MANCHESTER, encoding)
	assert.Equal(t, 90, confidence)
}

func TestClassifyEncodingDefaultsToNRZ(t *testing.T) {
	var pulses = []pulse_t{{level: 1, width_us: 500}}
	var encoding, _ = classifyEncoding(pulses, nil, 0)
	assert.Equal(t, ENCODING_NRZ, encoding)
}

func TestLongestCommonFramePrefix(t *testing.T) {
	var frames = []frame_t{
		{length: 4, data: [MAX_FRAME_DATA]byte{0xAA, 0x01, 0x02, 0x03}},
		{length: 5, data: [MAX_FRAME_DATA]byte{0xAA, 0x01, 0x99, 0x03, 0x04}},
	}
	var prefix, n = longestCommonFramePrefix(frames)
	assert.Equal(t, 2, n)
	assert.Equal(t, byte(0xAA), prefix[0])
}

func TestInferFrameStructureChecksumSizing(t *testing.T) {
	var frames = []frame_t{{length: 8}, {length: 8}}
	var _, checksumBits, confidence = inferFrameStructure(frames, 1)
	assert.Equal(t, 16, checksumBits)
	assert.Greater(t, confidence, 0)

	frames = []frame_t{{length: 3}, {length: 3}}
	_, checksumBits, _ = inferFrameStructure(frames, 0)
	assert.Equal(t, 8, checksumBits)
}

func TestComputeTimingZeroClustersYieldsZeroBaud(t *testing.T) {
	var period, baud, confidence = computeTiming(nil, 0, nil)
	assert.Equal(t, fixed_t(0), period)
	assert.Equal(t, 0, baud)
	assert.Equal(t, 0, confidence)
}
