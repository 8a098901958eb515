package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreatEngineStaticMaskAllIdenticalFrames(t *testing.T) {
	var e threat_engine_t
	e.startAnalysis()
	for i := 0; i < 5; i++ {
		e.onFrame([]byte{0xAA, 0xBB, 0xCC, 0xDD})
	}
	assert.Equal(t, fixed_to_int(int_to_fixed(100)), fixed_to_int(e.staticRatio()))
}

func TestThreatEngineStaticMaskClearsOnDifference(t *testing.T) {
	var e threat_engine_t
	e.startAnalysis()
	e.onFrame([]byte{0xAA, 0xBB})
	e.onFrame([]byte{0xAA, 0x00})
	assert.Less(t, fixed_to_int(e.staticRatio()), 100)
	assert.Greater(t, fixed_to_int(e.staticRatio()), 0)
}

func TestThreatEnginePreamble(t *testing.T) {
	var e threat_engine_t
	e.startAnalysis()
	e.onFrame([]byte{0x55, 0x01, 0x02})
	e.onFrame([]byte{0x55, 0x99, 0x02})
	var _, n = e.preamble()
	assert.Equal(t, 1, n)
}

func TestQuickAssessUniformIsHighRisk(t *testing.T) {
	var _, level, score = quickAssess([]byte{0x00, 0x00, 0x00, 0x00})
	assert.Equal(t, THREAT_LEVEL_HIGH, level)
	assert.Equal(t, 700, score)
}

func TestQuickAssessHighEntropyIsLowRisk(t *testing.T) {
	var payload = make([]byte, 64)
	for i := range payload {
		payload[i] = byte(i*97 + 13)
	}
	var _, level, _ = quickAssess(payload)
	assert.Equal(t, THREAT_LEVEL_LOW, level)
}

func TestScoreBandBoundaries(t *testing.T) {
	assert.Equal(t, THREAT_LEVEL_CRITICAL, scoreBand(900))
	assert.Equal(t, THREAT_LEVEL_HIGH, scoreBand(700))
	assert.Equal(t, THREAT_LEVEL_MEDIUM, scoreBand(400))
	assert.Equal(t, THREAT_LEVEL_LOW, scoreBand(0))
}

func TestAssessUniformPayloadsScoresHigh(t *testing.T) {
	var e threat_engine_t
	e.startAnalysis()
	for i := 0; i < 20; i++ {
		e.onFrame([]byte{0x00, 0x00, 0x00, 0x00})
	}
	var a = e.assess()
	assert.GreaterOrEqual(t, a.score, 700)
	assert.False(t, a.crc_fit.found)
}

func TestAssessDetectsExactReplay(t *testing.T) {
	var e threat_engine_t
	e.startAnalysis()
	e.onFrame([]byte{0x01, 0x02, 0x03})
	e.onFrame([]byte{0x01, 0x02, 0x03})
	e.onFrame([]byte{0x04, 0x05, 0x06})
	var a = e.assess()
	assert.True(t, a.exact_replay)
	assert.NotEmpty(t, a.replay_indices)
}
