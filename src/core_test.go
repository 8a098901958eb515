package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoreContextInitIsHealthyAndIdle(t *testing.T) {
	var c = NewCoreContext(DefaultConfig())
	assert.True(t, c.Healthy())
	assert.Equal(t, 0, c.SnapshotFingerprintProgress())
	assert.Equal(t, fingerprint_t{}, c.SnapshotFingerprint())
	assert.Equal(t, threat_assessment_t{}, c.SnapshotThreatAssessment())
}

func TestCoreContextOnFrameRoutesToAllThreeEngines(t *testing.T) {
	var c = NewCoreContext(DefaultConfig())
	c.StartFingerprinting()
	c.StartThreatAnalysis()

	for i := 0; i < 5; i++ {
		c.OnFrame(Frame{
			TimestampUs: uint32(1000 * (i + 1)),
			RSSIDbm:     -60,
			Data:        []byte{0xAA, 0xBB, 0xCC},
		})
	}

	assert.Greater(t, c.SnapshotFingerprintProgress(), 0)

	var hyp = c.AnalyzeProtocol()
	assert.Equal(t, hyp, c.SnapshotProtocolHypothesis())

	var assessment = c.AssessThreat()
	assert.Equal(t, int_to_fixed(100), assessment.static_ratio)
	assert.Equal(t, assessment, c.SnapshotThreatAssessment())
}

func TestCoreContextFingerprintSnapshotZeroUntilStopped(t *testing.T) {
	var c = NewCoreContext(DefaultConfig())
	c.StartFingerprinting()
	c.OnFrame(Frame{TimestampUs: 1000, Data: []byte{0x01}})
	assert.Equal(t, fingerprint_t{}, c.SnapshotFingerprint())

	c.StopFingerprinting()
	var fp = c.SnapshotFingerprint()
	assert.NotEqual(t, fp.unique_hash, uint16(0))
}

func TestCoreContextRegisterAndMatchDevice(t *testing.T) {
	var c = NewCoreContext(DefaultConfig())
	var fp = fingerprint_t{drift_mean: int_to_fixed(100), clock_stability_ppm: 5}

	var id, ok = c.RegisterDevice(fp, "sensor-1", 0)
	assert.True(t, ok)
	assert.Equal(t, 1, c.DeviceTableSize())

	var confidence, matchedID, found = c.MatchFingerprint(fp, 1000)
	assert.True(t, found)
	assert.Equal(t, id, matchedID)
	assert.Equal(t, 100, confidence)

	assert.True(t, c.DeleteDevice(id))
	assert.Equal(t, 0, c.DeviceTableSize())
}

func TestCoreContextCounterfeitCheckUnknownName(t *testing.T) {
	var c = NewCoreContext(DefaultConfig())
	var fp = fingerprint_t{drift_mean: int_to_fixed(50)}
	var _, _, claimedFound = c.CounterfeitCheck(fp, "nonexistent")
	assert.False(t, claimedFound)
}

func TestCoreContextThreatReportEmptyBeforeAssess(t *testing.T) {
	var c = NewCoreContext(DefaultConfig())
	assert.Equal(t, "", c.ThreatReportText(0, 100))

	c.StartThreatAnalysis()
	c.OnFrame(Frame{Data: []byte{0x01, 0x02}})
	c.AssessThreat()
	assert.NotEqual(t, "", c.ThreatReportText(0, 200))
}

func TestCoreContextClusterStreamAccumulatesAndSnapshots(t *testing.T) {
	var c = NewCoreContext(DefaultConfig())
	for i := 0; i < 10; i++ {
		c.AddClusterPoint(int_to_fixed(i), int_to_fixed(i*2), 2)
	}
	var result = c.SnapshotClusterResult()
	assert.LessOrEqual(t, result.k, 2)
}

func TestCoreContextPulseAndFrameRingSaturationFlags(t *testing.T) {
	var c = NewCoreContext(DefaultConfig())
	assert.False(t, c.PulseRingSaturated())
	assert.False(t, c.FrameRingSaturated())

	for i := 0; i < MAX_PULSE_COUNT; i++ {
		c.OnPulse(Pulse{Level: uint8(i % 2), WidthUs: 100, TimestampUs: uint32(i * 100)})
	}
	assert.True(t, c.PulseRingSaturated())
}

func TestCoreContextTeardownResetsState(t *testing.T) {
	var c = NewCoreContext(DefaultConfig())
	c.StartFingerprinting()
	c.OnFrame(Frame{TimestampUs: 1000, Data: []byte{0x01}})
	c.StopFingerprinting()
	assert.NotEqual(t, fingerprint_t{}, c.SnapshotFingerprint())

	c.Teardown()
	assert.Equal(t, fingerprint_t{}, c.SnapshotFingerprint())
	assert.True(t, c.Healthy())
}

func TestCoreContextDeviceTableSaturation(t *testing.T) {
	var c = NewCoreContext(DefaultConfig())
	assert.False(t, c.DeviceTableSaturated())
	for i := 0; i < DEVICE_TABLE_CAPACITY; i++ {
		var fp = fingerprint_t{drift_mean: int_to_fixed(i)}
		var _, ok = c.RegisterDevice(fp, "d", uint32(i))
		assert.True(t, ok)
	}
	assert.True(t, c.DeviceTableSaturated())

	var overflow = fingerprint_t{drift_mean: int_to_fixed(9999)}
	var _, ok = c.RegisterDevice(overflow, "overflow", 0)
	assert.False(t, ok)
}
