package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceTableInsertGetDelete(t *testing.T) {
	var table device_table_t
	var fp = sampleFingerprint(1)
	id, ok := table.insert(fp, "device-a", 100)
	assert.True(t, ok)
	assert.Equal(t, 1, table.size())

	entry, found := table.get(id)
	assert.True(t, found)
	assert.Equal(t, "device-a", entry.name)
	assert.Equal(t, uint32(100), entry.first_seen)

	assert.True(t, table.delete(id))
	assert.Equal(t, 0, table.size())
	_, found = table.get(id)
	assert.False(t, found)
}

func TestDeviceTableCapacityExceeded(t *testing.T) {
	var table device_table_t
	for i := 0; i < DEVICE_TABLE_CAPACITY; i++ {
		_, ok := table.insert(sampleFingerprint(i), "d", 0)
		assert.True(t, ok)
	}
	_, ok := table.insert(sampleFingerprint(999), "overflow", 0)
	assert.False(t, ok, "table at capacity should reject further inserts")
}

func TestDeviceTableNameTruncated(t *testing.T) {
	var table device_table_t
	var long = "this-name-is-far-too-long-for-the-table"
	id, ok := table.insert(sampleFingerprint(1), long, 0)
	assert.True(t, ok)
	entry, _ := table.get(id)
	assert.LessOrEqual(t, len(entry.name), DEVICE_NAME_MAX)
}

func TestDeviceTableRecordMatch(t *testing.T) {
	var table device_table_t
	id, _ := table.insert(sampleFingerprint(1), "d", 0)
	table.recordMatch(id, 50)
	entry, _ := table.get(id)
	assert.Equal(t, 1, entry.match_count)
	assert.Equal(t, uint32(50), entry.last_seen)
}

func TestDeviceTableDeleteDoesNotRenumber(t *testing.T) {
	var table device_table_t
	idA, _ := table.insert(sampleFingerprint(1), "a", 0)
	idB, _ := table.insert(sampleFingerprint(2), "b", 0)
	table.delete(idA)
	entry, found := table.get(idB)
	assert.True(t, found)
	assert.Equal(t, "b", entry.name)
}

func TestTemporalTableGetOrCreate(t *testing.T) {
	var tt temporal_table_t
	var fp = sampleFingerprint(1)
	var r1 = tt.getOrCreate(5, fp, 10)
	assert.NotNil(t, r1)
	assert.Equal(t, uint16(5), r1.device_id)

	var r2 = tt.getOrCreate(5, fp, 20)
	assert.Same(t, r1, r2, "same device id should return the same record")
}

func TestTemporalTableCapacityExceeded(t *testing.T) {
	var tt temporal_table_t
	for i := 0; i < TEMPORAL_TABLE_CAPACITY; i++ {
		var r = tt.getOrCreate(uint16(i), sampleFingerprint(i), 0)
		assert.NotNil(t, r)
	}
	var r = tt.getOrCreate(uint16(TEMPORAL_TABLE_CAPACITY+1), sampleFingerprint(0), 0)
	assert.Nil(t, r)
}

func TestTemporalRecordUpdateDriftDetection(t *testing.T) {
	var tt temporal_table_t
	var baseline = sampleFingerprint(1)
	var r = tt.getOrCreate(1, baseline, 0)

	// Small distance: no drift.
	r.update(baseline, int_to_fixed(10), 1)
	assert.False(t, r.drift_detected)

	// Distance above 20% of the normalization constant: drift detected.
	r.update(baseline, int_to_fixed(3000), 2)
	assert.True(t, r.drift_detected)
	assert.Equal(t, 2, r.match_count)
}

func TestTemporalRecordHistoryRingBounded(t *testing.T) {
	var tt temporal_table_t
	var baseline = sampleFingerprint(1)
	var r = tt.getOrCreate(1, baseline, 0)
	for i := 0; i < TEMPORAL_HISTORY_SIZE+5; i++ {
		r.update(sampleFingerprint(i), int_to_fixed(1), uint32(i))
	}
	assert.Equal(t, TEMPORAL_HISTORY_SIZE, r.history_count)
}
