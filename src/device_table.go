package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Fixed-capacity device table (arena + index, per spec.md
 *		section 9's guidance on cyclic references) and the
 *		temporal drift record ring that tracks a device's
 *		fingerprint history over time.
 *
 *----------------------------------------------------------------*/

const DEVICE_TABLE_CAPACITY = 128
const DEVICE_NAME_MAX = 15
const TEMPORAL_HISTORY_SIZE = 10

type device_entry_t struct {
	in_use      bool
	fingerprint fingerprint_t
	name        string
	first_seen  uint32
	last_seen   uint32
	match_count int
}

// device_table_t is an arena indexed by synthetic id (slot index);
// deletion tombstones a slot rather than renumbering others, so ids
// already handed out to callers stay valid.
type device_table_t struct {
	entries  [DEVICE_TABLE_CAPACITY]device_entry_t
	count    int
	next_id  int
}

// insert adds a device, returning its id and true, or false if the
// table is at capacity (CapacityExceeded).
func (t *device_table_t) insert(fp fingerprint_t, name string, now uint32) (uint16, bool) {
	if t.count >= DEVICE_TABLE_CAPACITY {
		return 0, false
	}
	if len(name) > DEVICE_NAME_MAX {
		name = name[:DEVICE_NAME_MAX]
	}
	var id = t.next_id
	if id >= DEVICE_TABLE_CAPACITY || t.entries[id].in_use {
		// Wrapped past capacity via repeated insert/delete, or the next
		// slot is still occupied: take the first free slot instead.
		for i := range t.entries {
			if !t.entries[i].in_use {
				id = i
				break
			}
		}
	}
	t.entries[id] = device_entry_t{
		in_use:      true,
		fingerprint: fp,
		name:        name,
		first_seen:  now,
		last_seen:   now,
	}
	t.next_id = id + 1
	t.count++
	return uint16(id), true
}

func (t *device_table_t) get(id uint16) (device_entry_t, bool) {
	if int(id) >= DEVICE_TABLE_CAPACITY || !t.entries[id].in_use {
		return device_entry_t{}, false
	}
	return t.entries[id], true
}

// delete tombstones a slot; other ids are untouched, per spec.md
// section 3's "no removal reorders ids ... unless delete is invoked".
func (t *device_table_t) delete(id uint16) bool {
	if int(id) >= DEVICE_TABLE_CAPACITY || !t.entries[id].in_use {
		return false
	}
	t.entries[id] = device_entry_t{}
	t.count--
	return true
}

func (t *device_table_t) recordMatch(id uint16, now uint32) {
	if int(id) >= DEVICE_TABLE_CAPACITY || !t.entries[id].in_use {
		return
	}
	t.entries[id].last_seen = now
	t.entries[id].match_count++
}

func (t *device_table_t) size() int {
	return t.count
}

// temporal_record_t tracks a device's fingerprint history: a ring of
// the last TEMPORAL_HISTORY_SIZE fingerprints plus drift-vs-baseline state.
type temporal_record_t struct {
	device_id          uint16
	baseline           fingerprint_t
	history            [TEMPORAL_HISTORY_SIZE]fingerprint_t
	history_count      int
	history_pos        int
	first_seen         uint32
	last_seen          uint32
	match_count        int
	drift_detected     bool
	drift_magnitude    fixed_t
}

const TEMPORAL_TABLE_CAPACITY = 128

type temporal_table_t struct {
	records [TEMPORAL_TABLE_CAPACITY]temporal_record_t
	inUse   [TEMPORAL_TABLE_CAPACITY]bool
	count   int
}

func (tt *temporal_table_t) getOrCreate(deviceID uint16, baseline fingerprint_t, now uint32) *temporal_record_t {
	for i := range tt.records {
		if tt.inUse[i] && tt.records[i].device_id == deviceID {
			return &tt.records[i]
		}
	}
	if tt.count >= TEMPORAL_TABLE_CAPACITY {
		return nil
	}
	for i := range tt.records {
		if !tt.inUse[i] {
			tt.records[i] = temporal_record_t{
				device_id:  deviceID,
				baseline:   baseline,
				first_seen: now,
				last_seen:  now,
			}
			tt.inUse[i] = true
			tt.count++
			return &tt.records[i]
		}
	}
	return nil
}

// recordNormalizationConstant is the "20% of a normalization constant"
// threshold spec.md section 4.5 names for drift detection: the
// similarity-distance scale used elsewhere in the fingerprint engine
// (see fingerprint_match.go's fpDistanceScale), making drift_detected
// trip when a device's similarity distance from its baseline exceeds
// 20% of that same scale.
const recordNormalizationConstant = 10000

func (r *temporal_record_t) update(fp fingerprint_t, distanceFromBaseline fixed_t, now uint32) {
	r.history[r.history_pos] = fp
	r.history_pos = (r.history_pos + 1) % TEMPORAL_HISTORY_SIZE
	if r.history_count < TEMPORAL_HISTORY_SIZE {
		r.history_count++
	}
	r.last_seen = now
	r.match_count++
	r.drift_magnitude = distanceFromBaseline
	var threshold = int_to_fixed(recordNormalizationConstant * 20 / 100)
	r.drift_detected = distanceFromBaseline > threshold
}
