package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Core data model: Pulse and Frame, as pushed in by the
 *		radio front-end collaborator (out of scope -- see
 *		spec.md section 1).
 *
 *----------------------------------------------------------------*/

const (
	MAX_FRAME_DATA   = 64
	MAX_FRAME_COUNT  = 256
	MAX_PULSE_COUNT  = 4096
	MAX_RSSI_SAMPLES = 256
)

// pulse_t is immutable once captured; level is 0 or 1, width_us in
// [1, 65535].
type pulse_t struct {
	level        uint8
	width_us     uint16
	timestamp_us uint32
}

// frame_t references a contiguous slice of the pulse ring it was
// demodulated from.
type frame_t struct {
	timestamp_us    uint32
	duration_us     uint32
	rssi_dbm        int16
	frequency_hz    uint32
	data             [MAX_FRAME_DATA]byte
	length           int
	pulse_start_idx  int
	pulse_count      int
}

// Pulse and Frame are the exported, caller-facing mirrors of pulse_t/frame_t
// used at the C8 facade boundary (on_pulse/on_frame) and in snapshots.
type Pulse struct {
	Level       uint8
	WidthUs     uint16
	TimestampUs uint32
}

type Frame struct {
	TimestampUs   uint32
	DurationUs    uint32
	RSSIDbm       int16
	FrequencyHz   uint32
	Data          []byte
	PulseStartIdx int
	PulseCount    int
}

func newPulseT(p Pulse) pulse_t {
	return pulse_t{level: p.Level, width_us: p.WidthUs, timestamp_us: p.TimestampUs}
}

func (p pulse_t) toPulse() Pulse {
	return Pulse{Level: p.level, WidthUs: p.width_us, TimestampUs: p.timestamp_us}
}

func newFrameT(f Frame) frame_t {
	var ft frame_t
	ft.timestamp_us = f.TimestampUs
	ft.duration_us = f.DurationUs
	ft.rssi_dbm = f.RSSIDbm
	ft.frequency_hz = f.FrequencyHz
	ft.pulse_start_idx = f.PulseStartIdx
	ft.pulse_count = f.PulseCount
	var n = len(f.Data)
	if n > MAX_FRAME_DATA {
		n = MAX_FRAME_DATA
	}
	copy(ft.data[:], f.Data[:n])
	ft.length = n
	return ft
}

func (f frame_t) toFrame() Frame {
	var data = make([]byte, f.length)
	copy(data, f.data[:f.length])
	return Frame{
		TimestampUs:   f.timestamp_us,
		DurationUs:    f.duration_us,
		RSSIDbm:       f.rssi_dbm,
		FrequencyHz:   f.frequency_hz,
		Data:          data,
		PulseStartIdx: f.pulse_start_idx,
		PulseCount:    f.pulse_count,
	}
}
