package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Fingerprinting engine (C5): state machine, per-frame
 *		feature accumulation, and the Sampling->Analyzing
 *		feature extraction that produces an RF fingerprint.
 *
 *----------------------------------------------------------------*/

const (
	FP_INTERVALS_RING_SIZE     = 1000
	FP_SYMBOL_TIMINGS_RING     = 1000
	FP_RSSI_ENVELOPE_SIZE      = 16
	FP_RSSI_SAMPLE_RING        = 256
	FP_SAMPLING_FRAME_LIMIT    = 1000
)

type fp_state_e int

const (
	FP_STATE_IDLE fp_state_e = iota
	FP_STATE_SAMPLING
	FP_STATE_ANALYZING
	FP_STATE_MATCHING
	FP_STATE_LEARNING
)

// fingerprint_t is the compact per-device physical-layer fingerprint
// record from spec.md section 3.
type fingerprint_t struct {
	drift_mean           fixed_t
	drift_variance       fixed_t
	rise_time_avg        fixed_t
	fall_time_avg        fixed_t
	clock_stability_ppm  uint8
	rssi_signature       [FP_RSSI_ENVELOPE_SIZE]byte
	unique_hash          uint16
}

// fingerprint_engine_t owns the sampling rings and state machine for
// one capture session.
type fingerprint_engine_t struct {
	state fp_state_e

	intervals      [FP_INTERVALS_RING_SIZE]fixed_t
	intervals_n    int
	last_timestamp uint32
	have_last      bool

	symbol_timings [FP_SYMBOL_TIMINGS_RING]fixed_t
	symbol_n       int

	rssi_envelope [FP_RSSI_ENVELOPE_SIZE]byte
	frames_captured int

	rssi_samples   [FP_RSSI_SAMPLE_RING]fixed_t
	rssi_samples_n int
	rssi_pos       int

	result fingerprint_t
}

func fingerprint_engine_new() fingerprint_engine_t {
	return fingerprint_engine_t{}
}

func (e *fingerprint_engine_t) start() {
	e.state = FP_STATE_SAMPLING
	e.intervals_n = 0
	e.symbol_n = 0
	e.frames_captured = 0
	e.rssi_samples_n = 0
	e.rssi_pos = 0
	e.have_last = false
	e.result = fingerprint_t{}
}

func (e *fingerprint_engine_t) stop() {
	if e.state == FP_STATE_SAMPLING {
		e.analyze()
	}
	e.state = FP_STATE_IDLE
}

func (e *fingerprint_engine_t) progress() int {
	if e.state != FP_STATE_SAMPLING {
		if e.state == FP_STATE_IDLE {
			return 0
		}
		return 100
	}
	var p = e.frames_captured * 100 / FP_SAMPLING_FRAME_LIMIT
	if p > 100 {
		p = 100
	}
	return p
}

// onFrame is the per-frame update during Sampling, per spec.md section 4.5.
func (e *fingerprint_engine_t) onFrame(f frame_t) {
	if e.state != FP_STATE_SAMPLING {
		return
	}

	if e.have_last {
		var interval = int(f.timestamp_us) - int(e.last_timestamp)
		if e.intervals_n < FP_INTERVALS_RING_SIZE {
			e.intervals[e.intervals_n] = int_to_fixed(interval)
			e.intervals_n++
		}
	}
	e.last_timestamp = f.timestamp_us
	e.have_last = true

	if f.length > 0 {
		var symbolTiming = fixed_div(int_to_fixed(int(f.duration_us)), int_to_fixed(f.length))
		if e.symbol_n < FP_SYMBOL_TIMINGS_RING {
			e.symbol_timings[e.symbol_n] = symbolTiming
			e.symbol_n++
		}
	}

	e.rssi_envelope[e.frames_captured%FP_RSSI_ENVELOPE_SIZE] = byte(int(f.rssi_dbm) + 128)
	e.frames_captured++

	if e.frames_captured >= FP_SAMPLING_FRAME_LIMIT {
		e.analyze()
	}
}

// onRSSISample is the higher-rate RSSI-slope update, independent of
// frame arrival, appended to a bounded 256-sample ring.
func (e *fingerprint_engine_t) onRSSISample(rssi uint8) {
	e.rssi_samples[e.rssi_pos] = int_to_fixed(int(rssi))
	e.rssi_pos = (e.rssi_pos + 1) % FP_RSSI_SAMPLE_RING
	if e.rssi_samples_n < FP_RSSI_SAMPLE_RING {
		e.rssi_samples_n++
	}
}

// analyze performs the Sampling->Analyzing transition, computing the
// batch statistics that make up the fingerprint record.
func (e *fingerprint_engine_t) analyze() {
	e.state = FP_STATE_ANALYZING

	var driftStats = welford_batch(e.intervals[:e.intervals_n])
	e.result.drift_mean = driftStats.mean
	e.result.drift_variance = driftStats.variance()

	e.result.rise_time_avg, e.result.fall_time_avg = rssiSlopeAverages(e.rssi_samples[:e.rssi_samples_n])

	e.result.clock_stability_ppm = clockStabilityPPM(e.symbol_timings[:e.symbol_n])

	copy(e.result.rssi_signature[:], e.rssi_envelope[:])

	e.result.unique_hash = fingerprint_hash(e.result)

	e.state = FP_STATE_MATCHING
}

// rssiSlopeAverages returns the mean of the positive and negative
// first differences of the RSSI-sample ring, in fixed-point units/sample.
func rssiSlopeAverages(samples []fixed_t) (fixed_t, fixed_t) {
	if len(samples) < 2 {
		return 0, 0
	}
	var riseSum, fallSum fixed_t
	var riseN, fallN int
	for i := 1; i < len(samples); i++ {
		var d = fixed_sub(samples[i], samples[i-1])
		if d > 0 {
			riseSum = fixed_add(riseSum, d)
			riseN++
		} else if d < 0 {
			fallSum = fixed_add(fallSum, d)
			fallN++
		}
	}
	var rise, fall fixed_t
	if riseN > 0 {
		rise = fixed_div(riseSum, int_to_fixed(riseN))
	}
	if fallN > 0 {
		fall = fixed_div(fallSum, int_to_fixed(fallN))
	}
	return rise, fall
}

// clockStabilityPPM is std_dev(symbol_timings)*1_000_000/mean(symbol_timings),
// clamped to [0,255] per spec.md section 4.5.
func clockStabilityPPM(timings []fixed_t) uint8 {
	if len(timings) < 2 {
		return 0
	}
	var stats = welford_batch(timings)
	if stats.mean == 0 {
		return 0
	}
	var stddev = stats.stddev()
	var ppm = fixed_div(fixed_mul(stddev, int_to_fixed(1000000)), stats.mean)
	var v = fixed_to_int(ppm)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// fingerprint_hash is CRC-16-CCITT over the record's fields excluding
// the hash itself, per spec.md section 3/4.5. The hash is always
// computed last, over a deterministic byte encoding of the other fields.
func fingerprint_hash(fp fingerprint_t) uint16 {
	return crc16_ccitt(fingerprintHashableBytes(fp))
}

func fingerprintHashableBytes(fp fingerprint_t) []byte {
	var buf = make([]byte, 0, 4+4+2+2+1+FP_RSSI_ENVELOPE_SIZE)
	buf = appendUint32LE(buf, uint32(fp.drift_mean))
	buf = appendUint32LE(buf, uint32(fp.drift_variance))
	buf = appendUint16LE(buf, uint16(fp.rise_time_avg))
	buf = appendUint16LE(buf, uint16(fp.fall_time_avg))
	buf = append(buf, fp.clock_stability_ppm)
	buf = append(buf, fp.rssi_signature[:]...)
	return buf
}

func appendUint32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendUint16LE(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}
