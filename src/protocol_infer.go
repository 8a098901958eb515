package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Protocol inference engine (C6): mark/space pulse-width
 *		histograms, peak clustering, modulation/encoding
 *		classification, timing, preamble, and frame structure.
 *
 *----------------------------------------------------------------*/

const (
	PI_MIN_PULSES_FOR_ANALYSIS = 10
	PI_MIN_FRAMES_FOR_ANALYSIS = 2
	PI_MAX_CLUSTERS            = 3
	PI_LONG_PULSE_THRESHOLD_US = 1000
	PI_MAX_PREAMBLE_BYTES      = 4
)

type modulation_e int

const (
	MODULATION_UNKNOWN modulation_e = iota
	MODULATION_OOK
	MODULATION_FSK
	MODULATION_ASK
)

type encoding_e int

const (
	ENCODING_NRZ encoding_e = iota
	ENCODING_MANCHESTER
	ENCODING_PWM
	ENCODING_MILLER
)

type symbol_cluster_t struct {
	center_us fixed_t
	spread_us fixed_t
	symbol_id int
}

type protocol_hypothesis_t struct {
	modulation modulation_e
	encoding   encoding_e

	baud_rate        int
	symbol_period_us fixed_t
	short_pulse_us   fixed_t
	long_pulse_us    fixed_t

	symbol_alphabet       [PI_MAX_CLUSTERS]symbol_cluster_t
	symbol_alphabet_count int

	preamble_pattern      [PI_MAX_PREAMBLE_BYTES]byte
	preamble_length_bytes int
	preamble_length_bits  int

	payload_bits  int
	checksum_bits int

	modulation_confidence int
	encoding_confidence   int
	timing_confidence     int
	frame_confidence      int
	overall_confidence    int
}

type protocol_infer_engine_t struct {
	pulses     [MAX_PULSE_COUNT]pulse_t
	pulseCount int

	frames     [MAX_FRAME_COUNT]frame_t
	frameCount int
}

// onPulse appends to the bounded pulse ring; once full, further pulses
// are dropped (CapacityExceeded) rather than overwriting history that
// analysis may still need.
func (e *protocol_infer_engine_t) onPulse(p pulse_t) {
	if e.pulseCount >= MAX_PULSE_COUNT {
		return
	}
	e.pulses[e.pulseCount] = p
	e.pulseCount++
}

func (e *protocol_infer_engine_t) onFrame(f frame_t) {
	if e.frameCount >= MAX_FRAME_COUNT {
		return
	}
	e.frames[e.frameCount] = f
	e.frameCount++
}

func (e *protocol_infer_engine_t) ready() bool {
	return e.pulseCount >= PI_MIN_PULSES_FOR_ANALYSIS || e.frameCount >= PI_MIN_FRAMES_FOR_ANALYSIS
}

// analyze runs the full C6 pipeline. Called on demand once ready()
// reports enough accumulated data; returns the zero hypothesis
// (PreconditionNotMet) otherwise.
func (e *protocol_infer_engine_t) analyze() protocol_hypothesis_t {
	if !e.ready() {
		return protocol_hypothesis_t{}
	}

	var markHist, markWidths = e.buildHistogram(1)
	var spaceHist, spaceWidths = e.buildHistogram(0)

	var clusters, clusterCount = peakCluster(markHist)

	var hyp protocol_hypothesis_t
	hyp.modulation, hyp.modulation_confidence = classifyModulation(markWidths, spaceWidths, clusterCount)

	copy(hyp.symbol_alphabet[:], clusters[:clusterCount])
	hyp.symbol_alphabet_count = clusterCount

	if e.frameCount > 0 {
		hyp.encoding, hyp.encoding_confidence = classifyEncoding(e.pulses[:e.pulseCount], clusters[:clusterCount], clusterCount)
	} else {
		hyp.encoding = ENCODING_NRZ
		hyp.encoding_confidence = 0
	}

	hyp.symbol_period_us, hyp.baud_rate, hyp.timing_confidence = computeTiming(clusters[:clusterCount], clusterCount, markWidths)

	if clusterCount > 0 {
		hyp.short_pulse_us = clusters[0].center_us
		hyp.long_pulse_us = clusters[clusterCount-1].center_us
	}

	if e.frameCount > 0 {
		var pattern, prefixLen = longestCommonFramePrefix(e.frames[:e.frameCount])
		copy(hyp.preamble_pattern[:], pattern[:prefixLen])
		hyp.preamble_length_bytes = prefixLen
		hyp.preamble_length_bits = prefixLen * 8

		hyp.payload_bits, hyp.checksum_bits, hyp.frame_confidence = inferFrameStructure(e.frames[:e.frameCount], prefixLen)
	}

	hyp.overall_confidence = (hyp.modulation_confidence + hyp.encoding_confidence + hyp.timing_confidence + hyp.frame_confidence) / 4
	return hyp
}

// buildHistogram builds a linear histogram over the observed widths of
// pulses at the given level (1 = mark, 0 = space), per spec.md section
// 4.6 step 1: bin width = range/num_bins, num_bins = min(range, 256).
func (e *protocol_infer_engine_t) buildHistogram(level uint8) (histogram_t, []fixed_t) {
	var widths []fixed_t
	var minW, maxW uint16
	var first = true
	for i := 0; i < e.pulseCount; i++ {
		if e.pulses[i].level != level {
			continue
		}
		var w = e.pulses[i].width_us
		widths = append(widths, int_to_fixed(int(w)))
		if first {
			minW, maxW = w, w
			first = false
			continue
		}
		if w < minW {
			minW = w
		}
		if w > maxW {
			maxW = w
		}
	}
	if first {
		return histogram_t{}, nil
	}
	var rangeWidth = int(maxW) - int(minW)
	var numBins = rangeWidth
	if numBins > HISTOGRAM_MAX_BINS {
		numBins = HISTOGRAM_MAX_BINS
	}
	if numBins < 1 {
		numBins = 1
	}
	var h = histogram_new(int_to_fixed(int(minW)), int_to_fixed(int(maxW)+1), numBins)
	for _, w := range widths {
		h.add(w)
	}
	return h, widths
}

// peakCluster detects up to PI_MAX_CLUSTERS peaks: bins strictly
// greater than both neighbors and exceeding total/20.
func peakCluster(h histogram_t) ([PI_MAX_CLUSTERS]symbol_cluster_t, int) {
	var clusters [PI_MAX_CLUSTERS]symbol_cluster_t
	var count int
	if h.total_samples == 0 {
		return clusters, 0
	}
	var threshold = h.total_samples / 20
	for bin := 0; bin < h.num_bins && count < PI_MAX_CLUSTERS; bin++ {
		var leftOK = bin == 0 || h.bins[bin] > h.bins[bin-1]
		var rightOK = bin == h.num_bins-1 || h.bins[bin] > h.bins[bin+1]
		if leftOK && rightOK && h.bins[bin] > threshold {
			clusters[count] = symbol_cluster_t{
				center_us: h.binValue(bin),
				spread_us: fixed_mul(int_to_fixed(2), h.bin_width),
				symbol_id: count,
			}
			count++
		}
	}
	return clusters, count
}

// classifyModulation applies the spec.md section 4.6 step-3 predicates
// with OOK > FSK > ASK tie-break precedence.
func classifyModulation(markWidths, spaceWidths []fixed_t, clusterCount int) (modulation_e, int) {
	var longCount int
	for _, w := range markWidths {
		if w > int_to_fixed(PI_LONG_PULSE_THRESHOLD_US) {
			longCount++
		}
	}
	var totalMark = len(markWidths)
	var isLongDominant = totalMark > 0 && longCount*3 > totalMark

	var ratio = markSpaceRatio(markWidths, spaceWidths)

	if isLongDominant {
		if ratio >= float_to_fixed(2.0) {
			return MODULATION_OOK, 90
		}
		return MODULATION_OOK, 40
	}
	if clusterCount >= 2 {
		return MODULATION_FSK, 85
	}
	return MODULATION_ASK, 80
}

func markSpaceRatio(markWidths, spaceWidths []fixed_t) fixed_t {
	var markTotal = sumFixed(markWidths)
	var spaceTotal = sumFixed(spaceWidths)
	if markTotal == 0 || spaceTotal == 0 {
		return 0
	}
	if markTotal > spaceTotal {
		return fixed_div(markTotal, spaceTotal)
	}
	return fixed_div(spaceTotal, markTotal)
}

func sumFixed(xs []fixed_t) fixed_t {
	var sum fixed_t
	for _, x := range xs {
		sum = fixed_add(sum, x)
	}
	return sum
}

// classifyEncoding applies the spec.md section 4.6 step-4 predicates.
// Miller detection is a heuristic hook left unimplemented (always false)
// per spec.md's explicit statement for the base implementation.
func classifyEncoding(pulses []pulse_t, clusters []symbol_cluster_t, clusterCount int) (encoding_e, int) {
	var transitionRate = transitionRate(pulses)
	if transitionRate >= 0.4 && transitionRate <= 0.6 {
		return ENCODING_MANCHESTER, 90
	}
	if clusterCount == 2 {
		var a = fixed_to_float(clusters[0].center_us)
		var b = fixed_to_float(clusters[1].center_us)
		if a > 0 && b > 0 {
			var r = a / b
			if r < 1 {
				r = 1 / r
			}
			if r >= 1.8 && r <= 2.2 {
				return ENCODING_PWM, 85
			}
		}
	}
	if detectMiller(pulses) {
		return ENCODING_MILLER, 70
	}
	return ENCODING_NRZ, 50
}

func transitionRate(pulses []pulse_t) float64 {
	if len(pulses) < 2 {
		return 0
	}
	var transitions int
	for i := 1; i < len(pulses); i++ {
		if pulses[i].level != pulses[i-1].level {
			transitions++
		}
	}
	return float64(transitions) / float64(len(pulses)-1)
}

// detectMiller is a hook for a Miller-code heuristic; the base
// implementation does not attempt to distinguish Miller from NRZ.
func detectMiller(pulses []pulse_t) bool {
	return false
}

// computeTiming derives symbol_period_us/baud_rate/timing_confidence
// per spec.md section 4.6 step 5.
func computeTiming(clusters []symbol_cluster_t, clusterCount int, markWidths []fixed_t) (fixed_t, int, int) {
	if clusterCount == 0 {
		return 0, 0, 0
	}
	var period = clusters[0].center_us
	for i := 1; i < clusterCount; i++ {
		if clusters[i].center_us < period {
			period = clusters[i].center_us
		}
	}
	var baud int
	if period > 0 {
		baud = fixed_to_int(fixed_div(int_to_fixed(1000000), period))
	}

	var stats = welford_batch(markWidths)
	var confidence = 50
	if stats.mean > 0 {
		var stddev = stats.stddev()
		if stddev < fixed_div(stats.mean, int_to_fixed(10)) {
			confidence = 90
		} else if stddev < fixed_div(stats.mean, int_to_fixed(5)) {
			confidence = 70
		}
	}
	return period, baud, confidence
}

// longestCommonFramePrefix returns the longest byte-aligned prefix
// shared by every frame's payload, capped at PI_MAX_PREAMBLE_BYTES.
func longestCommonFramePrefix(frames []frame_t) ([PI_MAX_PREAMBLE_BYTES]byte, int) {
	var prefix [PI_MAX_PREAMBLE_BYTES]byte
	if len(frames) == 0 {
		return prefix, 0
	}
	var maxLen = frames[0].length
	if maxLen > PI_MAX_PREAMBLE_BYTES {
		maxLen = PI_MAX_PREAMBLE_BYTES
	}
	var n = maxLen
	for i := 0; i < n; i++ {
		var b = frames[0].data[i]
		for _, f := range frames[1:] {
			if i >= f.length || f.data[i] != b {
				copy(prefix[:], frames[0].data[:i])
				return prefix, i
			}
		}
	}
	copy(prefix[:], frames[0].data[:n])
	return prefix, n
}

// inferFrameStructure approximates payload/checksum sizing per
// spec.md section 4.6 step 7.
func inferFrameStructure(frames []frame_t, preambleBytes int) (int, int, int) {
	if len(frames) == 0 {
		return 0, 0, 0
	}
	var totalLen int
	for _, f := range frames {
		totalLen += f.length
	}
	var avgLen = totalLen / len(frames)

	var checksumBytes = 1
	var checksumBits = 8
	if avgLen > 4 {
		checksumBytes = 2
		checksumBits = 16
	}

	var payloadBytes = avgLen - preambleBytes - checksumBytes
	if payloadBytes < 0 {
		payloadBytes = 0
	}
	return payloadBytes * 8, checksumBits, 70
}
