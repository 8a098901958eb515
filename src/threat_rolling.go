package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Rolling-code and exact-replay detection over a set of
 *		observed payloads, per spec.md section 4.7.
 *
 *----------------------------------------------------------------*/

// detectRollingCode extracts a 4-byte big-endian window at every byte
// position common to all payloads and flags positions whose
// across-frame sequence is neither a trivial arithmetic progression
// nor a short repeating cycle. Requires at least ENTROPY_HISTORY_SIZE
// frames, per spec.md section 4.7.
func detectRollingCode(payloads [][]byte) []int {
	if len(payloads) < ENTROPY_HISTORY_SIZE {
		return nil
	}

	var minLen = len(payloads[0])
	for _, p := range payloads[1:] {
		if len(p) < minLen {
			minLen = len(p)
		}
	}
	if minLen < 4 {
		return nil
	}

	var flagged []int
	for pos := 0; pos <= minLen-4; pos++ {
		var series = make([]uint32, len(payloads))
		for i, p := range payloads {
			series[i] = uint32(decodeBigEndian(p[pos : pos+4]))
		}
		if isSequential(series) || isSinglePeriodRepeating(series) {
			continue
		}
		flagged = append(flagged, pos)
	}
	return flagged
}

func isSequential(vals []uint32) bool {
	if len(vals) < 2 {
		return false
	}
	var diff = int64(vals[1]) - int64(vals[0])
	for i := 2; i < len(vals); i++ {
		if int64(vals[i])-int64(vals[i-1]) != diff {
			return false
		}
	}
	return true
}

// isSinglePeriodRepeating reports whether vals cycles with some period
// p <= len(vals)/2, i.e. the series carries no real entropy beyond one
// repeating pattern.
func isSinglePeriodRepeating(vals []uint32) bool {
	for p := 1; p <= len(vals)/2; p++ {
		var ok = true
		for i := p; i < len(vals); i++ {
			if vals[i] != vals[i-p] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// detectReplay collects up to THREAT_REPLAY_MAX indices of frames that
// exactly duplicate (same length, same bytes) an earlier frame.
func detectReplay(payloads [][]byte) ([]int, bool) {
	var seen = make(map[string]bool, len(payloads))
	var indices []int
	for i, p := range payloads {
		var key = string(p)
		if seen[key] {
			if len(indices) < THREAT_REPLAY_MAX {
				indices = append(indices, i)
			}
			continue
		}
		seen[key] = true
	}
	return indices, len(indices) > 0
}
