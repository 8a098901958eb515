package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Weighted fingerprint similarity, device-table matching,
 *		and counterfeit detection, per spec.md section 4.5.
 *
 *----------------------------------------------------------------*/

// fpDefaultConfig backs the package-level similarity weights and bands
// below; matching always uses these defaults, including in a
// CoreContext built from a non-default Config.
var fpDefaultConfig = DefaultConfig()

var (
	fpWeightDrift  = float_to_fixed(fpDefaultConfig.FingerprintWeights.Drift)
	fpWeightSlopes = float_to_fixed(fpDefaultConfig.FingerprintWeights.Slopes)
	fpWeightClock  = float_to_fixed(fpDefaultConfig.FingerprintWeights.Clock)
	fpWeightRSSI   = float_to_fixed(fpDefaultConfig.FingerprintWeights.RSSI)

	fpDistanceScale = int_to_fixed(10000)
)

var (
	FP_CONFIDENCE_HIGH   = fpDefaultConfig.ConfidenceBands.High
	FP_CONFIDENCE_MEDIUM = fpDefaultConfig.ConfidenceBands.Medium
	FP_CONFIDENCE_LOW    = fpDefaultConfig.ConfidenceBands.Low
)

type fp_confidence_band_e int

const (
	FP_BAND_NONE fp_confidence_band_e = iota
	FP_BAND_LOW
	FP_BAND_MEDIUM
	FP_BAND_HIGH
)

func fingerprintConfidenceBand(confidence int) fp_confidence_band_e {
	switch {
	case confidence >= FP_CONFIDENCE_HIGH:
		return FP_BAND_HIGH
	case confidence >= FP_CONFIDENCE_MEDIUM:
		return FP_BAND_MEDIUM
	case confidence >= FP_CONFIDENCE_LOW:
		return FP_BAND_LOW
	default:
		return FP_BAND_NONE
	}
}

// fingerprintDistance sums the four weighted component distances
// between two fingerprints. Every component is an absolute (hence
// symmetric) difference, so the overall distance, and therefore
// similarity, is symmetric by construction.
func fingerprintDistance(a, b fingerprint_t) fixed_t {
	var driftDist = fixed_add(
		fixed_abs(fixed_sub(a.drift_mean, b.drift_mean)),
		fixed_abs(fixed_sub(a.drift_variance, b.drift_variance)),
	)
	var slopeDist = fixed_add(
		fixed_abs(fixed_sub(a.rise_time_avg, b.rise_time_avg)),
		fixed_abs(fixed_sub(a.fall_time_avg, b.fall_time_avg)),
	)
	var clockDist = int_to_fixed(absInt(int(a.clock_stability_ppm) - int(b.clock_stability_ppm)))
	var rssiDist = rssiSignatureDistance(a.rssi_signature, b.rssi_signature)

	var weighted = fixed_add(
		fixed_add(fixed_mul(driftDist, fpWeightDrift), fixed_mul(slopeDist, fpWeightSlopes)),
		fixed_add(fixed_mul(clockDist, fpWeightClock), fixed_mul(rssiDist, fpWeightRSSI)),
	)
	return weighted
}

// rssiSignatureDistance is the Manhattan distance between two 16-byte
// RSSI envelopes.
func rssiSignatureDistance(a, b [FP_RSSI_ENVELOPE_SIZE]byte) fixed_t {
	var sum int
	for i := range a {
		sum += absInt(int(a[i]) - int(b[i]))
	}
	return int_to_fixed(sum)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// fingerprintSimilarity maps a distance to a confidence percent,
// c = max(0, 100 - 100*d/10000), rounded to the nearest integer percent.
func fingerprintSimilarity(a, b fingerprint_t) int {
	var d = fingerprintDistance(a, b)
	var c = fixed_sub(int_to_fixed(100), fixed_mul(int_to_fixed(100), fixed_div(d, fpDistanceScale)))
	var rounded = fixed_to_int(fixed_add(c, FIXED_HALF))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// matchAgainstTable scans the device table and returns the best
// confidence and matching device id. An empty table yields (0, 0, false).
func matchAgainstTable(table *device_table_t, fp fingerprint_t) (confidence int, deviceID uint16, found bool) {
	for id := range table.entries {
		if !table.entries[id].in_use {
			continue
		}
		var c = fingerprintSimilarity(fp, table.entries[id].fingerprint)
		if !found || c > confidence {
			confidence = c
			deviceID = uint16(id)
			found = true
		}
	}
	return confidence, deviceID, found
}

// matchAndTrack performs matchAgainstTable and, on a match at Low
// confidence or better, updates (or creates) the device's temporal
// drift record.
func matchAndTrack(table *device_table_t, temporal *temporal_table_t, fp fingerprint_t, now uint32) (confidence int, deviceID uint16, found bool) {
	confidence, deviceID, found = matchAgainstTable(table, fp)
	if !found || confidence < FP_CONFIDENCE_LOW {
		return confidence, deviceID, found
	}

	table.recordMatch(deviceID, now)
	var entry, ok = table.get(deviceID)
	if !ok {
		return confidence, deviceID, found
	}
	var record = temporal.getOrCreate(deviceID, entry.fingerprint, now)
	if record != nil {
		var distance = fingerprintDistance(fp, record.baseline)
		record.update(fp, distance, now)
	}
	return confidence, deviceID, found
}

// counterfeitCheck compares a presented fingerprint against the entry
// claiming a given name, and against the best-matching other entry; a
// stronger match elsewhere than the claimed identity indicates forgery
// and is reported as 0 confidence, per spec.md section 4.5.
func counterfeitCheck(table *device_table_t, fp fingerprint_t, claimedName string) (confidence int, forgeryIndicated bool, claimedFound bool) {
	var claimedID uint16
	var claimedFP fingerprint_t
	for id := range table.entries {
		if table.entries[id].in_use && table.entries[id].name == claimedName {
			claimedID = uint16(id)
			claimedFP = table.entries[id].fingerprint
			claimedFound = true
			break
		}
	}
	if !claimedFound {
		return 0, false, false
	}

	var claimedConfidence = fingerprintSimilarity(fp, claimedFP)

	var bestOther int
	var haveOther bool
	for id := range table.entries {
		if !table.entries[id].in_use || uint16(id) == claimedID {
			continue
		}
		var c = fingerprintSimilarity(fp, table.entries[id].fingerprint)
		if !haveOther || c > bestOther {
			bestOther = c
			haveOther = true
		}
	}

	if haveOther && bestOther > claimedConfidence {
		return 0, true, true
	}
	return claimedConfidence, false, true
}
