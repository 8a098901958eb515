package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	CRC-fit search: try every built-in polynomial (crc.go's
 *		crc_poly_table) against a set of candidate trailing-
 *		checksum positions, per spec.md section 4.7.
 *
 *----------------------------------------------------------------*/

// crcFitPositionOffsets are the candidate "bytes from the end" split
// points the search tries, i.e. position = len(frame) - offset.
var crcFitPositionOffsets = []int{2, 3, 4}

type crc_fit_result_t struct {
	found        bool
	variant_name string
	position     int
}

// crcFit searches crc_poly_table x crcFitPositionOffsets for a
// (polynomial, position) pair under which more than 80% of the given
// frames' trailing bytes match the polynomial's CRC over the
// preceding bytes. A set with no two distinct payloads reports no fit:
// identical frames (e.g. all zeros under a zero-init CRC) would
// otherwise match trivially.
func crcFit(payloads [][]byte) crc_fit_result_t {
	var distinct bool
	for _, data := range payloads {
		if string(data) != string(payloads[0]) {
			distinct = true
			break
		}
	}
	if !distinct {
		return crc_fit_result_t{}
	}
	for _, variant := range crc_poly_table {
		var widthBytes = crc_variant_bytes(variant.width_bits)
		for _, offset := range crcFitPositionOffsets {
			var matches, total int
			for _, data := range payloads {
				var pos = len(data) - offset
				if pos < 0 || pos+widthBytes > len(data) {
					continue
				}
				total++
				var got = decodeBigEndian(data[pos : pos+widthBytes])
				var want = variant.calc(data[:pos]) & widthMask(variant.width_bits)
				if got == want {
					matches++
				}
			}
			if total > 0 && matches*100 > total*80 {
				return crc_fit_result_t{found: true, variant_name: variant.name, position: pos_label(offset)}
			}
		}
	}
	return crc_fit_result_t{}
}

func pos_label(offset int) int {
	return offset
}

func decodeBigEndian(data []byte) uint64 {
	var v uint64
	for _, b := range data {
		v = v<<8 | uint64(b)
	}
	return v
}

func widthMask(widthBits int) uint64 {
	if widthBits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(widthBits)) - 1
}
