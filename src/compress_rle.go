package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Run-length encoding with a single escape byte.
 *
 * Description:	Escape byte is 0x00. Runs of length >= 3 of the same
 *		symbol emit 0x00, run_length, symbol. A literal 0x00
 *		byte (run length 1) emits 0x00, 0x01, 0x00 so the
 *		escape is never ambiguous with a literal. Everything
 *		else passes through unchanged.
 *
 *----------------------------------------------------------------*/

const rleEscape = 0x00

func rle_encode(input []byte) []byte {
	var out = make([]byte, 0, len(input))
	var i = 0
	for i < len(input) {
		var sym = input[i]
		var run = 1
		for i+run < len(input) && input[i+run] == sym && run < 255 {
			run++
		}
		switch {
		case sym == rleEscape:
			// 0x00 can never pass through literally (it would be
			// mistaken for the escape on decode), so every run of
			// 0x00 -- including a lone byte -- uses the escape form.
			out = append(out, rleEscape, byte(run), rleEscape)
		case run >= 3:
			out = append(out, rleEscape, byte(run), sym)
		default:
			for k := 0; k < run; k++ {
				out = append(out, sym)
			}
		}
		i += run
	}
	return out
}

func rle_decode(input []byte) []byte {
	var out = make([]byte, 0, len(input))
	var i = 0
	for i < len(input) {
		var b = input[i]
		if b == rleEscape {
			if i+2 >= len(input) {
				break
			}
			var run = int(input[i+1])
			var sym = input[i+2]
			for k := 0; k < run; k++ {
				out = append(out, sym)
			}
			i += 3
		} else {
			out = append(out, b)
			i++
		}
	}
	return out
}
