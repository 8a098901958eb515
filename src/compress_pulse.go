package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Pulse-sequence codec -- the on-disk persistence format
 *		for a captured pulse train (spec.md section 4.3/6).
 *
 * Description:	Header is a u16 count; then the pulse widths as a
 *		Delta-16 stream; then the levels packed as
 *		ring-runs, one byte per run: (run_length<<1)|level,
 *		run_length capped at 127.
 *
 *----------------------------------------------------------------*/

import "encoding/binary"

func pulse_sequence_encode(pulses []pulse_t) []byte {
	var out = make([]byte, 0, len(pulses)*2+4)
	var countBuf [2]byte
	binary.BigEndian.PutUint16(countBuf[:], uint16(len(pulses)))
	out = append(out, countBuf[:]...)

	var widths = make([]uint16, len(pulses))
	for i, p := range pulses {
		widths[i] = p.width_us
	}
	out = append(out, delta16_encode(widths)...)

	out = append(out, pulse_level_runs_encode(pulses)...)
	return out
}

func pulse_level_runs_encode(pulses []pulse_t) []byte {
	var out = make([]byte, 0, len(pulses)/3+1)
	var i = 0
	for i < len(pulses) {
		var level = pulses[i].level
		var run = 1
		for i+run < len(pulses) && pulses[i+run].level == level && run < 127 {
			run++
		}
		out = append(out, byte(run<<1)|(level&0x01))
		i += run
	}
	return out
}

// pulse_sequence_decode reconstructs widths and levels; timestamps are
// not part of the persisted format and are left zero, matching
// spec.md section 8's round-trip law (timestamps are not required to
// round-trip).
func pulse_sequence_decode(input []byte) []pulse_t {
	if len(input) < 2 {
		return nil
	}
	var count = int(binary.BigEndian.Uint16(input[:2]))
	var rest = input[2:]

	var widths, consumed = delta16_decode_consuming(rest, count)
	var levels = pulse_level_runs_decode(rest[consumed:], count)

	var pulses = make([]pulse_t, count)
	for i := 0; i < count; i++ {
		pulses[i].width_us = widths[i]
		if i < len(levels) {
			pulses[i].level = levels[i]
		}
	}
	return pulses
}

// delta16_decode_consuming decodes exactly `count` widths and reports
// how many bytes of `input` were consumed, so the caller can locate
// the level-run stream that follows.
func delta16_decode_consuming(input []byte, count int) ([]uint16, int) {
	if count == 0 || len(input) < 2 {
		return nil, 0
	}
	var out = make([]uint16, 0, count)
	var prev = int32(binary.BigEndian.Uint16(input[:2]))
	out = append(out, uint16(prev))
	var i = 2
	for len(out) < count && i < len(input) {
		var b = input[i]
		var delta int32
		switch b {
		case delta16Escape16:
			delta = int32(int16(binary.BigEndian.Uint16(input[i+1 : i+3])))
			i += 3
		case delta16Escape32:
			delta = int32(binary.BigEndian.Uint32(input[i+1 : i+5]))
			i += 5
		default:
			delta = int32(int8(b))
			i++
		}
		prev += delta
		out = append(out, uint16(prev))
	}
	return out, i
}

func pulse_level_runs_decode(input []byte, count int) []uint8 {
	var out = make([]uint8, 0, count)
	for _, b := range input {
		if len(out) >= count {
			break
		}
		var run = int(b >> 1)
		var level = b & 0x01
		for k := 0; k < run && len(out) < count; k++ {
			out = append(out, level)
		}
	}
	return out
}
