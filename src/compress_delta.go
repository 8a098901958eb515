package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Delta-8 and Delta-16 codecs -- the persistence layer's
 *		byte-stream and pulse-width-stream compressors.
 *
 * Description:	Delta-8 emits the first byte raw, then a signed
 *		one-byte delta per subsequent byte when it fits in
 *		[-127,127]; deltas of exactly 0x80 or outside that
 *		range escape as 0x80 followed by a big-endian signed
 *		16-bit delta.
 *
 *		Delta-16 is the same idea one size up, for pulse
 *		widths (u16): first sample raw (big-endian u16), then
 *		a variable-length delta -- 8-bit if it fits, else an
 *		escape 0x80 + signed 16-bit, else 0x81 + signed 32-bit.
 *
 *----------------------------------------------------------------*/

import "encoding/binary"

const deltaEscape8 = 0x80

// delta8_encode implements Delta-8 from spec.md section 4.3.
func delta8_encode(input []byte) []byte {
	if len(input) == 0 {
		return nil
	}
	var out = make([]byte, 0, len(input)+2)
	out = append(out, input[0])
	var prev = int(input[0])
	for i := 1; i < len(input); i++ {
		var cur = int(input[i])
		var delta = cur - prev
		if delta >= -127 && delta <= 127 {
			out = append(out, byte(int8(delta)))
		} else {
			out = append(out, deltaEscape8)
			var buf [2]byte
			binary.BigEndian.PutUint16(buf[:], uint16(int16(delta)))
			out = append(out, buf[:]...)
		}
		prev = cur
	}
	return out
}

func delta8_decode(input []byte) []byte {
	if len(input) == 0 {
		return nil
	}
	var out = make([]byte, 0, len(input))
	out = append(out, input[0])
	var prev = int(input[0])
	for i := 1; i < len(input); i++ {
		var b = input[i]
		var delta int
		if b == deltaEscape8 {
			i++
			if i+1 >= len(input) {
				break
			}
			delta = int(int16(binary.BigEndian.Uint16(input[i : i+2])))
			i++
		} else {
			delta = int(int8(b))
		}
		var cur = prev + delta
		out = append(out, byte(int8(cur)))
		prev = cur
	}
	return out
}

const (
	delta16Escape16 = 0x80
	delta16Escape32 = 0x81
)

// delta16_encode implements Delta-16 from spec.md section 4.3, used
// for pulse width streams.
func delta16_encode(input []uint16) []byte {
	if len(input) == 0 {
		return nil
	}
	var out = make([]byte, 0, len(input)*2)
	var head [2]byte
	binary.BigEndian.PutUint16(head[:], input[0])
	out = append(out, head[:]...)
	var prev = int32(input[0])
	for i := 1; i < len(input); i++ {
		var cur = int32(input[i])
		var delta = cur - prev
		switch {
		case delta >= -126 && delta <= 127:
			out = append(out, byte(int8(delta)))
		case delta >= -32768 && delta <= 32767:
			out = append(out, delta16Escape16)
			var buf [2]byte
			binary.BigEndian.PutUint16(buf[:], uint16(int16(delta)))
			out = append(out, buf[:]...)
		default:
			out = append(out, delta16Escape32)
			var buf [4]byte
			binary.BigEndian.PutUint32(buf[:], uint32(delta))
			out = append(out, buf[:]...)
		}
		prev = cur
	}
	return out
}

func delta16_decode(input []byte) []uint16 {
	if len(input) < 2 {
		return nil
	}
	var out = make([]uint16, 0, len(input))
	var prev = int32(binary.BigEndian.Uint16(input[:2]))
	out = append(out, uint16(prev))
	var i = 2
	for i < len(input) {
		var b = input[i]
		var delta int32
		switch b {
		case delta16Escape16:
			if i+2 >= len(input) {
				i = len(input)
				continue
			}
			delta = int32(int16(binary.BigEndian.Uint16(input[i+1 : i+3])))
			i += 3
		case delta16Escape32:
			if i+4 >= len(input) {
				i = len(input)
				continue
			}
			delta = int32(binary.BigEndian.Uint32(input[i+1 : i+5]))
			i += 5
		default:
			delta = int32(int8(b))
			i++
		}
		prev += delta
		out = append(out, uint16(prev))
	}
	return out
}
