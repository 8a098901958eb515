package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	CRC-16-CCITT for the fingerprint hash, plus the
 *		polynomial table the threat model searches over when
 *		fitting an unknown frame's trailing checksum.
 *
 * Description:	Table-driven CRC implementations come from
 *		github.com/pasztorpisti/go-crc, picked up from the
 *		wider example pack (see DESIGN.md) because the teacher
 *		itself only ever calls into a C fcs_calc() that isn't
 *		part of the retrieved Go source.
 *
 *----------------------------------------------------------------*/

import "github.com/pasztorpisti/go-crc"

// crc16_ccitt computes CRC-16-CCITT (poly 0x1021, init 0xFFFF) over
// data, used by the fingerprint record's unique_hash field.
func crc16_ccitt(data []byte) uint16 {
	return crc.CRC16CCITT.Calc(data)
}

// crc_variant_t names one entry of the threat model's polynomial
// table (spec.md section 4.7): a human-readable name and a width-
// erased Calc function so frames of any length can be probed
// uniformly regardless of the underlying CRC width.
type crc_variant_t struct {
	name      string
	width_bits int
	calc      func(data []byte) uint64
}

// crc_poly_table holds the built-in CRC variants the threat model's
// CRC-fit search tries against observed frame trailers. Capped well
// under the CRC polynomial capacity of 10 named in spec.md section 5.
var crc_poly_table = []crc_variant_t{
	{"CRC-8", 8, func(d []byte) uint64 { return uint64(crc.CRC8.Calc(d)) }},
	{"CRC-8/MAXIM", 8, func(d []byte) uint64 { return uint64(crc.CRC8MAXIMDOW.Calc(d)) }},
	{"CRC-16", 16, func(d []byte) uint64 { return uint64(crc.CRC16ARC.Calc(d)) }},
	{"CRC-16-CCITT", 16, func(d []byte) uint64 { return uint64(crc.CRC16CCITT.Calc(d)) }},
	{"CRC-16-IBM", 16, func(d []byte) uint64 { return uint64(crc.CRC16MODBUS.Calc(d)) }},
	{"CRC-32", 32, func(d []byte) uint64 { return uint64(crc.CRC32ISOHDLC.Calc(d)) }},
	{"CRC-32-MPEG", 32, func(d []byte) uint64 { return uint64(crc.CRC32MPEG2.Calc(d)) }},
}

func crc_variant_bytes(width_bits int) int {
	return (width_bits + 7) / 8
}
