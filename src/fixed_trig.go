package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Transcendental functions over Q15.16: trig via a
 *		256-point LUT, exp/log via series/range-reduction,
 *		pow composed from the two.
 *
 * Description:	spec.md section 9 flags the teacher-lineage sin LUT
 *		indexing as inconsistent (index = x*40.743 then >>8
 *		against a 256-entry table meant to span [0, 2*pi)).
 *		This is an Open Question resolved here per the spec's
 *		instruction: index = x * 256 / (2*pi), LUT entries
 *		stored directly in Q15.16, linear interpolation
 *		between adjacent entries.
 *
 *----------------------------------------------------------------*/

import "math"

const sinLUTSize = 256

var sinLUT [sinLUTSize]fixed_t

func init() {
	for i := 0; i < sinLUTSize; i++ {
		var angle = float64(i) * 2 * math.Pi / float64(sinLUTSize)
		sinLUT[i] = float_to_fixed(math.Sin(angle))
	}
}

// twoPiFixed is 2*pi in Q15.16, used to range-reduce trig arguments.
var twoPiFixed = float_to_fixed(2 * math.Pi)

// wrapAngle folds x into [0, 2*pi).
func wrapAngle(x fixed_t) fixed_t {
	if twoPiFixed == 0 {
		return 0
	}
	var n = fixed_div(x, twoPiFixed)
	var whole = int_to_fixed(fixed_to_int(n))
	var wrapped = fixed_sub(x, fixed_mul(whole, twoPiFixed))
	if wrapped < 0 {
		wrapped = fixed_add(wrapped, twoPiFixed)
	}
	return wrapped
}

// fixed_sin looks up sin(x) in a 256-entry table covering [0, 2*pi)
// with linear interpolation between adjacent entries.
func fixed_sin(x fixed_t) fixed_t {
	var wrapped = wrapAngle(x)
	// index = wrapped * 256 / (2*pi)
	var scaled = fixed_mul(wrapped, int_to_fixed(sinLUTSize))
	var idxFixed = fixed_div(scaled, twoPiFixed)
	var idx = fixed_to_int(idxFixed)
	if idx < 0 {
		idx = 0
	}
	if idx >= sinLUTSize {
		idx = sinLUTSize - 1
	}
	var frac = fixed_sub(idxFixed, int_to_fixed(idx))
	var next = (idx + 1) % sinLUTSize
	var lo = sinLUT[idx]
	var hi = sinLUT[next]
	return fixed_add(lo, fixed_mul(frac, fixed_sub(hi, lo)))
}

func fixed_cos(x fixed_t) fixed_t {
	var quarter = fixed_div(twoPiFixed, int_to_fixed(4))
	return fixed_sin(fixed_add(x, quarter))
}

// fixed_tan is sin/cos; cos==0 saturates per the usual fixed_div rule.
func fixed_tan(x fixed_t) fixed_t {
	return fixed_div(fixed_sin(x), fixed_cos(x))
}

// fixed_exp evaluates e^x via a 12-term Taylor series. Input is
// clamped to |x| <= 11 before computation, matching spec.md section 4.1.
func fixed_exp(x fixed_t) fixed_t {
	var clamped = fixed_clamp(x, int_to_fixed(-11), int_to_fixed(11))
	var term = FIXED_ONE
	var sum = FIXED_ONE
	for n := 1; n <= 12; n++ {
		term = fixed_mul(term, fixed_div(clamped, int_to_fixed(n)))
		sum = fixed_add(sum, term)
	}
	return sum
}

// fixed_log computes ln(y) by range-reducing y into [1,2) via repeated
// halving/doubling, approximating log2 on the reduced value with the
// linear fit log2(y) ~= (y-1)*0.94 (per spec.md section 4.1), then
// combining ln(y) = log2(y) * ln(2). Non-positive input returns FIXED_MIN.
func fixed_log(y fixed_t) fixed_t {
	if y <= 0 {
		return FIXED_MIN
	}
	var reduced = y
	var exponent = 0
	for reduced >= fixed_mul(int_to_fixed(2), FIXED_ONE) {
		reduced = fixed_div(reduced, int_to_fixed(2))
		exponent++
	}
	for reduced < FIXED_ONE {
		reduced = fixed_mul(reduced, int_to_fixed(2))
		exponent--
	}
	var coef = float_to_fixed(0.94)
	var log2Reduced = fixed_mul(coef, fixed_sub(reduced, FIXED_ONE))
	var log2y = fixed_add(log2Reduced, int_to_fixed(exponent))
	var ln2 = float_to_fixed(math.Ln2)
	return fixed_mul(log2y, ln2)
}

// fixed_pow computes x^y = exp(y * log(x)). x <= 0 returns 0.
func fixed_pow(x, y fixed_t) fixed_t {
	if x <= 0 {
		return 0
	}
	return fixed_exp(fixed_mul(y, fixed_log(x)))
}

// atanPoly1, atanPoly2 are the coefficients of the minimax odd
// polynomial atan(x) ~= x*(c1 + c2*x^2) used for |x| <= 1.
var atanPoly1 = float_to_fixed(0.9724)
var atanPoly2 = float_to_fixed(-0.1920)
var halfPiFixed = fixed_div(float_to_fixed(math.Pi), int_to_fixed(2))

// fixed_atan approximates atan(x) with an odd-polynomial for |x| <= 1
// and the reciprocal identity atan(x) = sign(x)*pi/2 - atan(1/x) beyond it.
func fixed_atan(x fixed_t) fixed_t {
	if x == 0 {
		return 0
	}
	if fixed_abs(x) <= FIXED_ONE {
		var x2 = fixed_mul(x, x)
		return fixed_mul(x, fixed_add(atanPoly1, fixed_mul(atanPoly2, x2)))
	}
	var recip = fixed_div(FIXED_ONE, x)
	var inner = fixed_atan(recip)
	if x > 0 {
		return fixed_sub(halfPiFixed, inner)
	}
	return fixed_sub(fixed_neg(halfPiFixed), inner)
}

// fixed_atan2 applies quadrant correction around fixed_atan, matching
// the standard atan2 branch cases, including the (0,0) fallback of 0.
func fixed_atan2(y, x fixed_t) fixed_t {
	if x == 0 && y == 0 {
		return 0
	}
	if x > 0 {
		return fixed_atan(fixed_div(y, x))
	}
	if x < 0 {
		if y >= 0 {
			return fixed_add(fixed_atan(fixed_div(y, x)), float_to_fixed(math.Pi))
		}
		return fixed_sub(fixed_atan(fixed_div(y, x)), float_to_fixed(math.Pi))
	}
	if y > 0 {
		return halfPiFixed
	}
	return fixed_neg(halfPiFixed)
}

// fixed_asin derives asin(x) = atan(x / sqrt(1 - x^2)), with the pole
// at |x| == 1 handled directly. Input is clamped to [-1, 1].
func fixed_asin(x fixed_t) fixed_t {
	var clamped = fixed_clamp(x, fixed_neg(FIXED_ONE), FIXED_ONE)
	if clamped == FIXED_ONE {
		return halfPiFixed
	}
	if clamped == fixed_neg(FIXED_ONE) {
		return fixed_neg(halfPiFixed)
	}
	var denom = fixed_sqrt(fixed_sub(FIXED_ONE, fixed_mul(clamped, clamped)))
	if denom == 0 {
		if clamped > 0 {
			return halfPiFixed
		}
		return fixed_neg(halfPiFixed)
	}
	return fixed_atan(fixed_div(clamped, denom))
}

func fixed_acos(x fixed_t) fixed_t {
	return fixed_sub(halfPiFixed, fixed_asin(x))
}
