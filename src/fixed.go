package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Q15.16 fixed-point scalar arithmetic.
 *
 * Description:	Every analysis engine in this package computes in
 *		fixed point so results are reproducible across hosts
 *		and never touch an FPU on the hot ingest path. A
 *		Q15.16 value is a signed 32-bit integer representing
 *		value * 65536: 16 integer bits (one of them the sign)
 *		and 16 fractional bits, giving a resolution of about
 *		1.526e-5 and a range of [-32768, 32767.99998].
 *
 *		Multiplication and division go through a 64-bit
 *		intermediate and rescale with round-to-nearest.
 *		Division by zero saturates to FIXED_MAX/FIXED_MIN
 *		rather than panicking -- see spec.md section 7,
 *		NumericFallback.
 *
 *----------------------------------------------------------------*/

import "math"

// fixed_t is a Q15.16 fixed-point scalar: int32(value * 65536).
type fixed_t int32

const (
	FIXED_FRAC_BITS = 16
	FIXED_ONE       = fixed_t(1) << FIXED_FRAC_BITS
	FIXED_HALF      = FIXED_ONE / 2
	FIXED_MAX       = fixed_t(math.MaxInt32)
	FIXED_MIN       = fixed_t(math.MinInt32)
)

// int_to_fixed converts an integer to Q15.16. Values outside
// [-32768, 32767] saturate rather than wrap.
func int_to_fixed(n int) fixed_t {
	if n > 32767 {
		return FIXED_MAX
	}
	if n < -32768 {
		return FIXED_MIN
	}
	return fixed_t(n) << FIXED_FRAC_BITS
}

// fixed_to_int rounds toward negative infinity (arithmetic shift), so -1.5 becomes -2.
func fixed_to_int(f fixed_t) int {
	return int(f >> FIXED_FRAC_BITS)
}

// float_to_fixed is only for test fixtures and config loading -- never on the ingest path.
func float_to_fixed(v float64) fixed_t {
	scaled := v * float64(FIXED_ONE)
	if scaled > float64(math.MaxInt32) {
		return FIXED_MAX
	}
	if scaled < float64(math.MinInt32) {
		return FIXED_MIN
	}
	return fixed_t(math.Round(scaled))
}

func fixed_to_float(f fixed_t) float64 {
	return float64(f) / float64(FIXED_ONE)
}

func fixed_add(a, b fixed_t) fixed_t {
	return fixed_t(int64(a) + int64(b))
}

func fixed_sub(a, b fixed_t) fixed_t {
	return fixed_t(int64(a) - int64(b))
}

func fixed_neg(a fixed_t) fixed_t {
	if a == FIXED_MIN {
		return FIXED_MAX
	}
	return -a
}

func fixed_abs(a fixed_t) fixed_t {
	if a < 0 {
		return fixed_neg(a)
	}
	return a
}

// fixed_mul computes a*b with a 64-bit intermediate, rescaled by >>16
// with round-to-nearest, then saturated to the Q15.16 range.
func fixed_mul(a, b fixed_t) fixed_t {
	var product = int64(a) * int64(b)
	product += 1 << (FIXED_FRAC_BITS - 1) // round to nearest
	var result = product >> FIXED_FRAC_BITS
	return saturate64(result)
}

// fixed_div computes a/b in Q15.16. Division by zero saturates to
// FIXED_MAX (or FIXED_MIN if a is negative), per spec.md section 3.
func fixed_div(a, b fixed_t) fixed_t {
	if b == 0 {
		if a < 0 {
			return FIXED_MIN
		}
		return FIXED_MAX
	}
	var numerator = int64(a) << FIXED_FRAC_BITS
	numerator += signOf(numerator, int64(b)) // round to nearest, toward the quotient's sign
	var result = numerator / int64(b)
	return saturate64(result)
}

// signOf returns half of the divisor's magnitude with the sign needed
// to round-to-nearest for numerator/divisor.
func signOf(numerator, divisor int64) int64 {
	var half = divisor
	if half < 0 {
		half = -half
	}
	half /= 2
	if (numerator < 0) != (divisor < 0) {
		return -half
	}
	return half
}

func saturate64(v int64) fixed_t {
	if v > int64(math.MaxInt32) {
		return FIXED_MAX
	}
	if v < int64(math.MinInt32) {
		return FIXED_MIN
	}
	return fixed_t(v)
}

func fixed_min(a, b fixed_t) fixed_t {
	if a < b {
		return a
	}
	return b
}

func fixed_max(a, b fixed_t) fixed_t {
	if a > b {
		return a
	}
	return b
}

func fixed_clamp(v, lo, hi fixed_t) fixed_t {
	return fixed_max(lo, fixed_min(hi, v))
}

// fixed_sqrt uses Newton-Raphson, converging when the update step is
// smaller than 16 (1/4096th of a unit) or after 8 iterations.
// Negative input returns 0, matching spec.md's NumericFallback table.
func fixed_sqrt(a fixed_t) fixed_t {
	if a <= 0 {
		return 0
	}
	var x = a
	if x < FIXED_ONE {
		x = FIXED_ONE
	}
	for i := 0; i < 8; i++ {
		var next = fixed_div(fixed_add(x, fixed_div(a, x)), int_to_fixed(2))
		if fixed_abs(fixed_sub(next, x)) < 16 {
			x = next
			break
		}
		x = next
	}
	return x
}

// fixed_inv_sqrt approximates 1/sqrt(a) with 4 Newton-Raphson
// iterations seeded from fixed_sqrt. Non-positive input returns 0.
func fixed_inv_sqrt(a fixed_t) fixed_t {
	if a <= 0 {
		return 0
	}
	var s = fixed_sqrt(a)
	if s == 0 {
		return 0
	}
	var x = fixed_div(FIXED_ONE, s)
	var half = fixed_div(int_to_fixed(1), int_to_fixed(2))
	for i := 0; i < 4; i++ {
		// x_{n+1} = x_n * (1.5 - 0.5*a*x_n^2)
		var x2 = fixed_mul(x, x)
		var ax2 = fixed_mul(a, x2)
		var term = fixed_sub(fixed_add(FIXED_ONE, FIXED_HALF), fixed_mul(half, ax2))
		x = fixed_mul(x, term)
	}
	return x
}
