package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Welford's online mean/variance accumulator.
 *
 * Description:	Avoids the catastrophic cancellation a naive two-pass
 *		sum-of-squares would suffer on integer streams. All
 *		arithmetic is Q15.16 fixed point.
 *
 *----------------------------------------------------------------*/

type welford_t struct {
	n   int
	mean fixed_t
	m2   fixed_t
	min  fixed_t
	max  fixed_t
}

func welford_new() welford_t {
	return welford_t{min: FIXED_MAX, max: FIXED_MIN}
}

// welford_add folds one more sample in. n, mean, m2 update per the
// textbook recurrence; min/max update by comparison.
func (w *welford_t) add(x fixed_t) {
	w.n++
	var delta = fixed_sub(x, w.mean)
	w.mean = fixed_add(w.mean, fixed_div(delta, int_to_fixed(w.n)))
	var delta2 = fixed_sub(x, w.mean)
	w.m2 = fixed_add(w.m2, fixed_mul(delta, delta2))
	if x < w.min {
		w.min = x
	}
	if x > w.max {
		w.max = x
	}
}

// variance is m2/(n-1) for n>=2, else the neutral 0 (PreconditionNotMet).
func (w *welford_t) variance() fixed_t {
	if w.n < 2 {
		return 0
	}
	return fixed_div(w.m2, int_to_fixed(w.n-1))
}

func (w *welford_t) stddev() fixed_t {
	return fixed_sqrt(w.variance())
}

func (w *welford_t) count() int {
	return w.n
}

// welford_batch computes mean/variance/min/max over a slice in one
// pass, returning the same welford_t shape as the streaming variant --
// used by the fingerprinting engine's Sampling->Analyzing transition,
// which operates on a bounded ring rather than a live stream.
func welford_batch(xs []fixed_t) welford_t {
	var w = welford_new()
	for _, x := range xs {
		w.add(x)
	}
	return w
}
