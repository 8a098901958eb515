package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Direct-form FIR/IIR moving-average filters over
 *		statically sized ring buffers.
 *
 *----------------------------------------------------------------*/

const FIR_MAX_ORDER = 8
const IIR_MAX_ORDER = 4

type fir_filter_t struct {
	taps  [FIR_MAX_ORDER]fixed_t
	ring  [FIR_MAX_ORDER]fixed_t
	order int
	pos   int
	count int
}

// fir_new builds an equal-weight moving-average FIR filter of the
// given order (clamped to FIR_MAX_ORDER).
func fir_new(order int) fir_filter_t {
	if order > FIR_MAX_ORDER {
		order = FIR_MAX_ORDER
	}
	if order < 1 {
		order = 1
	}
	var f fir_filter_t
	f.order = order
	var weight = fixed_div(FIXED_ONE, int_to_fixed(order))
	for i := 0; i < order; i++ {
		f.taps[i] = weight
	}
	return f
}

func (f *fir_filter_t) add(x fixed_t) fixed_t {
	f.ring[f.pos] = x
	f.pos = (f.pos + 1) % f.order
	if f.count < f.order {
		f.count++
	}
	var sum fixed_t
	for i := 0; i < f.count; i++ {
		sum = fixed_add(sum, fixed_mul(f.ring[i], f.taps[i]))
	}
	return sum
}

// iir_filter_t is a first-order-section direct-form-I exponential
// smoother: y[n] = alpha*x[n] + (1-alpha)*y[n-1], cascaded up to
// IIR_MAX_ORDER sections.
type iir_filter_t struct {
	alpha    fixed_t
	sections [IIR_MAX_ORDER]fixed_t
	order    int
	primed   bool
}

func iir_new(alpha fixed_t, order int) iir_filter_t {
	if order > IIR_MAX_ORDER {
		order = IIR_MAX_ORDER
	}
	if order < 1 {
		order = 1
	}
	return iir_filter_t{alpha: alpha, order: order}
}

func (f *iir_filter_t) add(x fixed_t) fixed_t {
	var in = x
	if !f.primed {
		for i := 0; i < f.order; i++ {
			f.sections[i] = x
		}
		f.primed = true
		return x
	}
	for i := 0; i < f.order; i++ {
		var prev = f.sections[i]
		var out = fixed_add(fixed_mul(f.alpha, in), fixed_mul(fixed_sub(FIXED_ONE, f.alpha), prev))
		f.sections[i] = out
		in = out
	}
	return in
}
