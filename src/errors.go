package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Shared error-kind plumbing, per spec.md section 7. The
 *		core never unwinds: every operation returns a plain
 *		value, a boolean, or a snapshot carrying status flags.
 *		This file names the kinds so callers and tests can refer
 *		to them without re-deriving the taxonomy from comments.
 *
 *----------------------------------------------------------------*/

type error_kind_e int

const (
	// ERROR_NONE: the operation completed with a meaningful result.
	ERROR_NONE error_kind_e = iota
	// ERROR_CAPACITY_EXCEEDED: an ingest item was silently dropped; a
	// saturation flag on the owning engine/ring is set instead of
	// failing the call.
	ERROR_CAPACITY_EXCEEDED
	// ERROR_PRECONDITION_NOT_MET: insufficient samples, incompatible
	// dimensions, or k > dataset size; the operation instead returns
	// a zero/neutral/clamped result.
	ERROR_PRECONDITION_NOT_MET
	// ERROR_NUMERIC_FALLBACK: a fixed-point operation (division by
	// zero, log of a non-positive value, out-of-domain trig) returned
	// its documented saturating substitute rather than trapping.
	ERROR_NUMERIC_FALLBACK
	// ERROR_NOT_ANALYZING: a query was issued while the owning engine
	// was Idle; the result is a zeroed snapshot.
	ERROR_NOT_ANALYZING
	// ERROR_INTERNAL_INVARIANT_BROKEN: detectable structural
	// corruption. Fatal from the host's perspective; surfaced only
	// through CoreContext.healthy() returning false.
	ERROR_INTERNAL_INVARIANT_BROKEN
)

func (k error_kind_e) String() string {
	switch k {
	case ERROR_CAPACITY_EXCEEDED:
		return "CapacityExceeded"
	case ERROR_PRECONDITION_NOT_MET:
		return "PreconditionNotMet"
	case ERROR_NUMERIC_FALLBACK:
		return "NumericFallback"
	case ERROR_NOT_ANALYZING:
		return "NotAnalyzing"
	case ERROR_INTERNAL_INVARIANT_BROKEN:
		return "InternalInvariantBroken"
	default:
		return "None"
	}
}
