package core

import "fmt"

// Time is an exact rational point within a slab: the point
// start + fraction*(end-start) with fraction in [0, 1].
//
// Times in the same slab, or in slabs sharing a boundary, compare
// exactly. A time sitting on a shared boundary can be re-represented in
// the adjacent slab with WithSlab, which is how history seeding reaches
// back into the slab preceding the evolution start.
type Time struct {
	slab     Slab
	fraction Rational
}

// NewTime returns the time at the given fraction of s.
// Panics with ErrFractionOutOfRange unless 0 <= fraction <= 1.
func NewTime(s Slab, fraction Rational) Time {
	if fraction.Sign() < 0 || fraction.Cmp(Rational{num: 1, den: 1}) > 0 {
		panic(ErrFractionOutOfRange)
	}

	return Time{slab: s, fraction: fraction}
}

// Slab returns the slab t is expressed in.
func (t Time) Slab() Slab { return t.slab }

// Fraction returns t's exact position within its slab.
func (t Time) Fraction() Rational { return t.fraction }

// Value returns the floating-point coordinate time of t. The slab
// endpoints are returned bit-identically so that equal exact times in
// adjacent slabs have equal values.
func (t Time) Value() float64 {
	f := t.fraction
	switch {
	case f.IsZero():
		return t.slab.start
	case f.Num() == f.Den():
		return t.slab.end
	default:
		return t.slab.start + f.Float64()*(t.slab.end-t.slab.start)
	}
}

// IsAtSlabBoundary reports whether t sits exactly on its slab's start or end.
func (t Time) IsAtSlabBoundary() bool {
	return t.fraction.IsZero() || t.fraction.Num() == t.fraction.Den()
}

// WithSlab re-expresses t in the slab s. The target slab must be the
// same slab, or an adjacent slab sharing the boundary t sits on.
// Panics with ErrIncompatibleSlabs otherwise.
func (t Time) WithSlab(s Slab) Time {
	switch {
	case s == t.slab:
		return t
	case t.fraction.IsZero() && s.IsFollowedBy(t.slab):
		return s.End()
	case t.fraction.Num() == t.fraction.Den() && s.IsPrecededBy(t.slab):
		return s.Start()
	default:
		panic(ErrIncompatibleSlabs)
	}
}

// Cmp compares two times exactly, returning -1, 0 or +1 in coordinate
// order (not integration order; see SimulationBefore for that). The
// times must share a slab or sit in adjacent slabs.
// Panics with ErrIncompatibleSlabs otherwise.
func (t Time) Cmp(other Time) int {
	switch {
	case t.slab == other.slab:
		return t.fraction.Cmp(other.fraction)
	case t.slab.IsFollowedBy(other.slab):
		// t's slab ends where other's begins.
		if t.fraction.Num() == t.fraction.Den() && other.fraction.IsZero() {
			return 0
		}

		return -1
	case t.slab.IsPrecededBy(other.slab):
		if t.fraction.IsZero() && other.fraction.Num() == other.fraction.Den() {
			return 0
		}

		return 1
	default:
		panic(ErrIncompatibleSlabs)
	}
}

// Equal reports exact equality of two times, allowing for boundary
// representations in adjacent slabs.
func (t Time) Equal(other Time) bool { return t.Cmp(other) == 0 }

// Add returns t + dt, exactly. If dt is expressed in a different slab,
// t must sit on a boundary shared with that slab. The result must stay
// within dt's slab; panics with ErrFractionOutOfRange if the sum leaves
// it, and with ErrIncompatibleSlabs if the slabs are unrelated.
func (t Time) Add(dt TimeDelta) Time {
	in := t.WithSlab(dt.slab)

	return NewTime(dt.slab, in.fraction.Add(dt.fraction))
}

// Sub returns t - dt, exactly. Same slab rules as Add.
func (t Time) Sub(dt TimeDelta) Time { return t.Add(dt.Neg()) }

// Diff returns the exact offset t - other as a TimeDelta in t's slab
// (re-representing other across a shared boundary if needed).
func (t Time) Diff(other Time) TimeDelta {
	in := other.WithSlab(t.slab)

	return TimeDelta{slab: t.slab, fraction: t.fraction.Sub(in.fraction)}
}

// String renders t as "fraction of slab".
func (t Time) String() string {
	return fmt.Sprintf("%v of %v", t.fraction, t.slab)
}
