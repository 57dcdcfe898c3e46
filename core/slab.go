package core

import "fmt"

// Slab is a fixed, globally agreed interval of coordinate time. Elements
// stepping locally subdivide a slab into rational fractions; the slab
// itself never changes once agreed.
//
// Slab is a value type; two slabs are the same interval iff they are ==.
type Slab struct {
	start, end float64
}

// NewSlab returns the slab [start, end].
// Panics with ErrBadSlab unless start < end.
func NewSlab(start, end float64) Slab {
	if !(start < end) {
		panic(ErrBadSlab)
	}

	return Slab{start: start, end: end}
}

// StartValue returns the coordinate time of the slab's start.
func (s Slab) StartValue() float64 { return s.start }

// EndValue returns the coordinate time of the slab's end.
func (s Slab) EndValue() float64 { return s.end }

// Start returns the slab's start as an exact Time.
func (s Slab) Start() Time {
	return Time{slab: s, fraction: Rational{num: 0, den: 1}}
}

// End returns the slab's end as an exact Time.
func (s Slab) End() Time {
	return Time{slab: s, fraction: Rational{num: 1, den: 1}}
}

// Duration returns the full slab length as a TimeDelta (fraction 1).
// Subdivide with Div: slab.Duration().Div(4) is a quarter slab.
func (s Slab) Duration() TimeDelta {
	return TimeDelta{slab: s, fraction: Rational{num: 1, den: 1}}
}

// Advance returns the slab of equal length immediately following s.
func (s Slab) Advance() Slab {
	return Slab{start: s.end, end: s.end + (s.end - s.start)}
}

// Retreat returns the slab of equal length immediately preceding s.
func (s Slab) Retreat() Slab {
	return Slab{start: s.start - (s.end - s.start), end: s.start}
}

// AdvanceTowards returns the adjacent slab in the direction of dt: the
// following slab if dt is positive, the preceding slab if negative.
// Used to seed histories with pre-evolution times before the first step.
// Panics with ErrBadSlab if dt is zero.
func (s Slab) AdvanceTowards(dt TimeDelta) Slab {
	switch {
	case dt.IsPositive():
		return s.Advance()
	case dt.fraction.Sign() < 0:
		return s.Retreat()
	default:
		panic(ErrBadSlab)
	}
}

// IsFollowedBy reports whether other starts exactly where s ends.
func (s Slab) IsFollowedBy(other Slab) bool { return s.end == other.start }

// IsPrecededBy reports whether other ends exactly where s starts.
func (s Slab) IsPrecededBy(other Slab) bool { return other.end == s.start }

// String renders the slab as "Slab[start, end]".
func (s Slab) String() string {
	return fmt.Sprintf("Slab[%g, %g]", s.start, s.end)
}
