package core

import "fmt"

// TimeDelta is an exact, signed offset between times, expressed as a
// rational fraction of a specific slab. The sign carries the direction
// of integration: positive deltas advance coordinate time, negative
// deltas retreat it.
//
// Unlike a Time fraction, a delta fraction is unrestricted; only the
// result of applying it to a Time must land inside the target slab.
type TimeDelta struct {
	slab     Slab
	fraction Rational
}

// NewTimeDelta returns the offset fraction*(slab length) tied to s.
func NewTimeDelta(s Slab, fraction Rational) TimeDelta {
	return TimeDelta{slab: s, fraction: fraction}
}

// Slab returns the slab the delta is expressed in.
func (d TimeDelta) Slab() Slab { return d.slab }

// Fraction returns the delta's exact fraction of its slab.
func (d TimeDelta) Fraction() Rational { return d.fraction }

// Value returns the floating-point length of the delta, signed.
func (d TimeDelta) Value() float64 {
	return d.fraction.Float64() * (d.slab.end - d.slab.start)
}

// IsPositive reports whether the delta advances coordinate time.
func (d TimeDelta) IsPositive() bool { return d.fraction.Sign() > 0 }

// WithSlab returns the same fraction applied to a different slab. Used
// when seeding histories: a step size agreed for one slab is reused in
// the preceding slab for pre-evolution sample times.
func (d TimeDelta) WithSlab(s Slab) TimeDelta {
	return TimeDelta{slab: s, fraction: d.fraction}
}

// Neg returns the delta of equal magnitude and opposite sign.
func (d TimeDelta) Neg() TimeDelta {
	return TimeDelta{slab: d.slab, fraction: d.fraction.Neg()}
}

// Mul returns the delta scaled by the integer n.
func (d TimeDelta) Mul(n int64) TimeDelta {
	return TimeDelta{slab: d.slab, fraction: d.fraction.MulInt(n)}
}

// Div returns the delta divided by the integer n, exactly.
// Panics with ErrZeroDenominator if n == 0.
func (d TimeDelta) Div(n int64) TimeDelta {
	return TimeDelta{slab: d.slab, fraction: d.fraction.DivInt(n)}
}

// Add returns d + other. Both deltas must be fractions of the same slab;
// panics with ErrIncompatibleSlabs otherwise.
func (d TimeDelta) Add(other TimeDelta) TimeDelta {
	if d.slab != other.slab {
		panic(ErrIncompatibleSlabs)
	}

	return TimeDelta{slab: d.slab, fraction: d.fraction.Add(other.fraction)}
}

// Sub returns d - other under the same slab rules as Add.
func (d TimeDelta) Sub(other TimeDelta) TimeDelta {
	return d.Add(other.Neg())
}

// Cmp compares two same-slab deltas exactly.
// Panics with ErrIncompatibleSlabs if the slabs differ.
func (d TimeDelta) Cmp(other TimeDelta) int {
	if d.slab != other.slab {
		panic(ErrIncompatibleSlabs)
	}

	return d.fraction.Cmp(other.fraction)
}

// String renders d as "fraction of slab".
func (d TimeDelta) String() string {
	return fmt.Sprintf("%v of %v", d.fraction, d.slab)
}
