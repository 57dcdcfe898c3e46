package core

import "fmt"

// Rational is an exact fraction of two int64 values. The zero value is 0/1.
//
// Every Rational is kept normalized: the denominator is positive and the
// numerator and denominator share no common factor, so == is exact
// equality. The slab fractions arising in local time stepping have small
// denominators (products of the per-element subdivision factors), far
// from the int64 range, so no overflow guarding beyond normalization is
// required.
type Rational struct {
	num, den int64
}

// NewRational returns the normalized fraction num/den.
// Panics with ErrZeroDenominator if den == 0.
func NewRational(num, den int64) Rational {
	if den == 0 {
		panic(ErrZeroDenominator)
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs64(num), den); g > 1 {
		num /= g
		den /= g
	}

	return Rational{num: num, den: den}
}

// Num returns the normalized numerator.
func (r Rational) Num() int64 { return r.num }

// Den returns the normalized (positive) denominator; 1 for the zero value.
func (r Rational) Den() int64 {
	if r.den == 0 {
		return 1
	}

	return r.den
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	return NewRational(r.Num()*o.Den()+o.Num()*r.Den(), r.Den()*o.Den())
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	return NewRational(r.Num()*o.Den()-o.Num()*r.Den(), r.Den()*o.Den())
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	return NewRational(r.Num()*o.Num(), r.Den()*o.Den())
}

// Div returns r / o. Panics with ErrZeroDenominator if o is zero.
func (r Rational) Div(o Rational) Rational {
	return NewRational(r.Num()*o.Den(), r.Den()*o.Num())
}

// MulInt returns r * n.
func (r Rational) MulInt(n int64) Rational {
	return NewRational(r.Num()*n, r.Den())
}

// DivInt returns r / n. Panics with ErrZeroDenominator if n == 0.
func (r Rational) DivInt(n int64) Rational {
	return NewRational(r.Num(), r.Den()*n)
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{num: -r.num, den: r.Den()}
}

// Cmp compares r and o exactly, returning -1, 0 or +1.
func (r Rational) Cmp(o Rational) int {
	lhs := r.Num() * o.Den()
	rhs := o.Num() * r.Den()
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// Sign returns -1, 0 or +1 according to the sign of r.
func (r Rational) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether r == 0.
func (r Rational) IsZero() bool { return r.num == 0 }

// Float64 returns the nearest floating-point value to r.
func (r Rational) Float64() float64 {
	return float64(r.Num()) / float64(r.Den())
}

// String renders r as "num/den".
func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num(), r.Den())
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}
