// Package core defines the exact time primitives shared by every part of
// the stepping machinery: Rational, Slab, Time, TimeDelta and TimeStepID.
//
// All simulation times are expressed as exact rational fractions of a
// "slab" — a fixed, globally agreed interval of coordinate time that may
// be subdivided when elements step locally. Keeping the representation
// rational (rather than floating point) means that equality and ordering
// of step times are bit-exact, which the step-size-change admissibility
// and slab-boundary checks depend on: no epsilon tolerances, no drift
// after millions of steps.
//
// Types:
//
//   - Rational   — an exact int64 numerator/denominator pair, always
//     normalized (gcd-reduced, positive denominator).
//   - Slab       — an immutable interval [start, end] of coordinate time.
//   - Time       — an exact rational point within a slab.
//   - TimeDelta  — a signed rational offset, tied to a slab subdivision.
//   - TimeStepID — identifies one step attempt: direction of time, a
//     monotonically increasing slab counter, and the step's start Time.
//
// All five are small copyable value types and are comparable with ==,
// so TimeStepID can serve directly as a map key.
//
// Errors:
//
//	ErrZeroDenominator    - rational constructed with denominator 0.
//	ErrBadSlab            - slab constructed with start >= end.
//	ErrFractionOutOfRange - time fraction outside [0, 1].
//	ErrIncompatibleSlabs  - arithmetic or comparison across unrelated slabs.
//	ErrDirectionMismatch  - comparing step ids with opposite time directions.
//
// Violating these contracts indicates a driver bug, not a runtime
// condition, so the constructors and operators panic with the sentinel
// rather than returning it.
package core
