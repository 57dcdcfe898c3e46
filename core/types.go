package core

import "errors"

// Sentinel errors for the time primitives. All of them mark contract
// violations by the caller and are raised via panic, never returned.
var (
	// ErrZeroDenominator indicates a Rational was constructed with denominator 0.
	ErrZeroDenominator = errors.New("core: rational denominator is zero")

	// ErrBadSlab indicates a Slab was constructed with start >= end.
	ErrBadSlab = errors.New("core: slab start must be strictly before slab end")

	// ErrFractionOutOfRange indicates a Time fraction outside [0, 1].
	ErrFractionOutOfRange = errors.New("core: time fraction outside [0, 1]")

	// ErrIncompatibleSlabs indicates arithmetic or comparison between times
	// or deltas whose slabs are neither equal nor adjacent.
	ErrIncompatibleSlabs = errors.New("core: slabs are not comparable")

	// ErrDirectionMismatch indicates a comparison between step ids with
	// opposite directions of time.
	ErrDirectionMismatch = errors.New("core: step ids run in opposite time directions")
)

// SimulationBefore reports whether a occurs strictly before b in the
// direction of integration: ordinary "less than" when time runs forward,
// "greater than" when it runs backward.
func SimulationBefore(timeRunsForward bool, a, b Time) bool {
	if timeRunsForward {
		return a.Cmp(b) < 0
	}

	return a.Cmp(b) > 0
}
