package multistep

import (
	"errors"

	"github.com/estherroselopez/spectre/core"
	"github.com/estherroselopez/spectre/history"
)

// MaximumOrder bounds the supported Adams–Bashforth orders. Higher
// orders are representable in the coefficient machinery but numerically
// fragile, so construction refuses them.
const MaximumOrder = 8

// Sentinel errors for the integrator. All mark contract violations by
// the stepping driver and are raised via panic.
var (
	// ErrBadOrder indicates a stepper order outside [1, MaximumOrder].
	ErrBadOrder = errors.New("multistep: order must be in [1, 8]")

	// ErrInsufficientHistory indicates an update attempted with no usable
	// stencil: an empty volume history, an empty boundary side, or a
	// boundary side with no sample at or before the step being completed.
	ErrInsufficientHistory = errors.New("multistep: insufficient history for stencil")

	// ErrStateSizeMismatch indicates state vectors of different lengths
	// mixed in one update.
	ErrStateSizeMismatch = errors.New("multistep: state vector lengths differ")
)

// StateHistory is the volume history of a []float64 evolved quantity.
type StateHistory = history.History[[]float64]

// BoundaryHistory pairs []float64 local and remote boundary streams with
// a []float64 coupling result cache.
type BoundaryHistory = history.Boundary[[]float64, []float64, []float64]

// Coupling combines one local and one remote boundary sample into a
// coupling contribution (a numerical flux, say). It must be pure: the
// result for a given pair is cached and reused.
type Coupling func(local, remote []float64) []float64

// TimeStepper is the single-quantity stepping surface: explicit update
// from recorded history, dense output, step-size-change admissibility
// and history cleanup.
type TimeStepper interface {
	// Order returns the nominal integration order.
	Order() int

	// ErrorEstimateOrder returns the order of the embedded error
	// estimate, Order()-1 for Adams–Bashforth.
	ErrorEstimateOrder() int

	// Monotonic reports whether the method is a monotonic multistep
	// method (a stability classification, fixed per method family).
	Monotonic() bool

	// StableStep returns the fraction of a uniform step at the boundary
	// of the method's linear stability region.
	StableStep() float64

	// UpdateU advances u in place across time_step using the recorded
	// history (at most Order() most recent samples; fewer during startup).
	UpdateU(u []float64, h *StateHistory, timeStep core.TimeDelta)

	// UpdateUWithError advances u in place and overwrites errEstimate
	// with the difference between the full- and reduced-order updates.
	UpdateUWithError(u, errEstimate []float64, h *StateHistory, timeStep core.TimeDelta)

	// DenseUpdateU advances u in place from the latest recorded time to
	// the arbitrary time t inside the current step, without mutating h.
	DenseUpdateU(u []float64, h *StateHistory, t float64)

	// CanChangeStepSize reports whether a step-size change before the
	// step identified by id is admissible for the recorded history.
	CanChangeStepSize(id core.TimeStepID, h *StateHistory) bool

	// CleanHistory prunes h to the window future stencils can reference.
	CleanHistory(h *StateHistory)
}

// LtsTimeStepper extends TimeStepper with asynchronous boundary coupling
// for local time stepping.
type LtsTimeStepper interface {
	TimeStepper

	// AddBoundaryDelta adds to u the boundary coupling contribution of
	// the local step of size timeStep starting at the latest local
	// sample time.
	AddBoundaryDelta(u []float64, b *BoundaryHistory, timeStep core.TimeDelta, couple Coupling)

	// BoundaryDenseOutput adds to u the boundary contribution integrated
	// only up to the arbitrary time t inside the current local step.
	BoundaryDenseOutput(u []float64, b *BoundaryHistory, t float64, couple Coupling)

	// NeighborDataRequired reports whether a neighbor sample timestamped
	// at neighbor must be received before the step to next may proceed.
	NeighborDataRequired(next, neighbor core.TimeStepID) bool

	// NeighborDataRequiredForDenseOutput is the dense-output readiness
	// variant: whether the neighbor sample is needed to evaluate at t.
	NeighborDataRequiredForDenseOutput(t float64, neighbor core.TimeStepID) bool

	// CleanBoundaryHistory prunes both sides of b to their minimal
	// retained windows and evicts stale coupling cache entries.
	CleanBoundaryHistory(b *BoundaryHistory)
}
