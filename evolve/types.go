package evolve

import (
	"errors"

	"github.com/estherroselopez/spectre/multistep"
)

// Sentinel errors returned by simulation configuration and queries.
var (
	// ErrNoElements indicates Run was called on an empty simulation.
	ErrNoElements = errors.New("evolve: simulation has no elements")

	// ErrDuplicateElement indicates AddElement reusing a name.
	ErrDuplicateElement = errors.New("evolve: element already registered")

	// ErrUnknownElement indicates a reference to an unregistered element.
	ErrUnknownElement = errors.New("evolve: element not registered")

	// ErrSelfCoupling indicates an element coupled to itself.
	ErrSelfCoupling = errors.New("evolve: element cannot couple to itself")

	// ErrDuplicateCoupling indicates a boundary that is already coupled.
	ErrDuplicateCoupling = errors.New("evolve: boundary already coupled")

	// ErrBadSubsteps indicates a step count below one.
	ErrBadSubsteps = errors.New("evolve: substeps must be at least 1")

	// ErrBadState indicates an empty initial state vector.
	ErrBadState = errors.New("evolve: initial state must be non-empty")

	// ErrNilFunc indicates a missing derivative, flux or coupling function.
	ErrNilFunc = errors.New("evolve: required function is nil")

	// ErrStalled indicates that no element can advance even though the
	// evolution is incomplete. It cannot occur with a consistent
	// readiness predicate and exists as a defect trap.
	ErrStalled = errors.New("evolve: no element can advance")

	// ErrNeighborDataPending indicates dense output requested at a time
	// that unreceived neighbor data would still influence.
	ErrNeighborDataPending = errors.New("evolve: dense output needs unreceived neighbor data")
)

// Derivative evaluates the volume right-hand side du/dt at time t.
type Derivative func(t float64, u []float64) []float64

// Flux evaluates the boundary data an element presents to one neighbor
// at time t. The same value feeds the element's own local history and
// the neighbor's remote history.
type Flux func(t float64, u []float64) []float64

// Seeder supplies pre-evolution samples for history seeding: the state
// and its derivative at a time before the evolution start. Elements
// without a Seeder self-start at effective order one.
type Seeder func(t float64) (value, derivative []float64)

// ElementSpec configures one element of a simulation.
type ElementSpec struct {
	// Order is the Adams–Bashforth order, 1 through multistep.MaximumOrder.
	Order int

	// Substeps is how many equal steps the element takes per slab.
	Substeps int64

	// Initial is the state vector at the evolution start.
	Initial []float64

	// Derivative is the volume right-hand side.
	Derivative Derivative

	// Seed optionally provides exact pre-evolution history, giving the
	// element its full order from the first step.
	Seed Seeder
}

// CouplingSpec configures one element's half of a boundary.
type CouplingSpec struct {
	// Flux is the boundary data this element presents.
	Flux Flux

	// Couple combines this element's flux with the neighbor's into the
	// boundary contribution to this element's state.
	Couple multistep.Coupling
}
