package evolve

import (
	"fmt"

	"github.com/estherroselopez/spectre/core"
	"github.com/estherroselopez/spectre/history"
	"github.com/estherroselopez/spectre/multistep"
)

// Simulation evolves a set of coupled elements across one slab.
type Simulation struct {
	slab     core.Slab
	forward  bool
	names    []string
	elements map[string]*element
	seeded   bool
}

type element struct {
	name      string
	stepper   multistep.AdamsBashforth
	order     int
	dt        core.TimeDelta
	tm        core.Time
	remaining int64
	u         []float64
	deriv     Derivative
	seed      Seeder
	h         *multistep.StateHistory
	links     []*link
}

// link is one element's half of a boundary. peer is the neighbor's half;
// publishing a local sample inserts it into the peer's remote history.
type link struct {
	owner    *element
	neighbor *element
	b        *multistep.BoundaryHistory
	flux     Flux
	couple   multistep.Coupling
}

// Option adjusts a simulation at construction.
type Option func(*Simulation)

// Backward integrates from the slab end toward its start.
func Backward() Option {
	return func(s *Simulation) { s.forward = false }
}

// NewSimulation returns an empty simulation over the given slab,
// integrating forward unless configured otherwise.
func NewSimulation(slab core.Slab, opts ...Option) *Simulation {
	s := &Simulation{
		slab:     slab,
		forward:  true,
		elements: make(map[string]*element),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddElement registers an element. The name must be unused, the order
// supported, the step count positive and the state non-empty.
func (s *Simulation) AddElement(name string, spec ElementSpec) error {
	if _, ok := s.elements[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateElement, name)
	}
	if spec.Order < 1 || spec.Order > multistep.MaximumOrder {
		return fmt.Errorf("element %q: order %d: %w", name, spec.Order, multistep.ErrBadOrder)
	}
	if spec.Substeps < 1 {
		return fmt.Errorf("element %q: %w", name, ErrBadSubsteps)
	}
	if len(spec.Initial) == 0 {
		return fmt.Errorf("element %q: %w", name, ErrBadState)
	}
	if spec.Derivative == nil {
		return fmt.Errorf("element %q derivative: %w", name, ErrNilFunc)
	}

	dt := s.slab.Duration().Div(spec.Substeps)
	tm := s.slab.Start()
	if !s.forward {
		dt = dt.Neg()
		tm = s.slab.End()
	}
	s.elements[name] = &element{
		name:      name,
		stepper:   multistep.NewAdamsBashforth(spec.Order),
		order:     spec.Order,
		dt:        dt,
		tm:        tm,
		remaining: spec.Substeps,
		u:         cloneState(spec.Initial),
		deriv:     spec.Derivative,
		seed:      spec.Seed,
		h:         history.New[[]float64](spec.Order),
	}
	s.names = append(s.names, name)

	return nil
}

// Couple joins two registered elements across a boundary, one
// CouplingSpec per side. Each pair may be coupled once.
func (s *Simulation) Couple(a, b string, specA, specB CouplingSpec) error {
	ea, ok := s.elements[a]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownElement, a)
	}
	eb, ok := s.elements[b]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownElement, b)
	}
	if ea == eb {
		return fmt.Errorf("%w: %q", ErrSelfCoupling, a)
	}
	for _, l := range ea.links {
		if l.neighbor == eb {
			return fmt.Errorf("%w: %q-%q", ErrDuplicateCoupling, a, b)
		}
	}
	if specA.Flux == nil || specA.Couple == nil || specB.Flux == nil || specB.Couple == nil {
		return fmt.Errorf("coupling %q-%q: %w", a, b, ErrNilFunc)
	}

	ea.links = append(ea.links, &link{
		owner:    ea,
		neighbor: eb,
		b:        history.NewBoundary[[]float64, []float64, []float64](),
		flux:     specA.Flux,
		couple:   specA.Couple,
	})
	eb.links = append(eb.links, &link{
		owner:    eb,
		neighbor: ea,
		b:        history.NewBoundary[[]float64, []float64, []float64](),
		flux:     specB.Flux,
		couple:   specB.Couple,
	})

	return nil
}

// Run advances every element to the far end of the slab. Elements are
// visited in registration order; each takes its next step as soon as its
// stepper's readiness predicate admits it.
func (s *Simulation) Run() error {
	if len(s.names) == 0 {
		return ErrNoElements
	}
	if !s.seeded {
		s.seedAll()
		s.seeded = true
	}

	for {
		done := true
		progressed := false
		for _, name := range s.names {
			e := s.elements[name]
			if e.remaining == 0 {
				continue
			}
			done = false
			if !s.ready(e) {
				continue
			}
			s.step(e)
			progressed = true
		}
		if done {
			return nil
		}
		if !progressed {
			return ErrStalled
		}
	}
}

// State returns a copy of the element's current state vector.
func (s *Simulation) State(name string) ([]float64, error) {
	e, ok := s.elements[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, name)
	}

	return cloneState(e.u), nil
}

// Time returns the element's current step time.
func (s *Simulation) Time(name string) (core.Time, error) {
	e, ok := s.elements[name]
	if !ok {
		return core.Time{}, fmt.Errorf("%w: %q", ErrUnknownElement, name)
	}

	return e.tm, nil
}

// DenseState interpolates the element's state to a time inside its
// current step without advancing it. Fails with ErrNeighborDataPending
// if an unreceived neighbor sample would still influence that time.
func (s *Simulation) DenseState(name string, t float64) ([]float64, error) {
	e, ok := s.elements[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, name)
	}
	if !s.seeded {
		s.seedAll()
		s.seeded = true
	}
	for _, l := range e.links {
		n := l.neighbor
		if n.remaining == 0 {
			continue
		}
		pending := core.NewTimeStepID(s.forward, 0, n.tm.Add(n.dt))
		if e.stepper.NeighborDataRequiredForDenseOutput(t, pending) {
			return nil, fmt.Errorf("element %q at t=%g: %w", name, t, ErrNeighborDataPending)
		}
	}

	out := cloneState(e.u)
	e.stepper.DenseUpdateU(out, e.h, t)
	for _, l := range e.links {
		e.stepper.BoundaryDenseOutput(out, l.b, t, l.couple)
	}

	return out, nil
}

// seedAll records every element's initial sample and any Seeder-supplied
// pre-evolution history, locally and into each neighbor's remote stream.
func (s *Simulation) seedAll() {
	for _, name := range s.names {
		e := s.elements[name]
		d := e.deriv(e.tm.Value(), e.u)
		id := core.NewTimeStepID(s.forward, 0, e.tm)
		e.h.Insert(id, cloneState(e.u), d)
		for _, l := range e.links {
			f := l.flux(e.tm.Value(), e.u)
			l.b.Local().Insert(id, f)
			s.peer(l).b.Remote().Insert(id, f)
		}
	}
	for _, name := range s.names {
		e := s.elements[name]
		if e.seed == nil {
			continue
		}
		init := s.slab.AdvanceTowards(e.dt.Neg())
		for k := int64(1); k < int64(e.order); k++ {
			at := e.tm.Sub(e.dt.WithSlab(init).Mul(k))
			id := core.NewTimeStepID(s.forward, 0, at)
			v, d := e.seed(at.Value())
			e.h.InsertInitial(id, v, d)
			for _, l := range e.links {
				f := l.flux(at.Value(), v)
				l.b.Local().InsertInitial(id, e.order, f)
				s.peer(l).b.Remote().InsertInitial(id, e.order, f)
			}
		}
	}
}

// peer returns the neighbor's half of the same boundary.
func (s *Simulation) peer(l *link) *link {
	for _, nl := range l.neighbor.links {
		if nl.neighbor == l.owner {
			return nl
		}
	}
	panic(ErrUnknownElement)
}

// ready reports whether the element's next step needs no boundary data
// that a neighbor has not yet published.
func (s *Simulation) ready(e *element) bool {
	nextID := core.NewTimeStepID(s.forward, 0, e.tm.Add(e.dt))
	for _, l := range e.links {
		n := l.neighbor
		if n.remaining == 0 {
			continue
		}
		pending := core.NewTimeStepID(s.forward, 0, n.tm.Add(n.dt))
		if e.stepper.NeighborDataRequired(nextID, pending) {
			return false
		}
	}

	return true
}

// step completes one step of e: volume update, boundary deltas, history
// pruning, then publication of the new sample to e and its neighbors.
func (s *Simulation) step(e *element) {
	e.stepper.UpdateU(e.u, e.h, e.dt)
	for _, l := range e.links {
		e.stepper.AddBoundaryDelta(e.u, l.b, e.dt, l.couple)
	}
	e.tm = e.tm.Add(e.dt)
	e.remaining--

	e.stepper.CleanHistory(e.h)
	for _, l := range e.links {
		e.stepper.CleanBoundaryHistory(l.b)
	}

	d := e.deriv(e.tm.Value(), e.u)
	id := core.NewTimeStepID(s.forward, 0, e.tm)
	e.h.Insert(id, cloneState(e.u), d)
	for _, l := range e.links {
		f := l.flux(e.tm.Value(), e.u)
		l.b.Local().Insert(id, f)
		s.peer(l).b.Remote().Insert(id, f)
	}
}

func cloneState(u []float64) []float64 {
	out := make([]float64, len(u))
	copy(out, u)

	return out
}
