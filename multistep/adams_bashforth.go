package multistep

import (
	"sort"

	"github.com/estherroselopez/spectre/core"
)

// AdamsBashforth is an explicit multistep stepper of fixed order. It is
// immutable after construction and carries no evolving state: everything
// that changes between steps lives in the caller-owned histories, so one
// stepper value may be shared freely.
type AdamsBashforth struct {
	order int
}

var _ LtsTimeStepper = AdamsBashforth{}

// NewAdamsBashforth returns an Adams–Bashforth stepper of the given
// order. Panics with ErrBadOrder unless 1 <= order <= MaximumOrder.
func NewAdamsBashforth(order int) AdamsBashforth {
	if order < 1 || order > MaximumOrder {
		panic(ErrBadOrder)
	}

	return AdamsBashforth{order: order}
}

// Order returns the nominal integration order.
func (ab AdamsBashforth) Order() int { return ab.order }

// ErrorEstimateOrder returns the order of the embedded error estimate.
func (ab AdamsBashforth) ErrorEstimateOrder() int { return ab.order - 1 }

// Monotonic reports that Adams–Bashforth methods are monotonic multistep
// methods.
func (ab AdamsBashforth) Monotonic() bool { return true }

// StableStep returns the fraction of a uniform step at which the
// method's stability polynomial reaches the negative real axis boundary:
// 1 for forward Euler, 1/Σ(-1)^i c_i above that.
func (ab AdamsBashforth) StableStep() float64 {
	if ab.order == 1 {
		return 1
	}
	invStep := 0.0
	sign := 1.0
	for _, c := range constantCoefficients(ab.order) {
		invStep += sign * c
		sign = -sign
	}

	return 1 / invStep
}

// stencil returns the positions and shifted times of the most recent
// effective-order entries of h. Times are shifted by the latest sample
// time, which is the origin the update interval starts at.
func (ab AdamsBashforth) stencil(h *StateHistory) (base int, nodes []float64, origin float64) {
	n := h.Size()
	if n == 0 {
		panic(ErrInsufficientHistory)
	}
	if n > ab.order {
		n = ab.order
	}
	base = h.Size() - n
	origin = h.Latest().ID.StepTime().Value()
	nodes = make([]float64, n)
	for i := range nodes {
		nodes[i] = h.At(base+i).ID.StepTime().Value() - origin
	}

	return base, nodes, origin
}

// UpdateU advances u in place across timeStep. The stencil is the most
// recent Order() samples, or every sample during startup; the weights
// are derived from the recorded times, so irregular spacing and reversed
// steps need no special handling.
func (ab AdamsBashforth) UpdateU(u []float64, h *StateHistory, timeStep core.TimeDelta) {
	base, nodes, _ := ab.stencil(h)
	dt := timeStep.Value()
	for i := range nodes {
		axpy(integratedCardinal(nodes, i, 0, dt), h.At(base+i).Derivative, u)
	}
}

// UpdateUWithError advances u in place and overwrites errEstimate with
// the difference between the full-order and the order-reduced update,
// the usual embedded estimate for a multistep method.
func (ab AdamsBashforth) UpdateUWithError(u, errEstimate []float64, h *StateHistory, timeStep core.TimeDelta) {
	if len(u) != len(errEstimate) {
		panic(ErrStateSizeMismatch)
	}
	base, nodes, _ := ab.stencil(h)
	dt := timeStep.Value()
	for i := range errEstimate {
		errEstimate[i] = 0
	}
	for i := range nodes {
		w := integratedCardinal(nodes, i, 0, dt)
		axpy(w, h.At(base+i).Derivative, u)
		axpy(w, h.At(base+i).Derivative, errEstimate)
	}
	if len(nodes) == 1 {
		// A zeroth-order "update" leaves u unchanged, so the full
		// increment is the estimate.
		return
	}
	lower := nodes[1:]
	for i := range lower {
		w := integratedCardinal(lower, i, 0, dt)
		axpy(-w, h.At(base+1+i).Derivative, errEstimate)
	}
}

// DenseUpdateU advances u in place from the latest recorded sample time
// to the arbitrary time t, using the same stencil as a step would. The
// history is not mutated; querying several output times from the same
// state is fine as long as u is reset between queries.
func (ab AdamsBashforth) DenseUpdateU(u []float64, h *StateHistory, t float64) {
	base, nodes, origin := ab.stencil(h)
	for i := range nodes {
		axpy(integratedCardinal(nodes, i, 0, t-origin), h.At(base+i).Derivative, u)
	}
}

// CanChangeStepSize reports whether a step-size change before the step
// identified by id is admissible: every recorded sample time must lie
// strictly before id's step time in the integration direction. A sample
// at or beyond the prospective step would force extrapolation through a
// non-monotonic window, so the change is refused until the history has
// cleared it.
func (ab AdamsBashforth) CanChangeStepSize(id core.TimeStepID, h *StateHistory) bool {
	forward := id.TimeRunsForward()
	for e := range h.All() {
		if !core.SimulationBefore(forward, e.ID.StepTime(), id.StepTime()) {
			return false
		}
	}

	return true
}

// CleanHistory prunes h to the newest Order() entries, the oldest window
// any future stencil can reference.
func (ab AdamsBashforth) CleanHistory(h *StateHistory) {
	h.KeepLatest(ab.order)
}

// NeighborDataRequired reports whether a neighbor sample timestamped at
// neighbor must be received before the step to next may proceed: exactly
// when the neighbor timestamp is strictly behind the step being
// attempted. Samples at or ahead of the step cannot influence it.
func (ab AdamsBashforth) NeighborDataRequired(next, neighbor core.TimeStepID) bool {
	return core.SimulationBefore(next.TimeRunsForward(), neighbor.StepTime(), next.StepTime())
}

// NeighborDataRequiredForDenseOutput is the readiness predicate for
// dense output at time t: required exactly when the neighbor timestamp
// is strictly behind t in the integration direction.
func (ab AdamsBashforth) NeighborDataRequiredForDenseOutput(t float64, neighbor core.TimeStepID) bool {
	v := neighbor.StepTime().Value()
	if neighbor.TimeRunsForward() {
		return v < t
	}

	return v > t
}

// CleanBoundaryHistory prunes b to the minimal retained windows: the
// local side keeps Order()-1 samples (the next local insertion completes
// the stencil), the remote side keeps Order() (future subinterval starts
// may precede any new remote data). Coupling cache entries referencing
// pruned samples are evicted.
func (ab AdamsBashforth) CleanBoundaryHistory(b *BoundaryHistory) {
	b.KeepLatest(ab.order-1, ab.order)
}

// AddBoundaryDelta adds to u the boundary coupling contribution of the
// local step of size timeStep starting at the latest local sample time.
func (ab AdamsBashforth) AddBoundaryDelta(u []float64, b *BoundaryHistory, timeStep core.TimeDelta, couple Coupling) {
	if b.Local().Size() == 0 || b.Remote().Size() == 0 {
		panic(ErrInsufficientHistory)
	}
	start := b.Local().Latest().ID.StepTime()
	end := start.Add(timeStep)
	ab.boundaryDelta(u, b, boundaryWindow{
		start:    start,
		endValue: end.Value(),
		end:      &end,
	}, couple)
}

// BoundaryDenseOutput adds to u the boundary contribution integrated
// only up to the arbitrary time t inside the current local step.
func (ab AdamsBashforth) BoundaryDenseOutput(u []float64, b *BoundaryHistory, t float64, couple Coupling) {
	if b.Local().Size() == 0 || b.Remote().Size() == 0 {
		panic(ErrInsufficientHistory)
	}
	ab.boundaryDelta(u, b, boundaryWindow{
		start:    b.Local().Latest().ID.StepTime(),
		endValue: t,
	}, couple)
}

// boundaryWindow is the integration interval of one boundary evaluation.
// end is nil for dense output, where only a floating-point endpoint
// exists; interior classification then falls back to values.
type boundaryWindow struct {
	start    core.Time
	endValue float64
	end      *core.Time
}

func (w boundaryWindow) containsInterior(forward bool, t core.Time) bool {
	if !core.SimulationBefore(forward, w.start, t) {
		return false
	}
	if w.end != nil {
		return core.SimulationBefore(forward, t, *w.end)
	}
	v := t.Value()
	if forward {
		return v < w.endValue
	}

	return v > w.endValue
}

// boundaryDelta assembles the coupling contribution over the window.
//
// The local stencil is the most recent effective-order local samples.
// The window is partitioned at the remote sample times interior to it;
// each piece uses the most recent effective-order remote samples at or
// before its own start, so the remote stencil slides forward through the
// window. On each piece the weight of a (local, remote) sample pair is
// the integral of the product of the two cardinal interpolants, which
// integrates the product of two polynomial sides of degree < order
// exactly. Aligned sides short-circuit to the classic diagonal update.
func (ab AdamsBashforth) boundaryDelta(u []float64, b *BoundaryHistory, w boundaryWindow, couple Coupling) {
	local := b.Local()
	remote := b.Remote()
	forward := local.Latest().ID.TimeRunsForward()
	origin := w.start.Value()

	// Local stencil: last effective-order samples by causal position.
	nLocal := local.Size()
	if nLocal > ab.order {
		nLocal = ab.order
	}
	localBase := local.Size() - nLocal
	localNodes := make([]float64, nLocal)
	for i := range localNodes {
		localNodes[i] = local.At(localBase+i).ID.StepTime().Value() - origin
	}

	// Remote samples interior to the window partition it into pieces.
	type cut struct {
		at    core.Time
		value float64
	}
	cuts := []cut{{at: w.start, value: 0}}
	for i := 0; i < remote.Size(); i++ {
		rt := remote.At(i).ID.StepTime()
		if w.containsInterior(forward, rt) {
			cuts = append(cuts, cut{at: rt, value: rt.Value() - origin})
		}
	}
	sort.SliceStable(cuts, func(i, j int) bool {
		if forward {
			return cuts[i].value < cuts[j].value
		}
		return cuts[i].value > cuts[j].value
	})
	pieceEnd := w.endValue - origin

	// Aligned fast path: no interior partition and identical sample
	// times pair the sides one-to-one, reducing to standard AB on the
	// diagonal couplings.
	if len(cuts) == 1 {
		if rBase, ok := ab.alignedRemoteBase(b, forward, localBase, nLocal); ok {
			for i := range localNodes {
				wgt := integratedCardinal(localNodes, i, 0, pieceEnd)
				axpy(wgt, b.Coupling(localBase+i, rBase+i, couple), u)
			}

			return
		}
	}

	for k := range cuts {
		a := cuts[k].value
		pe := pieceEnd
		if k+1 < len(cuts) {
			pe = cuts[k+1].value
		}

		rIdx := ab.remoteStencil(b, forward, cuts[k].at)
		if len(rIdx) == 0 {
			panic(ErrInsufficientHistory)
		}
		remoteNodes := make([]float64, len(rIdx))
		for m, ri := range rIdx {
			remoteNodes[m] = remote.At(ri).ID.StepTime().Value() - origin
		}

		for i := range localNodes {
			for m, ri := range rIdx {
				wgt := integratedCardinalProduct(localNodes, i, remoteNodes, m, a, pe)
				axpy(wgt, b.Coupling(localBase+i, ri, couple), u)
			}
		}
	}
}

// remoteStencil returns the positions of the most recent effective-order
// remote samples at or before the cut time in the integration direction.
// Positions need not be contiguous after a step-size reversal.
func (ab AdamsBashforth) remoteStencil(b *BoundaryHistory, forward bool, cut core.Time) []int {
	remote := b.Remote()
	idx := make([]int, 0, remote.Size())
	for i := 0; i < remote.Size(); i++ {
		if !core.SimulationBefore(forward, cut, remote.At(i).ID.StepTime()) {
			idx = append(idx, i)
		}
	}
	if len(idx) > ab.order {
		idx = idx[len(idx)-ab.order:]
	}

	return idx
}

// alignedRemoteBase reports whether the remote samples at or before the
// window start match the local stencil times one-to-one, returning the
// remote position paired with localBase.
func (ab AdamsBashforth) alignedRemoteBase(b *BoundaryHistory, forward bool, localBase, nLocal int) (int, bool) {
	rIdx := ab.remoteStencil(b, forward, b.Local().Latest().ID.StepTime())
	if len(rIdx) != nLocal {
		return 0, false
	}
	for i, ri := range rIdx {
		if ri != rIdx[0]+i {
			return 0, false
		}
		lt := b.Local().At(localBase + i).ID.StepTime()
		rt := b.Remote().At(ri).ID.StepTime()
		if !lt.Equal(rt) {
			return 0, false
		}
	}

	return rIdx[0], true
}
