package multistep_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estherroselopez/spectre/core"
	"github.com/estherroselopez/spectre/history"
	"github.com/estherroselopez/spectre/multistep"
)

// Fixed test constants; the coupled integrand is the product of a linear
// local side and a quadratic remote side, so a fourth-order stepper must
// reproduce the quartic antiderivative exactly.
const (
	c10 = 0.949716728952811
	c11 = 0.190663110072823
	c20 = 0.932407227651314
	c21 = 0.805454101952822
	c22 = 0.825876851406978
)

func quarticSide1(x float64) float64 { return c10 + x*c11 }

func quarticSide2(x float64) float64 { return c20 + x*(c21+x*c22) }

func quarticAnswer(x float64) float64 {
	return x * (c10*c20 +
		x*((c10*c21+c11*c20)/2+
			x*((c10*c22+c11*c21)/3+
				x*(c11*c22/4))))
}

func quarticCoupling(local, remote []float64) []float64 {
	return []float64{local[0] * remote[0]}
}

func newQuarticBoundary() *multistep.BoundaryHistory {
	return history.NewBoundary[[]float64, []float64, []float64]()
}

// runQuarticLTS drives the two sides of one boundary across a slab with
// independent constant step sizes, evolving only the boundary term and
// checking the state against the exact quartic at every local step. The
// sides are advanced strictly in simulation order, each side inserting
// its sample the moment it becomes the laggard.
func runQuarticLTS(t *testing.T, dtLocal, dtRemote core.TimeDelta) {
	t.Helper()

	const order = 4
	forward := dtLocal.IsPositive()
	slab := dtLocal.Slab()
	tm := slab.Start()
	if !forward {
		tm = slab.End()
	}
	ab := multistep.NewAdamsBashforth(order)
	b := newQuarticBoundary()
	makeID := func(at core.Time) core.TimeStepID {
		return core.NewTimeStepID(forward, 0, at)
	}

	init := slab.AdvanceTowards(dtLocal.Neg())
	for step := int64(1); step <= 3; step++ {
		lt := tm.Sub(dtLocal.WithSlab(init).Mul(step))
		b.Local().InsertInitial(makeID(lt), order, []float64{quarticSide1(lt.Value())})
		rt := tm.Sub(dtRemote.WithSlab(init).Mul(step))
		b.Remote().InsertInitial(makeID(rt), order, []float64{quarticSide2(rt.Value())})
	}

	y := []float64{quarticAnswer(tm.Value())}
	nextCheck := tm.Add(dtLocal)
	next := [2]core.Time{tm, tm}
	for {
		side := 0
		if core.SimulationBefore(forward, next[1], next[0]) {
			side = 1
		}
		if side == 0 {
			b.Local().Insert(makeID(next[0]), []float64{quarticSide1(next[0].Value())})
			next[0] = next[0].Add(dtLocal)
		} else {
			b.Remote().Insert(makeID(next[1]), []float64{quarticSide2(next[1].Value())})
			next[1] = next[1].Add(dtRemote)
		}

		tm = next[0]
		if core.SimulationBefore(forward, next[1], tm) {
			tm = next[1]
		}
		if !tm.Equal(nextCheck) {
			continue
		}

		ab.AddBoundaryDelta(y, b, dtLocal, quarticCoupling)
		ab.CleanBoundaryHistory(b)
		require.InDelta(t, quarticAnswer(nextCheck.Value()), y[0], 1e-8,
			"local %v remote %v at t=%g", dtLocal, dtRemote, nextCheck.Value())
		if nextCheck.IsAtSlabBoundary() {
			return
		}
		nextCheck = nextCheck.Add(dtLocal)
	}
}

// TestAdamsBashforth_LocalStepping covers constant step-size ratios on
// the two sides of a boundary, nesting and non-nesting, in both
// directions of time.
func TestAdamsBashforth_LocalStepping(t *testing.T) {
	slab := core.NewSlab(0, 1)
	pairs := [][2]int64{
		{4, 4}, {4, 8}, {8, 4}, {16, 4}, {4, 16}, {32, 4}, {4, 32},
		// Non-nesting ratios.
		{4, 6}, {6, 4}, {5, 7}, {7, 5}, {5, 13}, {13, 5},
	}
	for _, full := range []core.TimeDelta{slab.Duration(), slab.Duration().Neg()} {
		for _, p := range pairs {
			runQuarticLTS(t, full.Div(p[0]), full.Div(p[1]))
		}
	}
}

// TestAdamsBashforth_VaryingSteps drives both sides with step sizes that
// change from step to step, so the stencils are irregular on both sides
// of every boundary evaluation.
func TestAdamsBashforth_VaryingSteps(t *testing.T) {
	const order = 4
	ab := multistep.NewAdamsBashforth(order)
	slab := core.NewSlab(0, 1)
	dur := slab.Duration()
	makeID := func(at core.Time) core.TimeStepID {
		return core.NewTimeStepID(true, 0, at)
	}

	tm := slab.Start()
	b := newQuarticBoundary()
	init := slab.Retreat()
	initDt := init.Duration().Div(4)
	for step := int64(1); step <= 3; step++ {
		at := tm.Sub(initDt.Mul(step))
		b.Local().InsertInitial(makeID(at), order, []float64{quarticSide1(at.Value())})
		b.Remote().InsertInitial(makeID(at), order, []float64{quarticSide2(at.Value())})
	}

	steps := [2][]core.TimeDelta{
		{dur.Div(2), dur.Div(4), dur.Div(4)},
		{dur.Div(6), dur.Div(6), dur.Div(9).Mul(2), dur.Div(9).Mul(4)},
	}

	y := []float64{quarticAnswer(tm.Value())}
	nextCheck := tm.Add(steps[0][0])
	next := [2]core.Time{tm, tm}
	for {
		side := 0
		if next[1].Cmp(next[0]) < 0 {
			side = 1
		}
		if side == 0 {
			b.Local().Insert(makeID(next[0]), []float64{quarticSide1(next[0].Value())})
		} else {
			b.Remote().Insert(makeID(next[1]), []float64{quarticSide2(next[1].Value())})
		}
		thisDt := steps[side][0]
		steps[side] = steps[side][1:]
		next[side] = next[side].Add(thisDt)

		low := next[0]
		if next[1].Cmp(low) < 0 {
			low = next[1]
		}
		if !low.Equal(nextCheck) {
			continue
		}

		ab.AddBoundaryDelta(y, b, nextCheck.Diff(tm), quarticCoupling)
		ab.CleanBoundaryHistory(b)
		require.InDelta(t, quarticAnswer(nextCheck.Value()), y[0], 1e-8,
			"varying steps at t=%g", nextCheck.Value())
		if nextCheck.IsAtSlabBoundary() {
			return
		}
		tm = nextCheck
		nextCheck = nextCheck.Add(steps[0][0])
	}
}

// TestAdamsBashforth_EqualRateMatchesVolume checks that when both sides
// step at the same rate, the boundary contribution of a coupling that
// ignores the remote side reproduces the volume update to roundoff, at
// every order and in both directions.
func TestAdamsBashforth_EqualRateMatchesVolume(t *testing.T) {
	v := func(x float64) float64 { return math.Sin(2.5*x) + 0.3*math.Cos(7*x) }
	localOnly := func(local, _ []float64) []float64 { return []float64{local[0]} }

	for order := 1; order <= multistep.MaximumOrder; order++ {
		for _, forward := range []bool{true, false} {
			ab := multistep.NewAdamsBashforth(order)
			slab := core.NewSlab(0, 1)
			dt := slab.Duration().Div(4)
			tm := slab.Start()
			if !forward {
				dt = dt.Neg()
				tm = slab.End()
			}
			init := slab.AdvanceTowards(dt.Neg())
			makeID := func(at core.Time) core.TimeStepID {
				return core.NewTimeStepID(forward, 0, at)
			}

			h := history.New[[]float64](order)
			b := newQuarticBoundary()
			h.Insert(makeID(tm), []float64{0}, []float64{v(tm.Value())})
			b.Local().Insert(makeID(tm), []float64{v(tm.Value())})
			b.Remote().Insert(makeID(tm), []float64{0})
			for k := int64(1); k < int64(order); k++ {
				at := tm.Sub(dt.WithSlab(init).Mul(k))
				h.InsertInitial(makeID(at), []float64{0}, []float64{v(at.Value())})
				b.Local().InsertInitial(makeID(at), order, []float64{v(at.Value())})
				b.Remote().InsertInitial(makeID(at), order, []float64{0})
			}

			yVol := []float64{0}
			yLts := []float64{0}
			for step := 0; step < 4; step++ {
				ab.UpdateU(yVol, h, dt)
				ab.AddBoundaryDelta(yLts, b, dt, localOnly)
				require.InDelta(t, yVol[0], yLts[0], 1e-12,
					"order %d forward=%v step %d", order, forward, step)
				tm = tm.Add(dt)
				if tm.IsAtSlabBoundary() {
					break
				}
				ab.CleanHistory(h)
				ab.CleanBoundaryHistory(b)
				h.Insert(makeID(tm), []float64{0}, []float64{v(tm.Value())})
				b.Local().Insert(makeID(tm), []float64{v(tm.Value())})
				b.Remote().Insert(makeID(tm), []float64{0})
			}
		}
	}
}

// TestAdamsBashforth_BoundaryReversal evaluates a boundary delta over a
// history left behind by a step-size reversal: the recorded times are
// not monotonic in coordinate time, only in causal step order.
func TestAdamsBashforth_BoundaryReversal(t *testing.T) {
	const order = 3
	f := func(x float64) float64 { return 1 + x*(2+x*(3+x*4)) }
	df := func(x float64) float64 { return 2 + x*(6+x*12) }

	ab := multistep.NewAdamsBashforth(order)
	slab := core.NewSlab(0, 1)
	b := newQuarticBoundary()
	add := func(counter int64, num, den int64) {
		tm := core.NewTime(slab, core.NewRational(num, den))
		id := core.NewTimeStepID(true, counter, tm)
		b.Local().Insert(id, []float64{df(tm.Value())})
		b.Remote().Insert(id, []float64{0})
	}
	add(0, 0, 1)
	add(0, 3, 4)
	add(1, 1, 3)

	y := []float64{f(1. / 3.)}
	ab.AddBoundaryDelta(y, b, slab.Duration().Div(3),
		func(local, _ []float64) []float64 { return []float64{local[0]} })
	assert.InDelta(t, f(2./3.), y[0], 1e-11,
		"boundary delta through a reversal integrates exactly")
}

// TestAdamsBashforth_NeighborDataRequired covers the readiness predicate
// in both directions: a neighbor sample is required exactly when it is
// timestamped strictly behind the step being attempted.
func TestAdamsBashforth_NeighborDataRequired(t *testing.T) {
	ab := multistep.NewAdamsBashforth(4)
	slab := core.NewSlab(0, 1)
	fwd := func(at core.Time) core.TimeStepID { return core.NewTimeStepID(true, 0, at) }
	bwd := func(at core.Time) core.TimeStepID { return core.NewTimeStepID(false, 0, at) }

	assert.False(t, ab.NeighborDataRequired(fwd(slab.Start()), fwd(slab.Start())))
	assert.False(t, ab.NeighborDataRequired(fwd(slab.Start()), fwd(slab.End())))
	assert.True(t, ab.NeighborDataRequired(fwd(slab.End()), fwd(slab.Start())))

	assert.False(t, ab.NeighborDataRequired(bwd(slab.End()), bwd(slab.End())))
	assert.False(t, ab.NeighborDataRequired(bwd(slab.End()), bwd(slab.Start())))
	assert.True(t, ab.NeighborDataRequired(bwd(slab.Start()), bwd(slab.End())))

	mid := core.NewTime(slab, core.NewRational(1, 2))
	assert.True(t, ab.NeighborDataRequiredForDenseOutput(0.5, fwd(slab.Start())))
	assert.False(t, ab.NeighborDataRequiredForDenseOutput(0.5, fwd(mid)))
	assert.False(t, ab.NeighborDataRequiredForDenseOutput(0.5, fwd(slab.End())))
	assert.True(t, ab.NeighborDataRequiredForDenseOutput(0.5, bwd(slab.End())))
	assert.False(t, ab.NeighborDataRequiredForDenseOutput(0.5, bwd(mid)))
	assert.False(t, ab.NeighborDataRequiredForDenseOutput(0.5, bwd(slab.Start())))
}

// TestAdamsBashforth_BoundaryDenseOutput interpolates the boundary
// contribution to times inside a local step, including past an interior
// remote sample, and checks the coupling cache is reused across queries.
func TestAdamsBashforth_BoundaryDenseOutput(t *testing.T) {
	const order = 4
	ab := multistep.NewAdamsBashforth(order)
	slab := core.NewSlab(0, 1)
	dt := slab.Duration().Div(4)
	init := slab.Retreat()
	makeID := func(at core.Time) core.TimeStepID {
		return core.NewTimeStepID(true, 0, at)
	}

	b := newQuarticBoundary()
	b.Local().Insert(makeID(slab.Start()), []float64{quarticSide1(0)})
	b.Remote().Insert(makeID(slab.Start()), []float64{quarticSide2(0)})
	for step := int64(1); step <= 3; step++ {
		at := slab.Start().Sub(dt.WithSlab(init).Mul(step))
		b.Local().InsertInitial(makeID(at), order, []float64{quarticSide1(at.Value())})
		b.Remote().InsertInitial(makeID(at), order, []float64{quarticSide2(at.Value())})
	}
	// A remote sample interior to the local step splits the window.
	remoteMid := core.NewTime(slab, core.NewRational(1, 16))
	b.Remote().Insert(makeID(remoteMid), []float64{quarticSide2(remoteMid.Value())})

	calls := 0
	counting := func(local, remote []float64) []float64 {
		calls++
		return quarticCoupling(local, remote)
	}

	for _, target := range []float64{0.03, 1. / 16., 0.1, 0.2} {
		y := []float64{quarticAnswer(0)}
		ab.BoundaryDenseOutput(y, b, target, counting)
		require.InDelta(t, quarticAnswer(target), y[0], 1e-10,
			"dense output at t=%g", target)
	}

	settled := calls
	y := []float64{quarticAnswer(0)}
	ab.BoundaryDenseOutput(y, b, 0.2, counting)
	assert.InDelta(t, quarticAnswer(0.2), y[0], 1e-10)
	assert.Equal(t, settled, calls, "repeated queries hit the coupling cache")
	assert.Equal(t, b.CacheSize(), calls, "every coupling evaluation is cached")
}

func TestAdamsBashforth_BoundaryEmptySidePanics(t *testing.T) {
	ab := multistep.NewAdamsBashforth(2)
	slab := core.NewSlab(0, 1)
	b := newQuarticBoundary()
	b.Local().Insert(core.NewTimeStepID(true, 0, slab.Start()), []float64{1})
	assert.PanicsWithValue(t, multistep.ErrInsufficientHistory, func() {
		ab.AddBoundaryDelta([]float64{0}, b, slab.Duration().Div(2), quarticCoupling)
	}, "a boundary delta with an empty remote side must panic")
}
