package history_test

import (
	"testing"

	"github.com/estherroselopez/spectre/core"
	"github.com/estherroselopez/spectre/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBoundary_IndependentSides verifies the two sides grow at their own
// rates with their own time points.
func TestBoundary_IndependentSides(t *testing.T) {
	slab := core.NewSlab(0, 1)
	b := history.NewBoundary[float64, float64, float64]()

	// Local advances by slab/4, remote by slab/6.
	b.Local().Insert(stepID(slab, 0, 0, 1), 1)
	b.Remote().Insert(stepID(slab, 0, 0, 1), 10)
	b.Remote().Insert(stepID(slab, 0, 1, 6), 20)
	b.Remote().Insert(stepID(slab, 0, 1, 3), 30)
	b.Local().Insert(stepID(slab, 0, 1, 4), 2)

	assert.Equal(t, 2, b.Local().Size(), "local side holds its own entries")
	assert.Equal(t, 3, b.Remote().Size(), "remote side holds its own entries")
	assert.Equal(t, 0.25, b.Local().Latest().ID.StepTime().Value(), "local latest time")
	assert.Equal(t, 30.0, b.Remote().Latest().Value, "remote latest value")
}

// TestBoundary_SideInsertInitial verifies seeding on one side only.
func TestBoundary_SideInsertInitial(t *testing.T) {
	slab := core.NewSlab(0, 1)
	init := slab.Retreat()
	b := history.NewBoundary[float64, float64, float64]()

	b.Local().Insert(stepID(slab, 0, 0, 1), 0)
	for i := int64(1); i <= 3; i++ {
		id := core.NewTimeStepID(true, -i,
			core.NewTime(init, core.NewRational(4-i, 4)))
		b.Local().InsertInitial(id, 4, float64(i))
	}
	assert.Equal(t, 4, b.Local().Size(), "three seeds complete an order-4 stencil")

	surplus := core.NewTimeStepID(true, -4, init.Start())
	b.Local().InsertInitial(surplus, 4, 9)
	assert.Equal(t, 4, b.Local().Size(), "surplus seed beyond the window is discarded")
	assert.Equal(t, 0, b.Remote().Size(), "remote side untouched by local seeding")

	assert.PanicsWithValue(t, history.ErrBadOrder, func() {
		b.Remote().InsertInitial(stepID(slab, 0, 0, 1), 0, 0)
	}, "seeding requires a positive order")
}

// TestBoundary_CouplingCache verifies lazy evaluation and per-pair reuse.
func TestBoundary_CouplingCache(t *testing.T) {
	slab := core.NewSlab(0, 1)
	b := history.NewBoundary[float64, float64, float64]()
	b.Local().Insert(stepID(slab, 0, 0, 1), 3)
	b.Remote().Insert(stepID(slab, 0, 0, 1), 5)
	b.Remote().Insert(stepID(slab, 0, 1, 6), 7)

	calls := 0
	product := func(l, r float64) float64 {
		calls++
		return l * r
	}

	require.Equal(t, 15.0, b.Coupling(0, 0, product), "first pair evaluated")
	require.Equal(t, 15.0, b.Coupling(0, 0, product), "second request served from cache")
	assert.Equal(t, 1, calls, "coupling ran once for the repeated pair")

	assert.Equal(t, 21.0, b.Coupling(0, 1, product), "distinct pair evaluated")
	assert.Equal(t, 2, calls, "one evaluation per distinct pair")
	assert.Equal(t, 2, b.CacheSize(), "cache holds both pairs")
}

// TestBoundary_KeepLatestEvictsCache verifies pruning both sides to their
// own windows and dropping cache entries that reference pruned steps.
func TestBoundary_KeepLatestEvictsCache(t *testing.T) {
	slab := core.NewSlab(0, 1)
	b := history.NewBoundary[float64, float64, float64]()

	b.Local().Insert(stepID(slab, 0, 0, 1), 1)
	b.Local().Insert(stepID(slab, 0, 1, 4), 2)
	b.Remote().Insert(stepID(slab, 0, 0, 1), 3)
	b.Remote().Insert(stepID(slab, 0, 1, 6), 4)
	b.Remote().Insert(stepID(slab, 0, 1, 3), 5)

	product := func(l, r float64) float64 { return l * r }
	for li := 0; li < 2; li++ {
		for ri := 0; ri < 3; ri++ {
			b.Coupling(li, ri, product)
		}
	}
	require.Equal(t, 6, b.CacheSize(), "all pairs cached")

	b.KeepLatest(1, 2)
	assert.Equal(t, 1, b.Local().Size(), "local pruned to its window")
	assert.Equal(t, 2, b.Remote().Size(), "remote pruned to its window")
	assert.Equal(t, 2, b.CacheSize(), "only pairs of surviving steps remain")

	calls := 0
	counting := func(l, r float64) float64 {
		calls++
		return l * r
	}
	b.Coupling(0, 0, counting)
	b.Coupling(0, 1, counting)
	assert.Equal(t, 0, calls, "surviving pairs still served from cache")
}
