package history

import (
	"iter"

	"github.com/estherroselopez/spectre/core"
)

// SideEntry is one recorded boundary sample: the step it belongs to and
// the value that feeds the coupling function for that side.
type SideEntry[T any] struct {
	ID    core.TimeStepID
	Value T
}

// Side is one stream of a Boundary: an ordered, independently growing
// record of (step id, value) samples. The local and remote sides of one
// interface may hold different lengths and different time points.
type Side[T any] struct {
	entries []SideEntry[T]
}

// Size returns the number of retained entries.
func (s *Side[T]) Size() int { return len(s.entries) }

// At returns the i-th retained entry in causal order (0 is oldest).
func (s *Side[T]) At(i int) SideEntry[T] { return s.entries[i] }

// Latest returns the most recent entry.
// Panics with ErrEmptyHistory if the side is empty.
func (s *Side[T]) Latest() SideEntry[T] {
	if len(s.entries) == 0 {
		panic(ErrEmptyHistory)
	}

	return s.entries[len(s.entries)-1]
}

// All yields the retained entries in causal order.
func (s *Side[T]) All() iter.Seq[SideEntry[T]] {
	return func(yield func(SideEntry[T]) bool) {
		for _, e := range s.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Insert appends a sample produced at id, under the same strict causal
// ordering contract as History.Insert.
func (s *Side[T]) Insert(id core.TimeStepID, value T) {
	if n := len(s.entries); n > 0 {
		switch s.entries[n-1].ID.Cmp(id) {
		case 0:
			panic(ErrDuplicateStep)
		case 1:
			panic(ErrOutOfOrderInsert)
		}
	}
	s.entries = append(s.entries, SideEntry[T]{ID: id, Value: value})
}

// InsertInitial seeds this side before stepping begins, prepending a
// strictly earlier entry. Seeding is a no-op once the side already holds
// order entries, so surplus seeds are discarded rather than rejected.
func (s *Side[T]) InsertInitial(id core.TimeStepID, order int, value T) {
	if order < 1 {
		panic(ErrBadOrder)
	}
	if len(s.entries) >= order {
		return
	}
	if n := len(s.entries); n > 0 {
		switch s.entries[0].ID.Cmp(id) {
		case 0:
			panic(ErrDuplicateStep)
		case -1:
			panic(ErrOutOfOrderInsert)
		}
	}
	s.entries = append([]SideEntry[T]{{ID: id, Value: value}}, s.entries...)
}

func (s *Side[T]) keepLatest(n int, dropped func(core.TimeStepID)) {
	if n < 0 {
		n = 0
	}
	if len(s.entries) <= n {
		return
	}
	for _, e := range s.entries[:len(s.entries)-n] {
		dropped(e.ID)
	}
	s.entries = append(s.entries[:0], s.entries[len(s.entries)-n:]...)
}

type couplingKey struct {
	local, remote core.TimeStepID
}

// Boundary pairs the local and remote sample streams of one element
// interface and caches coupling results per (local, remote) step pair.
//
// L and R are the sampled types on each side; C is the coupling result
// combined from them. The cache is private to this boundary instance.
type Boundary[L, R, C any] struct {
	local  Side[L]
	remote Side[R]
	cache  map[couplingKey]C
}

// NewBoundary returns an empty boundary history.
func NewBoundary[L, R, C any]() *Boundary[L, R, C] {
	return &Boundary[L, R, C]{cache: make(map[couplingKey]C)}
}

// Local returns the local-side stream for insertion and iteration.
func (b *Boundary[L, R, C]) Local() *Side[L] { return &b.local }

// Remote returns the remote-side stream for insertion and iteration.
func (b *Boundary[L, R, C]) Remote() *Side[R] { return &b.remote }

// Coupling returns combine(localValue, remoteValue) for the given step
// pair, evaluating combine only on the first request for that pair.
// The sample values are looked up by position in their sides.
func (b *Boundary[L, R, C]) Coupling(
	localIdx, remoteIdx int,
	combine func(local L, remote R) C,
) C {
	le := b.local.entries[localIdx]
	re := b.remote.entries[remoteIdx]
	key := couplingKey{local: le.ID, remote: re.ID}
	if c, ok := b.cache[key]; ok {
		return c
	}
	c := combine(le.Value, re.Value)
	b.cache[key] = c

	return c
}

// CacheSize returns the number of cached coupling results.
func (b *Boundary[L, R, C]) CacheSize() int { return len(b.cache) }

// KeepLatest prunes each side to its own minimal retained window and
// evicts every cached coupling result that references a pruned step.
func (b *Boundary[L, R, C]) KeepLatest(localKeep, remoteKeep int) {
	b.local.keepLatest(localKeep, func(id core.TimeStepID) {
		for key := range b.cache {
			if key.local == id {
				delete(b.cache, key)
			}
		}
	})
	b.remote.keepLatest(remoteKeep, func(id core.TimeStepID) {
		for key := range b.cache {
			if key.remote == id {
				delete(b.cache, key)
			}
		}
	})
}
