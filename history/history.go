package history

import (
	"errors"
	"iter"

	"github.com/estherroselopez/spectre/core"
)

// Sentinel errors for history containers. Ordering violations are
// contract breaches and are raised via panic.
var (
	// ErrBadOrder indicates a container constructed with order < 1.
	ErrBadOrder = errors.New("history: integration order must be at least 1")

	// ErrOutOfOrderInsert indicates an insert that is not strictly after
	// (Insert) or strictly before (InsertInitial) the existing entries.
	ErrOutOfOrderInsert = errors.New("history: insert out of causal order")

	// ErrDuplicateStep indicates an insert that repeats an existing step id.
	ErrDuplicateStep = errors.New("history: duplicate step id")

	// ErrEmptyHistory indicates an access that requires at least one entry.
	ErrEmptyHistory = errors.New("history: container is empty")
)

// Entry is one recorded sample: the step it was produced at, the value
// of the evolved quantity there, and its time derivative.
type Entry[T any] struct {
	ID         core.TimeStepID
	Value      T
	Derivative T
}

// History is the ordered record of past samples for one evolved
// quantity. Entries are strictly ordered by TimeStepID in the direction
// of integration; the retained window is bounded by the integration
// order via KeepLatest.
type History[T any] struct {
	order   int
	entries []Entry[T]
}

// New returns an empty history sized for the given integration order.
// Panics with ErrBadOrder if order < 1.
func New[T any](order int) *History[T] {
	if order < 1 {
		panic(ErrBadOrder)
	}

	return &History[T]{order: order, entries: make([]Entry[T], 0, order+1)}
}

// Order returns the integration order the history was sized for.
func (h *History[T]) Order() int { return h.order }

// Size returns the number of retained entries.
func (h *History[T]) Size() int { return len(h.entries) }

// At returns the i-th retained entry in causal order (0 is oldest).
func (h *History[T]) At(i int) Entry[T] { return h.entries[i] }

// Latest returns the most recent entry.
// Panics with ErrEmptyHistory if the history is empty.
func (h *History[T]) Latest() Entry[T] {
	if len(h.entries) == 0 {
		panic(ErrEmptyHistory)
	}

	return h.entries[len(h.entries)-1]
}

// All yields the retained entries in causal order. The sequence is lazy,
// finite and restartable.
func (h *History[T]) All() iter.Seq[Entry[T]] {
	return func(yield func(Entry[T]) bool) {
		for _, e := range h.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Insert appends a sample produced at id. The id must be strictly after
// every existing entry in causal order; panics with ErrDuplicateStep on
// a repeat and ErrOutOfOrderInsert on any other misordering.
func (h *History[T]) Insert(id core.TimeStepID, value, derivative T) {
	if n := len(h.entries); n > 0 {
		switch h.entries[n-1].ID.Cmp(id) {
		case 0:
			panic(ErrDuplicateStep)
		case 1:
			panic(ErrOutOfOrderInsert)
		}
	}
	h.entries = append(h.entries, Entry[T]{ID: id, Value: value, Derivative: derivative})
}

// InsertInitial seeds the stencil window before stepping begins. The id
// must be strictly before every existing entry; seeding silently stops
// once the window already holds a full stencil of the configured order.
func (h *History[T]) InsertInitial(id core.TimeStepID, value, derivative T) {
	if len(h.entries) >= h.order {
		return
	}
	if n := len(h.entries); n > 0 {
		switch h.entries[0].ID.Cmp(id) {
		case 0:
			panic(ErrDuplicateStep)
		case -1:
			panic(ErrOutOfOrderInsert)
		}
	}
	h.entries = append([]Entry[T]{{ID: id, Value: value, Derivative: derivative}}, h.entries...)
}

// KeepLatest discards all but the newest n entries. Stepper cleanup uses
// this to shrink the window to what the next stencil can reference.
func (h *History[T]) KeepLatest(n int) {
	if n < 0 {
		n = 0
	}
	if len(h.entries) > n {
		h.entries = append(h.entries[:0], h.entries[len(h.entries)-n:]...)
	}
}
