package core

import "fmt"

// TimeStepID identifies one step attempt within an integration run: the
// direction of time, a monotonically increasing slab/step counter, and
// the exact Time the step starts from.
//
// Within one run the ids form a total order consistent with causal step
// order: the counter orders first, the step time (in the direction of
// integration) breaks ties. After a step-size reversal the counter keeps
// increasing even though step times revisit earlier coordinate times,
// which is exactly what keeps history insertion well ordered.
//
// TimeStepID is comparable with ==, so it can key coupling caches.
type TimeStepID struct {
	timeRunsForward bool
	slabNumber      int64
	stepTime        Time
}

// NewTimeStepID returns the id of the step starting at stepTime, for the
// given direction of time and slab/step counter.
func NewTimeStepID(timeRunsForward bool, slabNumber int64, stepTime Time) TimeStepID {
	return TimeStepID{
		timeRunsForward: timeRunsForward,
		slabNumber:      slabNumber,
		stepTime:        stepTime,
	}
}

// TimeRunsForward reports the direction of integration.
func (id TimeStepID) TimeRunsForward() bool { return id.timeRunsForward }

// SlabNumber returns the monotonically increasing slab/step counter.
func (id TimeStepID) SlabNumber() int64 { return id.slabNumber }

// StepTime returns the exact time the step starts from.
func (id TimeStepID) StepTime() Time { return id.stepTime }

// Cmp orders two ids causally: by counter, then by step time in the
// direction of integration. Panics with ErrDirectionMismatch if the ids
// disagree on the direction of time.
func (id TimeStepID) Cmp(other TimeStepID) int {
	if id.timeRunsForward != other.timeRunsForward {
		panic(ErrDirectionMismatch)
	}
	switch {
	case id.slabNumber < other.slabNumber:
		return -1
	case id.slabNumber > other.slabNumber:
		return 1
	}
	c := id.stepTime.Cmp(other.stepTime)
	if !id.timeRunsForward {
		c = -c
	}

	return c
}

// Before reports whether id causally precedes other.
func (id TimeStepID) Before(other TimeStepID) bool { return id.Cmp(other) < 0 }

// After reports whether id causally follows other.
func (id TimeStepID) After(other TimeStepID) bool { return id.Cmp(other) > 0 }

// String renders the id as "direction:counter@time".
func (id TimeStepID) String() string {
	dir := "fwd"
	if !id.timeRunsForward {
		dir = "bwd"
	}

	return fmt.Sprintf("%s:%d@%v", dir, id.slabNumber, id.stepTime)
}
