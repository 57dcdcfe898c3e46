// Package history provides the ordered sample containers multistep
// integrators build their stencils from.
//
// History[T] records, per evolved quantity, the past (step id, value,
// derivative) triples in causal order. Boundary[L, R, C] pairs two
// independent History-like streams across an element interface — the
// local side and the remote (neighbor) side — each timestamped on its
// own step sequence, so the two sides of a boundary may advance with
// different, independently chosen step sizes. Boundary also carries a
// lazy cache of coupling results keyed by (local id, remote id) pairs,
// so a coupling function is evaluated at most once per pair no matter
// how many boundary-delta evaluations revisit it.
//
// Ownership and concurrency: each container is exclusively owned by one
// element's single logical thread of control. Nothing here is internally
// synchronized; concurrency lives in the surrounding runtime, which must
// respect single-writer discipline per container.
//
// Insertion contract: Insert must be called in causal order (strictly
// increasing TimeStepID); InsertInitial seeds the stencil window before
// stepping begins, prepending strictly earlier entries, and becomes a
// no-op once the window already holds a full stencil. Both raise their
// sentinel via panic on violation — a mis-ordered insert is a driver
// bug, not a runtime condition (see the error design in the top-level
// documentation).
package history
