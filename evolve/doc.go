// Package evolve runs local-time-stepping evolutions: a set of elements,
// each advancing an Adams–Bashforth integration with its own step size,
// exchanging boundary samples with the elements it is coupled to.
//
// The driver is sequential and deterministic. Elements are visited in
// registration order and an element takes its next step as soon as the
// readiness predicate of its stepper admits it, that is, when no coupled
// neighbor still owes a boundary sample from inside the step. Completed
// steps immediately publish the element's boundary data to its
// neighbors' remote histories, which is what unblocks them in turn.
//
// State vectors are []float64 and are owned by the simulation; accessors
// return copies. Configuration mistakes (unknown elements, bad orders,
// bad step counts) are reported as wrapped sentinel errors; contract
// violations inside the numerical kernel panic as documented in the
// multistep package.
package evolve
