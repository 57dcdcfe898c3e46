// Package spectre provides exact-rational time bookkeeping and
// local-time-stepping Adams–Bashforth integration for systems of
// coupled elements that advance at independent step sizes.
//
// The module is organized by concern:
//
//   - core:      Slab, Time, TimeDelta, TimeStepID — exact rational time
//     arithmetic with bit-identical comparison across slab boundaries.
//   - history:   generic History and Boundary containers recording past
//     samples, with a lazily cached coupling evaluation per sample pair.
//   - multistep: the Adams–Bashforth stepper, orders 1 through 8, with
//     volume updates, asynchronous boundary deltas, dense output, error
//     estimation and history pruning.
//   - evolve:    a sequential driver coordinating coupled elements via
//     the stepper's readiness predicate.
//
// cmd/spectre-lts is a convergence-study tool built on the evolve
// driver.
package spectre
