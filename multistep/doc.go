// Package multistep implements explicit Adams–Bashforth time stepping
// over histories with irregular, per-element step sizes — the integrator
// core of local time stepping (LTS).
//
// A stepper of order k extrapolates with the interpolating polynomial
// through the last k recorded derivative samples. Because the recorded
// times are kept exactly (see package core), the update coefficients are
// derived from the actual sample times by integrating Lagrange cardinal
// polynomials, so nothing assumes uniform steps, a fixed direction of
// time, or even monotonic sample times (step-size reversals integrate
// correctly).
//
// Volume update:
//
//	u(t+dt) = u(t) + Σ_i [∫_t^{t+dt} ℓ_i] · du/dt|_i
//
// Boundary update: across an element interface the local and remote
// sides carry independently timestamped histories. The boundary delta
// over a local step is assembled by partitioning the step at the remote
// sample times interior to it; on each piece the coupling is represented
// as the product of the two sides' cardinal interpolants, yielding
// weights ∫ ℓ_local·ℓ_remote per (local, remote) sample pair. For two
// polynomial sides of degree < k the assembled delta is the exact
// integral of their product, which is the property the quartic coupling
// tests pin down. When the two sides are sampled at identical times the
// assembly reduces to classic Adams–Bashforth on the paired samples.
//
// Startup uses all available history: with fewer than k samples the
// effective order is the sample count, ramping to k as samples
// accumulate (the error-estimate order is k-1 throughout).
//
// Readiness instead of blocking: NeighborDataRequired is a pure
// predicate telling the driver whether a neighbor sample timestamped at
// a given step must arrive before a step (or a dense-output evaluation)
// may proceed. The integrator never waits; admission control belongs to
// the caller.
//
// Evolved quantities are []float64 state vectors; scalar problems use
// length-1 slices.
package multistep
