package multistep

// Polynomial helpers for deriving update coefficients from irregular
// sample times. Stencils never exceed MaximumOrder nodes and all times
// are shifted so the integration interval starts near zero, so the
// monomial representation is well conditioned and closed-form
// integration is exact up to rounding.

// polyMul returns the monomial coefficients of a*b (index = power).
func polyMul(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, ai := range a {
		for j, bj := range b {
			out[i+j] += ai * bj
		}
	}

	return out
}

// polyIntegrate returns the definite integral of the monomial polynomial
// c over [a, b]. Reversed limits yield the signed integral, which is how
// backward-in-time steps acquire their sign.
func polyIntegrate(c []float64, a, b float64) float64 {
	total := 0.0
	pa, pb := 1.0, 1.0
	for k, ck := range c {
		pa *= a
		pb *= b
		total += ck * (pb - pa) / float64(k+1)
	}

	return total
}

// cardinal returns the monomial coefficients of the Lagrange cardinal
// polynomial ℓ_j for the given nodes: ℓ_j(nodes[j]) = 1 and
// ℓ_j(nodes[m]) = 0 for m != j. The nodes must be pairwise distinct.
func cardinal(nodes []float64, j int) []float64 {
	c := []float64{1}
	for m, node := range nodes {
		if m == j {
			continue
		}
		c = polyMul(c, []float64{-node, 1})
		scale := 1 / (nodes[j] - node)
		for k := range c {
			c[k] *= scale
		}
	}

	return c
}

// integratedCardinal returns ∫_a^b ℓ_j for the given nodes: the update
// weight multiplying the j-th derivative sample.
func integratedCardinal(nodes []float64, j int, a, b float64) float64 {
	return polyIntegrate(cardinal(nodes, j), a, b)
}

// integratedCardinalProduct returns ∫_a^b ℓ_j(·; lNodes)·ℓ_m(·; rNodes):
// the boundary weight multiplying the coupling of the j-th local and
// m-th remote samples.
func integratedCardinalProduct(lNodes []float64, j int, rNodes []float64, m int, a, b float64) float64 {
	return polyIntegrate(polyMul(cardinal(lNodes, j), cardinal(rNodes, m)), a, b)
}

// axpy performs y += w*x elementwise.
// Panics with ErrStateSizeMismatch if the lengths differ.
func axpy(w float64, x, y []float64) {
	if len(x) != len(y) {
		panic(ErrStateSizeMismatch)
	}
	for i, xi := range x {
		y[i] += w * xi
	}
}
