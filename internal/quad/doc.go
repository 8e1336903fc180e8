// Package quad provides core primitives for numerical quadrature sweeps.
//
// The package defines the fundamental interfaces and types for
// approximating definite integrals on a uniform grid:
//
//   - [Integrand]: scalar function being integrated
//   - [Rule]: estimator over sampled points (rectangle, trapezoid)
//   - [FuncRule]: estimator that consumes the integrand directly
//   - [Panel]: one sub-interval base with its sampled height
//   - [Config]: interval, initial step and halving count for a sweep
//
// # Example
//
//	f := integrand.NewPolySin()
//	xs, ys, _ := quad.Sample(f, 0, 1000, 1)
//	est, _ := rules.NewRectangle().Estimate(xs, ys, 1)
//
// # Thread Safety
//
// Sampling and panel construction are pure functions. Rule values are
// NOT safe for concurrent use; the parallel sweep creates one per
// goroutine.
package quad
