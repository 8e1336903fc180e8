package quad_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quadlab/internal/quad"
)

var _ = Describe("Sample", func() {
	square := quad.Func{F: func(x float64) float64 { return x * x }, Label: "x^2"}

	It("produces aligned xs and ys on a uniform grid", func() {
		xs, ys, err := quad.Sample(square, 0, 2, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(xs).To(Equal([]float64{0, 1, 2}))
		Expect(ys).To(Equal([]float64{0, 1, 4}))
	})

	It("includes the stop point when the step divides the range", func() {
		xs, _, err := quad.Sample(square, 0, 10, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(xs).To(HaveLen(6))
		Expect(xs[5]).To(Equal(10.0))
	})

	It("stops short of an unreachable upper bound", func() {
		xs, _, err := quad.Sample(square, 0, 1, 0.4)
		Expect(err).NotTo(HaveOccurred())
		Expect(xs).To(HaveLen(3))
		Expect(xs[2]).To(BeNumerically("~", 0.8, 1e-12))
	})

	It("returns empty sequences when start exceeds stop", func() {
		xs, ys, err := quad.Sample(square, 5, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(xs).To(BeEmpty())
		Expect(ys).To(BeEmpty())
	})

	It("rejects a zero step", func() {
		_, _, err := quad.Sample(square, 0, 10, 0)
		Expect(err).To(MatchError(quad.ErrNonPositiveStep))
	})

	It("rejects a negative step", func() {
		_, _, err := quad.Sample(square, 0, 10, -0.5)
		Expect(err).To(MatchError(quad.ErrNonPositiveStep))
	})

	It("rejects a step below floating-point spacing", func() {
		_, _, err := quad.Sample(square, 1e18, 1e18+10, 1e-3)
		Expect(err).To(MatchError(quad.ErrStepVanished))
	})

	It("rejects a step needing more than MaxSamples points", func() {
		// 1e17 grid points over [0,1000]: must fail fast instead of
		// attempting the allocation or grinding through the loop.
		_, _, err := quad.Sample(square, 0, 1000, 1e-14)
		Expect(err).To(MatchError(quad.ErrStepVanished))
	})

	It("rejects a step that vanishes partway through the grid", func() {
		// The step advances at start but is below half an ulp at
		// x=1024, where the grid would stall.
		start := math.Nextafter(1024, 0)
		_, _, err := quad.Sample(square, start, 1024.0000001, 1e-13)
		Expect(err).To(MatchError(quad.ErrStepVanished))
	})

	It("is deterministic across repeated calls", func() {
		xs1, ys1, err := quad.Sample(square, 0, 100, 0.25)
		Expect(err).NotTo(HaveOccurred())
		xs2, ys2, err := quad.Sample(square, 0, 100, 0.25)
		Expect(err).NotTo(HaveOccurred())
		Expect(xs2).To(Equal(xs1))
		Expect(ys2).To(Equal(ys1))
	})

	It("evaluates the integrand at every grid point", func() {
		f := quad.Func{F: math.Sin, Label: "sin"}
		xs, ys, err := quad.Sample(f, 0, 3, 0.5)
		Expect(err).NotTo(HaveOccurred())
		for i := range xs {
			Expect(ys[i]).To(Equal(math.Sin(xs[i])))
		}
	})
})
