package quad_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quadlab/internal/quad"
)

var _ = Describe("BuildPanels", func() {
	It("centers every panel on its sample point", func() {
		xs := []float64{0, 1, 2, 3}
		ys := []float64{5, 6, 7, 8}

		panels, err := quad.BuildPanels(xs, ys, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(panels).To(HaveLen(4))

		Expect(panels[1].Left).To(Equal(0.5))
		Expect(panels[1].Right).To(Equal(1.5))
		Expect(panels[1].Height).To(Equal(6.0))
	})

	It("pulls the boundary edges inward by half a step", func() {
		xs := []float64{0, 1, 2}
		ys := []float64{1, 1, 1}

		panels, err := quad.BuildPanels(xs, ys, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(panels[0].Left).To(Equal(0.0))
		Expect(panels[2].Right).To(Equal(2.0))
	})

	It("covers exactly the sampled range", func() {
		xs := []float64{0, 0.5, 1.0, 1.5, 2.0}
		ys := []float64{1, 2, 3, 4, 5}

		panels, err := quad.BuildPanels(xs, ys, 0.5)
		Expect(err).NotTo(HaveOccurred())

		total := 0.0
		for _, p := range panels {
			total += p.Width()
		}
		Expect(total).To(BeNumerically("~", 2.0, 1e-12))
	})

	It("collapses a single point to a zero-width panel", func() {
		panels, err := quad.BuildPanels([]float64{3}, []float64{9}, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(panels).To(HaveLen(1))
		Expect(panels[0].Width()).To(BeZero())
	})

	It("returns no panels for empty input", func() {
		panels, err := quad.BuildPanels(nil, nil, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(panels).To(BeEmpty())
	})

	It("rejects mismatched sequence lengths", func() {
		_, err := quad.BuildPanels([]float64{0, 1}, []float64{0}, 1)
		Expect(err).To(MatchError(quad.ErrLengthMismatch))
	})

	It("rejects a non-positive step", func() {
		_, err := quad.BuildPanels([]float64{0}, []float64{0}, 0)
		Expect(err).To(MatchError(quad.ErrNonPositiveStep))
	})
})

var _ = Describe("Result", func() {
	It("exposes aligned trial columns", func() {
		r := &quad.Result{
			Trials: []quad.Trial{
				{Step: 1, Estimate: 10, Elapsed: 2 * time.Millisecond},
				{Step: 0.5, Estimate: 11, Elapsed: 4 * time.Millisecond},
			},
		}

		Expect(r.Steps()).To(Equal([]float64{1, 0.5}))
		Expect(r.Estimates()).To(Equal([]float64{10, 11}))
		Expect(r.TimesSeconds()).To(Equal([]float64{0.002, 0.004}))
	})
})

var _ = Describe("Config", func() {
	It("defaults to the classic sweep", func() {
		cfg := quad.DefaultConfig()
		Expect(cfg.Start).To(Equal(0.0))
		Expect(cfg.Stop).To(Equal(1000.0))
		Expect(cfg.Step).To(Equal(1.0))
		Expect(cfg.Halvings).To(Equal(13))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("rejects a non-positive step", func() {
		cfg := quad.DefaultConfig()
		cfg.Step = 0
		Expect(cfg.Validate()).To(MatchError(quad.ErrNonPositiveStep))
	})

	It("rejects a sweep with no trials", func() {
		cfg := quad.DefaultConfig()
		cfg.Halvings = 0
		Expect(cfg.Validate()).To(MatchError(quad.ErrNoHalvings))
	})
})
