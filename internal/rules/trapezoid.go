package rules

import (
	"math"

	"github.com/san-kum/quadlab/internal/quad"
)

// Trapezoid averages adjacent panel heights over each panel base.
// Fewer than two samples yield an estimate of 0.
type Trapezoid struct{}

func NewTrapezoid() *Trapezoid {
	return &Trapezoid{}
}

func (t *Trapezoid) Name() string { return "trapezoid" }

func (t *Trapezoid) Estimate(xs, ys []float64, step float64) (float64, error) {
	panels, err := quad.BuildPanels(xs, ys, step)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for i := 0; i+1 < len(panels); i++ {
		h := math.Abs(panels[i].Height) + math.Abs(panels[i+1].Height)
		total += h * panels[i].Width() / 2
	}
	return total, nil
}
