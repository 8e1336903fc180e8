package rules

import (
	"math"

	"github.com/san-kum/quadlab/internal/quad"
)

// Rectangle is the midpoint panel rule: each sample contributes a
// constant-height rectangle over its panel.
type Rectangle struct{}

func NewRectangle() *Rectangle {
	return &Rectangle{}
}

func (r *Rectangle) Name() string { return "rectangle" }

func (r *Rectangle) Estimate(xs, ys []float64, step float64) (float64, error) {
	panels, err := quad.BuildPanels(xs, ys, step)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, p := range panels {
		total += p.Width() * math.Abs(p.Height)
	}
	return total, nil
}
