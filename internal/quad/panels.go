package quad

// BuildPanels converts aligned samples into one panel per point. Each
// panel spans [x-step/2, x+step/2] at the sampled height, then the
// first panel's left edge and the last panel's right edge are pulled
// inward by half a step so the covered width equals the sampled range
// rather than range+step. With a single point both corrections land on
// the same panel and collapse it to zero width.
func BuildPanels(xs, ys []float64, step float64) ([]Panel, error) {
	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}
	if step <= 0 {
		return nil, ErrNonPositiveStep
	}

	panels := make([]Panel, len(xs))
	half := step / 2
	for i, x := range xs {
		panels[i] = Panel{
			Left:   x - half,
			Right:  x + half,
			Height: ys[i],
		}
	}

	if len(panels) > 0 {
		panels[0].Left += half
		panels[len(panels)-1].Right -= half
	}

	return panels, nil
}
