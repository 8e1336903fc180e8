package quad

// MaxSamples bounds the number of grid points one Sample call will
// produce. A positive step that would need more points than this to
// cover the interval is rejected as vanished before anything is
// allocated.
const MaxSamples = 1 << 26

// Sample evaluates f on a uniform grid over [start, stop]. The grid
// begins at start and advances by step while the current point is
// still <= stop; the last point may fall short of stop when step does
// not divide the range evenly. A start beyond stop yields empty
// sequences and no error.
//
// A step too small to advance the grid anywhere on the interval
// (x+step rounds back to x in float64, which happens at large |x|
// even when the step advances at start) returns ErrStepVanished
// rather than looping forever.
func Sample(f Integrand, start, stop, step float64) (xs, ys []float64, err error) {
	if step <= 0 {
		return nil, nil, ErrNonPositiveStep
	}
	if start > stop {
		return []float64{}, []float64{}, nil
	}
	if (stop-start)/step+1 > MaxSamples {
		return nil, nil, ErrStepVanished
	}

	n := int((stop-start)/step) + 1
	xs = make([]float64, 0, n)
	ys = make([]float64, 0, n)

	for x := start; x <= stop; x += step {
		if x+step == x {
			return nil, nil, ErrStepVanished
		}
		xs = append(xs, x)
		ys = append(ys, f.Eval(x))
	}
	return xs, ys, nil
}
