package sweep

import (
	"context"
	"time"

	"github.com/san-kum/quadlab/internal/quad"
)

// Runner drives one rule across a geometric sequence of halving step
// sizes, timing each trial.
type Runner struct {
	f    quad.Integrand
	rule quad.Rule
	ref  quad.FuncRule
}

func New(f quad.Integrand, rule quad.Rule) *Runner {
	return &Runner{f: f, rule: rule}
}

// SetReference attaches a function-based rule whose value is recorded
// on the result as the ground-truth comparison point.
func (r *Runner) SetReference(ref quad.FuncRule) { r.ref = ref }

func (r *Runner) Run(ctx context.Context, cfg quad.Config) (*quad.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &quad.Result{
		Rule:      r.rule.Name(),
		Integrand: r.f.Name(),
		Trials:    make([]quad.Trial, 0, cfg.Halvings),
	}

	if r.ref != nil {
		result.Reference = r.ref.EstimateFunc(r.f, cfg.Start, cfg.Stop)
		result.HasRef = true
	}

	step := cfg.Step
	for i := 0; i < cfg.Halvings; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		trial, err := r.Trial(cfg, step)
		if err != nil {
			return result, &quad.TrialError{Trial: i, Step: step, Wrapped: err}
		}

		result.Trials = append(result.Trials, trial)
		step *= 0.5
	}

	return result, nil
}

// Trial times sampling plus estimation at one step size as a unit.
func (r *Runner) Trial(cfg quad.Config, step float64) (quad.Trial, error) {
	start := time.Now()

	var est float64
	var points int
	if fr, ok := r.rule.(quad.FuncRule); ok {
		est = fr.EstimateFunc(r.f, cfg.Start, cfg.Stop)
	} else {
		xs, ys, err := quad.Sample(r.f, cfg.Start, cfg.Stop, step)
		if err != nil {
			return quad.Trial{}, err
		}
		points = len(xs)
		est, err = r.rule.Estimate(xs, ys, step)
		if err != nil {
			return quad.Trial{}, err
		}
	}

	return quad.Trial{
		Step:     step,
		Points:   points,
		Estimate: est,
		Elapsed:  time.Since(start),
	}, nil
}
