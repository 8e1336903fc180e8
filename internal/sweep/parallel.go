package sweep

import (
	"context"
	"sync"

	"github.com/san-kum/quadlab/internal/quad"
)

// Ensemble runs every trial of a sweep concurrently. Trials are
// independent, so the only shared piece is the rule constructor: each
// goroutine builds its own rule value.
type Ensemble struct {
	f       quad.Integrand
	newRule func() quad.Rule
	ref     quad.FuncRule
}

func NewEnsemble(f quad.Integrand, newRule func() quad.Rule) *Ensemble {
	return &Ensemble{f: f, newRule: newRule}
}

func (e *Ensemble) SetReference(ref quad.FuncRule) { e.ref = ref }

func (e *Ensemble) Run(ctx context.Context, cfg quad.Config) (*quad.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	probe := e.newRule()
	result := &quad.Result{
		Rule:      probe.Name(),
		Integrand: e.f.Name(),
		Trials:    make([]quad.Trial, cfg.Halvings),
	}

	if e.ref != nil {
		result.Reference = e.ref.EstimateFunc(e.f, cfg.Start, cfg.Stop)
		result.HasRef = true
	}

	errs := make([]error, cfg.Halvings)
	steps := make([]float64, cfg.Halvings)

	var wg sync.WaitGroup
	step := cfg.Step
	for i := 0; i < cfg.Halvings; i++ {
		steps[i] = step
		wg.Add(1)
		go func(idx int, s float64) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			default:
			}

			r := New(e.f, e.newRule())
			result.Trials[idx], errs[idx] = r.Trial(cfg, s)
		}(i, step)
		step *= 0.5
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return result, &quad.TrialError{Trial: i, Step: steps[i], Wrapped: err}
		}
	}

	return result, nil
}
