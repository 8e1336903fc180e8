package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/quadlab/internal/quad"
	"github.com/san-kum/quadlab/internal/rules"
)

type constIntegrand struct{}

func (constIntegrand) Eval(x float64) float64 { return 5 }
func (constIntegrand) Name() string           { return "const5" }

func TestRunnerHalvesSteps(t *testing.T) {
	r := New(constIntegrand{}, rules.NewRectangle())

	cfg := quad.Config{Start: 0, Stop: 10, Step: 1, Halvings: 4}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Trials) != 4 {
		t.Fatalf("expected 4 trials, got %d", len(result.Trials))
	}

	expectedSteps := []float64{1, 0.5, 0.25, 0.125}
	for i, trial := range result.Trials {
		if trial.Step != expectedSteps[i] {
			t.Errorf("trial %d: expected step %g, got %g", i, expectedSteps[i], trial.Step)
		}
		// Flat integrand: every step size covers exactly 10 * 5.
		if math.Abs(trial.Estimate-50) > 1e-9 {
			t.Errorf("trial %d: expected estimate 50, got %f", i, trial.Estimate)
		}
		if trial.Points == 0 {
			t.Errorf("trial %d: expected sampled points", i)
		}
	}
}

func TestRunnerReference(t *testing.T) {
	r := New(constIntegrand{}, rules.NewTrapezoid())
	r.SetReference(rules.NewGauss())

	cfg := quad.Config{Start: 0, Stop: 10, Step: 1, Halvings: 1}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.HasRef {
		t.Fatal("expected reference value on result")
	}
	if math.Abs(result.Reference-50) > 1e-9 {
		t.Errorf("expected reference 50, got %f", result.Reference)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := New(constIntegrand{}, rules.NewRectangle())

	tests := []struct {
		name string
		cfg  quad.Config
	}{
		{"zero step", quad.Config{Start: 0, Stop: 10, Step: 0, Halvings: 3}},
		{"negative step", quad.Config{Start: 0, Stop: 10, Step: -1, Halvings: 3}},
		{"no halvings", quad.Config{Start: 0, Stop: 10, Step: 1, Halvings: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerSurfacesTrialError(t *testing.T) {
	r := New(constIntegrand{}, rules.NewRectangle())

	// Positive step, but far too small for the interval: the first
	// trial fails and the failure arrives wrapped with its trial
	// context.
	cfg := quad.Config{Start: 0, Stop: 1000, Step: 1e-14, Halvings: 3}
	result, err := r.Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error for vanishing step")
	}
	if !errors.Is(err, quad.ErrStepVanished) {
		t.Errorf("expected ErrStepVanished, got %v", err)
	}

	var terr *quad.TrialError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TrialError, got %T", err)
	}
	if terr.Trial != 0 || terr.Step != 1e-14 {
		t.Errorf("unexpected trial context: %+v", terr)
	}

	if result == nil {
		t.Fatal("expected partial result")
	}
	if len(result.Trials) != 0 {
		t.Errorf("expected no completed trials, got %d", len(result.Trials))
	}
}

func TestRunnerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(constIntegrand{}, rules.NewRectangle())
	cfg := quad.Config{Start: 0, Stop: 10, Step: 1, Halvings: 5}

	result, err := r.Run(ctx, cfg)
	if err == nil {
		t.Fatal("expected context error")
	}
	if result == nil {
		t.Fatal("expected partial result on cancellation")
	}
	if len(result.Trials) != 0 {
		t.Errorf("expected no completed trials, got %d", len(result.Trials))
	}
}

func TestRunnerFuncRuleSkipsSampling(t *testing.T) {
	r := New(constIntegrand{}, rules.NewGauss())

	cfg := quad.Config{Start: 0, Stop: 10, Step: 1, Halvings: 2}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, trial := range result.Trials {
		if trial.Points != 0 {
			t.Errorf("trial %d: function rule should not sample, got %d points", i, trial.Points)
		}
		if math.Abs(trial.Estimate-50) > 1e-9 {
			t.Errorf("trial %d: expected 50, got %f", i, trial.Estimate)
		}
	}
}

func TestEnsembleMatchesSequential(t *testing.T) {
	cfg := quad.Config{Start: 0, Stop: 100, Step: 1, Halvings: 6}

	seq := New(constIntegrand{}, rules.NewTrapezoid())
	seqResult, err := seq.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("sequential run failed: %v", err)
	}

	ens := NewEnsemble(constIntegrand{}, func() quad.Rule { return rules.NewTrapezoid() })
	ensResult, err := ens.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("ensemble run failed: %v", err)
	}

	if len(ensResult.Trials) != len(seqResult.Trials) {
		t.Fatalf("trial count mismatch: %d vs %d", len(ensResult.Trials), len(seqResult.Trials))
	}

	for i := range seqResult.Trials {
		if ensResult.Trials[i].Step != seqResult.Trials[i].Step {
			t.Errorf("trial %d: step mismatch", i)
		}
		if ensResult.Trials[i].Estimate != seqResult.Trials[i].Estimate {
			t.Errorf("trial %d: estimate mismatch: %f vs %f",
				i, ensResult.Trials[i].Estimate, seqResult.Trials[i].Estimate)
		}
	}
}
