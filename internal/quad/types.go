package quad

import "time"

// Integrand is a scalar function of one variable.
type Integrand interface {
	Eval(x float64) float64
	Name() string
}

// Func adapts a plain function to the Integrand interface.
type Func struct {
	F     func(float64) float64
	Label string
}

func (f Func) Eval(x float64) float64 { return f.F(x) }

func (f Func) Name() string {
	if f.Label == "" {
		return "func"
	}
	return f.Label
}

// Panel is one sub-interval base covering roughly one step width.
// Height carries the sampled value at the panel's center point.
type Panel struct {
	Left   float64
	Right  float64
	Height float64
}

func (p Panel) Width() float64 {
	w := p.Right - p.Left
	if w < 0 {
		return -w
	}
	return w
}

// Rule estimates an integral from aligned sample sequences.
type Rule interface {
	Name() string
	Estimate(xs, ys []float64, step float64) (float64, error)
}

// FuncRule is implemented by rules that evaluate the integrand
// directly instead of consuming a sampled grid. The sweep runner
// type-asserts for it, the same way an adaptive method bypasses
// fixed stepping.
type FuncRule interface {
	Rule
	EstimateFunc(f Integrand, start, stop float64) float64
}

type Config struct {
	Start    float64
	Stop     float64
	Step     float64
	Halvings int
}

func DefaultConfig() Config {
	return Config{
		Start:    0,
		Stop:     1000,
		Step:     1,
		Halvings: 13,
	}
}

func (c Config) Validate() error {
	if c.Step <= 0 {
		return ErrNonPositiveStep
	}
	if c.Halvings < 1 {
		return ErrNoHalvings
	}
	return nil
}

// Trial is the outcome of one estimate at one step size.
type Trial struct {
	Step     float64
	Points   int
	Estimate float64
	Elapsed  time.Duration
}

// Result collects the trials of a sweep plus the library reference
// value for the same interval, when one was computed. A failed trial
// surfaces as the wrapped TrialError returned alongside the partial
// result.
type Result struct {
	Rule      string
	Integrand string
	Trials    []Trial
	Reference float64
	HasRef    bool
}

// Steps returns the step size of every trial in order.
func (r *Result) Steps() []float64 {
	s := make([]float64, len(r.Trials))
	for i, t := range r.Trials {
		s[i] = t.Step
	}
	return s
}

// TimesSeconds returns per-trial elapsed time in seconds, in order.
func (r *Result) TimesSeconds() []float64 {
	s := make([]float64, len(r.Trials))
	for i, t := range r.Trials {
		s[i] = t.Elapsed.Seconds()
	}
	return s
}

// Estimates returns the estimate of every trial in order.
func (r *Result) Estimates() []float64 {
	s := make([]float64, len(r.Trials))
	for i, t := range r.Trials {
		s[i] = t.Estimate
	}
	return s
}
