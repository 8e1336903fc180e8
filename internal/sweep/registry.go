package sweep

import (
	"fmt"
	"sort"

	"github.com/san-kum/quadlab/internal/integrand"
	"github.com/san-kum/quadlab/internal/quad"
	"github.com/san-kum/quadlab/internal/rules"
)

type Registry struct {
	rules      map[string]func() quad.Rule
	integrands map[string]func() quad.Integrand
}

func NewRegistry() *Registry {
	r := &Registry{
		rules:      make(map[string]func() quad.Rule),
		integrands: make(map[string]func() quad.Integrand),
	}

	r.rules["rectangle"] = func() quad.Rule { return rules.NewRectangle() }
	r.rules["trapezoid"] = func() quad.Rule { return rules.NewTrapezoid() }
	r.rules["gauss"] = func() quad.Rule { return rules.NewGauss() }

	r.integrands["polysin"] = func() quad.Integrand { return integrand.NewPolySin() }
	r.integrands["poly"] = func() quad.Integrand {
		return integrand.NewPolynomial(4, 7, 5, 2)
	}
	r.integrands["linear"] = func() quad.Integrand {
		return integrand.NewPolynomial(0, 1)
	}

	return r
}

func (r *Registry) GetRule(name string) (quad.Rule, error) {
	fn, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrand(name string) (quad.Integrand, error) {
	fn, ok := r.integrands[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrand: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListRules() []string {
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListIntegrands() []string {
	names := make([]string, 0, len(r.integrands))
	for name := range r.integrands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
