package config

import "sort"

var Presets = map[string]*Config{
	// The original experiment: [0,1000], step 1, 13 halvings.
	"classic": {
		Integrand: "polysin", Rule: "rectangle",
		Start: 0, Stop: 1000, Step: 1, Halvings: 13,
		Coeffs: []float64{4, 7, 5, 2}, SinAmp: 4,
	},
	"quick": {
		Integrand: "polysin", Rule: "rectangle",
		Start: 0, Stop: 100, Step: 1, Halvings: 8,
		Coeffs: []float64{4, 7, 5, 2}, SinAmp: 4,
	},
	"smooth": {
		Integrand: "poly", Rule: "trapezoid",
		Start: 0, Stop: 1000, Step: 1, Halvings: 13,
		Coeffs: []float64{4, 7, 5, 2},
	},
	"linear": {
		Integrand: "linear", Rule: "trapezoid",
		Start: 0, Stop: 4, Step: 1, Halvings: 6,
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Coeffs = append([]float64(nil), p.Coeffs...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
