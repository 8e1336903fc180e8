package integrand

import (
	"fmt"
	"math"
	"strings"
)

// PolySin is the default integrand: a polynomial with power-indexed
// coefficients plus a weighted sine term.
//
//	f(x) = sum_i Coeffs[i]*x^i + SinAmp*sin(x)
type PolySin struct {
	Coeffs []float64
	SinAmp float64
}

// NewPolySin returns the classic integrand
// f(x) = 4 + 7x + 5x^2 + 2x^3 + 4*sin(x).
func NewPolySin() *PolySin {
	return &PolySin{
		Coeffs: []float64{4, 7, 5, 2},
		SinAmp: 4,
	}
}

func (p *PolySin) Eval(x float64) float64 {
	y := 0.0
	pow := 1.0
	for _, c := range p.Coeffs {
		y += c * pow
		pow *= x
	}
	return y + p.SinAmp*math.Sin(x)
}

func (p *PolySin) Name() string {
	var b strings.Builder
	b.WriteString("poly[")
	for i, c := range p.Coeffs {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g", c)
	}
	fmt.Fprintf(&b, "]+%g*sin", p.SinAmp)
	return b.String()
}

// Antiderivative evaluates the closed-form antiderivative at x, used
// as an exact comparison point for convergence checks.
func (p *PolySin) Antiderivative(x float64) float64 {
	y := 0.0
	pow := x
	for i, c := range p.Coeffs {
		y += c * pow / float64(i+1)
		pow *= x
	}
	return y - p.SinAmp*math.Cos(x)
}

// Polynomial is an integrand with power-indexed coefficients and no
// transcendental term.
type Polynomial struct {
	Coeffs []float64
}

func NewPolynomial(coeffs ...float64) *Polynomial {
	return &Polynomial{Coeffs: coeffs}
}

func (p *Polynomial) Eval(x float64) float64 {
	y := 0.0
	pow := 1.0
	for _, c := range p.Coeffs {
		y += c * pow
		pow *= x
	}
	return y
}

func (p *Polynomial) Name() string {
	parts := make([]string, len(p.Coeffs))
	for i, c := range p.Coeffs {
		parts[i] = fmt.Sprintf("%g", c)
	}
	return "poly[" + strings.Join(parts, " ") + "]"
}
