// Package special evaluates the gamma family of functions through their
// defining integrals.
package special

import (
	"math"

	"github.com/HellFelix/number-diff/pkg/expr"
	"github.com/HellFelix/number-diff/pkg/integrate"
)

const (
	EulerMascheroni    = 0.57721566490153286060651209008240243104215933593992
	Tau                = 6.28318530717958647692528676655900576839433879875021
	GoldenRatio        = 1.61803398874989484820458683436563811772030917980576
	SilverRatio        = 2.41421356237309504880168872420969807856967187537694
	SupergoldenRatio   = 1.46557123187676802665673122521993910802557756847228
	BernsteinsConstant = 0.28016949902386913303
)

// Integration settings per function. The digamma family integrates over
// (0, 1) and stops eps short of each singular endpoint.
const (
	gammaUpper         = 100
	gammaPrecision     = 50000
	digammaPrecision   = 20000
	polygammaPrecision = 50000
	eps                = 1e-9
)

// minArg is the smallest argument integrated directly. Smaller arguments are
// shifted up with the recurrence relations so the integrands stay bounded.
const minArg = 2

// lowestArg is the smallest argument the recurrences shift from. Anything
// below evaluates to NaN.
const lowestArg = -1e6

func isPole(z float64) bool {
	return z <= 0 && z == math.Trunc(z)
}

func outOfDomain(z float64) bool {
	return math.IsNaN(z) || isPole(z) || z < lowestArg
}

// Gamma returns Γ(z) = ∫₀^∞ t^(z-1) e^(-t) dt, truncated at t = 100.
func Gamma(z float64) float64 {
	if outOfDomain(z) {
		return math.NaN()
	}

	// Γ(z) = Γ(z+1)/z
	divisor := 1.0
	for z < minArg {
		divisor *= z
		z++
	}

	t := expr.X()
	integrand := expr.Mul(
		expr.Pow(t, expr.C(z-1)),
		expr.Pow(expr.C(math.E), expr.Neg(t)),
	)
	v, _ := integrate.Integrate(integrand, 0, gammaUpper, gammaPrecision)
	return v / divisor
}

// Digamma returns ψ(z) = ∫₀¹ (1 - t^(z-1))/(1 - t) dt - γ.
func Digamma(z float64) float64 {
	if outOfDomain(z) {
		return math.NaN()
	}

	// ψ(z) = ψ(z+1) - 1/z
	shift := 0.0
	for z < minArg {
		shift -= 1 / z
		z++
	}

	t := expr.X()
	integrand := expr.Div(
		expr.Sub(expr.C(1), expr.Pow(t, expr.C(z-1))),
		expr.Sub(expr.C(1), t),
	)
	v, _ := integrate.Integrate(integrand, 0, 1-eps, digammaPrecision)
	return v - EulerMascheroni + shift
}

// Polygamma returns ψ⁽ᵐ⁾(z) = (-1)^(m+1) ∫₀¹ (-ln t)^m t^(z-1)/(1 - t) dt.
// Order 0 is Digamma.
func Polygamma(m int, z float64) float64 {
	if m < 0 || outOfDomain(z) {
		return math.NaN()
	}
	if m == 0 {
		return Digamma(z)
	}

	sign := 1.0
	if m%2 == 0 {
		sign = -1.0
	}

	// ψ⁽ᵐ⁾(z) = ψ⁽ᵐ⁾(z+1) - (-1)^m m!/z^(m+1)
	mFact := expr.Factorial(float64(m))
	shift := 0.0
	for z < minArg {
		shift += sign * mFact / math.Pow(z, float64(m+1))
		z++
	}

	t := expr.X()
	integrand := expr.Div(
		expr.Mul(
			expr.Pow(expr.Neg(expr.Ln(t)), expr.C(float64(m))),
			expr.Pow(t, expr.C(z-1)),
		),
		expr.Sub(expr.C(1), t),
	)
	v, _ := integrate.Integrate(integrand, eps, 1-eps, polygammaPrecision)
	return sign*v + shift
}
