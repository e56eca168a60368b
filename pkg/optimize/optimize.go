// Package optimize locates extrema of real functions on closed intervals by
// golden-section search.
package optimize

import (
	"errors"
	"math"
)

// DefaultTolerance is the interval width at which the search stops.
const DefaultTolerance = 1e-5

const (
	invPhi  = 0.61803398874989484820 // (√5 - 1) / 2
	invPhi2 = 0.38196601125010515180 // (3 - √5) / 2
)

var (
	ErrTolerance = errors.New("tolerance must be positive and finite")
	ErrBounds    = errors.New("bounds must be finite")
)

// Result is the outcome of a search.
type Result struct {
	X     float64
	Value float64
	// Lo and Hi bracket the interior extremum the search converged to.
	Lo, Hi     float64
	Iterations int
}

// GoldenSection narrows [a, b] around a minimum of f until it is at most tol
// wide and returns the final bracket with the number of steps taken. The
// bounds may be given in either order. f is assumed unimodal on [a, b];
// otherwise the bracket holds some local minimum.
func GoldenSection(f func(float64) float64, a, b, tol float64) (lo, hi float64, steps int, err error) {
	if !(tol > 0) || math.IsInf(tol, 0) {
		return 0, 0, 0, ErrTolerance
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0, 0, 0, ErrBounds
	}
	if a > b {
		a, b = b, a
	}

	h := b - a
	if h <= tol {
		return a, b, 0, nil
	}

	n := int(math.Ceil(math.Log(tol/h) / math.Log(invPhi)))
	c := a + invPhi2*h
	d := a + invPhi*h
	fc, fd := f(c), f(d)

	for i := 0; i < n; i++ {
		h *= invPhi
		if fc < fd {
			b, d, fd = d, c, fc
			c = a + invPhi2*h
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*h
			fd = f(d)
		}
	}

	if fc < fd {
		return a, d, n, nil
	}
	return c, b, n, nil
}

// Minimize returns the smallest value of f on [a, b]. The interior
// candidate found by GoldenSection competes with both endpoints.
func Minimize(f func(float64) float64, a, b, tol float64) (Result, error) {
	lo, hi, steps, err := GoldenSection(f, a, b, tol)
	if err != nil {
		return Result{}, err
	}

	mid := (lo + hi) / 2
	best := Result{X: mid, Value: f(mid), Lo: lo, Hi: hi, Iterations: steps}
	for _, x := range []float64{a, b} {
		if v := f(x); v < best.Value || math.IsNaN(best.Value) {
			best.X, best.Value = x, v
		}
	}
	return best, nil
}

// Maximize returns the largest value of f on [a, b].
func Maximize(f func(float64) float64, a, b, tol float64) (Result, error) {
	r, err := Minimize(func(x float64) float64 { return -f(x) }, a, b, tol)
	r.Value = -r.Value
	return r, err
}
