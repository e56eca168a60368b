package simplify

import (
	"math"
	"sync"

	"github.com/HellFelix/number-diff/pkg/expr"
)

// Probes are the integers ProbeMin through ProbeMax-1.
const (
	ProbeMin = -1000
	ProbeMax = 1000
)

// Agree reports whether a and b match exactly or within tol relative to the
// larger magnitude (floored at 1). A tol of 0 demands exact equality.
func Agree(a, b, tol float64) bool {
	if a == b {
		return true
	}
	if tol <= 0 || math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

// Verify evaluates original and candidate at every probe and returns an
// *InternalError for the smallest probe where they disagree. Probes where
// original is NaN are skipped.
func (s *Simplifier) Verify(original, candidate expr.ExprNode) error {
	n := ProbeMax - ProbeMin
	mismatch := make([]bool, n)
	want := make([]float64, n)
	got := make([]float64, n)

	workers := s.opts.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				x := float64(ProbeMin + i)
				a := original.EvalF64(x)
				if math.IsNaN(a) {
					continue
				}
				b := candidate.EvalF64(x)
				if !Agree(a, b, s.opts.Tolerance) {
					mismatch[i] = true
					want[i] = a
					got[i] = b
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, bad := range mismatch {
		if bad {
			return &InternalError{
				Original:  original,
				Candidate: candidate,
				Probe:     float64(ProbeMin + i),
				Want:      want[i],
				Got:       got[i],
			}
		}
	}
	return nil
}

// Verify checks candidate against original with the default options.
func Verify(original, candidate expr.ExprNode) error {
	return defaultSimplifier.Verify(original, candidate)
}
