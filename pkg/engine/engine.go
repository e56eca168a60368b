// Package engine ties the parser, the symbolic passes and the numeric passes
// together behind one configured façade and produces reports for them.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HellFelix/number-diff/pkg/classify"
	"github.com/HellFelix/number-diff/pkg/deriv"
	"github.com/HellFelix/number-diff/pkg/expr"
	"github.com/HellFelix/number-diff/pkg/integrate"
	"github.com/HellFelix/number-diff/pkg/optimize"
	"github.com/HellFelix/number-diff/pkg/parse"
	"github.com/HellFelix/number-diff/pkg/pool"
	"github.com/HellFelix/number-diff/pkg/series"
	"github.com/HellFelix/number-diff/pkg/simplify"
	"github.com/HellFelix/number-diff/pkg/special"
)

const (
	// maxFailures bounds the failures listed in a check report.
	maxFailures = 10

	derivStep      = 1e-5
	derivTolerance = 1e-4
	derivProbe     = 1.25
)

// Engine runs operations with a fixed configuration.
type Engine struct {
	cfg        Config
	log        *slog.Logger
	simplifier *simplify.Simplifier
	expander   *series.Expander
}

// New creates a new engine from the given config. A nil logger discards.
func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := simplify.New(cfg.SimplifyOptions())
	return &Engine{
		cfg:        cfg,
		log:        logger,
		simplifier: s,
		expander:   series.NewExpander(s),
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

func newHeader(command string) Header {
	return Header{
		RunID:     uuid.New(),
		Command:   command,
		Timestamp: time.Now().UTC(),
	}
}

func (e *Engine) parse(input string) (expr.ExprNode, error) {
	tree, err := parse.Parse(input)
	if err != nil {
		e.log.Debug("parse failed", "input", input, "err", err)
		return nil, err
	}
	e.log.Debug("parsed", "input", input, "tree", tree.String(), "nodes", tree.NodeCount())
	return tree, nil
}

// Eval evaluates input at every point of xs.
func (e *Engine) Eval(input string, xs []float64) (*EvalReport, error) {
	tree, err := e.parse(input)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ys := e.evaluatePoints(tree, xs)
	e.log.Debug("evaluated", "points", len(xs), "elapsed", time.Since(start))

	r := &EvalReport{Header: newHeader("eval"), Expression: tree.String()}
	for i, x := range xs {
		r.Points = append(r.Points, Point{X: Value(x), Y: Value(ys[i])})
	}
	return r, nil
}

// evaluatePoints evaluates tree at every x in parallel. The result order
// matches xs.
func (e *Engine) evaluatePoints(tree expr.ExprNode, xs []float64) []float64 {
	n := len(xs)
	ys := make([]float64, n)

	workers := e.workers(n)
	jobs := make(chan int, n)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ys[i] = tree.EvalF64(xs[i])
			}
		}()
	}

	for i := range xs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return ys
}

func (e *Engine) workers(n int) int {
	workers := e.cfg.Simplify.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > n && n > 0 {
		workers = n
	}
	return workers
}

// Diff differentiates input. With raw set the derivative is returned exactly
// as the differentiation rules build it.
func (e *Engine) Diff(input string, raw bool) (*DiffReport, error) {
	tree, err := e.parse(input)
	if err != nil {
		return nil, err
	}

	d := deriv.Differentiate(tree)
	if !raw {
		d, err = e.simplifier.Simplify(d)
		if err != nil {
			e.log.Debug("derivative simplification failed", "tree", tree.String(), "err", err)
			return nil, fmt.Errorf("simplify derivative: %w", err)
		}
	}
	return &DiffReport{
		Header:     newHeader("diff"),
		Expression: tree.String(),
		Derivative: d.String(),
		LaTeX:      d.LaTeX(),
		Simplified: !raw,
		Tree:       d,
	}, nil
}

// Simplify classifies and simplifies input.
func (e *Engine) Simplify(input string) (*SimplifyReport, error) {
	tree, err := e.parse(input)
	if err != nil {
		return nil, err
	}

	cat := classify.Classify(tree)
	start := time.Now()
	out, err := e.simplifier.Simplify(tree)
	if err != nil {
		e.log.Debug("simplification failed", "tree", tree.String(), "category", cat, "err", err)
		return nil, err
	}
	e.log.Debug("simplified", "category", cat, "nodes", out.NodeCount(), "elapsed", time.Since(start))

	return &SimplifyReport{
		Header:      newHeader("simplify"),
		Expression:  tree.String(),
		Category:    cat.String(),
		Simplified:  out.String(),
		LaTeX:       out.LaTeX(),
		NodesBefore: tree.NodeCount(),
		NodesAfter:  out.NodeCount(),
		Tree:        out,
	}, nil
}

// Classify reports the category of input and every individual predicate.
func (e *Engine) Classify(input string) (*ClassifyReport, error) {
	tree, err := e.parse(input)
	if err != nil {
		return nil, err
	}
	return &ClassifyReport{
		Header:        newHeader("classify"),
		Expression:    tree.String(),
		Category:      classify.Classify(tree).String(),
		Constant:      classify.IsConstant(tree),
		Linear:        classify.IsLinear(tree),
		Exponential:   classify.IsExponential(tree),
		Polynomial:    classify.IsPolynomial(tree),
		Trigonometric: classify.IsTrig(tree),
	}, nil
}

// Integrate integrates input over [lo, hi] at the configured precision.
func (e *Engine) Integrate(input string, lo, hi float64) (*IntegralReport, error) {
	tree, err := e.parse(input)
	if err != nil {
		return nil, err
	}

	p := e.cfg.Integrate.Precision
	start := time.Now()
	v, err := integrate.New(tree).LowerBound(lo).UpperBound(hi).Precision(p).Evaluate()
	if err != nil {
		return nil, fmt.Errorf("integrate: %w", err)
	}
	e.log.Debug("integrated", "precision", p, "elapsed", time.Since(start))

	return &IntegralReport{
		Header:     newHeader("integrate"),
		Expression: tree.String(),
		From:       Value(lo),
		To:         Value(hi),
		Precision:  p,
		Value:      Value(v),
	}, nil
}

// Taylor expands input with the configured order and center, and measures
// the expansion over [center-1, center+1].
func (e *Engine) Taylor(input string) (*TaylorReport, error) {
	tree, err := e.parse(input)
	if err != nil {
		return nil, err
	}

	order, center := e.cfg.Series.Order, e.cfg.Series.Center
	var exp *series.Expansion
	if center == 0 {
		exp, err = e.expander.Maclaurin(tree, order)
	} else {
		exp, err = e.expander.Taylor(tree, order, center)
	}
	if err != nil {
		e.log.Debug("expansion failed", "tree", tree.String(), "order", order, "center", center, "err", err)
		return nil, err
	}

	lo, hi := center-1, center+1
	acc := series.MeasureAccuracy(tree, exp, lo, hi, e.cfg.Series.Samples)
	e.log.Debug("expanded", "kind", exp.Kind, "order", order, "digits", acc.CorrectDigits)

	return &TaylorReport{
		Header:     newHeader("taylor"),
		Expression: tree.String(),
		Kind:       exp.Kind.String(),
		Order:      order,
		Center:     Value(center),
		Expansion:  exp.Tree.String(),
		LaTeX:      exp.Tree.LaTeX(),
		Tree:       exp.Tree,
		Accuracy: AccuracyReport{
			From:          Value(lo),
			To:            Value(hi),
			MaxDeviation:  Value(acc.MaxDeviation),
			WorstX:        Value(acc.WorstX),
			CorrectDigits: Value(acc.CorrectDigits),
			Samples:       acc.Samples,
		},
	}, nil
}

// Extremum searches [lo, hi] for the minimum of input, or its maximum when
// maximize is set, with golden-section search at the configured tolerance.
func (e *Engine) Extremum(input string, lo, hi float64, maximize bool) (*ExtremumReport, error) {
	tree, err := e.parse(input)
	if err != nil {
		return nil, err
	}

	search, kind := optimize.Minimize, "minimum"
	if maximize {
		search, kind = optimize.Maximize, "maximum"
	}
	tol := e.cfg.Optimize.Tolerance
	res, err := search(expr.Func(tree), lo, hi, tol)
	if err != nil {
		return nil, fmt.Errorf("extremum: %w", err)
	}
	e.log.Debug("searched", "kind", kind, "tolerance", tol, "iterations", res.Iterations)

	return &ExtremumReport{
		Header:     newHeader("extremum"),
		Expression: tree.String(),
		Kind:       kind,
		From:       Value(lo),
		To:         Value(hi),
		X:          Value(res.X),
		Value:      Value(res.Value),
		Iterations: res.Iterations,
	}, nil
}

// Special evaluates gamma, digamma or polygamma at z through its defining
// integral, next to the series value the evaluator uses.
func (e *Engine) Special(function string, order int, z float64) (*SpecialReport, error) {
	r := &SpecialReport{
		Header:   newHeader("special"),
		Function: function,
		Order:    order,
		Argument: Value(z),
	}
	switch function {
	case "gamma":
		r.Order = 0
		r.Integral = Value(special.Gamma(z))
		r.Series = Value(expr.Gamma(z))
	case "digamma":
		r.Order = 0
		r.Integral = Value(special.Digamma(z))
		r.Series = Value(expr.Polygamma(0, z))
	case "polygamma":
		if order < 0 {
			return nil, fmt.Errorf("polygamma order must be >= 0, got %d", order)
		}
		r.Integral = Value(special.Polygamma(order, z))
		r.Series = Value(expr.Polygamma(order, z))
	default:
		return nil, fmt.Errorf("unknown special function: %s", function)
	}
	return r, nil
}

// checkResult is the outcome of self-checking one tree.
type checkResult struct {
	simplifyErr error
	derivOK     bool
	derivDone   bool
}

// Check generates random trees from the configured pool and verifies that
// each one simplifies and that its symbolic derivative matches a central
// difference.
func (e *Engine) Check() (*CheckReport, error) {
	cc := e.cfg.Check
	p, err := pool.Get(cc.Pool)
	if err != nil {
		return nil, err
	}

	seed := cc.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	trees := make([]expr.ExprNode, cc.Count)
	for i := range trees {
		trees[i] = p.RandomTree(rng, cc.Depth)
	}

	e.log.Info("check started", "pool", cc.Pool, "count", cc.Count, "depth", cc.Depth, "seed", seed)
	start := time.Now()
	results := e.checkTrees(trees)

	r := &CheckReport{
		Header: newHeader("check"),
		Pool:   cc.Pool,
		Count:  cc.Count,
		Depth:  cc.Depth,
		Seed:   seed,
	}
	fail := func(tree expr.ExprNode, stage string, err error) {
		if len(r.Failures) < maxFailures {
			r.Failures = append(r.Failures, CheckFailure{Tree: tree.String(), Stage: stage, Error: err.Error()})
		}
	}

	for i, res := range results {
		var internal *simplify.InternalError
		switch {
		case res.simplifyErr == nil:
			r.Simplified++
		case errors.As(res.simplifyErr, &internal):
			r.Mismatches++
			fail(trees[i], "simplify", res.simplifyErr)
			e.log.Warn("simplifier mismatch", "tree", trees[i].String(), "probe", internal.Probe)
		default:
			r.Unsupported++
		}

		if res.derivDone {
			r.DerivChecked++
			if !res.derivOK {
				r.DerivMismatches++
				fail(trees[i], "derivative", errDerivMismatch)
			}
		}
	}
	r.Elapsed = time.Since(start)
	e.log.Info("check finished", "simplified", r.Simplified, "mismatches", r.Mismatches, "elapsed", r.Elapsed)
	return r, nil
}

var errDerivMismatch = errors.New("symbolic derivative disagrees with central difference")

// checkTrees checks all trees in parallel.
func (e *Engine) checkTrees(trees []expr.ExprNode) []checkResult {
	n := len(trees)
	results := make([]checkResult, n)

	type job struct {
		idx  int
		tree expr.ExprNode
	}

	jobs := make(chan job, n)
	var wg sync.WaitGroup

	for w := 0; w < e.workers(n); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = e.checkTree(j.tree)
			}
		}()
	}

	for i, t := range trees {
		jobs <- job{idx: i, tree: t}
	}
	close(jobs)
	wg.Wait()

	return results
}

func (e *Engine) checkTree(tree expr.ExprNode) checkResult {
	var res checkResult
	_, res.simplifyErr = e.simplifier.Simplify(tree)

	fp := tree.EvalF64(derivProbe + derivStep)
	fm := tree.EvalF64(derivProbe - derivStep)
	analytic := deriv.Differentiate(tree).EvalF64(derivProbe)
	if !finite(fp) || !finite(fm) || !finite(analytic) {
		return res
	}
	numeric := (fp - fm) / (2 * derivStep)
	res.derivDone = true
	res.derivOK = math.Abs(analytic-numeric) <= derivTolerance*math.Max(1, math.Abs(numeric))
	return res
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
