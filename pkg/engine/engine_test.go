package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HellFelix/number-diff/pkg/expr"
	"github.com/HellFelix/number-diff/pkg/optimize"
	"github.com/HellFelix/number-diff/pkg/parse"
	"github.com/HellFelix/number-diff/pkg/series"
)

func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Simplify.Workers = 2
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numdiff.toml")
	content := `
[simplify]
tolerance = 1e-6
verify = false

[integrate]
precision = 250

[series]
order = 3
center = 1.5

[output]
format = "yaml"

[check]
pool = "trig"
seed = 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Simplify.Tolerance != 1e-6 || cfg.Simplify.Verify {
		t.Errorf("simplify section = %+v", cfg.Simplify)
	}
	if cfg.Integrate.Precision != 250 {
		t.Errorf("precision = %d, want 250", cfg.Integrate.Precision)
	}
	if cfg.Series.Order != 3 || cfg.Series.Center != 1.5 {
		t.Errorf("series section = %+v", cfg.Series)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("format = %q, want yaml", cfg.Output.Format)
	}
	if cfg.Check.Pool != "trig" || cfg.Check.Seed != 7 {
		t.Errorf("check section = %+v", cfg.Check)
	}
	// keys absent from the file keep their defaults
	if def := DefaultConfig(); cfg.Check.Count != def.Check.Count || cfg.Series.Samples != def.Series.Samples {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	cases := map[string]string{
		"missing":     filepath.Join(dir, "nope.toml"),
		"syntax":      write("syntax.toml", "[simplify\n"),
		"unknown key": write("unknown.toml", "[simplify]\nspeed = 3\n"),
		"bad format":  write("format.toml", "[output]\nformat = \"xml\"\n"),
		"bad depth":   write("depth.toml", "[check]\ndepth = 0\n"),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("LoadConfig(%s) succeeded", name)
			}
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integrate.Precision = 0
	if _, err := New(cfg, nil); err == nil {
		t.Error("Expected error for zero precision")
	}
}

func TestEngine_Eval(t *testing.T) {
	e := newTestEngine(t, nil)
	xs := []float64{-2, -1, 0, 1, 2, 3, 4, 5}
	r, err := e.Eval("x^2", xs)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Points) != len(xs) {
		t.Fatalf("got %d points, want %d", len(r.Points), len(xs))
	}
	for i, p := range r.Points {
		if float64(p.X) != xs[i] || float64(p.Y) != xs[i]*xs[i] {
			t.Errorf("point %d = (%v, %v), want (%v, %v)", i, p.X, p.Y, xs[i], xs[i]*xs[i])
		}
	}
}

func TestEngine_ParseError(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.Eval("foo(x)", []float64{1})
	var perr *parse.Error
	if !errors.As(err, &perr) {
		t.Errorf("Eval(foo(x)) error = %v, want *parse.Error", err)
	}
}

func TestEngine_Diff(t *testing.T) {
	e := newTestEngine(t, nil)

	r, err := e.Diff("sin(x)", false)
	if err != nil {
		t.Fatal(err)
	}
	if r.Derivative != "cos(x)" {
		t.Errorf("simplified derivative = %q, want cos(x)", r.Derivative)
	}

	raw, err := e.Diff("sin(x)", true)
	if err != nil {
		t.Fatal(err)
	}
	if raw.Simplified {
		t.Error("raw derivative marked simplified")
	}
	if got := parse.MustParse(raw.Derivative).EvalF64(0); got != 1 {
		t.Errorf("raw derivative at 0 = %v, want 1", got)
	}
}

func TestEngine_Simplify(t *testing.T) {
	e := newTestEngine(t, nil)
	r, err := e.Simplify("(x+1)^3")
	if err != nil {
		t.Fatal(err)
	}
	if r.Category != "polynomial" {
		t.Errorf("category = %q, want polynomial", r.Category)
	}
	if got := parse.MustParse(r.Simplified).EvalF64(3); got != 64 {
		t.Errorf("simplified at 3 = %v, want 64", got)
	}
}

func TestEngine_Classify(t *testing.T) {
	e := newTestEngine(t, nil)
	r, err := e.Classify("2^x")
	if err != nil {
		t.Fatal(err)
	}
	if r.Category != "exponential" || !r.Exponential || r.Polynomial || r.Constant {
		t.Errorf("Classify(2^x) = %+v", r)
	}
}

func TestEngine_Integrate(t *testing.T) {
	e := newTestEngine(t, nil)
	r, err := e.Integrate("cos(x)", 0, math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(r.Value)) > 1e-10 {
		t.Errorf("∫cos over [0, π] = %v, want 0", r.Value)
	}
	if r.Precision != DefaultConfig().Integrate.Precision {
		t.Errorf("precision = %d", r.Precision)
	}
}

func TestEngine_Taylor(t *testing.T) {
	e := newTestEngine(t, nil)
	r, err := e.Taylor("sin(x)")
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != "maclaurin" || r.Order != 5 {
		t.Errorf("kind/order = %s/%d, want maclaurin/5", r.Kind, r.Order)
	}
	if r.Accuracy.CorrectDigits < 3 {
		t.Errorf("correct digits = %v, want >= 3", r.Accuracy.CorrectDigits)
	}
	if r.Accuracy.MaxDeviation > 3e-4 {
		t.Errorf("max deviation = %v, want < 3e-4", r.Accuracy.MaxDeviation)
	}

	shifted := newTestEngine(t, func(c *Config) { c.Series.Center = 1; c.Series.Order = 3 })
	r, err = shifted.Taylor("x^2")
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != "taylor" || r.Accuracy.MaxDeviation > 1e-9 {
		t.Errorf("Taylor(x^2) at 1 = %+v", r)
	}
}

func TestEngine_TaylorAtPowerPole(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.Taylor("x^2")
	var ee *series.ExpansionError
	if !errors.As(err, &ee) {
		t.Errorf("Taylor(x^2) at 0 error = %v, want *series.ExpansionError", err)
	}
}

func TestEngine_Special(t *testing.T) {
	e := newTestEngine(t, nil)
	r, err := e.Special("gamma", 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if float64(r.Series) != 24 || math.Abs(float64(r.Integral)-24) > 1e-3 {
		t.Errorf("gamma(5) = %v / %v, want 24", r.Integral, r.Series)
	}

	if _, err := e.Special("zeta", 0, 2); err == nil {
		t.Error("Expected error for unknown special function")
	}
	if _, err := e.Special("polygamma", -1, 2); err == nil {
		t.Error("Expected error for negative polygamma order")
	}
}

func TestEngine_Check(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.Check.Count = 20
		c.Check.Depth = 3
		c.Check.Seed = 42
	})
	r, err := e.Check()
	if err != nil {
		t.Fatal(err)
	}
	if r.Count != 20 || r.Seed != 42 {
		t.Errorf("count/seed = %d/%d", r.Count, r.Seed)
	}
	if got := r.Simplified + r.Unsupported + r.Mismatches; got != r.Count {
		t.Errorf("outcomes sum to %d, want %d", got, r.Count)
	}
	if r.DerivChecked > r.Count || r.DerivMismatches != 0 {
		t.Errorf("derivative check = %d checked, %d off", r.DerivChecked, r.DerivMismatches)
	}
	if len(r.Failures) > maxFailures {
		t.Errorf("%d failures listed, cap is %d", len(r.Failures), maxFailures)
	}

	again, err := e.Check()
	if err != nil {
		t.Fatal(err)
	}
	if again.Simplified != r.Simplified || again.DerivChecked != r.DerivChecked {
		t.Errorf("same seed gave different results: %+v vs %+v", r, again)
	}
}

func TestEngine_CheckUnknownPool(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.Check.Pool = "nonexistent" })
	if _, err := e.Check(); err == nil {
		t.Error("Expected error for unknown pool")
	}
}

func TestWriteJSON_NonFinite(t *testing.T) {
	e := newTestEngine(t, nil)
	r, err := e.Eval("ln(x)", []float64{-1, 1})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded struct {
		RunID   string `json:"run_id"`
		Command string `json:"command"`
		Points  []struct {
			X any `json:"x"`
			Y any `json:"y"`
		} `json:"points"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if decoded.RunID == "" || decoded.Command != "eval" {
		t.Errorf("header = %q %q", decoded.RunID, decoded.Command)
	}
	if decoded.Points[0].Y != "NaN" {
		t.Errorf("ln(-1) encoded as %v, want \"NaN\"", decoded.Points[0].Y)
	}
	if decoded.Points[1].Y != 0.0 {
		t.Errorf("ln(1) encoded as %v, want 0", decoded.Points[1].Y)
	}
}

func TestWrite_Formats(t *testing.T) {
	e := newTestEngine(t, nil)
	r, err := e.Classify("sin(x)")
	if err != nil {
		t.Fatal(err)
	}

	var text, yml bytes.Buffer
	if err := Write(&text, "text", r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text.String(), "Category:") || !strings.Contains(text.String(), "trigonometric") {
		t.Errorf("text report missing fields:\n%s", text.String())
	}
	if !strings.Contains(text.String(), r.RunID.String()) {
		t.Errorf("text report missing run id:\n%s", text.String())
	}

	if err := Write(&yml, "yaml", r); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"run_id: " + r.RunID.String(), "category: trigonometric", "trigonometric: true"} {
		if !strings.Contains(yml.String(), want) {
			t.Errorf("yaml report missing %q:\n%s", want, yml.String())
		}
	}

	if err := Write(&bytes.Buffer{}, "xml", r); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestEngine_Extremum(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.Optimize.Tolerance = 1e-8 })

	r, err := e.Extremum("(x-2)^2 + 1", 0, 5, false)
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != "minimum" || math.Abs(float64(r.X)-2) > 1e-4 || math.Abs(float64(r.Value)-1) > 1e-8 {
		t.Errorf("minimum = %+v, want x=2 value 1", r)
	}
	if r.Iterations == 0 {
		t.Error("Expected a non-zero iteration count")
	}

	r, err = e.Extremum("sin(x)", 0, math.Pi, true)
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != "maximum" || math.Abs(float64(r.X)-math.Pi/2) > 1e-4 || math.Abs(float64(r.Value)-1) > 1e-8 {
		t.Errorf("maximum = %+v, want x=pi/2 value 1", r)
	}

	if _, err := e.Extremum("x", math.Inf(-1), 0, false); !errors.Is(err, optimize.ErrBounds) {
		t.Errorf("infinite bound: got %v, want ErrBounds", err)
	}
}

func TestConfig_OptimizeTolerance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Optimize.Tolerance = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for zero optimize tolerance")
	}
}

func TestWriteJSON_Tree(t *testing.T) {
	e := newTestEngine(t, nil)
	r, err := e.Simplify("(x+1)^3")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Tree json.RawMessage `json:"tree"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	tree, err := expr.UnmarshalTree(decoded.Tree)
	if err != nil {
		t.Fatalf("UnmarshalTree(%s): %v", decoded.Tree, err)
	}
	if !expr.Equal(tree, r.Tree) {
		t.Errorf("decoded tree %s, want %s", tree, r.Tree)
	}
	if got := tree.EvalF64(3); got != 64 {
		t.Errorf("decoded tree at 3 = %v, want 64", got)
	}
}

func TestWriteYAML_Tree(t *testing.T) {
	e := newTestEngine(t, nil)
	r, err := e.Diff("sin(x)", false)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteYAML(&buf, r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "tree:") || !strings.Contains(buf.String(), "Cos: X") {
		t.Errorf("yaml report missing tree:\n%s", buf.String())
	}
}
