package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEval(t *testing.T) {
	out, err := run(t, "eval", "x^2+1", "--at", "2,3")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"f(2):", "5", "f(3):", "10"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestClassify_JSON(t *testing.T) {
	out, err := run(t, "--format", "json", "classify", "sin(x)")
	if err != nil {
		t.Fatal(err)
	}
	var r struct {
		Command  string `json:"command"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if r.Command != "classify" || r.Category != "trigonometric" {
		t.Errorf("report = %+v", r)
	}
}

func TestDiff(t *testing.T) {
	out, err := run(t, "--format", "yaml", "diff", "sin(x)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "derivative: cos(x)") {
		t.Errorf("output missing derivative:\n%s", out)
	}
}

func TestIntegrate(t *testing.T) {
	if _, err := run(t, "integrate", "x"); err == nil {
		t.Error("Expected error without bounds")
	}

	out, err := run(t, "--format", "json", "integrate", "x", "--from", "0", "--to", "2", "--precision", "10")
	if err != nil {
		t.Fatal(err)
	}
	var r struct {
		Precision int     `json:"precision"`
		Value     float64 `json:"value"`
	}
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if r.Precision != 10 || r.Value < 2-1e-12 || r.Value > 2+1e-12 {
		t.Errorf("report = %+v, want precision 10 and value 2", r)
	}
}

func TestTaylor_Flags(t *testing.T) {
	out, err := run(t, "--format", "json", "taylor", "cos(x)", "--order", "4")
	if err != nil {
		t.Fatal(err)
	}
	var r struct {
		Kind  string `json:"kind"`
		Order int    `json:"order"`
	}
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if r.Kind != "maclaurin" || r.Order != 4 {
		t.Errorf("report = %+v", r)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numdiff.toml")
	if err := os.WriteFile(path, []byte("[output]\nformat = \"json\"\n\n[series]\norder = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "--config", path, "taylor", "sin(x)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"order": 2`) {
		t.Errorf("config not applied:\n%s", out)
	}

	if _, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "classify", "x"); err == nil {
		t.Error("Expected error for a missing config file")
	}
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "--pool", "polynomial", "--count", "5", "--depth", "2", "--seed", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "polynomial (depth 2, seed 3)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestErrors(t *testing.T) {
	cases := [][]string{
		{"eval", "foo(x)"},
		{"eval"},
		{"bogus"},
		{"--format", "xml", "classify", "x"},
		{"special", "zeta", "2"},
		{"special", "gamma", "abc"},
		{"check", "--pool", "nonexistent"},
	}
	for _, args := range cases {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, err := run(t, args...); err == nil {
				t.Errorf("%v succeeded", args)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "numdiff v"+Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestExtremum(t *testing.T) {
	if _, err := run(t, "extremum", "x^2"); err == nil {
		t.Error("Expected error without bounds")
	}

	out, err := run(t, "--format", "json", "extremum", "sin(x)", "--from", "0", "--to", "3.14159", "--max", "--tolerance", "1e-8")
	if err != nil {
		t.Fatal(err)
	}
	var r struct {
		Kind  string  `json:"kind"`
		X     float64 `json:"x"`
		Value float64 `json:"value"`
	}
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if r.Kind != "maximum" || r.X < 1.5707 || r.X > 1.5709 || r.Value < 1-1e-8 {
		t.Errorf("report = %+v, want maximum near x=pi/2", r)
	}

	if _, err := run(t, "extremum", "x", "--from", "0", "--to", "1", "--tolerance=-1"); err == nil {
		t.Error("Expected error for negative tolerance")
	}
}
