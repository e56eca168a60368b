package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/HellFelix/number-diff/pkg/expr"
)

// Value is a float64 that survives JSON encoding when it is NaN or infinite.
type Value float64

func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return json.Marshal(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func (v Value) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// Header is shared by every report.
type Header struct {
	RunID     uuid.UUID `json:"run_id" yaml:"run_id"`
	Command   string    `json:"command" yaml:"command"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

func (h Header) header() Header { return h }

// Report is any value the engine returns to a writer.
type Report interface {
	header() Header
	fields() []field
}

type field struct {
	label string
	value string
}

// Point is one sample of a batch evaluation.
type Point struct {
	X Value `json:"x" yaml:"x"`
	Y Value `json:"y" yaml:"y"`
}

type EvalReport struct {
	Header     `yaml:",inline"`
	Expression string  `json:"expression" yaml:"expression"`
	Points     []Point `json:"points" yaml:"points"`
}

func (r *EvalReport) fields() []field {
	fs := []field{{"Expression", r.Expression}}
	for _, p := range r.Points {
		fs = append(fs, field{"f(" + p.X.String() + ")", p.Y.String()})
	}
	return fs
}

type DiffReport struct {
	Header     `yaml:",inline"`
	Expression string        `json:"expression" yaml:"expression"`
	Derivative string        `json:"derivative" yaml:"derivative"`
	LaTeX      string        `json:"latex" yaml:"latex"`
	Simplified bool          `json:"simplified" yaml:"simplified"`
	Tree       expr.ExprNode `json:"tree" yaml:"tree"`
}

func (r *DiffReport) fields() []field {
	return []field{
		{"Expression", r.Expression},
		{"Derivative", r.Derivative},
		{"LaTeX", r.LaTeX},
		{"Simplified", strconv.FormatBool(r.Simplified)},
	}
}

type SimplifyReport struct {
	Header      `yaml:",inline"`
	Expression  string        `json:"expression" yaml:"expression"`
	Category    string        `json:"category" yaml:"category"`
	Simplified  string        `json:"simplified" yaml:"simplified"`
	LaTeX       string        `json:"latex" yaml:"latex"`
	NodesBefore int           `json:"nodes_before" yaml:"nodes_before"`
	NodesAfter  int           `json:"nodes_after" yaml:"nodes_after"`
	Tree        expr.ExprNode `json:"tree" yaml:"tree"`
}

func (r *SimplifyReport) fields() []field {
	return []field{
		{"Expression", r.Expression},
		{"Category", r.Category},
		{"Simplified", r.Simplified},
		{"LaTeX", r.LaTeX},
		{"Nodes", fmt.Sprintf("%d -> %d", r.NodesBefore, r.NodesAfter)},
	}
}

type ClassifyReport struct {
	Header        `yaml:",inline"`
	Expression    string `json:"expression" yaml:"expression"`
	Category      string `json:"category" yaml:"category"`
	Constant      bool   `json:"constant" yaml:"constant"`
	Linear        bool   `json:"linear" yaml:"linear"`
	Exponential   bool   `json:"exponential" yaml:"exponential"`
	Polynomial    bool   `json:"polynomial" yaml:"polynomial"`
	Trigonometric bool   `json:"trigonometric" yaml:"trigonometric"`
}

func (r *ClassifyReport) fields() []field {
	return []field{
		{"Expression", r.Expression},
		{"Category", r.Category},
		{"Constant", strconv.FormatBool(r.Constant)},
		{"Linear", strconv.FormatBool(r.Linear)},
		{"Exponential", strconv.FormatBool(r.Exponential)},
		{"Polynomial", strconv.FormatBool(r.Polynomial)},
		{"Trig", strconv.FormatBool(r.Trigonometric)},
	}
}

type IntegralReport struct {
	Header     `yaml:",inline"`
	Expression string `json:"expression" yaml:"expression"`
	From       Value  `json:"from" yaml:"from"`
	To         Value  `json:"to" yaml:"to"`
	Precision  int    `json:"precision" yaml:"precision"`
	Value      Value  `json:"value" yaml:"value"`
}

func (r *IntegralReport) fields() []field {
	return []field{
		{"Expression", r.Expression},
		{"Bounds", fmt.Sprintf("[%s, %s]", r.From, r.To)},
		{"Precision", strconv.Itoa(r.Precision)},
		{"Integral", r.Value.String()},
	}
}

// AccuracyReport mirrors series.Accuracy with JSON-safe values.
type AccuracyReport struct {
	From          Value `json:"from" yaml:"from"`
	To            Value `json:"to" yaml:"to"`
	MaxDeviation  Value `json:"max_deviation" yaml:"max_deviation"`
	WorstX        Value `json:"worst_x" yaml:"worst_x"`
	CorrectDigits Value `json:"correct_digits" yaml:"correct_digits"`
	Samples       int   `json:"samples" yaml:"samples"`
}

type TaylorReport struct {
	Header     `yaml:",inline"`
	Expression string         `json:"expression" yaml:"expression"`
	Kind       string         `json:"kind" yaml:"kind"`
	Order      int            `json:"order" yaml:"order"`
	Center     Value          `json:"center" yaml:"center"`
	Expansion  string         `json:"expansion" yaml:"expansion"`
	LaTeX      string         `json:"latex" yaml:"latex"`
	Tree       expr.ExprNode  `json:"tree" yaml:"tree"`
	Accuracy   AccuracyReport `json:"accuracy" yaml:"accuracy"`
}

func (r *TaylorReport) fields() []field {
	a := r.Accuracy
	return []field{
		{"Expression", r.Expression},
		{"Kind", fmt.Sprintf("%s, order %d at %s", r.Kind, r.Order, r.Center)},
		{"Expansion", r.Expansion},
		{"LaTeX", r.LaTeX},
		{"Deviation", fmt.Sprintf("%s at x=%s over [%s, %s]", a.MaxDeviation, a.WorstX, a.From, a.To)},
		{"Digits", fmt.Sprintf("%.1f", float64(a.CorrectDigits))},
	}
}

type ExtremumReport struct {
	Header     `yaml:",inline"`
	Expression string `json:"expression" yaml:"expression"`
	Kind       string `json:"kind" yaml:"kind"` // "minimum" or "maximum"
	From       Value  `json:"from" yaml:"from"`
	To         Value  `json:"to" yaml:"to"`
	X          Value  `json:"x" yaml:"x"`
	Value      Value  `json:"value" yaml:"value"`
	Iterations int    `json:"iterations" yaml:"iterations"`
}

func (r *ExtremumReport) fields() []field {
	return []field{
		{"Expression", r.Expression},
		{"Bounds", fmt.Sprintf("[%s, %s]", r.From, r.To)},
		{"Kind", r.Kind},
		{"At", "x=" + r.X.String()},
		{"Value", r.Value.String()},
		{"Iterations", strconv.Itoa(r.Iterations)},
	}
}

type SpecialReport struct {
	Header   `yaml:",inline"`
	Function string `json:"function" yaml:"function"`
	Order    int    `json:"order" yaml:"order"`
	Argument Value  `json:"argument" yaml:"argument"`
	Integral Value  `json:"integral" yaml:"integral"`
	Series   Value  `json:"series" yaml:"series"`
}

func (r *SpecialReport) fields() []field {
	name := r.Function
	if r.Function == "polygamma" {
		name = fmt.Sprintf("polygamma_%d", r.Order)
	}
	return []field{
		{"Function", fmt.Sprintf("%s(%s)", name, r.Argument)},
		{"Integral", r.Integral.String()},
		{"Series", r.Series.String()},
	}
}

// CheckFailure records one tree that did not survive a self-check.
type CheckFailure struct {
	Tree  string `json:"tree" yaml:"tree"`
	Stage string `json:"stage" yaml:"stage"`
	Error string `json:"error" yaml:"error"`
}

type CheckReport struct {
	Header          `yaml:",inline"`
	Pool            string         `json:"pool" yaml:"pool"`
	Count           int            `json:"count" yaml:"count"`
	Depth           int            `json:"depth" yaml:"depth"`
	Seed            int64          `json:"seed" yaml:"seed"`
	Simplified      int            `json:"simplified" yaml:"simplified"`
	Unsupported     int            `json:"unsupported" yaml:"unsupported"`
	Mismatches      int            `json:"mismatches" yaml:"mismatches"`
	DerivChecked    int            `json:"deriv_checked" yaml:"deriv_checked"`
	DerivMismatches int            `json:"deriv_mismatches" yaml:"deriv_mismatches"`
	Failures        []CheckFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Elapsed         time.Duration  `json:"elapsed_ns" yaml:"elapsed"`
}

func (r *CheckReport) fields() []field {
	fs := []field{
		{"Pool", fmt.Sprintf("%s (depth %d, seed %d)", r.Pool, r.Depth, r.Seed)},
		{"Trees", strconv.Itoa(r.Count)},
		{"Simplified", strconv.Itoa(r.Simplified)},
		{"Unsupported", strconv.Itoa(r.Unsupported)},
		{"Mismatches", strconv.Itoa(r.Mismatches)},
		{"Derivatives", fmt.Sprintf("%d checked, %d off", r.DerivChecked, r.DerivMismatches)},
		{"Elapsed", r.Elapsed.Round(time.Millisecond).String()},
	}
	for _, f := range r.Failures {
		fs = append(fs, field{f.Stage, f.Tree + ": " + f.Error})
	}
	return fs
}

// WriteText writes r as aligned label/value lines. Styling is dropped when
// w is not a terminal.
func WriteText(w io.Writer, r Report) error {
	renderer := lipgloss.NewRenderer(w)
	title := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	label := renderer.NewStyle().Width(13).Foreground(lipgloss.Color("#06B6D4"))
	muted := renderer.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	h := r.header()
	if _, err := fmt.Fprintln(w, title.Render(h.Command)+" "+muted.Render(h.RunID.String())); err != nil {
		return err
	}
	for _, f := range r.fields() {
		if _, err := fmt.Fprintln(w, label.Render(f.label+":")+f.value); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes r as a YAML document.
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// Write dispatches on format.
func Write(w io.Writer, format string, r Report) error {
	switch format {
	case "text", "":
		return WriteText(w, r)
	case "json":
		return WriteJSON(w, r)
	case "yaml":
		return WriteYAML(w, r)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
