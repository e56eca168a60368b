package engine

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/HellFelix/number-diff/pkg/integrate"
	"github.com/HellFelix/number-diff/pkg/optimize"
	"github.com/HellFelix/number-diff/pkg/simplify"
)

// Config holds all parameters of an engine.
type Config struct {
	Simplify  SimplifyConfig  `toml:"simplify" json:"simplify" yaml:"simplify"`
	Integrate IntegrateConfig `toml:"integrate" json:"integrate" yaml:"integrate"`
	Series    SeriesConfig    `toml:"series" json:"series" yaml:"series"`
	Optimize  OptimizeConfig  `toml:"optimize" json:"optimize" yaml:"optimize"`
	Output    OutputConfig    `toml:"output" json:"output" yaml:"output"`
	Check     CheckConfig     `toml:"check" json:"check" yaml:"check"`
}

// SimplifyConfig tunes the simplifier and its probe check.
type SimplifyConfig struct {
	Tolerance float64 `toml:"tolerance" json:"tolerance" yaml:"tolerance"`
	Verify    bool    `toml:"verify" json:"verify" yaml:"verify"`
	Workers   int     `toml:"workers" json:"workers" yaml:"workers"`
}

type IntegrateConfig struct {
	Precision int `toml:"precision" json:"precision" yaml:"precision"`
}

type SeriesConfig struct {
	Order  int     `toml:"order" json:"order" yaml:"order"`
	Center float64 `toml:"center" json:"center" yaml:"center"`
	// Samples is the number of points the accuracy measurement uses.
	Samples int `toml:"samples" json:"samples" yaml:"samples"`
}

// OptimizeConfig sets the bracket width at which extremum searches stop.
type OptimizeConfig struct {
	Tolerance float64 `toml:"tolerance" json:"tolerance" yaml:"tolerance"`
}

type OutputConfig struct {
	Format string `toml:"format" json:"format" yaml:"format"` // "text", "json" or "yaml"
}

// CheckConfig controls random self-check runs.
type CheckConfig struct {
	Pool  string `toml:"pool" json:"pool" yaml:"pool"`
	Count int    `toml:"count" json:"count" yaml:"count"`
	Depth int    `toml:"depth" json:"depth" yaml:"depth"`
	Seed  int64  `toml:"seed" json:"seed" yaml:"seed"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	opts := simplify.DefaultOptions()
	return Config{
		Simplify: SimplifyConfig{
			Tolerance: opts.Tolerance,
			Verify:    opts.Verify,
			Workers:   runtime.NumCPU(),
		},
		Integrate: IntegrateConfig{Precision: integrate.DefaultPrecision},
		Series:    SeriesConfig{Order: 5, Center: 0, Samples: 201},
		Optimize:  OptimizeConfig{Tolerance: optimize.DefaultTolerance},
		Output:    OutputConfig{Format: "text"},
		Check: CheckConfig{
			Pool:  "polynomial",
			Count: 200,
			Depth: 4,
			Seed:  0, // 0 = random
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, fmt.Errorf("config file not found: %s", path)
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config key: %s", undecoded[0])
	}
	return cfg, cfg.Validate()
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Simplify.Tolerance < 0:
		return fmt.Errorf("simplify.tolerance must be >= 0, got %v", c.Simplify.Tolerance)
	case c.Integrate.Precision <= 0:
		return fmt.Errorf("integrate.precision must be > 0, got %d", c.Integrate.Precision)
	case c.Series.Order < 0:
		return fmt.Errorf("series.order must be >= 0, got %d", c.Series.Order)
	case c.Series.Samples < 2:
		return fmt.Errorf("series.samples must be >= 2, got %d", c.Series.Samples)
	case !(c.Optimize.Tolerance > 0):
		return fmt.Errorf("optimize.tolerance must be > 0, got %v", c.Optimize.Tolerance)
	case c.Check.Count < 0:
		return fmt.Errorf("check.count must be >= 0, got %d", c.Check.Count)
	case c.Check.Depth < 1:
		return fmt.Errorf("check.depth must be >= 1, got %d", c.Check.Depth)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", c.Output.Format)
	}
	return nil
}

// SimplifyOptions converts the [simplify] section.
func (c Config) SimplifyOptions() simplify.Options {
	return simplify.Options{
		Tolerance: c.Simplify.Tolerance,
		Workers:   c.Simplify.Workers,
		Verify:    c.Simplify.Verify,
	}
}
