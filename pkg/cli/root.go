// Package cli is the numdiff command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/HellFelix/number-diff/pkg/engine"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	format     string
	verbose    bool
}

// NewRootCommand builds a fresh numdiff command tree.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "numdiff",
		Short: "Symbolic calculus for single-variable real functions",
		Long: `numdiff parses expressions in x and evaluates, differentiates,
classifies, simplifies, integrates and series-expands them.

Expressions accept sin cos tan sec csc cot asin acos atan sinh cosh tanh
ln abs sqrt, d(...) for a symbolic derivative, postfix !, + - * / ^ and
implicit multiplication, e.g. "6(4x+3)/(5x)sin(x)".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.configFile, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&g.format, "format", "", "output format (text, json, yaml)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newEvalCmd(g),
		newDiffCmd(g),
		newSimplifyCmd(g),
		newClassifyCmd(g),
		newIntegrateCmd(g),
		newExtremumCmd(g),
		newTaylorCmd(g),
		newSpecialCmd(g),
		newCheckCmd(g),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig reads --config over the defaults and applies --format.
func (g *globalFlags) loadConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if g.configFile != "" {
		var err error
		if cfg, err = engine.LoadConfig(g.configFile); err != nil {
			return cfg, err
		}
	}
	if g.format != "" {
		cfg.Output.Format = g.format
	}
	return cfg, nil
}

// newEngine loads the config, lets the subcommand override it, and builds an
// engine that logs to the command's stderr.
func (g *globalFlags) newEngine(cmd *cobra.Command, override func(*engine.Config)) (*engine.Engine, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(&cfg)
	}

	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return engine.New(cfg, logger)
}

// write renders r in the engine's configured format on stdout.
func write(cmd *cobra.Command, e *engine.Engine, r engine.Report) error {
	return engine.Write(cmd.OutOrStdout(), e.Config().Output.Format, r)
}
