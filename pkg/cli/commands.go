package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HellFelix/number-diff/pkg/engine"
	"github.com/HellFelix/number-diff/pkg/pool"
)

func newEvalCmd(g *globalFlags) *cobra.Command {
	var at []float64
	cmd := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate an expression at one or more points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.newEngine(cmd, nil)
			if err != nil {
				return err
			}
			r, err := e.Eval(args[0], at)
			if err != nil {
				return err
			}
			return write(cmd, e, r)
		},
	}
	cmd.Flags().Float64SliceVar(&at, "at", []float64{0}, "evaluation points, comma separated")
	return cmd
}

func newDiffCmd(g *globalFlags) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "diff EXPR",
		Short: "Differentiate an expression with respect to x",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.newEngine(cmd, nil)
			if err != nil {
				return err
			}
			r, err := e.Diff(args[0], raw)
			if err != nil {
				return err
			}
			return write(cmd, e, r)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "skip simplification of the derivative")
	return cmd
}

func newSimplifyCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "simplify EXPR",
		Short: "Classify and simplify an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.newEngine(cmd, nil)
			if err != nil {
				return err
			}
			r, err := e.Simplify(args[0])
			if err != nil {
				return err
			}
			return write(cmd, e, r)
		},
	}
}

func newClassifyCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "classify EXPR",
		Short: "Show the category of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.newEngine(cmd, nil)
			if err != nil {
				return err
			}
			r, err := e.Classify(args[0])
			if err != nil {
				return err
			}
			return write(cmd, e, r)
		},
	}
}

func newIntegrateCmd(g *globalFlags) *cobra.Command {
	var from, to float64
	var precision int
	cmd := &cobra.Command{
		Use:   "integrate EXPR",
		Short: "Integrate an expression over [from, to] with Simpson's rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("from") || !cmd.Flags().Changed("to") {
				return fmt.Errorf("both --from and --to are required")
			}
			e, err := g.newEngine(cmd, func(c *engine.Config) {
				if cmd.Flags().Changed("precision") {
					c.Integrate.Precision = precision
				}
			})
			if err != nil {
				return err
			}
			r, err := e.Integrate(args[0], from, to)
			if err != nil {
				return err
			}
			return write(cmd, e, r)
		},
	}
	cmd.Flags().Float64Var(&from, "from", 0, "lower bound")
	cmd.Flags().Float64Var(&to, "to", 0, "upper bound")
	cmd.Flags().IntVar(&precision, "precision", 0, "precision (2*precision subintervals)")
	return cmd
}

func newExtremumCmd(g *globalFlags) *cobra.Command {
	var from, to, tolerance float64
	var maximize bool
	cmd := &cobra.Command{
		Use:   "extremum EXPR",
		Short: "Find the minimum (or maximum) of an expression on [from, to]",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("from") || !cmd.Flags().Changed("to") {
				return fmt.Errorf("both --from and --to are required")
			}
			e, err := g.newEngine(cmd, func(c *engine.Config) {
				if cmd.Flags().Changed("tolerance") {
					c.Optimize.Tolerance = tolerance
				}
			})
			if err != nil {
				return err
			}
			r, err := e.Extremum(args[0], from, to, maximize)
			if err != nil {
				return err
			}
			return write(cmd, e, r)
		},
	}
	cmd.Flags().Float64Var(&from, "from", 0, "lower bound")
	cmd.Flags().Float64Var(&to, "to", 0, "upper bound")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "bracket width at which the search stops")
	cmd.Flags().BoolVar(&maximize, "max", false, "search for the maximum instead")
	return cmd
}

func newTaylorCmd(g *globalFlags) *cobra.Command {
	var order int
	var center float64
	cmd := &cobra.Command{
		Use:   "taylor EXPR",
		Short: "Expand an expression into a truncated Taylor series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.newEngine(cmd, func(c *engine.Config) {
				if cmd.Flags().Changed("order") {
					c.Series.Order = order
				}
				if cmd.Flags().Changed("center") {
					c.Series.Center = center
				}
			})
			if err != nil {
				return err
			}
			r, err := e.Taylor(args[0])
			if err != nil {
				return err
			}
			return write(cmd, e, r)
		},
	}
	cmd.Flags().IntVar(&order, "order", 0, "highest power of the expansion")
	cmd.Flags().Float64Var(&center, "center", 0, "expansion point (0 = Maclaurin)")
	return cmd
}

func newSpecialCmd(g *globalFlags) *cobra.Command {
	var order int
	cmd := &cobra.Command{
		Use:       "special FUNCTION Z",
		Short:     "Evaluate gamma, digamma or polygamma through its defining integral",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"gamma", "digamma", "polygamma"},
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid argument %q: %w", args[1], err)
			}
			e, err := g.newEngine(cmd, nil)
			if err != nil {
				return err
			}
			r, err := e.Special(strings.ToLower(args[0]), order, z)
			if err != nil {
				return err
			}
			return write(cmd, e, r)
		},
	}
	cmd.Flags().IntVar(&order, "order", 1, "polygamma order")
	return cmd
}

func newCheckCmd(g *globalFlags) *cobra.Command {
	var poolName string
	var count, depth int
	var seed int64
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Self-check the simplifier and differentiator on random trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.newEngine(cmd, func(c *engine.Config) {
				if cmd.Flags().Changed("pool") {
					c.Check.Pool = poolName
				}
				if cmd.Flags().Changed("count") {
					c.Check.Count = count
				}
				if cmd.Flags().Changed("depth") {
					c.Check.Depth = depth
				}
				if cmd.Flags().Changed("seed") {
					c.Check.Seed = seed
				}
			})
			if err != nil {
				return err
			}
			r, err := e.Check()
			if err != nil {
				return err
			}
			return write(cmd, e, r)
		},
	}
	cmd.Flags().StringVar(&poolName, "pool", "", "expression pool ("+strings.Join(pool.Names(), ", ")+")")
	cmd.Flags().IntVar(&count, "count", 0, "number of random trees")
	cmd.Flags().IntVar(&depth, "depth", 0, "max tree depth")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = random)")
	return cmd
}
