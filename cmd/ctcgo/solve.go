package main

import (
	"fmt"
	"strings"

	"github.com/salarykit/ctcgo/internal/breakeven"
	"github.com/salarykit/ctcgo/internal/calculation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func solveCmd(a *app) *cobra.Command {
	var (
		in        inputFlags
		takeHome  string
		monthly   string
		maxBasic  bool
		tolerance string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Work backwards from a take-home target",
		Long: "Find the CTC needed for a target take-home (--take-home or --monthly-take-home),\n" +
			"or the highest Basic % that keeps fixed components within a CTC (--max-basic).",
		Example: "  ctcgo solve --monthly-take-home 65000 --city Pune\n" +
			"  ctcgo solve --take-home 900000 --basic 50\n" +
			"  ctcgo solve --max-basic --lpa 12 --city-type non-metro",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := in.build(cmd, a.cfg)
			if err != nil {
				return err
			}

			req := breakeven.OptimizationRequest{Base: base}
			switch {
			case maxBasic:
				req.Target = breakeven.OptimizeBasicPercent
			case takeHome != "" || monthly != "":
				req.Target = breakeven.OptimizeCTC
				target, err := annualTarget(takeHome, monthly)
				if err != nil {
					return err
				}
				req.Constraints.TargetTakeHome = &target
			default:
				return fmt.Errorf("specify --take-home, --monthly-take-home or --max-basic")
			}

			if tolerance != "" {
				if req.Tolerance, err = parseDecimalFlag("tolerance", tolerance); err != nil {
					return err
				}
			}

			result, err := breakeven.NewDefaultSolver(a.solverEngine()).Optimize(cmd.Context(), req)
			if err != nil {
				if errs, ok := validationErrors(err); ok {
					printValidationErrors(cmd.ErrOrStderr(), errs)
				}
				return err
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "table":
				fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			case "json":
				s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, s)
			default:
				return fmt.Errorf("unsupported format %q (available: table, json)", format)
			}
			return nil
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVar(&takeHome, "take-home", "", "Target annual take-home in rupees")
	cmd.Flags().StringVar(&monthly, "monthly-take-home", "", "Target monthly take-home in rupees")
	cmd.Flags().BoolVar(&maxBasic, "max-basic", false, "Find the highest Basic % that fits within the CTC")
	cmd.Flags().StringVar(&tolerance, "tolerance", "", "Take-home tolerance in rupees (default 1)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	cmd.MarkFlagsMutuallyExclusive("take-home", "monthly-take-home", "max-basic")

	return cmd
}

func annualTarget(takeHome, monthly string) (decimal.Decimal, error) {
	if monthly != "" {
		v, err := parseDecimalFlag("monthly-take-home", monthly)
		if err != nil {
			return decimal.Zero, err
		}
		return v.Mul(decimal.NewFromInt(12)), nil
	}
	return parseDecimalFlag("take-home", takeHome)
}

// solverEngine is the app engine with overshoot warnings silenced; the
// solver probes infeasible structures on purpose.
func (a *app) solverEngine() *calculation.Engine {
	eng := calculation.NewEngine(a.cfg)
	if a.logger != nil {
		eng.SetLogger(a.logger.WithOptions(zap.IncreaseLevel(zap.ErrorLevel)).Sugar())
	}
	return eng
}
