package main

import (
	"fmt"
	"strings"

	"github.com/salarykit/ctcgo/internal/compare"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/salarykit/ctcgo/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func compareCmd(a *app) *cobra.Command {
	var (
		in      inputFlags
		with    string
		amounts string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare salary variants side by side",
		Long: "Compare a base salary against presets or transforms (--with), or against other\n" +
			"CTC levels (--amounts, in LPA). With neither, the configured sample CTCs are used.",
		Example: "  ctcgo compare --lpa 10 --with non_metro,high_basic,raise_10pct\n" +
			"  ctcgo compare --lpa 10 --with set_percent:component=basic,value=50\n" +
			"  ctcgo compare --lpa 10 --amounts 5,8,15 --format csv",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if with != "" && amounts != "" {
				return fmt.Errorf("use either --with or --amounts, not both")
			}

			base, err := in.build(cmd, a.cfg)
			if err != nil {
				return err
			}

			ce := compare.NewCompareEngine(a.engine(false))

			var compSet *compare.ComparisonSet
			if with != "" {
				compSet, err = ce.Compare(cmd.Context(), base, compare.CompareOptions{
					BaseName: in.label(),
					Variants: transform.ParseVariantList(with),
				})
			} else {
				levels := a.cfg.SampleCTCAmounts
				if amounts != "" {
					if levels, err = parseLPAList(amounts); err != nil {
						return err
					}
				}
				compSet, err = ce.CompareAmounts(cmd.Context(), base, levels)
			}
			if err != nil {
				if errs, ok := validationErrors(err); ok {
					printValidationErrors(cmd.ErrOrStderr(), errs)
				}
				return err
			}

			return writeComparison(cmd, compSet, format)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated presets or transform specs to compare")
	cmd.Flags().StringVar(&amounts, "amounts", "", "Comma-separated CTC levels in LPA (e.g. 3,5,8)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")

	return cmd
}

func parseLPAList(s string) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("invalid --amounts entry %q: %w", part, err)
		}
		out = append(out, domain.FromLPA(v))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("--amounts needs at least one LPA value")
	}
	return out, nil
}

func writeComparison(cmd *cobra.Command, compSet *compare.ComparisonSet, format string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "table", "console":
		fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
	case "compact":
		fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
	case "csv":
		s, err := (&compare.CSVFormatter{}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(out, s)
	case "json":
		s, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprint(out, s)
	default:
		return fmt.Errorf("unsupported format %q (available: table, compact, csv, json)", format)
	}
	return nil
}
