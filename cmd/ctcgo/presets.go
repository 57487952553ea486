package main

import (
	"fmt"
	"strings"

	"github.com/salarykit/ctcgo/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func presetsCmd(a *app) *cobra.Command {
	var dumpConfig bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List salary presets and transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if dumpConfig {
				data, err := yaml.Marshal(a.cfg)
				if err != nil {
					return fmt.Errorf("failed to encode engine config: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			fmt.Fprintf(out, "\nTransforms:\n  %s\n",
				strings.Join(transform.NewTransformRegistry(a.cfg).List(), "\n  "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dumpConfig, "dump-config", false, "Print the effective engine config as YAML")
	return cmd
}

func citiesCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "cities",
		Short: "List metro cities or classify a city",
		Example: "  ctcgo cities\n" +
			"  ctcgo cities --name Pune",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if name != "" {
				city := a.cfg.ClassifyCity(name)
				rate := a.cfg.HRA.Rate(city).Mul(decimal.NewFromInt(100))
				fmt.Fprintf(out, "%s: %s (HRA %s%% of Basic)\n", strings.TrimSpace(name), city, rate.String())
				return nil
			}

			fmt.Fprintf(out, "Metro cities (%d):\n", len(a.cfg.MetroCities))
			for _, c := range a.cfg.MetroCities {
				fmt.Fprintf(out, "  %s\n", c)
			}
			fmt.Fprintln(out, "\nAny other city is treated as Non-Metro.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "City to classify")
	return cmd
}
