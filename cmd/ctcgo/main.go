package main

import (
	"fmt"
	"os"

	"github.com/salarykit/ctcgo/internal/calculation"
	"github.com/salarykit/ctcgo/internal/config"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand once the root
// command's pre-run has loaded configuration and built the logger.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    domain.EngineConfig
	logger *zap.Logger
}

func (a *app) engine(strict bool) *calculation.Engine {
	eng := calculation.NewEngine(a.cfg)
	eng.Strict = strict
	if a.logger != nil {
		eng.SetLogger(a.logger.Sugar())
	}
	return eng
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: domain.DefaultEngineConfig()}

	rootCmd := &cobra.Command{
		Use:   "ctcgo",
		Short: "Indian CTC breakup calculator",
		Long: "Split an annual Cost to Company into Basic, HRA, Special Allowance, PF, Gratuity,\n" +
			"Bonus and LTA, validate the structure and compare salary variants.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := initializeLogger(a.logLevel, a.logFormat)
			if err != nil {
				return err
			}
			a.logger = logger

			cfg, err := config.LoadEngineConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.Debug("engine config loaded",
				zap.String("path", a.configPath),
				zap.Int("metro_cities", len(cfg.MetroCities)))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Engine config YAML (defaults, HRA rates, limits, metro cities)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "console", "Log format (console, json)")

	rootCmd.AddCommand(calculateCmd(a))
	rootCmd.AddCommand(validateCmd(a))
	rootCmd.AddCommand(compareCmd(a))
	rootCmd.AddCommand(solveCmd(a))
	rootCmd.AddCommand(presetsCmd(a))
	rootCmd.AddCommand(citiesCmd(a))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
