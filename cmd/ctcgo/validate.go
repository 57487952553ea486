package main

import (
	"fmt"

	"github.com/salarykit/ctcgo/internal/calculation"
	"github.com/salarykit/ctcgo/internal/config"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/spf13/cobra"
)

func validateCmd(a *app) *cobra.Command {
	var (
		in        inputFlags
		inputFile string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a salary structure without calculating it",
		Example: "  ctcgo validate --ctc 1000000 --basic 45 --pf 12\n" +
			"  ctcgo validate --input requests.yaml --strict",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := a.engine(strict)

			if inputFile != "" {
				return validateFile(cmd, eng, inputFile)
			}

			input, err := in.build(cmd, a.cfg)
			if err != nil {
				return err
			}
			return validateOne(cmd, eng, in.label(), input)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Request file (YAML or JSON) to validate")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat out-of-range percentages as errors")

	return cmd
}

func validateOne(cmd *cobra.Command, eng *calculation.Engine, name string, input domain.CtcInput) error {
	out := cmd.OutOrStdout()
	prefix := ""
	if name != "" {
		prefix = name + ": "
	}

	if errs := eng.Validate(input); !errs.Valid() {
		if name != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", name)
		}
		printValidationErrors(cmd.ErrOrStderr(), errs)
		return &calculation.ValidationError{Errors: errs}
	}

	fmt.Fprintf(out, "%s✓ valid\n", prefix)
	if !eng.Strict {
		for _, w := range calculation.CheckRanges(eng.Config, input) {
			fmt.Fprintf(out, "  ! %s\n", w)
		}
	}
	return nil
}

func validateFile(cmd *cobra.Command, eng *calculation.Engine, inputFile string) error {
	file, err := config.NewInputParser().LoadFromFile(inputFile)
	if err != nil {
		return err
	}

	failed := 0
	for _, req := range file.Requests {
		input, err := req.ToInput(eng.Config)
		if err != nil {
			failed++
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		if err := validateOne(cmd, eng, req.Name, input); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d request(s) invalid", failed, len(file.Requests))
	}
	return nil
}
