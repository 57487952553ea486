package main

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/salarykit/ctcgo/internal/calculation"
	"github.com/salarykit/ctcgo/internal/config"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/salarykit/ctcgo/internal/output"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	format    string
	outputDir string
}

func (o renderOptions) formatter() (output.Formatter, error) {
	f := output.GetFormatterByName(o.format)
	if f == nil {
		return nil, fmt.Errorf("unsupported format %q (available: %s; aliases: %s)",
			o.format,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}
	return f, nil
}

// render writes the report to stdout, or into dir when an output directory is set
func (o renderOptions) render(cmd *cobra.Command, report *domain.Report, dir string) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}

	if dir == "" {
		data, err := f.Format(report)
		if err != nil {
			return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	path, err := output.WriteFormatted(dir, f, report, output.ExtensionFor(f.Name()))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// requestDir keeps batch reports from colliding on their timestamped names.
// Names that slug to a directory already handed out get the request's
// position appended ("a_b", then "a_b_2").
func requestDir(base, name string, index int, used map[string]bool) string {
	slug := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		slug = "request"
	}
	candidate := slug
	for n := index + 1; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", slug, n)
	}
	used[candidate] = true
	return filepath.Join(base, candidate)
}

func calculateCmd(a *app) *cobra.Command {
	var (
		in        inputFlags
		render    renderOptions
		inputFile string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate a CTC breakup",
		Long: "Calculate the component breakup of an annual CTC from flags or from a\n" +
			"request file (--input requests.yaml), and render it in the chosen format.",
		Example: "  ctcgo calculate --lpa 10 --city Mumbai\n" +
			"  ctcgo calculate --ctc 1500000 --city-type non-metro --basic 45 --format csv\n" +
			"  ctcgo calculate --preset senior --format html --output-dir reports\n" +
			"  ctcgo calculate --input requests.yaml --format json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := render.formatter(); err != nil {
				return err
			}
			eng := a.engine(strict)

			if inputFile != "" {
				return runBatch(cmd, eng, inputFile, render)
			}

			input, err := in.build(cmd, a.cfg)
			if err != nil {
				return err
			}

			res, err := eng.Run(input)
			if err != nil {
				if errs, ok := validationErrors(err); ok {
					printValidationErrors(cmd.ErrOrStderr(), errs)
				}
				return err
			}

			return render.render(cmd, res.Report(in.label(), time.Now()), render.outputDir)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&render.format, "format", "f", "console", "Output format (console, text, csv, json, html)")
	cmd.Flags().StringVar(&render.outputDir, "output-dir", "", "Write the report file into this directory instead of stdout")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Request file (YAML or JSON) with one or more salaries")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat out-of-range percentages as errors")

	return cmd
}

func runBatch(cmd *cobra.Command, eng *calculation.Engine, inputFile string, render renderOptions) error {
	file, err := config.NewInputParser().LoadFromFile(inputFile)
	if err != nil {
		return err
	}

	results, err := eng.RunBatch(cmd.Context(), file.Requests)
	if err != nil {
		return err
	}

	failed := 0
	now := time.Now()
	usedDirs := make(map[string]bool, len(results))
	for i, r := range results {
		if r.Err != nil {
			failed++
			reportBatchError(cmd.ErrOrStderr(), r)
			continue
		}

		dir := ""
		if render.outputDir != "" {
			dir = requestDir(render.outputDir, r.Name, i, usedDirs)
		} else if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if err := render.render(cmd, r.Result.Report(r.Name, now), dir); err != nil {
			return fmt.Errorf("%s: %w", r.Name, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d request(s) failed", failed, len(results))
	}
	return nil
}

func reportBatchError(w io.Writer, r calculation.BatchResult) {
	if errs, ok := validationErrors(r.Err); ok {
		fmt.Fprintf(w, "%s:\n", r.Name)
		printValidationErrors(w, errs)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", r.Name, r.Err)
}
