package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/salarykit/ctcgo/internal/calculation"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/salarykit/ctcgo/internal/output"
	"github.com/salarykit/ctcgo/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// inputFlags are the salary flags shared by calculate, validate and compare
type inputFlags struct {
	name     string
	ctc      string
	lpa      string
	cityType string
	city     string
	preset   string
	percents map[transform.Component]*string
}

func addInputFlags(cmd *cobra.Command, f *inputFlags) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Label shown on the report")
	fs.StringVar(&f.ctc, "ctc", "", "Annual CTC in rupees (e.g. 1000000)")
	fs.StringVar(&f.lpa, "lpa", "", "Annual CTC in lakhs per annum (e.g. 10)")
	fs.StringVar(&f.cityType, "city-type", "", "City type: Metro or Non-Metro (default Metro)")
	fs.StringVar(&f.city, "city", "", "City name; classified as Metro or Non-Metro")
	fs.StringVar(&f.preset, "preset", "", "Start from a named preset (see 'ctcgo presets')")

	usage := map[transform.Component]string{
		transform.ComponentBasic:    "Basic salary, % of CTC (default 40)",
		transform.ComponentHRA:      "HRA, % of Basic (default 50 Metro / 40 Non-Metro)",
		transform.ComponentPF:       "Employer PF, % of Basic (default 12)",
		transform.ComponentGratuity: "Gratuity, % of Basic (default 4.81)",
		transform.ComponentBonus:    "Bonus/Variable, % of CTC (default 10)",
		transform.ComponentLTA:      "LTA/Other Benefits, % of CTC (default 5)",
	}
	f.percents = make(map[transform.Component]*string, len(transform.Components))
	for _, c := range transform.Components {
		v := new(string)
		f.percents[c] = v
		fs.StringVar(v, string(c), "", usage[c])
	}

	cmd.MarkFlagsMutuallyExclusive("ctc", "lpa")
	cmd.MarkFlagsMutuallyExclusive("city-type", "city")
}

func parseDecimalFlag(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s value %q: %w", flag, value, err)
	}
	return d, nil
}

// build resolves the flags into a calculation input: the base amount and
// city, then the preset, then any explicit percentage flags. A preset's own
// amount or city never replaces one given explicitly on the command line.
func (f *inputFlags) build(cmd *cobra.Command, cfg domain.EngineConfig) (domain.CtcInput, error) {
	in := domain.NewCtcInput(decimal.Zero, domain.Metro)

	switch {
	case f.ctc != "":
		v, err := parseDecimalFlag("ctc", f.ctc)
		if err != nil {
			return in, err
		}
		in.CTCAmount = v
	case f.lpa != "":
		v, err := parseDecimalFlag("lpa", f.lpa)
		if err != nil {
			return in, err
		}
		in.CTCAmount = domain.FromLPA(v)
	}

	switch {
	case f.cityType != "":
		city, err := domain.ParseCityType(f.cityType)
		if err != nil {
			return in, err
		}
		in.CityType = city
	case f.city != "":
		in.CityType = cfg.ClassifyCity(f.city)
	}

	var transforms []transform.InputTransform
	if f.preset != "" {
		tmpl, ok := transform.CreateBuiltInTemplates().Get(f.preset)
		if !ok {
			return in, fmt.Errorf("preset %s not found", f.preset)
		}
		amountSet := f.ctc != "" || f.lpa != ""
		citySet := f.cityType != "" || f.city != ""
		for _, tr := range tmpl.Transforms {
			switch tr.(type) {
			case *transform.SetCTC, *transform.SetLPA:
				if amountSet {
					continue
				}
			case *transform.SetCityType:
				if citySet {
					continue
				}
			}
			transforms = append(transforms, tr)
		}
	}

	for _, c := range transform.Components {
		if !cmd.Flags().Changed(string(c)) {
			continue
		}
		v, err := parseDecimalFlag(string(c), *f.percents[c])
		if err != nil {
			return in, err
		}
		transforms = append(transforms, &transform.SetPercent{Component: c, Value: v})
	}

	out, err := transform.ApplyTransforms(&in, transforms)
	if err != nil {
		return in, err
	}
	return *out, nil
}

// label is the report name for a flag-built input
func (f *inputFlags) label() string {
	if f.name != "" {
		return f.name
	}
	return f.preset
}

// printValidationErrors writes the bulleted error list under a banner
func printValidationErrors(w io.Writer, errs domain.ValidationErrors) {
	fmt.Fprintln(w, output.ErrorStyle.Render("⚠ Please fix the following errors:"))
	for _, e := range errs {
		fmt.Fprintf(w, "  • %s\n", e)
	}
}

func validationErrors(err error) (domain.ValidationErrors, bool) {
	var verr *calculation.ValidationError
	if errors.As(err, &verr) {
		return verr.Errors, true
	}
	return nil, false
}
