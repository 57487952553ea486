package calculation

import (
	"fmt"

	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Validate checks a CTC amount and the five CTC-relative percentages.
// Every rule runs; only the CTC bounds form an exclusive chain. Messages
// come back in rule order and an empty list means valid.
func Validate(cfg domain.EngineConfig, ctc, basic, pf, gratuity, bonus, lta decimal.Decimal) domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	if ctc.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "CTC amount must be greater than 0")
	} else if ctc.LessThan(cfg.Limits.MinCTC) {
		errs = append(errs, fmt.Sprintf("CTC amount seems too low (minimum ₹%s)", domain.GroupDigits(cfg.Limits.MinCTC, 0)))
	} else if ctc.GreaterThan(cfg.Limits.MaxCTC) {
		errs = append(errs, fmt.Sprintf("CTC amount seems too high (maximum ₹%s)", domain.GroupDigits(cfg.Limits.MaxCTC, 0)))
	}

	if basic.LessThanOrEqual(decimal.Zero) || basic.GreaterThan(hundred) {
		errs = append(errs, "Basic salary percentage must be between 0-100%")
	}

	for _, p := range []struct {
		label string
		value decimal.Decimal
	}{
		{"PF", pf},
		{"Gratuity", gratuity},
		{"Bonus", bonus},
		{"LTA", lta},
	} {
		if p.value.IsNegative() || p.value.GreaterThan(hundred) {
			errs = append(errs, p.label+" percentage must be between 0-100%")
		}
	}

	// The total is shown the way a float renders at one decimal, so a tie
	// such as 120.35 reads "120.3".
	total := basic.Add(pf).Add(gratuity).Add(bonus).Add(lta)
	if total.GreaterThan(cfg.Limits.MaxTotalPercent) {
		errs = append(errs, fmt.Sprintf("Total percentages exceed reasonable limits (%.1f%%)", total.InexactFloat64()))
	}

	if pf.GreaterThan(basic) {
		errs = append(errs, "PF percentage cannot exceed Basic salary percentage")
	}
	if gratuity.GreaterThan(basic) {
		errs = append(errs, "Gratuity percentage cannot exceed Basic salary percentage")
	}

	return errs
}

// ValidateInput validates an input as the calculator will see it: omitted
// percentages are checked at their configured defaults.
func ValidateInput(cfg domain.EngineConfig, in domain.CtcInput) domain.ValidationErrors {
	d := cfg.Defaults
	return Validate(cfg,
		in.CTCAmount,
		valueOr(in.BasicPercent, d.BasicPercent),
		valueOr(in.PFPercent, d.PFPercent),
		valueOr(in.GratuityPercent, d.GratuityPercent),
		valueOr(in.BonusPercent, d.BonusPercent),
		valueOr(in.LTAPercent, d.LTAPercent),
	)
}

// CheckRanges returns advisory warnings for supplied percentages that fall
// outside the typical salary-structure ranges. Omitted values are not checked.
func CheckRanges(cfg domain.EngineConfig, in domain.CtcInput) []string {
	var warnings []string
	check := func(label string, v *decimal.Decimal, r domain.Range, scale decimal.Decimal) {
		if v == nil {
			return
		}
		scaled := v.Mul(scale)
		if !r.Contains(scaled) {
			warnings = append(warnings, fmt.Sprintf("%s %s%% is outside the typical range %s-%s%%",
				label, scaled.StringFixedBank(2), r.Min.StringFixedBank(1), r.Max.StringFixedBank(1)))
		}
	}

	one := decimal.NewFromInt(1)
	check("Basic salary", in.BasicPercent, cfg.Ranges.Basic, one)
	check("HRA (of Basic)", in.HRAPercent, cfg.Ranges.HRA, hundred)
	check("Employer PF", in.PFPercent, cfg.Ranges.PF, one)
	check("Gratuity", in.GratuityPercent, cfg.Ranges.Gratuity, one)
	check("Bonus/Variable", in.BonusPercent, cfg.Ranges.Bonus, one)
	check("LTA/Other Benefits", in.LTAPercent, cfg.Ranges.LTA, one)
	return warnings
}

func valueOr(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	return *v
}
