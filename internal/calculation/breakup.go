package calculation

import (
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Calculate splits a validated CTC into its seven components.
//
// The caller must have validated the input: a non-positive CTC makes the
// percentage division meaningless and is not guarded here.
func Calculate(cfg domain.EngineConfig, in domain.CtcInput) *domain.Breakdown {
	ctc := in.CTCAmount
	d := cfg.Defaults

	basicPct := resolvePercent(in.BasicPercent, d.BasicPercent)
	pfPct := resolvePercent(in.PFPercent, d.PFPercent)
	gratuityPct := resolvePercent(in.GratuityPercent, d.GratuityPercent)
	bonusPct := resolvePercent(in.BonusPercent, d.BonusPercent)
	ltaPct := resolvePercent(in.LTAPercent, d.LTAPercent)

	// HRA only falls back when absent; an explicit zero rate is honoured.
	hraRate := cfg.HRA.Rate(in.CityType)
	if in.HRAPercent != nil {
		hraRate = *in.HRAPercent
	}

	basic := ctc.Mul(basicPct).Div(hundred)
	hra := basic.Mul(hraRate)
	pf := basic.Mul(pfPct).Div(hundred)
	gratuity := basic.Mul(gratuityPct).Div(hundred)
	bonus := ctc.Mul(bonusPct).Div(hundred)
	lta := ctc.Mul(ltaPct).Div(hundred)

	fixed := basic.Add(hra).Add(pf).Add(gratuity).Add(bonus).Add(lta)
	residual := ctc.Sub(fixed)
	special := decimal.Max(decimal.Zero, residual)

	b := &domain.Breakdown{
		CTCAmount:   ctc,
		Unallocated: decimal.Zero,
	}
	if residual.IsNegative() {
		b.Unallocated = residual.RoundBank(2)
	}

	amounts := map[domain.ComponentName]decimal.Decimal{
		domain.ComponentBasic:            basic,
		domain.ComponentHRA:              hra,
		domain.ComponentSpecialAllowance: special,
		domain.ComponentEmployerPF:       pf,
		domain.ComponentGratuity:         gratuity,
		domain.ComponentBonus:            bonus,
		domain.ComponentLTA:              lta,
	}
	b.Entries = make([]domain.BreakdownEntry, 0, len(domain.ComponentOrder))
	for _, name := range domain.ComponentOrder {
		amount := amounts[name]
		b.Entries = append(b.Entries, domain.BreakdownEntry{
			Name: name,
			ComponentAmount: domain.ComponentAmount{
				Amount:     amount.RoundBank(2),
				Percentage: amount.Div(ctc).Mul(hundred).RoundBank(2),
			},
		})
	}

	return b
}

// resolvePercent substitutes the default for an omitted percentage. A
// supplied zero is also treated as omitted, so zero overrides for these
// five components cannot be expressed; callers that need "0%" must adjust
// the defaults in EngineConfig instead.
func resolvePercent(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil || v.IsZero() {
		return def
	}
	return *v
}
