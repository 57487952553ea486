package calculation

import (
	"fmt"

	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Key metric labels
const (
	MetricBasic    = "Basic Salary"
	MetricHRA      = "HRA"
	MetricTakeHome = "Approx. Take Home"
	MetricTotalCTC = "Total CTC"
)

var monthsPerYear = decimal.NewFromInt(12)

// Analyze derives key metrics and salary insights from a breakdown
func Analyze(cfg domain.EngineConfig, in domain.CtcInput, b *domain.Breakdown) domain.Summary {
	basic := b.Amount(domain.ComponentBasic)
	hra := b.Amount(domain.ComponentHRA)
	takeHome := TakeHome(b)

	summary := domain.Summary{
		Metrics: []domain.KeyMetric{
			newMetric(MetricBasic, basic),
			newMetric(MetricHRA, hra),
			newMetric(MetricTakeHome, takeHome),
			newMetric(MetricTotalCTC, in.CTCAmount),
		},
	}

	summary.Insights = append(summary.Insights, domain.Insight{
		Level:   domain.InsightInfo,
		Title:   "Tax Bracket",
		Message: TaxBracket(cfg, in.CTCAmount),
	})

	pf := b.Amount(domain.ComponentEmployerPF)
	summary.Insights = append(summary.Insights, domain.Insight{
		Level:   domain.InsightInfo,
		Title:   "Employee PF",
		Message: fmt.Sprintf("₹%s (deducted from salary)", domain.GroupDigits(pf, 0)),
	})

	if in.CityType == domain.Metro {
		summary.Insights = append(summary.Insights, domain.Insight{
			Level:   domain.InsightSuccess,
			Title:   "Metro City",
			Message: fmt.Sprintf("Higher HRA (%s%% of Basic)", cfg.HRA.Metro.Mul(hundred).StringFixed(0)),
		})
	} else {
		summary.Insights = append(summary.Insights, domain.Insight{
			Level:   domain.InsightWarning,
			Title:   "Non-Metro",
			Message: fmt.Sprintf("Lower HRA (%s%% of Basic)", cfg.HRA.NonMetro.Mul(hundred).StringFixed(0)),
		})
	}

	special, _ := b.Get(domain.ComponentSpecialAllowance)
	if special.Percentage.GreaterThan(cfg.Insights.SpecialAllowanceWarnPercent) {
		summary.Insights = append(summary.Insights, domain.Insight{
			Level:   domain.InsightWarning,
			Title:   "High Special Allowance",
			Message: fmt.Sprintf("%s%% - Consider rebalancing", special.Percentage.StringFixedBank(1)),
		})
	} else {
		summary.Insights = append(summary.Insights, domain.Insight{
			Level:   domain.InsightSuccess,
			Title:   "Balanced Structure",
			Message: fmt.Sprintf("%s%% Special Allowance", special.Percentage.StringFixedBank(1)),
		})
	}

	if b.IsClamped() {
		summary.Insights = append(summary.Insights, domain.Insight{
			Level: domain.InsightWarning,
			Title: "Components Exceed CTC",
			Message: fmt.Sprintf("Fixed components exceed CTC by ₹%s; Special Allowance is floored at zero",
				domain.GroupDigits(b.Unallocated.Abs(), 0)),
		})
	}

	return summary
}

// TakeHome approximates annual take-home as Basic + HRA + Special Allowance
func TakeHome(b *domain.Breakdown) decimal.Decimal {
	return b.Amount(domain.ComponentBasic).
		Add(b.Amount(domain.ComponentHRA)).
		Add(b.Amount(domain.ComponentSpecialAllowance))
}

// TaxBracket returns the indicative bracket label for a CTC
func TaxBracket(cfg domain.EngineConfig, ctc decimal.Decimal) string {
	switch {
	case ctc.GreaterThanOrEqual(cfg.Insights.HighTaxBracketCTC):
		return "30% tax bracket"
	case ctc.GreaterThanOrEqual(cfg.Insights.MidTaxBracketCTC):
		return "20% tax bracket"
	default:
		return "5% tax bracket"
	}
}

// Monthly divides an annual amount by twelve
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(monthsPerYear)
}

func newMetric(label string, annual decimal.Decimal) domain.KeyMetric {
	return domain.KeyMetric{Label: label, Annual: annual, Monthly: Monthly(annual)}
}
