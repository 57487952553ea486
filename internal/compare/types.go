package compare

import (
	"fmt"

	"github.com/salarykit/ctcgo/internal/calculation"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/salarykit/ctcgo/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single salary variant with its key metrics
type ComparisonResult struct {
	ScenarioName string              `json:"scenarioName"`
	Description  string              `json:"description"`
	Result       *calculation.Result `json:"-"`

	// Key Metrics
	CTCAmount           decimal.Decimal `json:"ctcAmount"`
	CityType            string          `json:"cityType"`
	Basic               decimal.Decimal `json:"basic"`
	HRA                 decimal.Decimal `json:"hra"`
	SpecialAllowance    decimal.Decimal `json:"specialAllowance"`
	SpecialAllowancePct decimal.Decimal `json:"specialAllowancePct"`
	TakeHome            decimal.Decimal `json:"takeHome"`
	MonthlyTakeHome     decimal.Decimal `json:"monthlyTakeHome"`
	TaxBracket          string          `json:"taxBracket"`
	ComponentsExceedCTC bool            `json:"componentsExceedCtc,omitempty"`

	// Comparison to Base
	TakeHomeDiffFromBase decimal.Decimal `json:"takeHomeDiffFromBase"`
	TakeHomePctFromBase  decimal.Decimal `json:"takeHomePctFromBase"`
	SpecialDiffFromBase  decimal.Decimal `json:"specialDiffFromBase"`
	BasicDiffFromBase    decimal.Decimal `json:"basicDiffFromBase"`
}

// ComparisonSet represents a collection of salary comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// MetricsCalculator extracts key metrics from calculation results
type MetricsCalculator struct {
	Config domain.EngineConfig
}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator(cfg domain.EngineConfig) *MetricsCalculator {
	return &MetricsCalculator{Config: cfg}
}

// CalculateMetrics computes all comparison metrics for a calculation result
func (mc *MetricsCalculator) CalculateMetrics(name string, res *calculation.Result) ComparisonResult {
	b := res.Breakdown
	special, _ := b.Get(domain.ComponentSpecialAllowance)
	takeHome := calculation.TakeHome(b)

	return ComparisonResult{
		ScenarioName:        name,
		Result:              res,
		CTCAmount:           res.Input.CTCAmount,
		CityType:            res.Input.CityType.String(),
		Basic:               b.Amount(domain.ComponentBasic),
		HRA:                 b.Amount(domain.ComponentHRA),
		SpecialAllowance:    special.Amount,
		SpecialAllowancePct: special.Percentage,
		TakeHome:            takeHome,
		MonthlyTakeHome:     calculation.Monthly(takeHome).RoundBank(2),
		TaxBracket:          calculation.TaxBracket(mc.Config, res.Input.CTCAmount),
		ComponentsExceedCTC: b.IsClamped(),
	}
}

// CalculateComparison computes comparison metrics between a variant and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TakeHomeDiffFromBase = scenario.TakeHome.Sub(base.TakeHome)

	if !base.TakeHome.IsZero() {
		scenario.TakeHomePctFromBase = scenario.TakeHomeDiffFromBase.
			Div(base.TakeHome).
			Mul(decimal.NewFromInt(100)).
			RoundBank(2)
	}

	scenario.SpecialDiffFromBase = scenario.SpecialAllowance.Sub(base.SpecialAllowance)
	scenario.BasicDiffFromBase = scenario.Basic.Sub(base.Basic)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	base := compSet.BaseResult

	// Find best take-home
	bestTakeHome := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TakeHome.GreaterThan(bestTakeHome.TakeHome) {
			bestTakeHome = alt
		}
	}

	if bestTakeHome != base {
		diff := bestTakeHome.TakeHome.Sub(base.TakeHome)
		recommendations = append(recommendations,
			"Best Take Home: "+bestTakeHome.ScenarioName+" provides ₹"+output.FormatAmount(diff)+
				" more per year than "+compSet.BaseScenarioName)
	}

	// Find the most balanced structure (lowest special allowance share)
	mostBalanced := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.ComponentsExceedCTC {
			continue
		}
		if alt.SpecialAllowancePct.LessThan(mostBalanced.SpecialAllowancePct) {
			mostBalanced = alt
		}
	}

	if mostBalanced != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Most Balanced: %s keeps Special Allowance at %s%% of CTC (base %s%%)",
				mostBalanced.ScenarioName,
				mostBalanced.SpecialAllowancePct.StringFixedBank(1),
				base.SpecialAllowancePct.StringFixedBank(1)))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.ComponentsExceedCTC {
			recommendations = append(recommendations,
				"Review: "+alt.ScenarioName+" has fixed components exceeding CTC")
		}
	}

	return recommendations
}
