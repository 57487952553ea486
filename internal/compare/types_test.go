package compare

import (
	"testing"

	"github.com/salarykit/ctcgo/internal/calculation"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func runResult(t *testing.T, ctc string, city domain.CityType) *calculation.Result {
	t.Helper()
	res, err := calculation.NewEngine(domain.DefaultEngineConfig()).Run(domain.NewCtcInput(dec(ctc), city))
	require.NoError(t, err)
	return res
}

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator(domain.DefaultEngineConfig())

	result := calc.CalculateMetrics("Ten lakh", runResult(t, "1000000", domain.Metro))

	assert.Equal(t, "Ten lakh", result.ScenarioName)
	assert.Equal(t, "Metro", result.CityType)
	assert.True(t, result.CTCAmount.Equal(dec("1000000")))
	assert.True(t, result.Basic.Equal(dec("400000")))
	assert.True(t, result.HRA.Equal(dec("200000")))
	assert.True(t, result.SpecialAllowance.Equal(dec("182760")))
	assert.True(t, result.SpecialAllowancePct.Equal(dec("18.28")))
	assert.True(t, result.TakeHome.Equal(dec("782760")), "take home: %s", result.TakeHome)
	assert.True(t, result.MonthlyTakeHome.Equal(dec("65230")), "monthly: %s", result.MonthlyTakeHome)
	assert.Equal(t, "30% tax bracket", result.TaxBracket)
	assert.False(t, result.ComponentsExceedCTC)
	assert.NotNil(t, result.Result)
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator(domain.DefaultEngineConfig())

	base := calc.CalculateMetrics("base", runResult(t, "1000000", domain.Metro))
	raised := calc.CalculateMetrics("raise", runResult(t, "1100000", domain.Metro))

	result := calc.CalculateComparison(raised, base)

	// 440000 + 220000 + 201036 against 782760
	assert.True(t, result.TakeHome.Equal(dec("861036")), "take home: %s", result.TakeHome)
	assert.True(t, result.TakeHomeDiffFromBase.Equal(dec("78276")))
	assert.True(t, result.TakeHomePctFromBase.Equal(dec("10")), "pct: %s", result.TakeHomePctFromBase)
	assert.True(t, result.BasicDiffFromBase.Equal(dec("40000")))
	assert.True(t, result.SpecialDiffFromBase.Equal(dec("18276")))
}

func TestMetricsCalculator_ZeroBaseTakeHome(t *testing.T) {
	calc := NewMetricsCalculator(domain.DefaultEngineConfig())

	base := ComparisonResult{ScenarioName: "empty"}
	alt := ComparisonResult{ScenarioName: "alt", TakeHome: dec("1000")}

	result := calc.CalculateComparison(alt, base)
	assert.True(t, result.TakeHomeDiffFromBase.Equal(dec("1000")))
	assert.True(t, result.TakeHomePctFromBase.IsZero())
}

func TestGenerateRecommendations(t *testing.T) {
	base := &ComparisonResult{
		ScenarioName:        "base",
		TakeHome:            dec("782760"),
		SpecialAllowancePct: dec("18.28"),
	}

	t.Run("no alternatives", func(t *testing.T) {
		recs := GenerateRecommendations(&ComparisonSet{BaseScenarioName: "base", BaseResult: base})
		assert.Empty(t, recs)
	})

	t.Run("best take home and most balanced", func(t *testing.T) {
		compSet := &ComparisonSet{
			BaseScenarioName: "base",
			BaseResult:       base,
			AlternativeResults: []ComparisonResult{
				{ScenarioName: "raise_10pct", TakeHome: dec("861036"), SpecialAllowancePct: dec("18.28")},
				{ScenarioName: "high_basic", TakeHome: dec("765950"), SpecialAllowancePct: dec("1.6")},
			},
		}

		recs := GenerateRecommendations(compSet)
		require.Len(t, recs, 2)
		assert.Equal(t, "Best Take Home: raise_10pct provides ₹78,276 more per year than base", recs[0])
		assert.Equal(t, "Most Balanced: high_basic keeps Special Allowance at 1.6% of CTC (base 18.3%)", recs[1])
	})

	t.Run("clamped variants are flagged and never most balanced", func(t *testing.T) {
		compSet := &ComparisonSet{
			BaseScenarioName: "base",
			BaseResult:       base,
			AlternativeResults: []ComparisonResult{
				{ScenarioName: "overloaded", TakeHome: dec("700000"), ComponentsExceedCTC: true},
			},
		}

		recs := GenerateRecommendations(compSet)
		assert.Equal(t, []string{"Review: overloaded has fixed components exceeding CTC"}, recs)
	})
}
