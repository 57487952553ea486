package calculation

import (
	"testing"

	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insightTitles(s domain.Summary) []string {
	titles := make([]string, 0, len(s.Insights))
	for _, i := range s.Insights {
		titles = append(titles, i.Title)
	}
	return titles
}

func TestAnalyze_MetroDefaults(t *testing.T) {
	cfg := domain.DefaultEngineConfig()
	in := domain.NewCtcInput(dec("1000000"), domain.Metro)
	summary := Analyze(cfg, in, Calculate(cfg, in))

	takeHome, ok := summary.Metric(MetricTakeHome)
	require.True(t, ok)
	assert.True(t, dec("782760").Equal(takeHome.Annual), "take home: %s", takeHome.Annual)
	assert.True(t, dec("65230").Equal(takeHome.Monthly), "monthly take home: %s", takeHome.Monthly)

	total, ok := summary.Metric(MetricTotalCTC)
	require.True(t, ok)
	assert.True(t, dec("1000000").Equal(total.Annual))

	assert.Equal(t, []string{"Tax Bracket", "Employee PF", "Metro City", "Balanced Structure"}, insightTitles(summary))
	assert.Equal(t, "30% tax bracket", summary.Insights[0].Message)
	assert.Equal(t, "₹48,000 (deducted from salary)", summary.Insights[1].Message)
	assert.Equal(t, "Higher HRA (50% of Basic)", summary.Insights[2].Message)
	assert.Equal(t, "18.3% Special Allowance", summary.Insights[3].Message)
	assert.Equal(t, domain.InsightSuccess, summary.Insights[3].Level)
}

func TestAnalyze_HighSpecialAllowance(t *testing.T) {
	cfg := domain.DefaultEngineConfig()
	in := domain.NewCtcInput(dec("600000"), domain.NonMetro)
	in.BasicPercent = pct("30")
	in.BonusPercent = pct("5")

	summary := Analyze(cfg, in, Calculate(cfg, in))

	assert.Contains(t, insightTitles(summary), "Non-Metro")
	last := summary.Insights[len(summary.Insights)-1]
	assert.Equal(t, "High Special Allowance", last.Title)
	assert.Equal(t, domain.InsightWarning, last.Level)
	assert.Contains(t, last.Message, "Consider rebalancing")
}

func TestAnalyze_OvershootWarning(t *testing.T) {
	cfg := domain.DefaultEngineConfig()
	in := domain.NewCtcInput(dec("1000000"), domain.Metro)
	in.BasicPercent = pct("60")
	in.HRAPercent = pct("0.6")
	in.BonusPercent = pct("20")
	in.LTAPercent = pct("10")

	summary := Analyze(cfg, in, Calculate(cfg, in))

	last := summary.Insights[len(summary.Insights)-1]
	assert.Equal(t, "Components Exceed CTC", last.Title)
	assert.Contains(t, last.Message, "₹360,860")
}

func TestTaxBracket(t *testing.T) {
	cfg := domain.DefaultEngineConfig()

	tests := []struct {
		ctc  string
		want string
	}{
		{"300000", "5% tax bracket"},
		{"499999", "5% tax bracket"},
		{"500000", "20% tax bracket"},
		{"999999.99", "20% tax bracket"},
		{"1000000", "30% tax bracket"},
		{"5000000", "30% tax bracket"},
	}
	for _, tt := range tests {
		t.Run(tt.ctc, func(t *testing.T) {
			assert.Equal(t, tt.want, TaxBracket(cfg, dec(tt.ctc)))
		})
	}
}
