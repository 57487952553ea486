package compare

import (
	"fmt"
	"strings"

	"github.com/salarykit/ctcgo/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

const tableWidth = 96

// Format generates a formatted table comparing salary variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("CTC COMPARISON\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s\n", compSet.BaseScenarioName))
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Variant",
		numWidth, "CTC",
		numWidth, "Basic",
		numWidth, "Special",
		numWidth, "Take Home",
		numWidth, "Monthly"))
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(" " + alt.Description)
			}
			sb.WriteString("\n")

			sb.WriteString(fmt.Sprintf("  Take Home:         %s (%s%%)\n",
				tf.formatDelta(alt.TakeHomeDiffFromBase),
				alt.TakeHomePctFromBase.StringFixed(1)))

			if !alt.BasicDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Basic:             %s\n",
					tf.formatDelta(alt.BasicDiffFromBase)))
			}

			if !alt.SpecialDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Special Allowance: %s (%s%% of CTC)\n",
					tf.formatDelta(alt.SpecialDiffFromBase),
					alt.SpecialAllowancePct.StringFixed(1)))
			}

			sb.WriteString(fmt.Sprintf("  Tax Bracket:       %s\n", alt.TaxBracket))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single variant row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}
	special := output.FormatRupees(result.SpecialAllowance)
	if result.ComponentsExceedCTC {
		special += "!"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatRupees(result.CTCAmount),
		numWidth, output.FormatRupees(result.Basic),
		numWidth, special,
		numWidth, output.FormatRupees(result.TakeHome),
		numWidth, output.FormatRupees(result.MonthlyTakeHome))
}

// formatDelta renders a signed whole-rupee change, e.g. "+₹78,276"
func (tf *TableFormatter) formatDelta(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+₹" + output.FormatAmount(delta)
	case delta.IsNegative():
		return "-₹" + output.FormatAmount(delta.Abs())
	default:
		return "₹0"
	}
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each variant
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.TakeHomeDiffFromBase.IsPositive() {
			change = "+₹" + output.FormatCurrency(alt.TakeHomeDiffFromBase)
		} else if alt.TakeHomeDiffFromBase.IsNegative() {
			change = "-₹" + output.FormatCurrency(alt.TakeHomeDiffFromBase.Abs())
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
