package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Variant",
		"Type",
		"CTC",
		"City Type",
		"Basic",
		"HRA",
		"Special Allowance",
		"Special Allowance %",
		"Take Home",
		"Monthly Take Home",
		"Tax Bracket",
		"Components Exceed CTC",
		"Take Home Diff from Base",
		"Take Home % Change",
		"Special Diff from Base",
		"Basic Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, variantType string) []string {
	return []string{
		result.ScenarioName,
		variantType,
		result.CTCAmount.StringFixed(2),
		result.CityType,
		result.Basic.StringFixed(2),
		result.HRA.StringFixed(2),
		result.SpecialAllowance.StringFixed(2),
		result.SpecialAllowancePct.StringFixed(2),
		result.TakeHome.StringFixed(2),
		result.MonthlyTakeHome.StringFixed(2),
		result.TaxBracket,
		strconv.FormatBool(result.ComponentsExceedCTC),
		result.TakeHomeDiffFromBase.StringFixed(2),
		result.TakeHomePctFromBase.StringFixed(2),
		result.SpecialDiffFromBase.StringFixed(2),
		result.BasicDiffFromBase.StringFixed(2),
	}
}
