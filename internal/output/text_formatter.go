package output

import (
	"fmt"
	"strings"

	"github.com/salarykit/ctcgo/internal/domain"
)

// TextFormatter produces the plain-text breakup report
type TextFormatter struct{}

func (t TextFormatter) Name() string { return "text" }

func (t TextFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Breakdown == nil {
		return nil, fmt.Errorf("report has no breakdown")
	}

	var sb strings.Builder
	sb.WriteString("CTC BREAKUP REPORT\n")
	sb.WriteString("==================\n\n")
	if report.Name != "" {
		sb.WriteString(fmt.Sprintf("Name: %s\n", report.Name))
	}
	sb.WriteString(fmt.Sprintf("Total CTC: %s\n", FormatRupees(report.Input.CTCAmount)))
	sb.WriteString(fmt.Sprintf("City Type: %s\n", report.Input.CityType))
	sb.WriteString(fmt.Sprintf("Generated on: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))

	sb.WriteString("Component Breakdown:\n")
	sb.WriteString("-------------------\n")
	for _, e := range report.Breakdown.Entries {
		sb.WriteString(fmt.Sprintf("%-25s: ₹%12s (%6s%%)\n",
			e.Name, FormatAmount(e.Amount), e.Percentage.StringFixedBank(2)))
	}

	if len(report.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range report.Warnings {
			sb.WriteString("  - " + w + "\n")
		}
	}
	return []byte(sb.String()), nil
}
