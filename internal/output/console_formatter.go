package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// ConsoleFormatter renders a styled breakup table with key metrics and
// insights for terminal output.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Breakdown == nil {
		return nil, fmt.Errorf("report has no breakdown")
	}

	var sb strings.Builder

	title := "CTC BREAKUP"
	if report.Name != "" {
		title += ": " + report.Name
	}
	sb.WriteString(TitleStyle.Render(title) + "\n")
	sb.WriteString(SubtitleStyle.Render(fmt.Sprintf("Total CTC %s | %s | generated %s",
		FormatRupees(report.Input.CTCAmount),
		report.Input.CityType,
		report.GeneratedAt.Format("2006-01-02 15:04:05"))) + "\n\n")

	sb.WriteString(breakupTable(report.Breakdown) + "\n")

	if len(report.Summary.Metrics) > 0 {
		sb.WriteString(SectionStyle.Render("Key Metrics") + "\n")
		cards := make([]string, 0, len(report.Summary.Metrics))
		for _, m := range report.Summary.Metrics {
			cards = append(cards, metricCard(m))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n")
	}

	if len(report.Summary.Insights) > 0 {
		sb.WriteString(SectionStyle.Render("Salary Insights") + "\n")
		for _, in := range report.Summary.Insights {
			line := fmt.Sprintf("%s %s: %s", InsightMarker(in.Level), in.Title, in.Message)
			sb.WriteString(InsightStyle(in.Level).Render(line) + "\n")
		}
	}

	if len(report.Warnings) > 0 {
		sb.WriteString(SectionStyle.Render("Range Warnings") + "\n")
		for _, w := range report.Warnings {
			sb.WriteString(ErrorStyle.Render("  - "+w) + "\n")
		}
	}

	return []byte(sb.String()), nil
}

func breakupTable(b *domain.Breakdown) string {
	rows := make([][]string, 0, len(b.Entries)+1)
	for _, e := range b.Entries {
		rows = append(rows, []string{
			string(e.Name),
			FormatAmount(e.Amount),
			e.Percentage.StringFixedBank(2),
			FormatAmount(e.Amount.Div(twelve)),
		})
	}
	rows = append(rows, []string{
		"Total",
		FormatAmount(b.Total()),
		"",
		FormatAmount(b.Total().Div(twelve)),
	})
	totalRow := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers("Component", "Amount (₹)", "Percentage (%)", "Monthly (₹)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			style := TableCellStyle
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			if row == totalRow {
				style = style.Bold(true)
			}
			return style
		})
	return t.Render()
}

func metricCard(m domain.KeyMetric) string {
	content := MetricLabelStyle.Render(m.Label) + "\n" +
		MetricValueStyle.Render(FormatRupees(m.Annual)) + "\n" +
		SubtitleStyle.Render(FormatRupees(m.Monthly)+"/month")
	return CardStyle.Render(content)
}
