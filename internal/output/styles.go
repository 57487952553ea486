package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/salarykit/ctcgo/internal/domain"
)

// Console palette
var (
	ColorPrimary = lipgloss.Color("#1f77b4")
	ColorSuccess = lipgloss.Color("#2ca02c")
	ColorWarning = lipgloss.Color("#ff7f0e")
	ColorDanger  = lipgloss.Color("#d62728")
	ColorMuted   = lipgloss.Color("#7f7f7f")
	ColorBorder  = lipgloss.Color("#5f5f87")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Width(26)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)
)

// InsightStyle returns the style for an insight level
func InsightStyle(level domain.InsightLevel) lipgloss.Style {
	switch level {
	case domain.InsightSuccess:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	case domain.InsightWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	default:
		return lipgloss.NewStyle().Foreground(ColorPrimary)
	}
}

// InsightMarker returns the plain-text marker for an insight level
func InsightMarker(level domain.InsightLevel) string {
	switch level {
	case domain.InsightSuccess:
		return "[ok]"
	case domain.InsightWarning:
		return "[!]"
	default:
		return "[i]"
	}
}
