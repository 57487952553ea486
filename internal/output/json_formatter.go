package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

// JSONFormatter exports the breakup as a JSON document
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonExport struct {
	Name        string            `json:"name,omitempty"`
	CTCAmount   json.Number       `json:"ctc_amount"`
	CityType    string            `json:"city_type"`
	Breakup     *domain.Breakdown `json:"breakup"`
	Summary     *jsonSummary      `json:"summary,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
	GeneratedAt string            `json:"generated_at"`
}

type jsonSummary struct {
	Metrics  []jsonMetric     `json:"metrics"`
	Insights []domain.Insight `json:"insights"`
}

type jsonMetric struct {
	Label   string      `json:"label"`
	Annual  json.Number `json:"annual"`
	Monthly json.Number `json:"monthly"`
}

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Breakdown == nil {
		return nil, fmt.Errorf("report has no breakdown")
	}

	out := jsonExport{
		Name:        report.Name,
		CTCAmount:   number(report.Input.CTCAmount),
		CityType:    report.Input.CityType.String(),
		Breakup:     report.Breakdown,
		Warnings:    report.Warnings,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
	}
	if len(report.Summary.Metrics) > 0 || len(report.Summary.Insights) > 0 {
		s := &jsonSummary{Insights: report.Summary.Insights}
		for _, m := range report.Summary.Metrics {
			s.Metrics = append(s.Metrics, jsonMetric{
				Label:   m.Label,
				Annual:  number(m.Annual.RoundBank(2)),
				Monthly: number(m.Monthly.RoundBank(2)),
			})
		}
		out.Summary = s
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
