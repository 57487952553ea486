package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/salarykit/ctcgo/internal/domain"
)

// CSVFormatter writes one row per component: Component,Amount,Percentage
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Breakdown == nil {
		return nil, fmt.Errorf("report has no breakdown")
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Component", "Amount", "Percentage"}); err != nil {
		return nil, err
	}
	for _, e := range report.Breakdown.Entries {
		row := []string{string(e.Name), e.Amount.String(), e.Percentage.String()}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
