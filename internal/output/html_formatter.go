package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/salarykit/ctcgo/internal/domain"
)

// HTMLFormatter produces a standalone HTML breakup report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"rupees": FormatRupees,
	"amount": FormatAmount,
	"pct":    FormatPercentage,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Breakdown == nil {
		return nil, fmt.Errorf("report has no breakdown")
	}

	var buf bytes.Buffer
	data := struct {
		*domain.Report
		Generated string
	}{report, report.GeneratedAt.Format("2006-01-02 15:04:05")}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
