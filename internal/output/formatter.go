package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/salarykit/ctcgo/internal/domain"
)

// Formatter renders a calculation report in one output format
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"text":    TextFormatter{},
	"csv":     CSVFormatter{},
	"json":    JSONFormatter{},
	"html":    HTMLFormatter{},
}

var formatAliases = map[string]string{
	"table":  "console",
	"txt":    "text",
	"report": "text",
}

var extensions = map[string]string{
	"console": "txt",
	"text":    "txt",
	"csv":     "csv",
	"json":    "json",
	"html":    "html",
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil when there is none.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted format aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// ExtensionFor returns the file extension for a formatter name
func ExtensionFor(name string) string {
	if ext, ok := extensions[name]; ok {
		return ext
	}
	return "txt"
}

// ReportFilename builds the download-style file name for a report,
// e.g. ctc_breakup_20240301_103000.csv. JSON exports use the ctc_data prefix.
func ReportFilename(ext string, at time.Time) string {
	prefix := "ctc_breakup"
	if ext == "json" {
		prefix = "ctc_data"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, at.Format("20060102_150405"), ext)
}

// WriteFormatted formats the report and writes it into dir, returning the
// path of the written file.
func WriteFormatted(dir string, f Formatter, report *domain.Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}

	at := report.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, ReportFilename(ext, at))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
