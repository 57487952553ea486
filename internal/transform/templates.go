package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Template categories used to group help output
const (
	CategoryPresets   = "Salary Presets"
	CategoryCity      = "City Classification"
	CategoryStructure = "Salary Structure"
	CategoryRevision  = "CTC Revisions"
)

var categoryOrder = []string{CategoryPresets, CategoryCity, CategoryStructure, CategoryRevision}

// TemplateRegistry manages built-in input templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lpa(n int64) InputTransform {
	return &SetLPA{LPA: decimal.NewFromInt(n)}
}

// CreateBuiltInTemplates creates a template registry with the common salary presets
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "standard",
		Description: "Standard package: 10 LPA, Metro, default structure",
		Category:    CategoryPresets,
		Transforms:  []InputTransform{lpa(10), &SetCityType{CityType: domain.Metro}, &ResetPercents{}},
	})

	registry.Register(Template{
		Name:        "senior",
		Description: "Senior level: 20 LPA, Metro, default structure",
		Category:    CategoryPresets,
		Transforms:  []InputTransform{lpa(20), &SetCityType{CityType: domain.Metro}, &ResetPercents{}},
	})

	registry.Register(Template{
		Name:        "entry_level",
		Description: "Entry level: 5 LPA, Non-Metro, default structure",
		Category:    CategoryPresets,
		Transforms:  []InputTransform{lpa(5), &SetCityType{CityType: domain.NonMetro}, &ResetPercents{}},
	})

	registry.Register(Template{
		Name:        "executive",
		Description: "Executive: 30 LPA, Metro, default structure",
		Category:    CategoryPresets,
		Transforms:  []InputTransform{lpa(30), &SetCityType{CityType: domain.Metro}, &ResetPercents{}},
	})

	registry.Register(Template{
		Name:        "metro",
		Description: "Move to a metro city (HRA 50% of Basic)",
		Category:    CategoryCity,
		Transforms:  []InputTransform{&SetCityType{CityType: domain.Metro}},
	})

	registry.Register(Template{
		Name:        "non_metro",
		Description: "Move to a non-metro city (HRA 40% of Basic)",
		Category:    CategoryCity,
		Transforms:  []InputTransform{&SetCityType{CityType: domain.NonMetro}},
	})

	registry.Register(Template{
		Name:        "high_basic",
		Description: "Raise Basic to 50% of CTC",
		Category:    CategoryStructure,
		Transforms:  []InputTransform{&SetPercent{Component: ComponentBasic, Value: decimal.NewFromInt(50)}},
	})

	registry.Register(Template{
		Name:        "low_variable",
		Description: "Cut Bonus/Variable to 5% of CTC",
		Category:    CategoryStructure,
		Transforms:  []InputTransform{&SetPercent{Component: ComponentBonus, Value: decimal.NewFromInt(5)}},
	})

	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Increase CTC by 10%",
		Category:    CategoryRevision,
		Transforms:  []InputTransform{&ScaleCTC{Factor: decimal.RequireFromString("1.10")}},
	})

	registry.Register(Template{
		Name:        "raise_20pct",
		Description: "Increase CTC by 20%",
		Category:    CategoryRevision,
		Transforms:  []InputTransform{&ScaleCTC{Factor: decimal.RequireFromString("1.20")}},
	})

	return registry
}

// ApplyTemplate applies a template to a base input
func ApplyTemplate(base *domain.CtcInput, template Template) (*domain.CtcInput, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// ParseVariantList splits a comma-separated list of presets and transform
// specs. Parameters of a spec also use commas, so a "key=value" item with no
// transform name is joined back onto the spec before it.
func ParseVariantList(list string) []string {
	var variants []string
	for _, part := range ParseTemplateList(list) {
		if n := len(variants); n > 0 && strings.Contains(part, "=") && !strings.Contains(part, ":") &&
			strings.Contains(variants[n-1], ":") {
			variants[n-1] += "," + part
			continue
		}
		variants = append(variants, part)
	}
	return variants
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Presets:\n\n")

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = CategoryStructure
		}
		categories[category] = append(categories[category], t)
	}

	for _, category := range categoryOrder {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-16s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  ctcgo calculate --preset senior\n")
	sb.WriteString("  ctcgo compare --lpa 12 --with non_metro,high_basic,raise_10pct\n")

	return sb.String()
}
