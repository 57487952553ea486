package transform

import (
	"strings"
	"testing"

	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []InputTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	if _, ok = registry.Get("TEST_TEMPLATE"); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	if _, ok = registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestTemplateRegistry_List(t *testing.T) {
	registry := NewTemplateRegistry()

	registry.Register(Template{Name: "template2", Description: "Second"})
	registry.Register(Template{Name: "template1", Description: "First"})

	names := registry.List()
	if len(names) != 2 || names[0] != "template1" || names[1] != "template2" {
		t.Errorf("Expected sorted names, got %v", names)
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{"standard", "senior", "entry_level", "executive", "metro", "non_metro", "high_basic", "low_variable", "raise_10pct"} {
		if _, ok := registry.Get(name); !ok {
			t.Errorf("Expected built-in template %s", name)
		}
	}
}

func TestApplyTemplate_Presets(t *testing.T) {
	registry := CreateBuiltInTemplates()

	tests := []struct {
		name string
		ctc  int64
		city domain.CityType
	}{
		{"standard", 1000000, domain.Metro},
		{"senior", 2000000, domain.Metro},
		{"entry_level", 500000, domain.NonMetro},
		{"executive", 3000000, domain.Metro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template, _ := registry.Get(tt.name)
			result, err := ApplyTemplate(createTestInput(), template)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !result.CTCAmount.Equal(decimal.NewFromInt(tt.ctc)) {
				t.Errorf("Expected CTC %d, got %s", tt.ctc, result.CTCAmount)
			}
			if result.CityType != tt.city {
				t.Errorf("Expected %s, got %s", tt.city, result.CityType)
			}
			if result.HasOverrides() {
				t.Error("Presets should use the default structure")
			}
		})
	}
}

func TestApplyTemplate_StructureKeepsCTC(t *testing.T) {
	template, _ := CreateBuiltInTemplates().Get("high_basic")

	result, err := ApplyTemplate(createTestInput(), template)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.CTCAmount.Equal(decimal.NewFromInt(1200000)) {
		t.Errorf("Expected CTC unchanged, got %s", result.CTCAmount)
	}
	if !result.BasicPercent.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected Basic 50, got %s", result.BasicPercent)
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"senior", []string{"senior"}},
		{"senior, non_metro ,", []string{"senior", "non_metro"}},
	}

	for _, tt := range tests {
		got := ParseTemplateList(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("ParseTemplateList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseVariantList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"metro,high_basic", []string{"metro", "high_basic"}},
		{"set_percent:component=basic,value=50", []string{"set_percent:component=basic,value=50"}},
		{
			"non_metro,set_percent:component=hra,value=40,scale_ctc:percent=10,raise_20pct",
			[]string{"non_metro", "set_percent:component=hra,value=40", "scale_ctc:percent=10", "raise_20pct"},
		},
		{"reset_percents, value=1", []string{"reset_percents", "value=1"}},
	}

	for _, tt := range tests {
		got := ParseVariantList(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("ParseVariantList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	for _, want := range []string{"Available Presets:", CategoryPresets, CategoryCity, "entry_level", "Usage:"} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}

	if got := GetTemplateHelp(NewTemplateRegistry()); got != "No templates registered" {
		t.Errorf("Unexpected empty help: %s", got)
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry(domain.DefaultEngineConfig())

	tests := []struct {
		spec    string
		name    string
		wantErr bool
	}{
		{"set_ctc:amount=1500000", "set_ctc", false},
		{"set_lpa:lpa=12.5", "set_lpa", false},
		{"scale_ctc:factor=1.1", "scale_ctc", false},
		{"scale_ctc:percent=15", "scale_ctc", false},
		{"set_city_type:type=non-metro", "set_city_type", false},
		{"set_city_type:city=Pune", "set_city_type", false},
		{"set_percent:component=basic,value=45", "set_percent", false},
		{"reset_percents", "reset_percents", false},
		{"set_percent:component=medical,value=5", "", true},
		{"set_percent:component=basic", "", true},
		{"set_ctc:amount=abc", "", true},
		{"set_ctc:amount", "", true},
		{"unknown:x=1", "", true},
		{":x=1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tr.Name() != tt.name {
				t.Errorf("Expected %s, got %s", tt.name, tr.Name())
			}
		})
	}
}

func TestTransformRegistry_CityLookup(t *testing.T) {
	registry := NewTransformRegistry(domain.DefaultEngineConfig())

	tr, err := registry.ParseTransformSpec("set_city_type:city=Mysore")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result, err := tr.Apply(createTestInput())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.CityType != domain.NonMetro {
		t.Errorf("Expected Non-Metro for Mysore, got %s", result.CityType)
	}

	scale, _ := registry.ParseTransformSpec("scale_ctc:percent=15")
	result, _ = scale.Apply(createTestInput())
	if !result.CTCAmount.Equal(decimal.NewFromInt(1380000)) {
		t.Errorf("Expected 1380000, got %s", result.CTCAmount)
	}
}

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry(domain.DefaultEngineConfig()).List()
	if len(names) != 6 || names[0] != "reset_percents" {
		t.Errorf("Unexpected transform list: %v", names)
	}
}
