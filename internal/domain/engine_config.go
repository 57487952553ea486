package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EngineConfig holds every constant the validator and calculator depend on.
// It is loaded once (defaults, optional engine.yaml, CTCGO_* env) and passed
// by value into the engine; nothing in the core reads package state.
type EngineConfig struct {
	Defaults         ComponentDefaults `yaml:"defaults" json:"defaults" mapstructure:"defaults"`
	HRA              HRARates          `yaml:"hra" json:"hra" mapstructure:"hra"`
	Limits           ValidationLimits  `yaml:"limits" json:"limits" mapstructure:"limits"`
	Ranges           ComponentRanges   `yaml:"ranges" json:"ranges" mapstructure:"ranges"`
	Insights         InsightThresholds `yaml:"insights" json:"insights" mapstructure:"insights"`
	MetroCities      []string          `yaml:"metro_cities" json:"metro_cities" mapstructure:"metro_cities"`
	SampleCTCAmounts []decimal.Decimal `yaml:"sample_ctc_amounts" json:"sample_ctc_amounts" mapstructure:"sample_ctc_amounts"`
}

// ComponentDefaults are the percentages used when a caller omits one
type ComponentDefaults struct {
	BasicPercent    decimal.Decimal `yaml:"basic_percent" json:"basic_percent" mapstructure:"basic_percent"`
	PFPercent       decimal.Decimal `yaml:"pf_percent" json:"pf_percent" mapstructure:"pf_percent"`
	GratuityPercent decimal.Decimal `yaml:"gratuity_percent" json:"gratuity_percent" mapstructure:"gratuity_percent"`
	BonusPercent    decimal.Decimal `yaml:"bonus_percent" json:"bonus_percent" mapstructure:"bonus_percent"`
	LTAPercent      decimal.Decimal `yaml:"lta_percent" json:"lta_percent" mapstructure:"lta_percent"`
}

// HRARates are fractions of Basic by city classification
type HRARates struct {
	Metro    decimal.Decimal `yaml:"metro" json:"metro" mapstructure:"metro"`
	NonMetro decimal.Decimal `yaml:"non_metro" json:"non_metro" mapstructure:"non_metro"`
}

// Rate returns the default HRA rate for a city type
func (h HRARates) Rate(city CityType) decimal.Decimal {
	if city == Metro {
		return h.Metro
	}
	return h.NonMetro
}

// ValidationLimits bound the accepted CTC and combined percentages
type ValidationLimits struct {
	MinCTC          decimal.Decimal `yaml:"min_ctc" json:"min_ctc" mapstructure:"min_ctc"`
	MaxCTC          decimal.Decimal `yaml:"max_ctc" json:"max_ctc" mapstructure:"max_ctc"`
	MaxTotalPercent decimal.Decimal `yaml:"max_total_percent" json:"max_total_percent" mapstructure:"max_total_percent"`
}

// Range is an inclusive min/max pair
type Range struct {
	Min decimal.Decimal `yaml:"min" json:"min" mapstructure:"min"`
	Max decimal.Decimal `yaml:"max" json:"max" mapstructure:"max"`
}

// Contains reports whether v lies within the range
func (r Range) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(r.Min) && v.LessThanOrEqual(r.Max)
}

// ComponentRanges are the typical ranges for each percentage. HRA is
// expressed as a percentage of Basic (20-60), not a fraction.
type ComponentRanges struct {
	Basic    Range `yaml:"basic" json:"basic" mapstructure:"basic"`
	HRA      Range `yaml:"hra" json:"hra" mapstructure:"hra"`
	PF       Range `yaml:"pf" json:"pf" mapstructure:"pf"`
	Gratuity Range `yaml:"gratuity" json:"gratuity" mapstructure:"gratuity"`
	Bonus    Range `yaml:"bonus" json:"bonus" mapstructure:"bonus"`
	LTA      Range `yaml:"lta" json:"lta" mapstructure:"lta"`
}

// InsightThresholds drive the salary insights section
type InsightThresholds struct {
	SpecialAllowanceWarnPercent decimal.Decimal `yaml:"special_allowance_warn_percent" json:"special_allowance_warn_percent" mapstructure:"special_allowance_warn_percent"`
	HighTaxBracketCTC           decimal.Decimal `yaml:"high_tax_bracket_ctc" json:"high_tax_bracket_ctc" mapstructure:"high_tax_bracket_ctc"`
	MidTaxBracketCTC            decimal.Decimal `yaml:"mid_tax_bracket_ctc" json:"mid_tax_bracket_ctc" mapstructure:"mid_tax_bracket_ctc"`
}

// DefaultMetroCities is the built-in metro classification list
var DefaultMetroCities = []string{
	"Mumbai", "Delhi", "Bangalore", "Kolkata", "Chennai", "Hyderabad",
	"Pune", "Ahmedabad", "Surat", "Kanpur", "Jaipur", "Lucknow",
	"Nagpur", "Indore", "Thane", "Bhopal", "Visakhapatnam", "Pimpri-Chinchwad",
}

// DefaultEngineConfig returns the standard Indian salary structure defaults
func DefaultEngineConfig() EngineConfig {
	d := decimal.NewFromFloat
	i := decimal.NewFromInt
	return EngineConfig{
		Defaults: ComponentDefaults{
			BasicPercent:    i(40),
			PFPercent:       i(12),
			GratuityPercent: d(4.81),
			BonusPercent:    i(10),
			LTAPercent:      i(5),
		},
		HRA: HRARates{
			Metro:    d(0.50),
			NonMetro: d(0.40),
		},
		Limits: ValidationLimits{
			MinCTC:          i(10000),
			MaxCTC:          i(100000000),
			MaxTotalPercent: i(120),
		},
		Ranges: ComponentRanges{
			Basic:    Range{Min: i(30), Max: i(60)},
			HRA:      Range{Min: i(20), Max: i(60)},
			PF:       Range{Min: i(8), Max: i(15)},
			Gratuity: Range{Min: i(3), Max: i(6)},
			Bonus:    Range{Min: i(0), Max: i(20)},
			LTA:      Range{Min: i(0), Max: i(10)},
		},
		Insights: InsightThresholds{
			SpecialAllowanceWarnPercent: i(30),
			HighTaxBracketCTC:           i(1000000),
			MidTaxBracketCTC:            i(500000),
		},
		MetroCities: append([]string(nil), DefaultMetroCities...),
		SampleCTCAmounts: []decimal.Decimal{
			i(300000), i(500000), i(800000), i(1000000), i(1500000), i(2000000),
		},
	}
}

// ClassifyCity returns Metro when name is in the configured metro list
func (c EngineConfig) ClassifyCity(name string) CityType {
	if c.IsMetroCity(name) {
		return Metro
	}
	return NonMetro
}

// IsMetroCity reports whether name is a configured metro city
func (c EngineConfig) IsMetroCity(name string) bool {
	name = strings.TrimSpace(name)
	for _, city := range c.MetroCities {
		if strings.EqualFold(city, name) {
			return true
		}
	}
	return false
}
