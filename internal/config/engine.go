package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CTCGO_LIMITS_MIN_CTC
const EnvPrefix = "CTCGO"

// LoadEngineConfig builds the engine configuration from the built-in
// defaults, an optional YAML file and CTCGO_* environment variables, in
// increasing order of precedence.
func LoadEngineConfig(configPath string) (domain.EngineConfig, error) {
	v := viper.New()
	setDefaults(v, domain.DefaultEngineConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return domain.EngineConfig{}, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	var cfg domain.EngineConfig
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		decimalHook,
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("unable to decode engine config: %w", err)
	}

	for i, city := range cfg.MetroCities {
		cfg.MetroCities[i] = strings.TrimSpace(city)
	}

	if err := ValidateEngineConfig(cfg); err != nil {
		return domain.EngineConfig{}, err
	}
	return cfg, nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decimalHook decodes YAML numbers and env strings into decimal.Decimal
func decimalHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType {
		return data, nil
	}

	switch v := data.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid decimal %q: %w", v, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint64:
		return decimal.NewFromInt(int64(v)), nil
	default:
		return nil, fmt.Errorf("cannot decode %s into decimal", from)
	}
}

func setDefaults(v *viper.Viper, cfg domain.EngineConfig) {
	dflt := func(key string, d decimal.Decimal) {
		v.SetDefault(key, d.String())
	}
	rng := func(key string, r domain.Range) {
		dflt(key+".min", r.Min)
		dflt(key+".max", r.Max)
	}

	dflt("defaults.basic_percent", cfg.Defaults.BasicPercent)
	dflt("defaults.pf_percent", cfg.Defaults.PFPercent)
	dflt("defaults.gratuity_percent", cfg.Defaults.GratuityPercent)
	dflt("defaults.bonus_percent", cfg.Defaults.BonusPercent)
	dflt("defaults.lta_percent", cfg.Defaults.LTAPercent)

	dflt("hra.metro", cfg.HRA.Metro)
	dflt("hra.non_metro", cfg.HRA.NonMetro)

	dflt("limits.min_ctc", cfg.Limits.MinCTC)
	dflt("limits.max_ctc", cfg.Limits.MaxCTC)
	dflt("limits.max_total_percent", cfg.Limits.MaxTotalPercent)

	rng("ranges.basic", cfg.Ranges.Basic)
	rng("ranges.hra", cfg.Ranges.HRA)
	rng("ranges.pf", cfg.Ranges.PF)
	rng("ranges.gratuity", cfg.Ranges.Gratuity)
	rng("ranges.bonus", cfg.Ranges.Bonus)
	rng("ranges.lta", cfg.Ranges.LTA)

	dflt("insights.special_allowance_warn_percent", cfg.Insights.SpecialAllowanceWarnPercent)
	dflt("insights.high_tax_bracket_ctc", cfg.Insights.HighTaxBracketCTC)
	dflt("insights.mid_tax_bracket_ctc", cfg.Insights.MidTaxBracketCTC)

	v.SetDefault("metro_cities", cfg.MetroCities)

	amounts := make([]string, len(cfg.SampleCTCAmounts))
	for i, a := range cfg.SampleCTCAmounts {
		amounts[i] = a.String()
	}
	v.SetDefault("sample_ctc_amounts", amounts)
}

// ValidateEngineConfig rejects configurations the calculator cannot work with
func ValidateEngineConfig(cfg domain.EngineConfig) error {
	var problems []string
	one := decimal.NewFromInt(1)

	percent := func(name string, v decimal.Decimal) {
		if v.IsNegative() || v.GreaterThan(hundred) {
			problems = append(problems, fmt.Sprintf("%s must be between 0 and 100, got %s", name, v))
		}
	}
	rate := func(name string, v decimal.Decimal) {
		if v.IsNegative() || v.GreaterThan(one) {
			problems = append(problems, fmt.Sprintf("%s must be a fraction between 0 and 1, got %s", name, v))
		}
	}
	ordered := func(name string, r domain.Range) {
		if r.Min.GreaterThan(r.Max) {
			problems = append(problems, fmt.Sprintf("%s min %s exceeds max %s", name, r.Min, r.Max))
		}
	}

	if !cfg.Defaults.BasicPercent.IsPositive() {
		problems = append(problems, "defaults.basic_percent must be greater than 0")
	}
	percent("defaults.basic_percent", cfg.Defaults.BasicPercent)
	percent("defaults.pf_percent", cfg.Defaults.PFPercent)
	percent("defaults.gratuity_percent", cfg.Defaults.GratuityPercent)
	percent("defaults.bonus_percent", cfg.Defaults.BonusPercent)
	percent("defaults.lta_percent", cfg.Defaults.LTAPercent)

	rate("hra.metro", cfg.HRA.Metro)
	rate("hra.non_metro", cfg.HRA.NonMetro)

	if !cfg.Limits.MinCTC.IsPositive() {
		problems = append(problems, "limits.min_ctc must be greater than 0")
	}
	if cfg.Limits.MaxCTC.LessThanOrEqual(cfg.Limits.MinCTC) {
		problems = append(problems, "limits.max_ctc must exceed limits.min_ctc")
	}
	if !cfg.Limits.MaxTotalPercent.IsPositive() {
		problems = append(problems, "limits.max_total_percent must be greater than 0")
	}

	ordered("ranges.basic", cfg.Ranges.Basic)
	ordered("ranges.hra", cfg.Ranges.HRA)
	ordered("ranges.pf", cfg.Ranges.PF)
	ordered("ranges.gratuity", cfg.Ranges.Gratuity)
	ordered("ranges.bonus", cfg.Ranges.Bonus)
	ordered("ranges.lta", cfg.Ranges.LTA)

	if cfg.Insights.MidTaxBracketCTC.GreaterThan(cfg.Insights.HighTaxBracketCTC) {
		problems = append(problems, "insights.mid_tax_bracket_ctc exceeds insights.high_tax_bracket_ctc")
	}

	for _, a := range cfg.SampleCTCAmounts {
		if !a.IsPositive() {
			problems = append(problems, fmt.Sprintf("sample_ctc_amounts must be positive, got %s", a))
			break
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid engine config: %s", strings.Join(problems, "; "))
	}
	return nil
}
