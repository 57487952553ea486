package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RequestFile is a batch of salary requests loaded from YAML
type RequestFile struct {
	Requests []SalaryRequest `yaml:"requests" json:"requests"`
}

// SalaryRequest describes one employee's CTC in file form. Exactly one of
// CTCAmount and LPA is set; City may stand in for CityType. Every percentage
// is on a 0-100 scale, HRA included (hra_percent: 40 means 40% of Basic).
type SalaryRequest struct {
	Name            string           `yaml:"name" json:"name"`
	CTCAmount       *decimal.Decimal `yaml:"ctc_amount,omitempty" json:"ctc_amount,omitempty"`
	LPA             *decimal.Decimal `yaml:"lpa,omitempty" json:"lpa,omitempty"`
	CityType        string           `yaml:"city_type,omitempty" json:"city_type,omitempty"`
	City            string           `yaml:"city,omitempty" json:"city,omitempty"`
	BasicPercent    *decimal.Decimal `yaml:"basic_percent,omitempty" json:"basic_percent,omitempty"`
	HRAPercent      *decimal.Decimal `yaml:"hra_percent,omitempty" json:"hra_percent,omitempty"`
	PFPercent       *decimal.Decimal `yaml:"pf_percent,omitempty" json:"pf_percent,omitempty"`
	GratuityPercent *decimal.Decimal `yaml:"gratuity_percent,omitempty" json:"gratuity_percent,omitempty"`
	BonusPercent    *decimal.Decimal `yaml:"bonus_percent,omitempty" json:"bonus_percent,omitempty"`
	LTAPercent      *decimal.Decimal `yaml:"lta_percent,omitempty" json:"lta_percent,omitempty"`
}

// ToInput converts the request to a calculation input. An explicit
// city_type wins over a city name; with neither, the city is Metro.
func (r SalaryRequest) ToInput(cfg EngineConfig) (CtcInput, error) {
	var ctc decimal.Decimal
	switch {
	case r.CTCAmount != nil && r.LPA != nil:
		return CtcInput{}, fmt.Errorf("request %q: specify either ctc_amount or lpa, not both", r.Name)
	case r.CTCAmount != nil:
		ctc = *r.CTCAmount
	case r.LPA != nil:
		ctc = FromLPA(*r.LPA)
	default:
		return CtcInput{}, fmt.Errorf("request %q: ctc_amount or lpa is required", r.Name)
	}

	city := Metro
	switch {
	case r.CityType != "":
		parsed, err := ParseCityType(r.CityType)
		if err != nil {
			return CtcInput{}, fmt.Errorf("request %q: %w", r.Name, err)
		}
		city = parsed
	case r.City != "":
		city = cfg.ClassifyCity(r.City)
	}

	in := CtcInput{
		CTCAmount:       ctc,
		CityType:        city,
		BasicPercent:    r.BasicPercent,
		HRAPercent:      hraFraction(r.HRAPercent),
		PFPercent:       r.PFPercent,
		GratuityPercent: r.GratuityPercent,
		BonusPercent:    r.BonusPercent,
		LTAPercent:      r.LTAPercent,
	}
	return in.DeepCopy(), nil
}

var hundred = decimal.NewFromInt(100)

// hraFraction converts a file HRA percentage of Basic to the fraction
// CtcInput carries
func hraFraction(p *decimal.Decimal) *decimal.Decimal {
	if p == nil {
		return nil
	}
	return DecimalPtr(p.Div(hundred))
}
