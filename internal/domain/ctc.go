package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CityType classifies the employee's work location for HRA purposes
type CityType int

const (
	Metro CityType = iota
	NonMetro
)

// String returns the label used in reports and exports
func (c CityType) String() string {
	if c == Metro {
		return "Metro"
	}
	return "Non-Metro"
}

// MarshalText implements encoding.TextMarshaler
func (c CityType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *CityType) UnmarshalText(text []byte) error {
	parsed, err := ParseCityType(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCityType parses a city classification label (case-insensitive)
func ParseCityType(s string) (CityType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metro":
		return Metro, nil
	case "non-metro", "nonmetro", "non_metro", "non metro":
		return NonMetro, nil
	default:
		return Metro, fmt.Errorf("unknown city type %q (valid: Metro, Non-Metro)", s)
	}
}

// LakhMultiplier converts LPA (lakhs per annum) to rupees
var LakhMultiplier = decimal.NewFromInt(100000)

// FromLPA converts an amount in lakhs per annum to rupees
func FromLPA(lpa decimal.Decimal) decimal.Decimal {
	return lpa.Mul(LakhMultiplier)
}

// ToLPA converts rupees to lakhs per annum
func ToLPA(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(LakhMultiplier)
}

// CtcInput is the caller-owned input for a single breakup calculation.
// Nil percentages mean "not provided". HRAPercent is a fraction of Basic
// (0.50 = 50% of Basic); every other percentage is on a 0-100 scale.
type CtcInput struct {
	CTCAmount       decimal.Decimal  `json:"ctc_amount" yaml:"ctc_amount"`
	CityType        CityType         `json:"city_type" yaml:"city_type"`
	BasicPercent    *decimal.Decimal `json:"basic_percent,omitempty" yaml:"basic_percent,omitempty"`
	HRAPercent      *decimal.Decimal `json:"hra_percent,omitempty" yaml:"hra_percent,omitempty"`
	PFPercent       *decimal.Decimal `json:"pf_percent,omitempty" yaml:"pf_percent,omitempty"`
	GratuityPercent *decimal.Decimal `json:"gratuity_percent,omitempty" yaml:"gratuity_percent,omitempty"`
	BonusPercent    *decimal.Decimal `json:"bonus_percent,omitempty" yaml:"bonus_percent,omitempty"`
	LTAPercent      *decimal.Decimal `json:"lta_percent,omitempty" yaml:"lta_percent,omitempty"`
}

// NewCtcInput creates an input with no percentage overrides
func NewCtcInput(ctc decimal.Decimal, city CityType) CtcInput {
	return CtcInput{CTCAmount: ctc, CityType: city}
}

// DeepCopy returns a copy that shares no pointers with the receiver
func (in CtcInput) DeepCopy() CtcInput {
	out := in
	out.BasicPercent = copyDecimal(in.BasicPercent)
	out.HRAPercent = copyDecimal(in.HRAPercent)
	out.PFPercent = copyDecimal(in.PFPercent)
	out.GratuityPercent = copyDecimal(in.GratuityPercent)
	out.BonusPercent = copyDecimal(in.BonusPercent)
	out.LTAPercent = copyDecimal(in.LTAPercent)
	return out
}

// HasOverrides reports whether any percentage was supplied
func (in CtcInput) HasOverrides() bool {
	return in.BasicPercent != nil || in.HRAPercent != nil || in.PFPercent != nil ||
		in.GratuityPercent != nil || in.BonusPercent != nil || in.LTAPercent != nil
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// DecimalPtr returns a pointer to d
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
