package transform

import (
	"fmt"
	"strings"

	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Component identifies one of the six configurable percentages
type Component string

const (
	ComponentBasic    Component = "basic"
	ComponentHRA      Component = "hra"
	ComponentPF       Component = "pf"
	ComponentGratuity Component = "gratuity"
	ComponentBonus    Component = "bonus"
	ComponentLTA      Component = "lta"
)

// Components lists the valid component keys in display order
var Components = []Component{
	ComponentBasic, ComponentHRA, ComponentPF, ComponentGratuity, ComponentBonus, ComponentLTA,
}

// ParseComponent parses a component key (case-insensitive)
func ParseComponent(s string) (Component, error) {
	c := Component(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Components {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown component %q (valid: basic, hra, pf, gratuity, bonus, lta)", s)
}

// SetCTC replaces the CTC with an absolute rupee amount
type SetCTC struct {
	Amount decimal.Decimal
}

func (s *SetCTC) Name() string { return "set_ctc" }

func (s *SetCTC) Description() string {
	return fmt.Sprintf("Set CTC to ₹%s", domain.GroupDigits(s.Amount, 0))
}

func (s *SetCTC) Validate(base *domain.CtcInput) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base input cannot be nil", nil)
	}
	if !s.Amount.IsPositive() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", s.Amount), nil)
	}
	return nil
}

func (s *SetCTC) Apply(base *domain.CtcInput) (*domain.CtcInput, error) {
	modified := base.DeepCopy()
	modified.CTCAmount = s.Amount
	return &modified, nil
}

// SetLPA replaces the CTC with an amount in lakhs per annum
type SetLPA struct {
	LPA decimal.Decimal
}

func (s *SetLPA) Name() string { return "set_lpa" }

func (s *SetLPA) Description() string {
	return fmt.Sprintf("Set CTC to %s LPA", s.LPA.String())
}

func (s *SetLPA) Validate(base *domain.CtcInput) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base input cannot be nil", nil)
	}
	if !s.LPA.IsPositive() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("lpa must be positive, got %s", s.LPA), nil)
	}
	return nil
}

func (s *SetLPA) Apply(base *domain.CtcInput) (*domain.CtcInput, error) {
	modified := base.DeepCopy()
	modified.CTCAmount = domain.FromLPA(s.LPA)
	return &modified, nil
}

// ScaleCTC multiplies the CTC by a factor (1.10 is a 10% raise)
type ScaleCTC struct {
	Factor decimal.Decimal
}

func (s *ScaleCTC) Name() string { return "scale_ctc" }

func (s *ScaleCTC) Description() string {
	change := s.Factor.Sub(decimal.NewFromInt(1)).Mul(hundred)
	if change.IsNegative() {
		return fmt.Sprintf("Reduce CTC by %s%%", change.Abs().StringFixed(1))
	}
	return fmt.Sprintf("Increase CTC by %s%%", change.StringFixed(1))
}

func (s *ScaleCTC) Validate(base *domain.CtcInput) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base input cannot be nil", nil)
	}
	if !s.Factor.IsPositive() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("factor must be positive, got %s", s.Factor), nil)
	}
	return nil
}

func (s *ScaleCTC) Apply(base *domain.CtcInput) (*domain.CtcInput, error) {
	modified := base.DeepCopy()
	modified.CTCAmount = base.CTCAmount.Mul(s.Factor).RoundBank(2)
	return &modified, nil
}

// SetCityType switches the city classification, which changes the default HRA rate
type SetCityType struct {
	CityType domain.CityType
}

func (s *SetCityType) Name() string { return "set_city_type" }

func (s *SetCityType) Description() string {
	return fmt.Sprintf("Use %s HRA rules", s.CityType)
}

func (s *SetCityType) Validate(base *domain.CtcInput) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base input cannot be nil", nil)
	}
	if s.CityType != domain.Metro && s.CityType != domain.NonMetro {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("invalid city type %d", s.CityType), nil)
	}
	return nil
}

func (s *SetCityType) Apply(base *domain.CtcInput) (*domain.CtcInput, error) {
	modified := base.DeepCopy()
	modified.CityType = s.CityType
	return &modified, nil
}

// SetPercent overrides one component percentage. Value is always on a 0-100
// scale; for HRA it is the percentage of Basic and is stored as a fraction.
type SetPercent struct {
	Component Component
	Value     decimal.Decimal
}

func (s *SetPercent) Name() string { return "set_percent" }

func (s *SetPercent) Description() string {
	if s.Component == ComponentHRA {
		return fmt.Sprintf("Set HRA to %s%% of Basic", s.Value.String())
	}
	return fmt.Sprintf("Set %s to %s%% of CTC", s.Component, s.Value.String())
}

func (s *SetPercent) Validate(base *domain.CtcInput) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base input cannot be nil", nil)
	}
	if _, err := ParseComponent(string(s.Component)); err != nil {
		return NewTransformError(s.Name(), "validate", "invalid component", err)
	}
	if s.Value.IsNegative() || s.Value.GreaterThan(hundred) {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("value must be between 0 and 100, got %s", s.Value), nil)
	}
	return nil
}

func (s *SetPercent) Apply(base *domain.CtcInput) (*domain.CtcInput, error) {
	modified := base.DeepCopy()
	v := domain.DecimalPtr(s.Value)
	switch s.Component {
	case ComponentBasic:
		modified.BasicPercent = v
	case ComponentHRA:
		modified.HRAPercent = domain.DecimalPtr(s.Value.Div(hundred))
	case ComponentPF:
		modified.PFPercent = v
	case ComponentGratuity:
		modified.GratuityPercent = v
	case ComponentBonus:
		modified.BonusPercent = v
	case ComponentLTA:
		modified.LTAPercent = v
	default:
		return nil, NewTransformError(s.Name(), "apply", fmt.Sprintf("unknown component %q", s.Component), nil)
	}
	return &modified, nil
}

// ResetPercents drops every percentage override so defaults apply again
type ResetPercents struct{}

func (r *ResetPercents) Name() string { return "reset_percents" }

func (r *ResetPercents) Description() string { return "Use the default salary structure" }

func (r *ResetPercents) Validate(base *domain.CtcInput) error {
	if base == nil {
		return NewTransformError(r.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (r *ResetPercents) Apply(base *domain.CtcInput) (*domain.CtcInput, error) {
	modified := domain.NewCtcInput(base.CTCAmount, base.CityType)
	return &modified, nil
}
