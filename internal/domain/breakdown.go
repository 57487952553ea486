package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ComponentName is one of the seven fixed CTC component labels
type ComponentName string

const (
	ComponentBasic            ComponentName = "Basic Salary"
	ComponentHRA              ComponentName = "HRA"
	ComponentSpecialAllowance ComponentName = "Special Allowance"
	ComponentEmployerPF       ComponentName = "Employer PF"
	ComponentGratuity         ComponentName = "Gratuity"
	ComponentBonus            ComponentName = "Bonus/Variable"
	ComponentLTA              ComponentName = "LTA/Other Benefits"
)

// ComponentOrder is the display and export order of a breakdown
var ComponentOrder = []ComponentName{
	ComponentBasic,
	ComponentHRA,
	ComponentSpecialAllowance,
	ComponentEmployerPF,
	ComponentGratuity,
	ComponentBonus,
	ComponentLTA,
}

// ComponentAmount holds a component's absolute amount and its share of CTC
type ComponentAmount struct {
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Percentage decimal.Decimal `json:"percentage" yaml:"percentage"`
}

// MarshalJSON writes both values as JSON numbers
func (c ComponentAmount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"amount":%s,"percentage":%s}`, c.Amount.String(), c.Percentage.String())), nil
}

// BreakdownEntry is a single named row of a breakdown
type BreakdownEntry struct {
	Name ComponentName
	ComponentAmount
}

// Breakdown is the ordered component mapping produced by the calculator.
// Unallocated is zero unless the fixed components exceed CTC, in which case
// it holds the (negative) overshoot that clamping Special Allowance hid.
type Breakdown struct {
	CTCAmount   decimal.Decimal
	Entries     []BreakdownEntry
	Unallocated decimal.Decimal
}

// Get returns the amount for a component
func (b *Breakdown) Get(name ComponentName) (ComponentAmount, bool) {
	for _, e := range b.Entries {
		if e.Name == name {
			return e.ComponentAmount, true
		}
	}
	return ComponentAmount{}, false
}

// Amount returns a component's amount, or zero when absent
func (b *Breakdown) Amount(name ComponentName) decimal.Decimal {
	c, _ := b.Get(name)
	return c.Amount
}

// Total sums the rounded component amounts
func (b *Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range b.Entries {
		total = total.Add(e.Amount)
	}
	return total
}

// IsClamped reports whether Special Allowance was floored at zero
func (b *Breakdown) IsClamped() bool {
	return b.Unallocated.IsNegative()
}

// MarshalJSON encodes the breakdown as an object keyed by component name,
// preserving component order.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(e.Name))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := e.ComponentAmount.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// KeyMetric is an annual figure with its monthly equivalent
type KeyMetric struct {
	Label   string          `json:"label"`
	Annual  decimal.Decimal `json:"annual"`
	Monthly decimal.Decimal `json:"monthly"`
}

// InsightLevel grades an insight line
type InsightLevel string

const (
	InsightInfo    InsightLevel = "info"
	InsightSuccess InsightLevel = "success"
	InsightWarning InsightLevel = "warning"
)

// Insight is a short observation about a breakdown
type Insight struct {
	Level   InsightLevel `json:"level"`
	Title   string       `json:"title"`
	Message string       `json:"message"`
}

// Summary groups the key metrics and insights derived from a breakdown
type Summary struct {
	Metrics  []KeyMetric `json:"metrics"`
	Insights []Insight   `json:"insights"`
}

// Metric looks up a key metric by label
func (s Summary) Metric(label string) (KeyMetric, bool) {
	for _, m := range s.Metrics {
		if m.Label == label {
			return m, true
		}
	}
	return KeyMetric{}, false
}

// Report bundles everything a formatter needs to render one calculation
type Report struct {
	Name        string
	Input       CtcInput
	Breakdown   *Breakdown
	Summary     Summary
	Warnings    []string
	GeneratedAt time.Time
}
