package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValidationErrors is the ordered list of human-readable input problems.
// An empty list means the input is valid.
type ValidationErrors []string

// Valid reports whether no problems were found
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// Contains reports whether msg is one of the errors
func (v ValidationErrors) Contains(msg string) bool {
	for _, e := range v {
		if e == msg {
			return true
		}
	}
	return false
}

var groupPrinter = message.NewPrinter(language.English)

// GroupDigits renders d with the given number of decimal places and comma
// thousands separators (1234567.8 -> "1,234,568" for places 0).
func GroupDigits(d decimal.Decimal, places int32) string {
	rounded := d.RoundBank(places)
	if rounded.IsZero() {
		rounded = decimal.Zero
	}
	return groupPrinter.Sprintf(fmt.Sprintf("%%.%df", places), rounded.InexactFloat64())
}
