package parsefields

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnparsableNumber marks a value the normalizer could not read. Callers
// that need a number regardless use ParseNumber, which turns it into zero.
var ErrUnparsableNumber = errors.New("unparsable number")

var localeReplacer = strings.NewReplacer(".", "", ",", ".")

// ParseDecimal reads an Italian-formatted number: dots are thousands
// separators and the comma is the decimal mark.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrUnparsableNumber
	}
	d, err := decimal.NewFromString(localeReplacer.Replace(s))
	if err != nil {
		return decimal.Zero, errors.Join(ErrUnparsableNumber, err)
	}
	return d, nil
}

// ParseNumber is ParseDecimal with every failure coerced to 0.
func ParseNumber(s string) float64 {
	d, err := ParseDecimal(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
