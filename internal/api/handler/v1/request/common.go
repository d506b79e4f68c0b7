package request

import (
	"errors"

	"github.com/shopspring/decimal"
)

var errNegative = errors.New("must not be negative")

func nonNegative(value interface{}) error {
	switch v := value.(type) {
	case decimal.Decimal:
		if v.IsNegative() {
			return errNegative
		}
	case *decimal.Decimal:
		if v != nil && v.IsNegative() {
			return errNegative
		}
	}
	return nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
