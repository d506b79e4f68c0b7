package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrencySymbol = "$"
	NotAvailable          = "N/A"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"EUR": "€",
	"GBP": "£",
	"CHF": "CHF",
	"XOF": "FCFA",
	"XAF": "FCFA",
	"MAD": "DH",
	"JPY": "¥",
}

// CurrencySymbol picks the record's currency, then its host's, then "$".
// ISO codes map to their symbol, anything else is shown as given.
func CurrencySymbol(recordCurrency, hostCurrency string) string {
	for _, c := range []string{recordCurrency, hostCurrency} {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if sym, ok := currencySymbols[strings.ToUpper(c)]; ok {
			return sym
		}
		return c
	}
	return DefaultCurrencySymbol
}

// BalanceDue is the record-level remainder (soldeDu). It is undefined unless
// both the total and the paid amount are.
func BalanceDue(total, paid decimal.NullDecimal) decimal.NullDecimal {
	if !total.Valid || !paid.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(total.Decimal.Sub(paid.Decimal))
}

func FormatAmount(d decimal.NullDecimal, symbol string) string {
	if !d.Valid {
		return NotAvailable
	}
	return d.Decimal.StringFixed(2) + " " + symbol
}

func OrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func addPaid(paid decimal.NullDecimal, amount decimal.Decimal) (decimal.NullDecimal, error) {
	if amount.Sign() <= 0 {
		return paid, ErrInvalidAmount
	}
	return decimal.NewNullDecimal(OrZero(paid).Add(amount)), nil
}
