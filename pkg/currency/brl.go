// Package currency formats Brazilian real amounts for display.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Code is the ISO 4217 code used for every amount in the system
const Code = money.BRL

var centsFactor = decimal.New(1, 2)

// Cents rounds amount to currency precision (half away from zero) and
// returns it in minor units.
func Cents(amount decimal.Decimal) int64 {
	return amount.Round(2).Mul(centsFactor).IntPart()
}

// FromCents converts minor units back to a decimal amount
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Money converts a decimal amount to a go-money value in BRL
func Money(amount decimal.Decimal) *money.Money {
	return money.New(Cents(amount), Code)
}

// Format renders amount the pt-BR way, e.g. "R$1.234,56"
func Format(amount decimal.Decimal) string {
	return Money(amount).Display()
}

// FormatFloat renders a float amount, used for quote prices
func FormatFloat(amount float64) string {
	return Format(decimal.NewFromFloat(amount))
}
