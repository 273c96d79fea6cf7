// Package currency formato de montos para reportes ("C$ 1,234.50").
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Default moneda de la farmacia (córdoba).
const Default = money.NIO

// Format formatea amount con el símbolo de code separado por un espacio. Un código desconocido usa NIO.
func Format(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(Default)
	}
	grapheme := cur.Grapheme
	if cur.Code == money.NIO {
		grapheme = "C$"
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.NewFormatter(cur.Fraction, cur.Decimal, cur.Thousand, grapheme, "$ 1").Format(minor)
}

// Formatter formatea siempre en la misma moneda.
type Formatter struct {
	Code string
}

// Format ver Format.
func (f Formatter) Format(amount decimal.Decimal) string {
	return Format(amount, f.Code)
}
