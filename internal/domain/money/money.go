// Package money define la representación interna de dinero del ledger:
// paise (unidades menores de INR) como entero de 64 bits. Toda la
// aritmética de conservación se hace en enteros; decimal solo en el borde
// (JSON, NUMERIC de PostgreSQL) y en el cálculo de intereses.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Paise monto en unidades menores de INR (1 INR = 100 paise).
type Paise int64

var hundred = decimal.NewFromInt(100)

// printer con agrupación de miles para salidas legibles (seed, reportes).
var printer = message.NewPrinter(language.English)

// FromDecimal convierte un monto en rupias (decimal) a paise.
// Rechaza montos con más de dos decimales: el caller debe redondear
// explícitamente antes de entrar al ledger.
func FromDecimal(d decimal.Decimal) (Paise, error) {
	scaled := d.Mul(hundred)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("monto %s tiene fracciones menores a un paisa", d.String())
	}
	return Paise(scaled.IntPart()), nil
}

// FromDecimalRounded convierte redondeando a paisa (half-up). Para montos
// derivados (intereses), nunca para montos de entrada del caller.
func FromDecimalRounded(d decimal.Decimal) Paise {
	return Paise(d.Mul(hundred).Round(0).IntPart())
}

// Decimal devuelve el monto en rupias como decimal exacto.
func (p Paise) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Div(hundred)
}

// FormatINR formatea en la convención india de la operación: lakhs y crores
// para montos grandes, rupias con separador de miles para el resto.
func (p Paise) FormatINR() string {
	rupees := p.Decimal()
	crore := decimal.NewFromInt(10_000_000)
	lakh := decimal.NewFromInt(100_000)
	switch {
	case rupees.Abs().GreaterThanOrEqual(crore):
		return "₹" + rupees.Div(crore).StringFixed(2) + " Cr"
	case rupees.Abs().GreaterThanOrEqual(lakh):
		return "₹" + rupees.Div(lakh).StringFixed(2) + " L"
	default:
		return printer.Sprintf("₹%v", number(rupees))
	}
}

// number adapta el decimal al formateo con agrupación del printer.
func number(d decimal.Decimal) interface{} {
	if d.IsInteger() {
		return d.IntPart()
	}
	f, _ := d.Float64()
	return f
}
