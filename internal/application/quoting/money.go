package quoting

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount formatea un importe con agrupación en-IN y dos decimales (ej. 1,23,456.50).
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return amountPrinter.Sprintf("%.2f", f)
}
