package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCents renders an amount held in cents as a dollar string with
// grouping, e.g. 123456 -> "$1,234.56".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return moneyPrinter.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
