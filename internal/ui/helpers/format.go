package helpers

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as en-US dollars, e.g. $1,234.50.
func FormatCurrency(value float64) string {
	if value < 0 {
		return "-$" + usPrinter.Sprintf("%.2f", -value)
	}
	return "$" + usPrinter.Sprintf("%.2f", value)
}

// FormatDate renders t as an en-US short date, e.g. Jan 2, 2006. The zero
// time renders as an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
