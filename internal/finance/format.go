package finance

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// Rupees formats a whole-rupee amount with thousands separators: ₹120,000.
func Rupees(v float64) string {
	return "₹" + amountPrinter.Sprintf("%.0f", Round(v))
}
