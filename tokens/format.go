package tokens

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amounts are integer hundredths of a token unit.
const centsPerUnit = 100

var printer = message.NewPrinter(language.English)

// FormatAmount renders an integer token amount with grouped thousands
// and two decimals: 123456789 -> "1,234,567.89".
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + printer.Sprintf("%d", amount/centsPerUnit) + fmt.Sprintf(".%02d", amount%centsPerUnit)
}
