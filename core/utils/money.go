package utils

import "fmt"

// FormatCents renders a minor-unit amount as a decimal string, e.g.
// 4000 -> "40.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
