// Package mask turns sensitive card fields into display-safe strings.
// Masking is one-way: the full value is only recoverable by re-deriving
// from the cached source data, never from the mask itself.
package mask

import "strings"

// Fixed masks and placeholders for fields without loaded data.
const (
	Expiry            = "**/**"
	CVV               = "***"
	PlaceholderNumber = "**** **** **** ****"
)

// Number masks a PAN keeping the last four digits: "**** **** **** 3456".
// Non-digit formatting (spaces, dashes) in the input is ignored.
// Inputs with fewer than four digits mask to the placeholder.
func Number(pan string) string {
	var digits strings.Builder
	for _, r := range pan {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 4 {
		return PlaceholderNumber
	}
	return "**** **** **** " + d[len(d)-4:]
}
