// Package money formats and parses amounts in the es-VE convention:
// dot as thousands separator, comma as decimal separator, two decimals.
package money

import (
	"strconv"
	"strings"

	"github.com/leekchan/accounting"
)

var ac = accounting.Accounting{Symbol: "", Precision: 2, Thousand: ".", Decimal: ","}

// Format renders a value as localized display text, e.g. 1234.5 -> "1.234,50".
func Format(value float64) string {
	return ac.FormatMoney(value)
}

// Parse interprets localized display text as a number by stripping grouping
// dots and converting the decimal comma. Empty text parses to 0; that is the
// computational value for an empty input field, not its display value.
func Parse(text string) (float64, error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return 0, nil
	}
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	return strconv.ParseFloat(clean, 64)
}

// ParseOrZero parses like Parse but degrades unparsable text to 0. The
// calculator treats malformed amounts as zero rather than surfacing errors.
func ParseOrZero(text string) float64 {
	v, err := Parse(text)
	if err != nil {
		return 0
	}
	return v
}
