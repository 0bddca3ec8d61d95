package parse

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

// parseQuantity parses a provider quantity transmitted as text. The
// result must be a finite number.
func parseQuantity(s string) (float64, bool) {
	q, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, false
	}
	return q, true
}

// normalizeCurrency runs a provider currency code through ISO 4217.
// Codes that do not parse are kept upper-cased as received.
func normalizeCurrency(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	return unit.String()
}

// parseTimestamp parses a provider RFC 3339 instant; nil when absent
// or malformed.
func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
