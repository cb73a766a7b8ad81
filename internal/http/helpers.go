package http

import (
	"strings"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
)

var hundred = decimal.NewFromInt(100)

// formatMoney renders a decimal with thousand separators, e.g. "169,850".
// The currency symbol lives in the templates next to the account currency.
func formatMoney(v decimal.Decimal) string {
	s := v.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		return "-" + out
	}
	return out
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseAmount parses a positive decimal magnitude from form input.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, core.ErrInvalidAmount
	}
	if v.Sign() <= 0 {
		return decimal.Decimal{}, core.ErrInvalidAmount
	}
	return v, nil
}

// parseDirection maps a form value to a direction.
func parseDirection(s string) (core.Direction, bool) {
	d := core.Direction(strings.TrimSpace(s))
	return d, d.Valid()
}
