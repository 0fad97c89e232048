// Package utils provides number formatting shared by the report renderers
// and the CLI.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// currencySymbols maps ISO 4217 codes to display symbols.
var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "C$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"MXN": "MX$",
	"PEN": "S/ ",
	"CLP": "CLP$",
	"COP": "COL$",
	"ARS": "AR$",
	"BRL": "R$",
}

// CurrencySymbol returns the display symbol for an ISO currency code. An
// unknown code is returned followed by a space; an empty code yields
// fallback.
func CurrencySymbol(code, fallback string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fallback
	}
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code + " "
}

// FormatAmount formats a monetary amount with thousands grouping and two
// decimals, e.g. 1234567.891 → "$1,234,567.89". The rupee symbol switches
// to Indian grouping (see FormatINR).
func FormatAmount(amount float64, symbol string) string {
	if symbol == "₹" {
		return FormatINR(amount)
	}
	whole, cents, negative := splitCents(amount)
	s := fmt.Sprintf("%s%s.%02d", symbol, groupThousands(whole), cents)
	if negative {
		return "-" + s
	}
	return s
}

// FormatINR formats a number in Indian Rupee format (₹12,34,567.89).
// Uses the Indian numbering system: last 3 digits, then groups of 2.
func FormatINR(amount float64) string {
	whole, cents, negative := splitCents(amount)
	s := fmt.Sprintf("₹%s.%02d", formatIndianNumber(whole), cents)
	if negative {
		return "-" + s
	}
	return s
}

// FormatCompact formats an amount with a short magnitude suffix.
// e.g., 1500000 → "$1.5M", 2000000000 → "$2B", 950 → "$950.00"
func FormatCompact(amount float64, symbol string) string {
	prefix := symbol
	if amount < 0 {
		prefix = "-" + symbol
	}
	a := math.Abs(amount)

	switch {
	case a >= 1e9:
		return prefix + formatWithDecimals(a/1e9) + "B"
	case a >= 1e6:
		return prefix + formatWithDecimals(a/1e6) + "M"
	case a >= 1e3:
		return prefix + formatWithDecimals(a/1e3) + "K"
	default:
		return fmt.Sprintf("%s%.2f", prefix, a)
	}
}

// FormatRatio formats a plain ratio with two decimals.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatPercent formats a fraction as a percentage.
// e.g., 0.1875 → "18.75%", -0.0625 → "-6.25%"
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

// FormatDays formats a day count with one decimal.
func FormatDays(days float64) string {
	return fmt.Sprintf("%.1f days", days)
}

// splitCents rounds to the nearest cent and splits into whole units and
// cents. A value that rounds to zero is never negative.
func splitCents(amount float64) (whole, cents int64, negative bool) {
	total := int64(math.Round(math.Abs(amount) * 100))
	return total / 100, total % 100, amount < 0 && total > 0
}

// groupThousands formats an integer with Western grouping (groups of 3).
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// formatIndianNumber formats an integer with Indian grouping (last 3, then 2s).
func formatIndianNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	s := fmt.Sprintf("%d", n)
	length := len(s)

	// Take the last 3 digits
	result := s[length-3:]
	remaining := s[:length-3]

	// Group remaining digits in pairs from right
	for len(remaining) > 0 {
		if len(remaining) > 2 {
			result = remaining[len(remaining)-2:] + "," + result
			remaining = remaining[:len(remaining)-2]
		} else {
			result = remaining + "," + result
			remaining = ""
		}
	}

	return result
}

// formatWithDecimals formats a number with up to 2 decimal places,
// removing trailing zeros.
func formatWithDecimals(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
