// Package core holds the transaction data model and the validation rules
// that gate every ledger mutation.
//
// This file contains amount parsing and display formatting. Amounts are
// carried as plain cents to avoid floating-point drift; formatting goes
// through go-money so the configured currency controls symbol and grouping.
package core

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/Rhymond/go-money"
)

// ParseAmountToCents converts a user-entered decimal magnitude to cents
// with half-up rounding on the third decimal place. Both dot and comma
// decimal separators are accepted. Signs are rejected: direction is
// derived from the category, not typed by the user.
//
// Examples:
//
//	ParseAmountToCents("50")    -> 5000, nil
//	ParseAmountToCents("12,34") -> 1234, nil
//	ParseAmountToCents("-5")    -> 0, ErrInvalidAmount
func ParseAmountToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// FormatAmount renders cents in the given ISO currency code with the
// currency's symbol and grouping. Negative amounts keep a leading minus.
func FormatAmount(cents int64, code string) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := money.New(cents, code).Display()
	if neg {
		return "-" + s
	}
	return s
}

// KnownCurrency reports whether the code is a currency go-money can format.
func KnownCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
