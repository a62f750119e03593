package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DefaultCurrency tags every amount; the ledger is single-currency.
const DefaultCurrency = "USD"

// Money is an exact integer amount of minor units (cents). The canonical
// value is Cents; decimal text exists only at the input and display
// boundaries and is never parsed back out of storage.
type Money struct {
	Cents    int64
	Currency string
}

// Cents constructs Money from minor units in the default currency.
func Cents(cents int64) Money {
	return Money{Cents: cents, Currency: DefaultCurrency}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidData)
	}
	return nil
}

// String formats the amount as decimal text for display, e.g. "12.34 USD".
func (m Money) String() string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, m.Currency)
}

// ParseDecimalToCents converts user-typed decimal text to cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// performs half-up rounding on the third decimal place. Signs are
// rejected: the entry kind carries the direction, never the amount.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: amount cannot be empty", ErrInvalidData)
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: amount must be an unsigned decimal", ErrInvalidData)
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: malformed amount %q", ErrInvalidData, s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("%w: malformed amount %q", ErrInvalidData, s)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed amount %q", ErrInvalidData, s)
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, fmt.Errorf("%w: amount %q overflows", ErrInvalidData, s)
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
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidData)
	}
	return cents, nil
}
