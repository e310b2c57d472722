// Package money parses formatted display prices into numeric amounts.
//
// The catalog stores prices as display strings and mixes at least two
// separator conventions ("RM 2,500" and "Rp 2.500.000"). Stripping every
// non-digit character and parsing the remainder misreads the second style,
// so parsing here distinguishes decimal separators from thousands grouping
// instead.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a parsed price: an integer count of minor units (cents) plus the
// currency prefix carried by the display string.
type Amount struct {
	Cents    int64
	Currency string
}

// Major returns the amount in major units.
func (a Amount) Major() float64 {
	return float64(a.Cents) / 100
}

// Parse splits a display price such as "RM 2,500" or "Rp 2.500.000" into its
// currency prefix and numeric value. A separator followed by exactly two
// trailing digits is a decimal point; any other separator groups thousands.
func Parse(display string) (Amount, error) {
	s := strings.TrimSpace(display)
	if s == "" {
		return Amount{}, fmt.Errorf("empty price string")
	}

	// The currency prefix is the leading run of non-digit characters.
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return Amount{}, fmt.Errorf("no digits in price %q", display)
	}
	currency := strings.TrimSpace(s[:start])
	num := strings.TrimSpace(s[start:])

	intPart := num
	fracPart := ""
	if sep := lastSeparator(num); sep >= 0 && len(num)-sep-1 == 2 {
		intPart, fracPart = num[:sep], num[sep+1:]
	}

	intDigits := strings.Map(keepDigit, intPart)
	if intDigits == "" {
		return Amount{}, fmt.Errorf("no integer digits in price %q", display)
	}
	whole, err := strconv.ParseInt(intDigits, 10, 64)
	if err != nil {
		return Amount{}, fmt.Errorf("failed to parse price %q: %w", display, err)
	}

	cents := whole * 100
	if fracPart != "" {
		frac, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return Amount{}, fmt.Errorf("failed to parse fraction of price %q: %w", display, err)
		}
		cents += frac
	}

	return Amount{Cents: cents, Currency: currency}, nil
}

// MajorValue parses a display price and returns it in major units, or an
// error if the string carries no usable number.
func MajorValue(display string) (float64, error) {
	amount, err := Parse(display)
	if err != nil {
		return 0, err
	}
	return amount.Major(), nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func keepDigit(r rune) rune {
	if isDigit(r) {
		return r
	}
	return -1
}

// lastSeparator returns the index of the rightmost '.' or ',' in s, or -1.
func lastSeparator(s string) int {
	dot := strings.LastIndexByte(s, '.')
	comma := strings.LastIndexByte(s, ',')
	if dot > comma {
		return dot
	}
	return comma
}
