// This file contains functions for converting between decimal amount strings
// and pence, and for formatting pence for display.

package core

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount reports a decimal amount string that could not be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// ParsePence converts a decimal amount string to pence with half-up rounding
// on the third decimal place. Signed values are allowed.
//
// Examples:
//
//	ParsePence("15.50") -> 1550, nil
//	ParsePence("1.005") -> 101, nil
//	ParsePence("-3")    -> -300, nil
func ParsePence(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// PenceOrZero is ParsePence for untrusted server data: anything unparseable
// is 0. Used on the normalization path, which never fails.
func PenceOrZero(s string) int64 {
	v, err := ParsePence(s)
	if err != nil {
		return 0
	}
	return v
}

// FormatPence renders pence as a grouped GBP string, e.g. 123456 -> "£1,234.56".
func FormatPence(pence int64) string {
	neg := pence < 0
	if neg {
		pence = -pence
	}
	pounds := pence / 100
	rem := pence % 100

	s := strconv.FormatInt(pounds, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteRune('£')
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	if rem < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(rem, 10))
	return b.String()
}
