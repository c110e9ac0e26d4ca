// Package moneyx handles FCFA amounts as integer centimes to keep
// arithmetic exact. Parsing accepts both dot and comma decimal
// separators; formatting always emits two decimals so serialized
// output is stable.
package moneyx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidAmount reports a malformed or negative amount string.
var ErrInvalidAmount = errors.New("moneyx: invalid amount")

const maxSafeInt64 = (1<<63 - 1) / 100

// ParseCentimes converts a decimal FCFA string to centimes.
//
// Accepted forms: "50000", "50000.00", "25000,50". Signs are rejected,
// amounts are non-negative by construction. The third decimal digit,
// when present, is rounded half-up.
func ParseCentimes(s string) (int64, error) {
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
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return 0, ErrInvalidAmount
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
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	var fracCentimes int64
	if len(fracPart) > 0 {
		fracCentimes = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCentimes += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCentimes++
			}
		}
	}

	return iv*100 + fracCentimes, nil
}

// FormatCentimes renders centimes as a decimal string with two digits,
// e.g. 5000000 -> "50000.00".
func FormatCentimes(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// ToFrancs converts centimes to a float64 franc value for JSON
// presentation. Internal arithmetic never uses this.
func ToFrancs(c int64) float64 {
	return float64(c) / 100
}
