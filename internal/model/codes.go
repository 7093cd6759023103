package model

import (
	"errors"
	"fmt"
	"strings"
)

// Credit/debit indicators. No other value is valid in the canonical model.
const (
	Credit = "CRDT"
	Debit  = "DBIT"
)

// Balance type codes.
const (
	OpeningBooked    = "OPBD"
	OpeningAvailable = "OPAV"
	ClosingBooked    = "CLBD"
	ClosingAvailable = "CLAV"
	InterimAvailable = "ITAV"
	ForwardAvailable = "FPAV"
)

// BalanceCodes lists every balance type code in canonical order.
var BalanceCodes = []string{
	OpeningBooked,
	OpeningAvailable,
	ClosingBooked,
	ClosingAvailable,
	InterimAvailable,
	ForwardAvailable,
}

// SentinelDate replaces any date that cannot be expanded.
const SentinelDate = "1979-01-01"

// ErrInvalidIndicator is returned for a credit/debit token outside C/D.
var ErrInvalidIndicator = errors.New("invalid credit/debit indicator")

// IsBalanceCode reports whether code is one of the six balance type codes.
func IsBalanceCode(code string) bool {
	for _, c := range BalanceCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ParseIndicator maps an MT940 sign letter to a canonical indicator.
func ParseIndicator(letter string) (string, error) {
	switch letter {
	case "C":
		return Credit, nil
	case "D":
		return Debit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidIndicator, letter)
	}
}

// IndicatorLetter maps a canonical indicator back to its sign letter.
// Anything that is not DBIT is treated as a credit.
func IndicatorLetter(indicator string) string {
	if indicator == Debit {
		return "D"
	}
	return "C"
}

// FromWireAmount converts an MT940 comma-decimal amount to dot-decimal.
// "1000,00" -> "1000.00"
func FromWireAmount(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

// ToWireAmount converts a dot-decimal amount to MT940 comma-decimal.
// "1000.00" -> "1000,00"
func ToWireAmount(s string) string {
	return strings.ReplaceAll(s, ".", ",")
}

// ExpandDate turns a YYMMDD date into yyyy-mm-dd in the 2000s.
// Anything other than six digits yields SentinelDate.
// "250218" -> "2025-02-18"
func ExpandDate(yymmdd string) string {
	if len(yymmdd) < 6 || !allDigits(yymmdd[:6]) {
		return SentinelDate
	}
	return "20" + yymmdd[0:2] + "-" + yymmdd[2:4] + "-" + yymmdd[4:6]
}

// CompactDate turns yyyy-mm-dd into YYMMDD, or "" if date is malformed.
// "2025-02-18" -> "250218"
func CompactDate(date string) string {
	d := strings.ReplaceAll(date, "-", "")
	if len(d) < 8 || !allDigits(d[:8]) {
		return ""
	}
	return d[2:8]
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
