package csvstmt

import (
	"fmt"
	"regexp"
	"strconv"
)

// Genitive month names as they appear in "10 октября 2023".
var months = []string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// Currency names used by the export, keyed by ISO code.
var currencyNames = map[string]string{
	"RUB": "Российский рубль",
	"USD": "Доллар США",
	"EUR": "Евро",
}

var (
	russianDate  = regexp.MustCompile(`(\d{1,2})\s+(января|февраля|марта|апреля|мая|июня|июля|августа|сентября|октября|ноября|декабря)\s+(\d{4})`)
	numericDate  = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})`)
	clockTime    = regexp.MustCompile(`(\d{2}:\d{2}:\d{2})`)
	isoDate      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)
)

// RussianDate finds a "10 октября 2023" date in s and returns it as
// yyyy-mm-dd.
func RussianDate(s string) (string, bool) {
	m := russianDate.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	for i, name := range months {
		if name == m[2] {
			return fmt.Sprintf("%s-%02d-%02d", m[3], i+1, day), true
		}
	}
	return "", false
}

// FormatRussianDate renders the date part of an ISO timestamp as
// "10 октября 2023", or "" if iso does not start with a valid date.
func FormatRussianDate(iso string) string {
	m := isoDate.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return ""
	}
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%d %s %s", day, months[month-1], m[1])
}

// CurrencyFromName maps a Russian currency name to its ISO code. A bare
// three-letter code passes through.
func CurrencyFromName(name string) (string, bool) {
	for code, n := range currencyNames {
		if n == name {
			return code, true
		}
	}
	if currencyCode.MatchString(name) {
		return name, true
	}
	return "", false
}

// CurrencyName maps an ISO code to the Russian name used by the export,
// falling back to the code itself.
func CurrencyName(code string) string {
	if n, ok := currencyNames[code]; ok {
		return n
	}
	return code
}

// ExtractDate finds a dd.mm.yyyy date in s and returns it as yyyy-mm-dd.
func ExtractDate(s string) (string, bool) {
	m := numericDate.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[3] + "-" + m[2] + "-" + m[1], true
}

// ExtractTime finds an hh:mm:ss time in s.
func ExtractTime(s string) (string, bool) {
	m := clockTime.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// formatNumericDate renders the date part of an ISO timestamp as
// dd.mm.yyyy, or "" if iso does not start with a date.
func formatNumericDate(iso string) string {
	m := isoDate.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}
	return m[3] + "." + m[2] + "." + m[1]
}
