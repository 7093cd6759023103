package csvstmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTime(t *testing.T) {
	got, ok := ExtractTime("time 12:34:56")
	assert.True(t, ok)
	assert.Equal(t, "12:34:56", got)

	_, ok = ExtractTime("no time")
	assert.False(t, ok)
}

func TestExtractDate(t *testing.T) {
	got, ok := ExtractDate("date 12.01.2021")
	assert.True(t, ok)
	assert.Equal(t, "2021-01-12", got)

	_, ok = ExtractDate("2021-01-12")
	assert.False(t, ok)
}

func TestRussianDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10 октября 2023", "2023-10-10"},
		{"За период с 1 января 2024", "2024-01-01"},
		{"31 декабря 1999", "1999-12-31"},
		{"15 мая 2022", "2022-05-15"},
	}
	for _, tt := range tests {
		got, ok := RussianDate(tt.in)
		assert.True(t, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, ok := RussianDate("10 october 2023")
	assert.False(t, ok)
}

func TestFormatRussianDate(t *testing.T) {
	assert.Equal(t, "10 октября 2023", FormatRussianDate("2023-10-10T00:00:00"))
	assert.Equal(t, "1 января 2024", FormatRussianDate("2024-01-01"))
	assert.Equal(t, "", FormatRussianDate("2024-13-01"))
	assert.Equal(t, "", FormatRussianDate(""))
}

func TestRussianDate_RoundTrip(t *testing.T) {
	for _, iso := range []string{"2023-02-28", "2025-07-04", "2020-11-30"} {
		got, ok := RussianDate(FormatRussianDate(iso))
		assert.True(t, ok)
		assert.Equal(t, iso, got)
	}
}

func TestCurrencyFromName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Доллар США", "USD"},
		{"Российский рубль", "RUB"},
		{"Евро", "EUR"},
		{"CNY", "CNY"},
	}
	for _, tt := range tests {
		got, ok := CurrencyFromName(tt.in)
		assert.True(t, ok, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, ok := CurrencyFromName("Юань")
	assert.False(t, ok)
}

func TestCurrencyName(t *testing.T) {
	assert.Equal(t, "Доллар США", CurrencyName("USD"))
	assert.Equal(t, "CNY", CurrencyName("CNY"))
}

func TestFormatNumericDate(t *testing.T) {
	assert.Equal(t, "18.02.2025", formatNumericDate("2025-02-18"))
	assert.Equal(t, "18.02.2025", formatNumericDate("2025-02-18T10:00:00"))
	assert.Equal(t, "", formatNumericDate("18.02.2025"))
}
