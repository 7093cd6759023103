package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireAmount(t *testing.T) {
	tests := []struct {
		wire      string
		canonical string
	}{
		{"1000,00", "1000.00"},
		{"12,01", "12.01"},
		{"2732398848,02", "2732398848.02"},
		{"0,1", "0.1"},
		{"5,", "5."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.canonical, FromWireAmount(tt.wire), "FromWireAmount(%q)", tt.wire)
		assert.Equal(t, tt.wire, ToWireAmount(tt.canonical), "ToWireAmount(%q)", tt.canonical)
	}
}

func TestWireAmount_NoRounding(t *testing.T) {
	// More digits than float64 can represent exactly.
	s := "12345678901234567890,123456789"
	assert.Equal(t, "12345678901234567890.123456789", FromWireAmount(s))
	assert.Equal(t, s, ToWireAmount(FromWireAmount(s)))
}

func TestExpandDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"250218", "2025-02-18"},
		{"200105", "2020-01-05"},
		{"2502180218", "2025-02-18"},
		{"25021", SentinelDate},
		{"", SentinelDate},
		{"25O218", SentinelDate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandDate(tt.in), "ExpandDate(%q)", tt.in)
	}
}

func TestCompactDate(t *testing.T) {
	assert.Equal(t, "250218", CompactDate("2025-02-18"))
	assert.Equal(t, "250218", CompactDate("2025-02-18T00:00:00"))
	assert.Equal(t, "", CompactDate("18.02.2025"))
	assert.Equal(t, "", CompactDate(""))
}

func TestParseIndicator(t *testing.T) {
	got, err := ParseIndicator("C")
	require.NoError(t, err)
	assert.Equal(t, Credit, got)

	got, err = ParseIndicator("D")
	require.NoError(t, err)
	assert.Equal(t, Debit, got)

	_, err = ParseIndicator("X")
	assert.ErrorIs(t, err, ErrInvalidIndicator)
}

func TestIndicatorLetter(t *testing.T) {
	assert.Equal(t, "D", IndicatorLetter(Debit))
	assert.Equal(t, "C", IndicatorLetter(Credit))
	assert.Equal(t, "C", IndicatorLetter(""))
}

func TestIsBalanceCode(t *testing.T) {
	for _, c := range BalanceCodes {
		assert.True(t, IsBalanceCode(c), c)
	}
	assert.False(t, IsBalanceCode("OPDB"))
	assert.False(t, IsBalanceCode(""))
}

func TestEntryFirstDetail(t *testing.T) {
	assert.Equal(t, TxDetail{}, Entry{}.FirstDetail())

	e := Entry{Details: EntryDetails{Transactions: []TxDetail{
		{Refs: References{EndToEndID: "A"}},
		{Refs: References{EndToEndID: "B"}},
	}}}
	assert.Equal(t, "A", e.FirstDetail().Refs.EndToEndID)
}

func TestZeroValueDefaults(t *testing.T) {
	var st Statement
	assert.Empty(t, st.Header.MessageID)
	assert.Empty(t, st.Report.Balances)
	assert.Empty(t, st.Report.Entries)
	assert.Empty(t, st.Report.Account.Servicer.FinInstnID.BIC)
}
