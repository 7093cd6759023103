package model

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ValidateAmount checks that s is a dot-decimal amount.
func ValidateAmount(s string) error {
	if _, err := decimal.NewFromString(s); err != nil {
		return fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return nil
}

// Summarize totals entries per side. Sums are fixed to two decimal places;
// the net amount is credit minus debit, signed by CdtDbtInd.
func Summarize(entries []Entry) (TxSummary, error) {
	credit := decimal.Zero
	debit := decimal.Zero
	var nCredit, nDebit int

	for i, e := range entries {
		amt, err := decimal.NewFromString(e.Amount.Value)
		if err != nil {
			return TxSummary{}, fmt.Errorf("entry %d: parsing amount %q: %w", i+1, e.Amount.Value, err)
		}
		switch e.CreditDebit {
		case Credit:
			credit = credit.Add(amt)
			nCredit++
		case Debit:
			debit = debit.Add(amt)
			nDebit++
		default:
			return TxSummary{}, fmt.Errorf("entry %d: %w: %q", i+1, ErrInvalidIndicator, e.CreditDebit)
		}
	}

	net := credit.Sub(debit)
	indicator := Credit
	if net.IsNegative() {
		indicator = Debit
	}

	return TxSummary{
		Total: TotalEntries{
			Count:       strconv.Itoa(len(entries)),
			NetAmount:   net.Abs().StringFixed(2),
			CreditDebit: indicator,
		},
		Credit: TotalSidedEntries{Count: strconv.Itoa(nCredit), Sum: credit.StringFixed(2)},
		Debit:  TotalSidedEntries{Count: strconv.Itoa(nDebit), Sum: debit.StringFixed(2)},
	}, nil
}
