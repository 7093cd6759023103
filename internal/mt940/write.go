package mt940

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/stmtconv/internal/model"
)

// DefaultTxCode is written in :61: when an entry has no proprietary code.
const DefaultTxCode = "NMSC"

// Balance type codes back to their field tags.
var balanceFieldTags = map[string]string{
	model.OpeningBooked:    "60F",
	model.OpeningAvailable: "60M",
	model.ClosingBooked:    "62F",
	model.ClosingAvailable: "62M",
	model.InterimAvailable: "64",
	model.ForwardAvailable: "65",
}

// Encode writes one MT940 record per statement, flushing after each.
func Encode(w io.Writer, doc *model.Document) error {
	if doc == nil {
		return nil
	}
	bw := bufio.NewWriter(w)
	for i := range doc.Statements {
		if _, err := bw.WriteString(FormatRecord(&doc.Statements[i])); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrWrite, i+1, err)
		}
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrWrite, i+1, err)
		}
	}
	return nil
}

// FormatRecord renders a statement as a complete {1:}..{5:-} record.
func FormatRecord(st *model.Statement) string {
	var b strings.Builder
	rep := &st.Report

	bic := rep.Account.Servicer.FinInstnID.BIC
	if bic == "" {
		bic = UnknownBIC
	}
	b.WriteString("{1:F01" + bic + "}\n")
	b.WriteString("{2:I940" + st.Header.MessageID + "}\n")
	b.WriteString("{3:}\n")
	b.WriteString("{4:\n")
	b.WriteString(":20:" + st.Header.MessageID + "\n")
	b.WriteString(":25:" + rep.Account.Owner.ID.Organisation.Other.ID + "\n")
	if rep.ElectronicSequenceNum != "" || rep.LegalSequenceNum != "" {
		b.WriteString(":28C:" + rep.ElectronicSequenceNum + "/" + rep.LegalSequenceNum + "\n")
	}
	writeBalances(&b, rep.Balances)
	for i := range rep.Entries {
		writeEntry(&b, &rep.Entries[i])
	}
	b.WriteString("}\n{5:-}\n")
	return b.String()
}

func writeBalances(b *strings.Builder, balances []model.Balance) {
	for _, bal := range balances {
		tag, ok := balanceFieldTags[bal.Type.CodeOrProprietary.Code]
		if !ok {
			continue
		}
		sign := bal.Sign
		if sign == "" {
			sign = model.IndicatorLetter(bal.CreditDebit)
		}
		fmt.Fprintf(b, ":%s:%s%s%s%s\n", tag, sign,
			model.CompactDate(bal.Date.Date), bal.Amount.Currency, model.ToWireAmount(bal.Amount.Value))
	}
}

func writeEntry(b *strings.Builder, e *model.Entry) {
	valueDate := model.CompactDate(e.ValueDate.Date)
	if valueDate == "" {
		valueDate = model.CompactDate(e.BookingDate.Date)
	}
	var booking string
	if d := model.CompactDate(e.BookingDate.Date); d != "" {
		booking = d[2:]
	}
	code := e.BankTxCode.Proprietary.Code
	if code == "" {
		code = DefaultTxCode
	}

	b.WriteString(":61:" + valueDate + booking + model.IndicatorLetter(e.CreditDebit) +
		model.ToWireAmount(e.Amount.Value) + code + e.FirstDetail().Refs.EndToEndID)
	if e.ServicerReference != "" {
		b.WriteString("//" + e.ServicerReference)
	} else {
		b.WriteString(" ")
	}
	b.WriteString("\n")

	// Exactly one :86: follows each :61:. Only the first transaction
	// detail is written; later ones have no place in the field.
	if len(e.Details.Transactions) == 0 {
		b.WriteString(":86:\n")
		return
	}
	tx := e.FirstDetail()
	writeInformation(b, &tx)
}

// writeInformation emits a :86: field. The first sub-field shares the
// :86: line, each later one gets its own line. Empty values are omitted.
func writeInformation(b *strings.Builder, tx *model.TxDetail) {
	var nref string
	if tx.Refs.Proprietary.Type == "NREF" {
		nref = tx.Refs.Proprietary.Ref
	}
	subs := []SubField{
		{"EREF", tx.Refs.EndToEndID},
		{"CRNM", tx.Parties.Creditor.Name},
		{"CACT", tx.Parties.CreditorAccount.ID.Other.ID},
		{"CBIC", tx.Agents.CreditorAgent.FinInstnID.BIC},
		{"REMI", strings.Join(tx.Remittance.Unstructured, "/")},
		{"OPRP", tx.AdditionalInfo},
		{"DACT", tx.Parties.DebtorAccount.ID.Other.ID},
		{"DBIC", tx.Agents.DebtorAgent.FinInstnID.BIC},
		{"OAMT", tx.AmountDetails.Amount},
		{"DCID", tx.Parties.Debtor.ID.Other.ID},
		{"NREF", nref},
	}

	b.WriteString(":86:")
	first := true
	for _, sf := range subs {
		v := flatten(sf.Value)
		if v == "" {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		b.WriteString("/" + sf.Code + "/" + v)
		first = false
	}
	b.WriteString("\n")
}

// flatten keeps a value on one line so it cannot open a new field.
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
