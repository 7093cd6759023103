package csvstmt

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/cleared-dev/stmtconv/internal/model"
)

// Fixed row offsets of the export.
const (
	minRows       = 8
	rowBanner     = 0
	rowServicer   = 1
	rowIssuer     = 2
	rowCreated    = 3
	rowAccount    = 4
	rowOwner      = 5
	rowPeriod     = 6
	rowCurrency   = 7
	rowFirstEntry = 11

	// Trailer rows counted back from the end.
	trailerRows   = 4
	trailerCount  = 4
	trailerOpen   = 3
	trailerTotals = 2
	trailerClose  = 1
)

// NotProvided is the end-to-end id of an entry without a document number.
const NotProvided = "NOTPROVIDED"

var (
	agentPattern    = regexp.MustCompile(`^(?:БИК\s+)?(\w+)(?:\s+([^,]+))?(?:,\s*(.+))?`)
	servicerPattern = regexp.MustCompile(`БИК (\w+)`)
)

// Decode reads a statement CSV into a canonical document.
func Decode(r io.Reader) (*model.Document, error) {
	rows, err := Read(r)
	if err != nil {
		return nil, err
	}
	return ToStatement(rows)
}

// ToStatement maps positional rows onto a single-statement document.
func ToStatement(rows []Row) (*model.Document, error) {
	if len(rows) < minRows {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrTooFewRows, len(rows), minRows)
	}

	var st model.Statement
	rep := &st.Report
	issuer := rows[rowIssuer].B

	rep.Account.Servicer.FinInstnID.Name = rows[rowBanner].B
	if m := servicerPattern.FindStringSubmatch(rows[rowServicer].B); m != nil {
		rep.Account.Servicer.FinInstnID.BIC = m[1]
	}

	if date, ok := ExtractDate(rows[rowCreated].B); ok {
		st.Header.CreatedAt = date
		if tm, ok := ExtractTime(rows[rowCreated].B); ok {
			st.Header.CreatedAt += "T" + tm
		}
	}

	rep.Account.ID.Other.ID = rows[rowAccount].M
	rep.Account.Owner.Name = rows[rowOwner].M

	if d, ok := RussianDate(rows[rowPeriod].C); ok {
		rep.Period.From = d + "T00:00:00"
	}
	if d, ok := RussianDate(rows[rowPeriod].P); ok {
		rep.Period.To = d + "T23:59:59"
	}
	if ccy, ok := CurrencyFromName(strings.TrimSpace(rows[rowCurrency].C)); ok {
		rep.Account.Currency = ccy
	}

	trailer := len(rows) - trailerRows
	for i := rowFirstEntry; i < trailer; i++ {
		if rows[i].B == "" {
			break
		}
		rep.Entries = append(rep.Entries, parseEntry(rows[i], rep.Account.Currency, issuer))
	}

	rep.Summary.Total.Count = rows[len(rows)-trailerCount].L
	rep.Summary.Debit.Sum = rows[len(rows)-trailerTotals].H
	rep.Summary.Credit.Sum = rows[len(rows)-trailerTotals].L

	if amt := rows[len(rows)-trailerOpen].H; amt != "" {
		rep.Balances = append(rep.Balances, balance(model.OpeningBooked, amt, rep.Account.Currency, rep.Period.From))
	}
	if amt := rows[len(rows)-trailerClose].L; amt != "" {
		rep.Balances = append(rep.Balances, balance(model.ClosingBooked, amt, rep.Account.Currency, rep.Period.To))
	}

	return &model.Document{Statements: []model.Statement{st}}, nil
}

func balance(code, amount, currency, at string) model.Balance {
	var b model.Balance
	b.Type.CodeOrProprietary.Code = code
	b.Amount = model.Amount{Currency: currency, Value: amount}
	b.CreditDebit = model.Credit
	if len(at) >= 10 {
		b.Date.Date = at[:10]
	}
	return b
}

func parseEntry(row Row, currency, issuer string) model.Entry {
	var e model.Entry
	e.Amount.Currency = currency

	date, ok := ExtractDate(row.B)
	if !ok {
		date = model.SentinelDate
	}
	e.ValueDate.Date = date
	e.BookingDate.Date = date

	if row.J != "" {
		e.CreditDebit = model.Debit
		e.Amount.Value = row.J
	} else {
		e.CreditDebit = model.Credit
		e.Amount.Value = row.N
	}

	e.BankTxCode.Proprietary.Code = row.Q
	e.BankTxCode.Proprietary.Issuer = issuer
	e.ServicerReference = row.O

	var tx model.TxDetail
	tx.Refs.EndToEndID = row.O
	if tx.Refs.EndToEndID == "" {
		tx.Refs.EndToEndID = NotProvided
	}

	if acct, id, name, ok := splitParty(row.E); ok {
		tx.Parties.DebtorAccount.ID.Other.ID = acct
		tx.Parties.Debtor.ID.Other.ID = id
		tx.Parties.Debtor.Name = name
	}
	if acct, id, name, ok := splitParty(row.I); ok {
		tx.Parties.CreditorAccount.ID.Other.ID = acct
		tx.Parties.Creditor.ID.Other.ID = id
		tx.Parties.Creditor.Name = name
	}

	if m := agentPattern.FindStringSubmatch(strings.TrimSpace(row.R)); m != nil {
		agent := &tx.Agents.DebtorAgent.FinInstnID
		agent.BIC = m[1]
		agent.Name = strings.TrimSpace(m[2])
		if m[3] != "" {
			agent.Address.AddressLines = []string{m[3]}
		}
	}

	for _, line := range strings.Split(row.U, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tx.Remittance.Unstructured = append(tx.Remittance.Unstructured, line)
		}
	}

	e.Details.Transactions = []model.TxDetail{tx}
	return e
}

// splitParty splits an "account\nid\nname" cell. Any other shape is ignored.
func splitParty(cell string) (acct, id, name string, ok bool) {
	parts := strings.Split(strings.ReplaceAll(cell, "\r\n", "\n"), "\n")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
