// Package mt940 reads and writes SWIFT MT940 customer statements.
package mt940

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/stmtconv/internal/id"
	"github.com/cleared-dev/stmtconv/internal/model"
)

var (
	ErrRead              = errors.New("reading mt940 input")
	ErrRecordFraming     = errors.New("mt940 record framing")
	ErrUnpairedEntry     = errors.New("mt940 :61: and :86: counts differ")
	ErrMalformedField    = errors.New("malformed mt940 field")
	ErrUnknownBalanceTag = errors.New("unknown mt940 balance tag")
	ErrWrite             = errors.New("writing mt940 output")

	// ErrInputNotImplemented is returned by Decode for every input. MT940
	// can be written but not yet used as a conversion source.
	ErrInputNotImplemented = errors.New("mt940 input is not implemented")
)

// UnknownBIC is stored when block 1 carries no recognizable BIC.
const UnknownBIC = "UNKNOWN_BIC"

var (
	bicPattern     = regexp.MustCompile(`F\d{2}([A-Z]*\d*[A-Z]*)`)
	msgIDPattern   = regexp.MustCompile(`[IO]\d{3}(\w+)`)
	balancePattern = regexp.MustCompile(`^([CD])(\d{6})([A-Z]{3})(\d+,\d*)`)
	linePattern    = regexp.MustCompile(`^(\d{6})(\d{4})?([CD])([A-Z])?(\d+,\d*)([A-Z0-9]{4})([^/\s]*)(?://(\S*))?`)
)

// balanceTags maps balance field tags to balance type codes.
var balanceTags = map[string]string{
	"60F": model.OpeningBooked,
	"60M": model.OpeningAvailable,
	"62F": model.ClosingBooked,
	"62M": model.ClosingAvailable,
	"64":  model.InterimAvailable,
	"65":  model.ForwardAvailable,
}

// Parser turns MT940 text into canonical statements.
type Parser struct {
	log    zerolog.Logger
	strict bool
}

// NewParser creates a Parser. With strictBalances set, a balance-like tag
// outside 60F/60M/62F/62M/64/65 fails the record instead of being dropped.
func NewParser(log zerolog.Logger, strictBalances bool) *Parser {
	return &Parser{log: log, strict: strictBalances}
}

// ParseRecord parses one record with a non-strict, silent parser.
func ParseRecord(text string) (model.Statement, error) {
	return NewParser(zerolog.Nop(), false).ParseRecord(text)
}

// ParseDocument parses every record with a non-strict, silent parser.
func ParseDocument(text string) (*model.Document, error) {
	return NewParser(zerolog.Nop(), false).ParseDocument(text)
}

// Decode reads and parses r, then reports ErrInputNotImplemented.
func Decode(r io.Reader) (*model.Document, error) {
	return NewParser(zerolog.Nop(), false).Decode(r)
}

// Decode reads and parses r, then always fails with ErrInputNotImplemented.
// A parse failure is joined to that error.
func (p *Parser) Decode(r io.Reader) (*model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	doc, err := p.ParseDocument(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputNotImplemented, err)
	}
	p.log.Debug().Int("statements", len(doc.Statements)).Msg("mt940 input parsed but not accepted")
	return nil, ErrInputNotImplemented
}

// ParseDocument frames text into records and parses each one.
func (p *Parser) ParseDocument(text string) (*model.Document, error) {
	records, err := SplitRecords(text)
	if err != nil {
		return nil, err
	}
	doc := &model.Document{Statements: make([]model.Statement, 0, len(records))}
	for i, rec := range records {
		st, err := p.ParseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		doc.Statements = append(doc.Statements, st)
	}
	return doc, nil
}

// ParseRecord parses a single {1:...}{2:...}{4:...} record.
func (p *Parser) ParseRecord(text string) (model.Statement, error) {
	var st model.Statement
	blocks := Blocks(text)

	st.Report.Account.Servicer.FinInstnID.BIC = parseBIC(blocks[1])

	if m := msgIDPattern.FindStringSubmatch(blocks[2]); m != nil {
		st.Header.MessageID = m[1]
		st.Report.ID = id.StatementID(m[1])
	}

	var lines, details []Field
	for _, f := range Fields(blocks[4]) {
		switch {
		case f.Tag == "20":
			// The writer derives :20: from the message id.
		case f.Tag == "26":
			st.Header.MessageID = f.Value
			st.Report.ID = f.Value
		case f.Tag == "25":
			st.Report.Account.Owner.ID.Organisation.Other.ID = f.Value
		case f.Tag == "28C":
			seq, legal, _ := strings.Cut(f.Value, "/")
			st.Report.ElectronicSequenceNum = seq
			st.Report.LegalSequenceNum = legal
		case f.Tag == "61":
			lines = append(lines, f)
		case f.Tag == "86":
			details = append(details, f)
		case balanceTags[f.Tag] != "":
			if bal, ok := p.parseBalance(f); ok {
				st.Report.Balances = append(st.Report.Balances, bal)
			}
		case strings.HasPrefix(f.Tag, "6"):
			if p.strict {
				return model.Statement{}, fmt.Errorf("%w: :%s:", ErrUnknownBalanceTag, f.Tag)
			}
			p.log.Warn().Str("tag", f.Tag).Msg("dropping unknown balance tag")
		default:
			p.log.Debug().Str("tag", f.Tag).Msg("ignoring field")
		}
	}

	var currency string
	if len(st.Report.Balances) > 0 {
		currency = st.Report.Balances[0].Amount.Currency
	}
	if st.Report.Account.Currency == "" {
		st.Report.Account.Currency = currency
	}

	if len(lines) != len(details) {
		return model.Statement{}, fmt.Errorf("%w: %d :61: fields, %d :86: fields", ErrUnpairedEntry, len(lines), len(details))
	}
	for i := range lines {
		e, err := parseEntry(lines[i].Value, details[i].Value, currency)
		if err != nil {
			return model.Statement{}, fmt.Errorf("entry %d: %w", i+1, err)
		}
		st.Report.Entries = append(st.Report.Entries, e)
	}

	return st, nil
}

func parseBIC(block1 string) string {
	if strings.Contains(block1, UnknownBIC) {
		return UnknownBIC
	}
	m := bicPattern.FindStringSubmatch(block1)
	if m == nil || m[1] == "" {
		return UnknownBIC
	}
	return m[1]
}

func (p *Parser) parseBalance(f Field) (model.Balance, bool) {
	m := balancePattern.FindStringSubmatch(f.Value)
	if m == nil {
		p.log.Warn().Str("tag", f.Tag).Str("value", f.Value).Msg("dropping malformed balance")
		return model.Balance{}, false
	}
	indicator, _ := model.ParseIndicator(m[1])

	var bal model.Balance
	bal.Type.CodeOrProprietary.Code = balanceTags[f.Tag]
	bal.Sign = m[1]
	bal.CreditDebit = indicator
	bal.Date.Date = model.ExpandDate(m[2])
	bal.Amount = model.Amount{Currency: m[3], Value: model.FromWireAmount(m[4])}
	return bal, true
}

// parseEntry builds an entry from a :61: statement line and its :86:
// information field.
func parseEntry(line, info, currency string) (model.Entry, error) {
	first, _, _ := strings.Cut(line, "\n")
	m := linePattern.FindStringSubmatch(strings.TrimSpace(first))
	if m == nil {
		return model.Entry{}, fmt.Errorf("%w: :61:%s", ErrMalformedField, first)
	}
	valueDate, booking, sign, amount, code, customerRef, bankRef := m[1], m[2], m[3], m[5], m[6], m[7], m[8]

	indicator, err := model.ParseIndicator(sign)
	if err != nil {
		return model.Entry{}, err
	}

	var e model.Entry
	e.Amount = model.Amount{Currency: currency, Value: model.FromWireAmount(amount)}
	e.CreditDebit = indicator
	e.ValueDate.Date = model.ExpandDate(valueDate)
	e.BookingDate.Date = e.ValueDate.Date
	if booking != "" {
		e.BookingDate.Date = model.ExpandDate(valueDate[:2] + booking)
	}
	e.ServicerReference = bankRef
	e.BankTxCode.Proprietary.Code = code

	tx := parseInformation(info)
	if tx.Refs.EndToEndID == "" {
		tx.Refs.EndToEndID = customerRef
	}
	e.Details.Transactions = []model.TxDetail{tx}
	return e, nil
}

// parseInformation maps :86: sub-fields onto a transaction detail.
// Unknown codes are ignored.
func parseInformation(info string) model.TxDetail {
	var tx model.TxDetail
	for _, sf := range SubFields(info) {
		switch sf.Code {
		case "EREF":
			tx.Refs.EndToEndID = sf.Value
		case "CRNM":
			tx.Parties.Creditor.Name = sf.Value
		case "CACT":
			tx.Parties.CreditorAccount.ID.Other.ID = sf.Value
		case "CBIC":
			tx.Agents.CreditorAgent.FinInstnID.BIC = sf.Value
		case "REMI":
			if sf.Value != "" {
				tx.Remittance.Unstructured = strings.Split(sf.Value, "/")
			}
		case "OPRP":
			tx.AdditionalInfo = sf.Value
		case "DACT":
			tx.Parties.DebtorAccount.ID.Other.ID = sf.Value
		case "DBIC":
			tx.Agents.DebtorAgent.FinInstnID.BIC = sf.Value
		case "OAMT":
			tx.AmountDetails.Amount = sf.Value
		case "DCID":
			tx.Parties.Debtor.ID.Other.ID = sf.Value
		case "NREF":
			tx.Refs.Proprietary = model.ProprietaryRef{Type: "NREF", Ref: sf.Value}
		}
	}
	return tx
}
