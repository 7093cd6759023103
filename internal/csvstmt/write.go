package csvstmt

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cleared-dev/stmtconv/internal/model"
)

// Fixed text of the export.
const (
	createdLabel  = "Дата формирования выписки: "
	accountLabel  = "Выписка по лицевому счету"
	periodLabel   = "За период с "
	periodTo      = "по"
	countLabel    = "Количество операций"
	openingLabel  = "Входящий остаток"
	turnoverLabel = "Итого оборотов"
	closingLabel  = "Исходящий остаток"
	stampLayout   = "02.01.2006 15:04:05"
)

// Encode writes the first statement of doc as a statement CSV. now stamps
// the creation row when the statement carries no creation time.
func Encode(w io.Writer, doc *model.Document, now time.Time) error {
	rows, err := FromStatement(doc, now)
	if err != nil {
		return err
	}
	return Write(w, rows)
}

// FromStatement lays out the first statement of doc as export rows. Totals
// missing from the summary are computed from the entries.
func FromStatement(doc *model.Document, now time.Time) ([]Row, error) {
	if doc == nil || len(doc.Statements) == 0 {
		return nil, ErrNoStatement
	}
	st := &doc.Statements[0]
	rep := &st.Report

	summary, err := completeSummary(rep)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStatement, err)
	}

	rows := make([]Row, rowFirstEntry, rowFirstEntry+len(rep.Entries)+5)

	svc := rep.Account.Servicer.FinInstnID
	rows[rowBanner].B = svc.Name
	if svc.BIC != "" {
		rows[rowServicer].B = "БИК " + svc.BIC
	}
	rows[rowIssuer].B = issuerOf(rep)
	rows[rowCreated].B = createdLabel + creationStamp(st.Header.CreatedAt, now)

	rows[rowAccount].B = accountLabel
	rows[rowAccount].M = rep.Account.ID.Other.ID
	if rows[rowAccount].M == "" {
		rows[rowAccount].M = rep.Account.ID.IBAN
	}
	rows[rowOwner].M = rep.Account.Owner.Name

	rows[rowPeriod].C = periodLabel + FormatRussianDate(rep.Period.From)
	rows[rowPeriod].O = periodTo
	rows[rowPeriod].P = FormatRussianDate(rep.Period.To)
	rows[rowCurrency].C = CurrencyName(rep.Account.Currency)

	rows[8] = Row{
		B: "Дата проводки",
		E: "Счет",
		J: "Сумма по дебету",
		N: "Сумма по кредиту",
		O: "№ документа",
		Q: "ВО",
		R: "Банк (БИК и наименование)",
		U: "Назначение платежа",
	}
	rows[9] = Row{E: "Дебет", I: "Кредит"}
	rows[10] = Row{B: "1", E: "2", I: "3", J: "4", N: "5", O: "6", Q: "7", R: "8", U: "9"}

	for i := range rep.Entries {
		rows = append(rows, entryRow(&rep.Entries[i]))
	}

	rows = append(rows,
		Row{D: "б/с", H: "Дебет", L: "Кредит", T: "Всего"},
		Row{B: countLabel, L: summary.Total.Count},
		Row{B: openingLabel, H: balanceAmount(rep.Balances, model.OpeningBooked)},
		Row{B: turnoverLabel, H: summary.Debit.Sum, L: summary.Credit.Sum},
		Row{B: closingLabel, L: balanceAmount(rep.Balances, model.ClosingBooked)},
	)
	return rows, nil
}

// completeSummary fills the count and side sums that rep does not carry.
func completeSummary(rep *model.Report) (model.TxSummary, error) {
	s := rep.Summary
	if s.Total.Count != "" && s.Debit.Sum != "" && s.Credit.Sum != "" {
		return s, nil
	}
	computed, err := model.Summarize(rep.Entries)
	if err != nil {
		return model.TxSummary{}, err
	}
	if s.Total.Count == "" {
		s.Total.Count = computed.Total.Count
	}
	if s.Debit.Sum == "" {
		s.Debit.Sum = computed.Debit.Sum
	}
	if s.Credit.Sum == "" {
		s.Credit.Sum = computed.Credit.Sum
	}
	return s, nil
}

func issuerOf(rep *model.Report) string {
	for _, e := range rep.Entries {
		if e.BankTxCode.Proprietary.Issuer != "" {
			return e.BankTxCode.Proprietary.Issuer
		}
	}
	return rep.Account.Servicer.FinInstnID.Name
}

func creationStamp(createdAt string, now time.Time) string {
	if date := formatNumericDate(createdAt); date != "" {
		if tm, ok := ExtractTime(createdAt); ok {
			return date + " " + tm
		}
		return date + " 00:00:00"
	}
	return now.Format(stampLayout)
}

func balanceAmount(balances []model.Balance, code string) string {
	for _, b := range balances {
		if b.Type.CodeOrProprietary.Code == code {
			return b.Amount.Value
		}
	}
	return ""
}

func entryRow(e *model.Entry) Row {
	var row Row

	row.B = formatNumericDate(e.BookingDate.Date)
	if row.B == "" {
		row.B = formatNumericDate(e.ValueDate.Date)
	}
	if row.B == "" {
		row.B = formatNumericDate(model.SentinelDate)
	}

	if e.CreditDebit == model.Debit {
		row.J = e.Amount.Value
	} else {
		row.N = e.Amount.Value
	}
	row.O = e.ServicerReference
	row.Q = e.BankTxCode.Proprietary.Code

	tx := e.FirstDetail()
	row.E = joinParty(tx.Parties.DebtorAccount.ID.Other.ID, tx.Parties.Debtor.ID.Other.ID, tx.Parties.Debtor.Name)
	row.I = joinParty(tx.Parties.CreditorAccount.ID.Other.ID, tx.Parties.Creditor.ID.Other.ID, tx.Parties.Creditor.Name)
	row.R = agentCell(tx.Agents.DebtorAgent.FinInstnID)
	row.U = strings.Join(tx.Remittance.Unstructured, "\n")
	return row
}

func joinParty(acct, id, name string) string {
	if acct == "" && id == "" && name == "" {
		return ""
	}
	return acct + "\n" + id + "\n" + name
}

func agentCell(fi model.FinancialInstitution) string {
	if fi.BIC == "" {
		return ""
	}
	cell := "БИК " + fi.BIC
	if fi.Name != "" {
		cell += " " + fi.Name
	}
	if len(fi.Address.AddressLines) > 0 {
		cell += ", " + strings.Join(fi.Address.AddressLines, " ")
	}
	return cell
}
