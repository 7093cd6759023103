package model

import "encoding/xml"

// Document is the canonical statement tree every format converts through.
// One document may carry several statements.
type Document struct {
	XMLName    xml.Name    `xml:"Document"`
	Statements []Statement `xml:"BkToCstmrStmt"`
}

// Statement is one bank-to-customer statement message.
type Statement struct {
	Header GroupHeader `xml:"GrpHdr"`
	Report Report      `xml:"Stmt"`
}

// GroupHeader identifies the message.
type GroupHeader struct {
	MessageID string `xml:"MsgId"`
	CreatedAt string `xml:"CreDtTm"` // yyyy-mm-ddThh:mm:ss
}

// Report is the statement body. Balance and entry order is significant:
// writers emit them in slice order.
type Report struct {
	ID                    string    `xml:"Id"`
	ElectronicSequenceNum string    `xml:"ElctrncSeqNb"`
	LegalSequenceNum      string    `xml:"LglSeqNb"`
	CreatedAt             string    `xml:"CreDtTm,omitempty"`
	Period                Period    `xml:"FrToDt"`
	Account               Account   `xml:"Acct"`
	Balances              []Balance `xml:"Bal"`
	Summary               TxSummary `xml:"TxsSummry"`
	Entries               []Entry   `xml:"Ntry"`
}

// Period is the reporting window.
type Period struct {
	From string `xml:"FrDtTm"`
	To   string `xml:"ToDtTm"`
}

// Account describes the reported account.
type Account struct {
	ID       AccountID   `xml:"Id"`
	Currency string      `xml:"Ccy"`
	Name     string      `xml:"Nm,omitempty"`
	Owner    Owner       `xml:"Ownr"`
	Servicer Institution `xml:"Svcr"`
}

// AccountID holds either an IBAN or an identifier in another scheme.
type AccountID struct {
	IBAN  string    `xml:"IBAN,omitempty"`
	Other GenericID `xml:"Othr"`
}

// GenericID is an identifier with an optional scheme name.
type GenericID struct {
	ID     string     `xml:"Id"`
	Scheme SchemeName `xml:"SchmeNm"`
}

// SchemeName names the identification scheme.
type SchemeName struct {
	Code string `xml:"Cd,omitempty"`
}

// Owner is the account holder.
type Owner struct {
	Name    string        `xml:"Nm"`
	Address PostalAddress `xml:"PstlAdr"`
	ID      PartyID       `xml:"Id"`
}

// PartyID identifies an organisation.
type PartyID struct {
	Organisation OrganisationID `xml:"OrgId"`
}

// OrganisationID wraps the organisation's generic identifier.
type OrganisationID struct {
	Other GenericID `xml:"Othr"`
}

// Institution is a financial institution (servicer or agent).
type Institution struct {
	FinInstnID FinancialInstitution `xml:"FinInstnId"`
}

// FinancialInstitution carries the institution's BIC, name and address.
type FinancialInstitution struct {
	BIC     string        `xml:"BIC"`
	Name    string        `xml:"Nm,omitempty"`
	Address PostalAddress `xml:"PstlAdr"`
}

// PostalAddress is a structured or line-based address.
type PostalAddress struct {
	Street       string   `xml:"StrtNm,omitempty"`
	Building     string   `xml:"BldgNb,omitempty"`
	PostCode     string   `xml:"PstCd,omitempty"`
	Town         string   `xml:"TwnNm,omitempty"`
	Country      string   `xml:"Ctry,omitempty"`
	AddressLines []string `xml:"AdrLine,omitempty"`
}

// Balance is an opening, closing, interim or forward position.
type Balance struct {
	Type        BalanceType `xml:"Tp"`
	Amount      Amount      `xml:"Amt"`
	CreditDebit string      `xml:"CdtDbtInd"`
	Date        DateField   `xml:"Dt"`
	// Sign is the MT940 C/D letter. It does not exist in CAMT.
	Sign string `xml:"-"`
}

// BalanceType wraps the balance code.
type BalanceType struct {
	CodeOrProprietary Code `xml:"CdOrPrtry"`
}

// Code is a single ISO code element.
type Code struct {
	Code string `xml:"Cd"`
}

// Amount is a dot-decimal amount string with its currency attribute.
type Amount struct {
	Currency string `xml:"Ccy,attr"`
	Value    string `xml:",chardata"`
}

// DateField is an ISO date element (yyyy-mm-dd).
type DateField struct {
	Date string `xml:"Dt"`
}

// TxSummary holds the statement's transaction totals.
type TxSummary struct {
	Total  TotalEntries      `xml:"TtlNtries"`
	Credit TotalSidedEntries `xml:"TtlCdtNtries"`
	Debit  TotalSidedEntries `xml:"TtlDbtNtries"`
}

// TotalEntries is the overall entry count and net amount.
type TotalEntries struct {
	Count       string `xml:"NbOfNtries"`
	NetAmount   string `xml:"TtlNetNtryAmt,omitempty"`
	CreditDebit string `xml:"CdtDbtInd,omitempty"`
}

// TotalSidedEntries is the count and sum of one side.
type TotalSidedEntries struct {
	Count string `xml:"NbOfNtries,omitempty"`
	Sum   string `xml:"Sum"`
}

// Entry is one statement line.
type Entry struct {
	Reference         string         `xml:"NtryRef,omitempty"`
	Amount            Amount         `xml:"Amt"`
	CreditDebit       string         `xml:"CdtDbtInd"`
	Status            string         `xml:"Sts,omitempty"`
	BookingDate       DateField      `xml:"BookgDt"`
	ValueDate         DateField      `xml:"ValDt"`
	ServicerReference string         `xml:"AcctSvcrRef,omitempty"`
	BankTxCode        BankTxCode     `xml:"BkTxCd"`
	AdditionalInfo    AdditionalInfo `xml:"AddtlInfInd"`
	Details           EntryDetails   `xml:"NtryDtls"`
}

// BankTxCode is the bank transaction code in domain and proprietary form.
type BankTxCode struct {
	Domain      Domain      `xml:"Domn"`
	Proprietary Proprietary `xml:"Prtry"`
}

// Domain is the ISO domain/family/sub-family code triple.
type Domain struct {
	Code   string `xml:"Cd,omitempty"`
	Family Family `xml:"Fmly"`
}

// Family is the ISO family code pair.
type Family struct {
	Code          string `xml:"Cd,omitempty"`
	SubFamilyCode string `xml:"SubFmlyCd,omitempty"`
}

// Proprietary is a bank-specific transaction code and its issuer.
type Proprietary struct {
	Code   string `xml:"Cd"`
	Issuer string `xml:"Issr,omitempty"`
}

// AdditionalInfo references the underlying message.
type AdditionalInfo struct {
	MessageNameID string `xml:"MsgNmId,omitempty"`
}

// EntryDetails holds one or more transaction details.
type EntryDetails struct {
	Batch        Batch      `xml:"Btch"`
	Transactions []TxDetail `xml:"TxDtls"`
}

// Batch is the number of transactions in a batch booking.
type Batch struct {
	NumberOfTxs string `xml:"NbOfTxs,omitempty"`
}

// TxDetail is one underlying transaction of an entry.
type TxDetail struct {
	Refs           References     `xml:"Refs"`
	AmountDetails  AmountDetails  `xml:"AmtDtls"`
	BankTxCode     BankTxCode     `xml:"BkTxCd"`
	Parties        RelatedParties `xml:"RltdPties"`
	Agents         RelatedAgents  `xml:"RltdAgts"`
	Remittance     Remittance     `xml:"RmtInf"`
	Dates          RelatedDates   `xml:"RltdDts"`
	AdditionalInfo string         `xml:"AddtlTxInf,omitempty"`
}

// References are the payment identifiers of a transaction.
type References struct {
	PaymentInfoID string         `xml:"PmtInfId,omitempty"`
	InstructionID string         `xml:"InstrId,omitempty"`
	EndToEndID    string         `xml:"EndToEndId"`
	TxID          string         `xml:"TxId,omitempty"`
	Proprietary   ProprietaryRef `xml:"Prtry"`
}

// ProprietaryRef is a typed bank-specific reference.
type ProprietaryRef struct {
	Type string `xml:"Tp,omitempty"`
	Ref  string `xml:"Ref,omitempty"`
}

// AmountDetails carries original and converted amounts.
type AmountDetails struct {
	Instructed  DetailedAmount `xml:"InstdAmt"`
	Transaction DetailedAmount `xml:"TxAmt"`
	Proprietary DetailedAmount `xml:"PrtryAmt"`
	// Amount is the free-form original amount (MT940 OAMT).
	Amount string `xml:"Amt,omitempty"`
}

// DetailedAmount is an amount with optional exchange information.
type DetailedAmount struct {
	Type     string           `xml:"Tp,omitempty"`
	Amount   Amount           `xml:"Amt"`
	Exchange CurrencyExchange `xml:"CcyXchg"`
}

// CurrencyExchange describes a conversion between currencies.
type CurrencyExchange struct {
	SourceCurrency string `xml:"SrcCcy,omitempty"`
	TargetCurrency string `xml:"TrgtCcy,omitempty"`
	UnitCurrency   string `xml:"UnitCcy,omitempty"`
	Rate           string `xml:"XchgRate,omitempty"`
}

// RelatedParties are the debtor and creditor of a transaction.
type RelatedParties struct {
	Debtor          Party        `xml:"Dbtr"`
	DebtorAccount   PartyAccount `xml:"DbtrAcct"`
	Creditor        Party        `xml:"Cdtr"`
	CreditorAccount PartyAccount `xml:"CdtrAcct"`
}

// Party is a counterparty with a private identifier.
type Party struct {
	Name    string        `xml:"Nm"`
	Address PostalAddress `xml:"PstlAdr"`
	ID      PrivateID     `xml:"Id"`
}

// PrivateID wraps a person's generic identifier.
type PrivateID struct {
	Other GenericID `xml:"Othr"`
}

// PartyAccount is a counterparty account.
type PartyAccount struct {
	ID AccountID `xml:"Id"`
}

// RelatedAgents are the institutions on each side.
type RelatedAgents struct {
	DebtorAgent   Institution `xml:"DbtrAgt"`
	CreditorAgent Institution `xml:"CdtrAgt"`
}

// Remittance is the payment purpose.
type Remittance struct {
	Unstructured []string             `xml:"Ustrd,omitempty"`
	Structured   StructuredRemittance `xml:"Strd"`
}

// StructuredRemittance holds a creditor reference.
type StructuredRemittance struct {
	CreditorRef CreditorReference `xml:"CdtrRefInf"`
}

// CreditorReference is a typed creditor reference.
type CreditorReference struct {
	Type BalanceType `xml:"Tp"`
	Ref  string      `xml:"Ref,omitempty"`
}

// RelatedDates are dates of the underlying transaction.
type RelatedDates struct {
	AcceptedAt string `xml:"AccptncDtTm,omitempty"`
}

// FirstDetail returns the entry's first transaction detail, or a zero
// detail when the entry has none.
func (e Entry) FirstDetail() TxDetail {
	if len(e.Details.Transactions) == 0 {
		return TxDetail{}
	}
	return e.Details.Transactions[0]
}
