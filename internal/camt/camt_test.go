package camt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stmtconv/internal/model"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02 camt.053.001.02.xsd">
  <BkToCstmrStmt>
    <GrpHdr>
      <MsgId>GSCRUS30XXXXN</MsgId>
      <CreDtTm>2025-02-18T10:00:00</CreDtTm>
    </GrpHdr>
    <Stmt>
      <Id>GSCRUS30XXXXN-940</Id>
      <ElctrncSeqNb>49</ElctrncSeqNb>
      <LglSeqNb>2</LglSeqNb>
      <Acct>
        <Id><Othr><Id>40702810000000000001</Id></Othr></Id>
        <Ccy>USD</Ccy>
        <Ownr><Nm>ООО Ромашка</Nm></Ownr>
        <Svcr><FinInstnId><BIC>GSCRUS30XXXX</BIC></FinInstnId></Svcr>
      </Acct>
      <Bal>
        <Tp><CdOrPrtry><Cd>OPBD</Cd></CdOrPrtry></Tp>
        <Amt Ccy="USD">2732398848.02</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <Dt><Dt>2025-02-18</Dt></Dt>
      </Bal>
      <Ntry>
        <Amt Ccy="USD">12.01</Amt>
        <CdtDbtInd>DBIT</CdtDbtInd>
        <BookgDt><Dt>2025-02-18</Dt></BookgDt>
        <ValDt><Dt>2025-02-18</Dt></ValDt>
        <AcctSvcrRef>GI2504900007841</AcctSvcrRef>
        <BkTxCd><Prtry><Cd>NTRF</Cd></Prtry></BkTxCd>
        <NtryDtls>
          <TxDtls>
            <Refs><EndToEndId>GSLNVSHSUTKWDR</EndToEndId></Refs>
            <RltdPties><Cdtr><Nm>GOLDMAN SACHS BANK USA</Nm></Cdtr></RltdPties>
            <RmtInf><Ustrd>USD Payment to Vendor</Ustrd></RmtInf>
          </TxDtls>
        </NtryDtls>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>
`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleXML))
	require.NoError(t, err)
	require.Len(t, doc.Statements, 1)

	st := doc.Statements[0]
	assert.Equal(t, "GSCRUS30XXXXN", st.Header.MessageID)
	assert.Equal(t, "49", st.Report.ElectronicSequenceNum)
	assert.Equal(t, "USD", st.Report.Account.Currency)
	assert.Equal(t, "ООО Ромашка", st.Report.Account.Owner.Name)
	assert.Equal(t, "GSCRUS30XXXX", st.Report.Account.Servicer.FinInstnID.BIC)

	require.Len(t, st.Report.Balances, 1)
	bal := st.Report.Balances[0]
	assert.Equal(t, model.OpeningBooked, bal.Type.CodeOrProprietary.Code)
	assert.Equal(t, "USD", bal.Amount.Currency)
	assert.Equal(t, "2732398848.02", bal.Amount.Value)

	require.Len(t, st.Report.Entries, 1)
	e := st.Report.Entries[0]
	assert.Equal(t, model.Debit, e.CreditDebit)
	assert.Equal(t, "12.01", e.Amount.Value)
	assert.Equal(t, "NTRF", e.BankTxCode.Proprietary.Code)
	assert.Equal(t, "GSLNVSHSUTKWDR", e.FirstDetail().Refs.EndToEndID)
	assert.Equal(t, []string{"USD Payment to Vendor"}, e.FirstDetail().Remittance.Unstructured)

	// Missing elements keep their zero value.
	assert.Empty(t, st.Report.Period.From)
	assert.Empty(t, e.FirstDetail().Agents.DebtorAgent.FinInstnID.BIC)
}

func TestDecode_PrefixedNamespace(t *testing.T) {
	in := `<Document xmlns:camt="urn:x" xmlns='urn:y'><BkToCstmrStmt><GrpHdr><MsgId>M1</MsgId></GrpHdr></BkToCstmrStmt></Document>`
	doc, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, doc.Statements, 1)
	assert.Equal(t, "M1", doc.Statements[0].Header.MessageID)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("<Document><BkToCstmrStmt>"))
	assert.ErrorIs(t, err, ErrXMLDecode)

	_, err = Decode(strings.NewReader("<Other/>"))
	assert.ErrorIs(t, err, ErrXMLDecode)

	_, err = Decode(failingReader{})
	assert.ErrorIs(t, err, ErrRead)
}

func TestStripNamespaces(t *testing.T) {
	in := `<Document xmlns="a" xmlns:xsi="b" xsi:schemaLocation="c d"><X/></Document>`
	assert.Equal(t, `<Document><X/></Document>`, string(StripNamespaces([]byte(in))))
}

func TestEncode_Root(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &model.Document{Statements: []model.Statement{{}}}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, Root)
	assert.NotContains(t, out, "<Document>")
	assert.Contains(t, out, "<BkToCstmrStmt>")
}

func TestEncode_VerbatimValues(t *testing.T) {
	doc := &model.Document{Statements: []model.Statement{{
		Report: model.Report{Entries: []model.Entry{{
			Amount:      model.Amount{Currency: "RUB", Value: "1000.00"},
			CreditDebit: model.Credit,
		}}},
	}}}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))
	assert.Contains(t, buf.String(), `<Amt Ccy="RUB">1000.00</Amt>`)
}

func TestRoundTrip(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleXML))
	require.NoError(t, err)
	// Multi-line values survive escaping.
	doc.Statements[0].Report.Entries[0].Details.Transactions[0].Remittance.Unstructured = []string{"line one\nline two", "third"}

	var first bytes.Buffer
	require.NoError(t, Encode(&first, doc))

	again, err := Decode(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, Encode(&second, again))

	assert.Equal(t, first.String(), second.String())
}

func TestEncode_WriteError(t *testing.T) {
	err := Encode(failingWriter{}, &model.Document{})
	assert.ErrorIs(t, err, ErrWrite)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
