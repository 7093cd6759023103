// Package camt reads and writes CAMT.053 bank-to-customer statements.
package camt

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/cleared-dev/stmtconv/internal/model"
)

// Root is the namespaced open tag written in place of the bare <Document>.
const Root = `<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02" ` +
	`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ` +
	`xsi:schemaLocation="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02 camt.053.001.02.xsd">`

var (
	ErrRead      = errors.New("reading camt input")
	ErrXMLDecode = errors.New("decoding camt xml")
	ErrWrite     = errors.New("writing camt output")
)

// Matches xmlns, xmlns:prefix and xsi:schemaLocation attributes.
var namespaceAttr = regexp.MustCompile(`\s+(?:xmlns(?::[\w.-]+)?|xsi:schemaLocation)\s*=\s*(?:"[^"]*"|'[^']*')`)

// StripNamespaces removes every namespace declaration and schema location
// from raw XML so elements resolve by local name.
func StripNamespaces(data []byte) []byte {
	return namespaceAttr.ReplaceAll(data, nil)
}

// Decode reads a whole CAMT.053 document. Elements missing from the input
// keep their zero value.
func Decode(r io.Reader) (*model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	var doc model.Document
	if err := xml.Unmarshal(StripNamespaces(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrXMLDecode, err)
	}
	return &doc, nil
}

// Encode writes doc as indented CAMT.053 XML with the standard namespace
// root, in a single write.
func Encode(w io.Writer, doc *model.Document) error {
	if doc == nil {
		doc = &model.Document{}
	}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling: %w", ErrWrite, err)
	}
	body = bytes.Replace(body, []byte("<Document>"), []byte(Root), 1)

	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
