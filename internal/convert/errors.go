package convert

import (
	"errors"

	"github.com/cleared-dev/stmtconv/internal/camt"
	"github.com/cleared-dev/stmtconv/internal/csvstmt"
	"github.com/cleared-dev/stmtconv/internal/mt940"
)

// ParseKind classifies a failure to read an input document.
type ParseKind int

const (
	ParseKindRead ParseKind = iota + 1
	ParseKindFormat
	ParseKindXML
	ParseKindCSV
)

func (k ParseKind) String() string {
	switch k {
	case ParseKindRead:
		return "read error"
	case ParseKindFormat:
		return "bad input format"
	case ParseKindXML:
		return "xml decode error"
	case ParseKindCSV:
		return "csv decode error"
	default:
		return "parse error"
	}
}

// ParseError is a failure to read an input document.
type ParseError struct {
	Kind ParseKind
	Err  error
}

func (e *ParseError) Error() string { return e.Kind.String() + ": " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// ConvertKind classifies a failed conversion.
type ConvertKind int

const (
	ConvertKindArgument ConvertKind = iota + 1
	ConvertKindParse
	ConvertKindWrite
)

func (k ConvertKind) String() string {
	switch k {
	case ConvertKindArgument:
		return "bad argument"
	case ConvertKindParse:
		return "parse failed"
	case ConvertKindWrite:
		return "write failed"
	default:
		return "conversion failed"
	}
}

// ConvertError is the single error type returned by Converter.
type ConvertError struct {
	Kind ConvertKind
	Err  error
}

func (e *ConvertError) Error() string { return e.Kind.String() + ": " + e.Err.Error() }

func (e *ConvertError) Unwrap() error { return e.Err }

// AsConvertError lifts a parse error into a ConvertKindParse error.
func AsConvertError(pe *ParseError) *ConvertError {
	if pe == nil {
		return nil
	}
	return &ConvertError{Kind: ConvertKindParse, Err: pe}
}

// classifyDecode wraps a codec decode failure in a ParseError.
func classifyDecode(err error) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	kind := ParseKindFormat
	switch {
	case errors.Is(err, camt.ErrRead), errors.Is(err, mt940.ErrRead):
		kind = ParseKindRead
	case errors.Is(err, camt.ErrXMLDecode):
		kind = ParseKindXML
	case errors.Is(err, csvstmt.ErrCSVDecode):
		kind = ParseKindCSV
	}
	return &ParseError{Kind: kind, Err: err}
}

// classifyEncode wraps a codec encode failure in a ConvertError. Input the
// target format cannot represent is an argument error, not a write error.
func classifyEncode(err error) *ConvertError {
	if errors.Is(err, csvstmt.ErrNoStatement) || errors.Is(err, csvstmt.ErrInvalidStatement) {
		return &ConvertError{Kind: ConvertKindArgument, Err: err}
	}
	return &ConvertError{Kind: ConvertKindWrite, Err: err}
}
