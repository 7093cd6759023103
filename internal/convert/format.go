package convert

import (
	"errors"
	"fmt"
	"strings"
)

// Format names a statement representation accepted on the command line.
type Format string

const (
	CSV     Format = "CSV"
	XML     Format = "XML"
	MT940   Format = "MT940"
	CAMT053 Format = "CAMT053"
)

// Formats lists every accepted format in display order.
var Formats = []Format{CSV, XML, MT940, CAMT053}

// Codec names. XML and CAMT053 share the camt codec.
const (
	codecCAMT  = "camt"
	codecMT940 = "mt940"
	codecCSV   = "csv"
)

// Hub is the format every cross conversion passes through.
const Hub = CAMT053

var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Codec returns the name of the codec that handles f.
func (f Format) Codec() string {
	switch f {
	case XML, CAMT053:
		return codecCAMT
	case MT940:
		return codecMT940
	case CSV:
		return codecCSV
	default:
		return ""
	}
}

func (f Format) String() string { return string(f) }

// Route lists the formats a conversion passes through, source first.
// Conversions between CSV and MT940 go through the CAMT hub. Route
// returns nil when both formats share a codec.
func Route(from, to Format) []Format {
	if from.Codec() == "" || to.Codec() == "" || from.Codec() == to.Codec() {
		return nil
	}
	if from.Codec() == codecCAMT || to.Codec() == codecCAMT {
		return []Format{from, to}
	}
	return []Format{from, Hub, to}
}

// FormatRoute renders a route as "CSV -> CAMT053 -> MT940".
func FormatRoute(route []Format) string {
	parts := make([]string, len(route))
	for i, f := range route {
		parts[i] = string(f)
	}
	return strings.Join(parts, " -> ")
}
