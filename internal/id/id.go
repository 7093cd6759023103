// Package id generates statement message identifiers.
package id

import "github.com/oklog/ulid/v2"

// statementSuffix marks a statement id derived from a message id.
const statementSuffix = "-940"

// Generator produces message identifiers.
type Generator interface {
	Generate() string
}

// ULIDGenerator generates ULID-based message ids.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// StatementID derives a statement id from a message id.
// "GSCRUS30XXXXN" -> "GSCRUS30XXXXN-940"
func StatementID(messageID string) string {
	if messageID == "" {
		return ""
	}
	return messageID + statementSuffix
}

// IsULID reports whether s parses as a ULID.
func IsULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
