// Package csvstmt reads and writes the 21-column Russian bank statement
// CSV export.
package csvstmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

const (
	numColumns = 21
	colA       = 0
	colB       = 1
	colC       = 2
	colD       = 3
	colE       = 4
	colF       = 5
	colG       = 6
	colH       = 7
	colI       = 8
	colJ       = 9
	colK       = 10
	colL       = 11
	colM       = 12
	colN       = 13
	colO       = 14
	colP       = 15
	colQ       = 16
	colR       = 17
	colS       = 18
	colT       = 19
	colU       = 20
)

var (
	ErrCSVDecode   = errors.New("decoding statement csv")
	ErrTooFewRows  = errors.New("statement csv has too few rows")
	ErrNoStatement = errors.New("no statement to export")
	ErrWrite       = errors.New("writing statement csv")

	// ErrInvalidStatement marks a statement whose entries cannot be totalled.
	ErrInvalidStatement = errors.New("statement cannot be exported")
)

// Row is one positional CSV line. Columns are named by spreadsheet letter;
// their meaning depends on the row's position in the file.
type Row struct {
	A, B, C, D, E, F, G, H, I, J, K, L, M, N, O, P, Q, R, S, T, U string
}

// Record returns the row as a 21-field CSV record.
func (r Row) Record() []string {
	rec := make([]string, numColumns)
	rec[colA] = r.A
	rec[colB] = r.B
	rec[colC] = r.C
	rec[colD] = r.D
	rec[colE] = r.E
	rec[colF] = r.F
	rec[colG] = r.G
	rec[colH] = r.H
	rec[colI] = r.I
	rec[colJ] = r.J
	rec[colK] = r.K
	rec[colL] = r.L
	rec[colM] = r.M
	rec[colN] = r.N
	rec[colO] = r.O
	rec[colP] = r.P
	rec[colQ] = r.Q
	rec[colR] = r.R
	rec[colS] = r.S
	rec[colT] = r.T
	rec[colU] = r.U
	return rec
}

// RowFromRecord converts a CSV record to a Row.
func RowFromRecord(rec []string) (Row, error) {
	if len(rec) != numColumns {
		return Row{}, fmt.Errorf("expected %d fields, got %d", numColumns, len(rec))
	}
	return Row{
		A: rec[colA], B: rec[colB], C: rec[colC], D: rec[colD], E: rec[colE],
		F: rec[colF], G: rec[colG], H: rec[colH], I: rec[colI], J: rec[colJ],
		K: rec[colK], L: rec[colL], M: rec[colM], N: rec[colN], O: rec[colO],
		P: rec[colP], Q: rec[colQ], R: rec[colR], S: rec[colS], T: rec[colT],
		U: rec[colU],
	}, nil
}

// Read reads every row of a header-less statement CSV.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numColumns

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCSVDecode, err)
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		row, err := RowFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrCSVDecode, i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Write writes rows without a header.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	for i, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrWrite, i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
