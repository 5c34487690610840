// Package ingest dispatches an uploaded statement to the right parser by
// file extension and produces the normalized canonical table.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-dashboard/internal/extractor"
	"github.com/insightdelivered/statement-dashboard/internal/models"
	"github.com/insightdelivered/statement-dashboard/internal/parser"
	"github.com/insightdelivered/statement-dashboard/internal/schema"
	"github.com/insightdelivered/statement-dashboard/internal/table"
)

// ErrMissingFile means no file was supplied at all, as opposed to a file
// that failed to parse.
var ErrMissingFile = errors.New("no statement file supplied")

// UnsupportedFormatError reports a file extension none of the parsers
// recognize. Extension matching is a case-sensitive suffix match, so
// ".CSV" is unsupported.
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported statement format: %q (supported: .csv, .xls, .xlsx, .pdf)", e.Name)
}

// ParseError wraps a structural failure from an underlying format parser.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s statement: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// File parses the named upload into a canonical transaction table:
// format-specific parse, then column normalization against m, then a
// uniform string coercion of the Date column. A PDF with no matching
// transaction lines yields an empty table and no error.
func File(name string, r io.Reader, m schema.SynonymMap) (*table.Table, error) {
	if name == "" || r == nil {
		return nil, ErrMissingFile
	}

	var (
		t   *table.Table
		err error
	)
	switch {
	case strings.HasSuffix(name, ".csv"):
		t, err = readCSV(r)
	case strings.HasSuffix(name, ".xls"), strings.HasSuffix(name, ".xlsx"):
		t, err = readSpreadsheet(r)
	case strings.HasSuffix(name, ".pdf"):
		t, err = readPDF(r)
	default:
		return nil, &UnsupportedFormatError{Name: name}
	}
	if err != nil {
		return nil, err
	}

	t = schema.Normalize(t, m)
	coerceDates(t)
	return t, nil
}

func readCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{Format: "csv", Err: err}
	}
	if len(records) == 0 {
		return table.New(), nil
	}
	return fromRows(records[0], records[1:]), nil
}

func readSpreadsheet(r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Format: "spreadsheet", Err: err}
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Format: "spreadsheet", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.New(), nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Format: "spreadsheet", Err: err}
	}
	if len(rows) == 0 {
		return table.New(), nil
	}
	return fromRows(rows[0], rows[1:]), nil
}

func readPDF(r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Format: "pdf", Err: err}
	}
	pages, err := extractor.Text(data)
	if err != nil {
		return nil, &ParseError{Format: "pdf", Err: err}
	}
	return parser.Table(parser.Statement(pages)), nil
}

// fromRows builds a table from a header row and data rows. Short rows
// are padded with empty cells so every row carries every column.
func fromRows(header []string, rows [][]string) *table.Table {
	t := table.New(header...)
	for _, rec := range rows {
		row := make(table.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Append(row)
	}
	return t
}

// coerceDates rewrites the Date column as strings so all three ingestion
// paths hand downstream code the same representation.
func coerceDates(t *table.Table) {
	if !t.HasColumn(models.ColDate) {
		return
	}
	for i := 0; i < t.Len(); i++ {
		t.Set(i, models.ColDate, t.String(i, models.ColDate))
	}
}
