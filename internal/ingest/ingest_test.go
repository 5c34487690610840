package ingest

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-dashboard/internal/schema"
)

func TestFileCSV(t *testing.T) {
	csvData := "Txn Date,Narration,Credit/Debit,Value\n" +
		"2024-01-15,Grocery Store,Debit,45.50\n" +
		"2024-01-16,Salary,Credit,2500.00\n"

	tbl, err := File("statement.csv", strings.NewReader(csvData), schema.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tbl.Len() != 2 {
		t.Fatalf("got %d rows, want 2", tbl.Len())
	}
	for _, col := range []string{"Date", "Description", "Type", "Amount"} {
		if !tbl.HasColumn(col) {
			t.Errorf("missing canonical column %q in %v", col, tbl.Columns())
		}
	}
	if got := tbl.String(0, "Description"); got != "Grocery Store" {
		t.Errorf("description: got %q", got)
	}
	if got := tbl.Float(1, "Amount"); got != 2500.00 {
		t.Errorf("amount: got %v", got)
	}
	if got := tbl.String(0, "Date"); got != "2024-01-15" {
		t.Errorf("date should be a string: got %q", got)
	}
}

func TestFileCSVMalformed(t *testing.T) {
	// Unbalanced quotes make encoding/csv fail structurally.
	csvData := "Date,Description\n\"2024-01-15,broken\n"

	_, err := File("statement.csv", strings.NewReader(csvData), schema.Default())
	if err == nil {
		t.Fatal("expected parse error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestFileSpreadsheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Transaction Date", "Details", "Transaction Type", "Money", "Method"},
		{"2024-01-15", "Grocery Store", "Debit", 45.50, "Card"},
		{"2024-01-16", "Salary", "Credit", 2500.00, "Transfer"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("building fixture: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	tbl, err := File("statement.xlsx", bytes.NewReader(buf.Bytes()), schema.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tbl.Len() != 2 {
		t.Fatalf("got %d rows, want 2", tbl.Len())
	}
	for _, col := range []string{"Date", "Description", "Type", "Amount", "Method"} {
		if !tbl.HasColumn(col) {
			t.Errorf("missing column %q in %v", col, tbl.Columns())
		}
	}
	if got := tbl.Float(0, "Amount"); got != 45.50 {
		t.Errorf("amount: got %v", got)
	}
}

func TestFileSpreadsheetCorrupt(t *testing.T) {
	_, err := File("statement.xlsx", strings.NewReader("this is not a zip container"), schema.Default())
	if err == nil {
		t.Fatal("expected parse error for corrupt spreadsheet")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestFilePDFCorrupt(t *testing.T) {
	_, err := File("statement.pdf", strings.NewReader("not a pdf"), schema.Default())
	if err == nil {
		t.Fatal("expected parse error for corrupt pdf")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestFileUnsupportedFormat(t *testing.T) {
	tests := []string{
		"statement.txt",
		"statement.CSV", // extension match is case-sensitive
		"statement.pdf.bak",
		"statement",
	}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := File(name, strings.NewReader("x"), schema.Default())
			var unsupported *UnsupportedFormatError
			if !errors.As(err, &unsupported) {
				t.Errorf("expected *UnsupportedFormatError, got %T: %v", err, err)
			}
		})
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File("", strings.NewReader("x"), schema.Default()); !errors.Is(err, ErrMissingFile) {
		t.Errorf("empty name: got %v, want ErrMissingFile", err)
	}
	if _, err := File("statement.csv", nil, schema.Default()); !errors.Is(err, ErrMissingFile) {
		t.Errorf("nil reader: got %v, want ErrMissingFile", err)
	}
}

func TestFileCSVEmpty(t *testing.T) {
	tbl, err := File("statement.csv", strings.NewReader(""), schema.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("expected empty table, got %d rows", tbl.Len())
	}
}

func TestFileCSVShortRowsPadded(t *testing.T) {
	// encoding/csv rejects ragged rows by default; keep that behavior
	// for csv but verify header-only input produces columns, no rows.
	tbl, err := File("statement.csv", strings.NewReader("Date,Description,Type,Amount\n"), schema.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("got %d rows, want 0", tbl.Len())
	}
	if !reflect.DeepEqual(tbl.Columns(), []string{"Date", "Description", "Type", "Amount"}) {
		t.Errorf("columns: got %v", tbl.Columns())
	}
}
