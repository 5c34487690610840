package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/insightdelivered/statement-dashboard/internal/models"
	"github.com/insightdelivered/statement-dashboard/internal/table"
)

// CSV writes a canonical transaction table as CSV: one header row with
// the table's column order, then one row per transaction.
func CSV(out io.Writer, t *table.Table) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	cols := t.Columns()
	if err := w.Write(cols); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for i := 0; i < t.Len(); i++ {
		row := make([]string, len(cols))
		for c, col := range cols {
			row[c] = formatCell(t, i, col)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}

	w.Flush()
	return w.Error()
}

// formatCell renders amount columns with two decimal places and leaves
// everything else verbatim.
func formatCell(t *table.Table, row int, col string) string {
	if col != models.ColAmount && col != models.ColBalance {
		return t.String(row, col)
	}
	s := t.String(row, col)
	if s == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return s
	}
	return strconv.FormatFloat(t.Float(row, col), 'f', 2, 64)
}
