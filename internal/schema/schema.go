// Package schema reconciles arbitrary source column names against the
// canonical transaction schema.
package schema

import (
	"github.com/insightdelivered/statement-dashboard/internal/models"
	"github.com/insightdelivered/statement-dashboard/internal/table"
)

// Mapping associates one canonical column name with the source aliases
// that should be renamed to it. Alias matching is case-sensitive exact.
type Mapping struct {
	Canonical string
	Aliases   []string
}

// SynonymMap is an ordered list of mappings. Order is part of the
// behavior: when two source columns collide on one canonical name the
// renames are applied in declaration order and the last one wins. That
// precedence is documented, not promised.
type SynonymMap []Mapping

// Default returns the stock synonym map covering the column layouts seen
// in exported bank statements.
func Default() SynonymMap {
	return SynonymMap{
		{Canonical: models.ColType, Aliases: []string{"Type", "Transaction Type", "TxnType", "Credit/Debit"}},
		{Canonical: models.ColAmount, Aliases: []string{"Amount", "Value", "Money"}},
		{Canonical: models.ColDate, Aliases: []string{"Date", "Txn Date", "Transaction Date"}},
		{Canonical: models.ColDescription, Aliases: []string{"Description", "Details", "Narration"}},
	}
}

// Normalize returns a copy of t with every column matching a known alias
// renamed to its canonical name. Unmatched columns pass through
// untouched, rows are never reordered, and the input table is not
// mutated. The operation is total: there is no failure mode.
func Normalize(t *table.Table, m SynonymMap) *table.Table {
	out := t.Clone()
	for _, mapping := range m {
		for _, col := range out.Columns() {
			if col == mapping.Canonical {
				continue
			}
			for _, alias := range mapping.Aliases {
				if col == alias {
					out.Rename(col, mapping.Canonical)
					break
				}
			}
		}
	}
	return out
}
