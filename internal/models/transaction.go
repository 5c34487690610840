package models

// Transaction represents a single normalized statement transaction.
type Transaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Type        string  `json:"type"` // Credit or Debit
	Amount      float64 `json:"amount"`
	Balance     float64 `json:"balance"` // running balance; only PDF statements carry it
}

// Transaction type values as they appear in statement data.
const (
	TypeCredit = "Credit"
	TypeDebit  = "Debit"
)

// Canonical column names every ingestion path converges to.
const (
	ColDate        = "Date"
	ColDescription = "Description"
	ColType        = "Type"
	ColAmount      = "Amount"
	ColBalance     = "Balance"
	ColMethod      = "Method" // optional payment-method column, kept when the source has it
)

// CanonicalColumns is the fixed column order of a PDF-derived table.
var CanonicalColumns = []string{ColDate, ColDescription, ColType, ColAmount, ColBalance}
