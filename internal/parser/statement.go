// Package parser turns extracted statement text into transactions by
// matching each physical line against the statement transaction pattern.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/insightdelivered/statement-dashboard/internal/models"
	"github.com/insightdelivered/statement-dashboard/internal/table"
)

// Statement transaction line:
//
//	DATE  TIME  DESCRIPTION  Credit|Debit  AMOUNT  BALANCE
//
// Example: "2024-01-15 10:30:00 Grocery Store Purchase Debit -45.50 1234.50"
//
// The description is the shortest run of text between the timestamp and
// the type token; amount and balance must carry a fractional part.
var txnPattern = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2})\s+\d{2}:\d{2}:\d{2}\s+(.+?)\s+(Credit|Debit)\s+(-?\d+\.\d+)\s+(-?\d+\.\d+)`,
)

// Statement scans the page texts line by line and returns every
// transaction that matches the pattern. Lines that do not match are
// discarded — headers, footers and wrapped description fragments all
// fall out here. Zero matches is a valid empty result, not an error.
func Statement(pages []string) []models.Transaction {
	text := strings.Join(pages, "\n")

	var txns []models.Transaction
	for _, line := range strings.Split(text, "\n") {
		m := txnPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			continue
		}
		balance, err := strconv.ParseFloat(m[5], 64)
		if err != nil {
			continue
		}
		txns = append(txns, models.Transaction{
			Date:        m[1],
			Description: m[2],
			Type:        m[3],
			Amount:      amount,
			Balance:     balance,
		})
	}
	return txns
}

// Table lays the transactions out as a canonical five-column table in
// fixed order.
func Table(txns []models.Transaction) *table.Table {
	t := table.New(models.CanonicalColumns...)
	for _, txn := range txns {
		t.Append(table.Row{
			models.ColDate:        txn.Date,
			models.ColDescription: txn.Description,
			models.ColType:        txn.Type,
			models.ColAmount:      txn.Amount,
			models.ColBalance:     txn.Balance,
		})
	}
	return t
}
