package parser

import (
	"reflect"
	"testing"

	"github.com/insightdelivered/statement-dashboard/internal/models"
)

func TestStatement(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  []models.Transaction
	}{
		{
			name:  "single matching line",
			pages: []string{"2024-01-15 10:30:00 Grocery Store Purchase Debit -45.50 1234.50"},
			want: []models.Transaction{
				{Date: "2024-01-15", Description: "Grocery Store Purchase", Type: "Debit", Amount: -45.50, Balance: 1234.50},
			},
		},
		{
			name: "headers and footers are discarded",
			pages: []string{
				"Statement of Account\n" +
					"Date Time Description Type Amount Balance\n" +
					"2024-01-15 10:30:00 Salary Credit 2500.00 3734.56\n" +
					"Page 1 of 2",
			},
			want: []models.Transaction{
				{Date: "2024-01-15", Description: "Salary", Type: "Credit", Amount: 2500.00, Balance: 3734.56},
			},
		},
		{
			name:  "line lacking trailing balance is discarded entirely",
			pages: []string{"2024-01-15 10:30:00 Grocery Store Debit -45.50"},
			want:  nil,
		},
		{
			name:  "missing seconds in timestamp is discarded",
			pages: []string{"2024-01-15 10:30 Grocery Store Debit -45.50 1234.50"},
			want:  nil,
		},
		{
			name:  "non-decimal amount is discarded",
			pages: []string{"2024-01-15 10:30:00 Grocery Store Debit -45 1234.50"},
			want:  nil,
		},
		{
			name: "transactions spanning pages keep page order",
			pages: []string{
				"2024-01-15 10:30:00 Coffee Debit 3.50 996.50",
				"2024-02-01 09:00:00 Salary Credit 2500.00 3496.50",
			},
			want: []models.Transaction{
				{Date: "2024-01-15", Description: "Coffee", Type: "Debit", Amount: 3.50, Balance: 996.50},
				{Date: "2024-02-01", Description: "Salary", Type: "Credit", Amount: 2500.00, Balance: 3496.50},
			},
		},
		{
			name:  "no pages yields empty result",
			pages: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Statement(tt.pages)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStatementIsIdempotent(t *testing.T) {
	pages := []string{
		"2024-01-15 10:30:00 Grocery Store Debit -45.50 1234.50\n" +
			"garbage line\n" +
			"2024-01-16 11:00:00 Salary Credit 2500.00 3734.50",
	}

	first := Statement(pages)
	second := Statement(pages)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running extraction changed the result: %+v vs %+v", first, second)
	}
}

func TestTableColumnOrder(t *testing.T) {
	tbl := Table([]models.Transaction{
		{Date: "2024-01-15", Description: "Coffee", Type: "Debit", Amount: 3.50, Balance: 996.50},
	})

	want := []string{"Date", "Description", "Type", "Amount", "Balance"}
	if !reflect.DeepEqual(tbl.Columns(), want) {
		t.Errorf("got columns %v, want %v", tbl.Columns(), want)
	}
	if tbl.Float(0, "Amount") != 3.50 {
		t.Errorf("amount cell: got %v", tbl.Float(0, "Amount"))
	}
}

func TestTableEmpty(t *testing.T) {
	tbl := Table(nil)
	if tbl.Len() != 0 {
		t.Errorf("expected empty table, got %d rows", tbl.Len())
	}
	if len(tbl.Columns()) != 5 {
		t.Errorf("empty table still has the five canonical columns, got %v", tbl.Columns())
	}
}
