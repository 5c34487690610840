// Package dashboard derives the summary KPIs and chart series the
// dashboard renders from a canonical transaction table. All computation
// is read-only over the table and recomputed fresh per request.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-dashboard/internal/models"
	"github.com/insightdelivered/statement-dashboard/internal/table"
)

// Summary is the presentation-ready aggregate view. Chart series are
// parallel label/value slices, never nil, so they serialize as [] and a
// charting library can consume them directly.
type Summary struct {
	TotalIncome          float64 `json:"total_income"`
	TotalExpense         float64 `json:"total_expense"`
	Balance              float64 `json:"balance"`
	AvgIncome            float64 `json:"avg_income"`
	AvgExpense           float64 `json:"avg_expense"`
	TotalTransactions    int     `json:"total_transactions"`
	LargestTransaction   float64 `json:"largest_transaction"`
	MostFrequentCategory string  `json:"most_frequent_category"`

	PieLabels []string  `json:"pie_labels"`
	PieValues []float64 `json:"pie_values"`

	BarLabels  []string  `json:"bar_labels"`
	BarIncome  []float64 `json:"bar_income"`
	BarExpense []float64 `json:"bar_expense"`

	LineLabels  []string  `json:"line_labels"`
	LineSavings []float64 `json:"line_savings"`

	DonutLabels []string  `json:"donut_labels"`
	DonutValues []float64 `json:"donut_values"`

	RadarLabels []string  `json:"radar_labels"`
	RadarValues []float64 `json:"radar_values"`
}

// radarCategories are the fixed spending-habit buckets. A transaction
// counts toward every category its description mentions.
var radarCategories = []string{"Food", "Transport", "Shopping", "Entertainment", "Bills", "Healthcare"}

// pieTopN caps the expense pie at the biggest spending groups.
const pieTopN = 6

// Build computes all KPIs and chart series from t. It is total: an empty
// table produces zeroed KPIs, "N/A" for the mode, and empty series.
func Build(t *table.Table) *Summary {
	s := &Summary{
		PieLabels:   []string{},
		PieValues:   []float64{},
		BarLabels:   []string{},
		BarIncome:   []float64{},
		BarExpense:  []float64{},
		LineLabels:  []string{},
		LineSavings: []float64{},
		DonutLabels: []string{},
		DonutValues: []float64{},
		RadarLabels: radarCategories,
		RadarValues: []float64{},
	}

	var (
		incomeSum, expenseSum float64
		incomeN, expenseN     int
		largest               float64
	)
	for i := 0; i < t.Len(); i++ {
		amount := t.Float(i, models.ColAmount)
		switch t.String(i, models.ColType) {
		case models.TypeCredit:
			incomeSum += amount
			incomeN++
		case models.TypeDebit:
			expenseSum += amount
			expenseN++
		}
		if i == 0 || amount > largest {
			largest = amount
		}
	}

	s.TotalIncome = round2(incomeSum)
	s.TotalExpense = round2(expenseSum)
	s.Balance = round2(incomeSum - expenseSum)
	if incomeN > 0 {
		s.AvgIncome = round2(incomeSum / float64(incomeN))
	}
	if expenseN > 0 {
		s.AvgExpense = round2(expenseSum / float64(expenseN))
	}
	s.TotalTransactions = t.Len()
	s.LargestTransaction = round2(largest)
	s.MostFrequentCategory = descriptionMode(t)

	s.PieLabels, s.PieValues = expensePie(t)
	s.BarLabels, s.BarIncome, s.BarExpense, s.LineSavings = monthlySeries(t)
	s.LineLabels = s.BarLabels
	s.DonutLabels, s.DonutValues = methodDonut(t)
	s.RadarValues = radarSums(t)

	return s
}

// descriptionMode returns the most frequent description, or "N/A" for an
// empty table. Ties break to the lexicographically smallest value.
func descriptionMode(t *table.Table) string {
	counts := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		counts[t.String(i, models.ColDescription)]++
	}
	if len(counts) == 0 {
		return "N/A"
	}
	best, bestN := "", -1
	for desc, n := range counts {
		if n > bestN || (n == bestN && desc < best) {
			best, bestN = desc, n
		}
	}
	return best
}

// expensePie groups Debit amounts by description, sorted descending by
// sum and truncated to the top groups.
func expensePie(t *table.Table) ([]string, []float64) {
	sums := make(map[string]float64)
	var order []string
	for i := 0; i < t.Len(); i++ {
		if t.String(i, models.ColType) != models.TypeDebit {
			continue
		}
		desc := t.String(i, models.ColDescription)
		if _, seen := sums[desc]; !seen {
			order = append(order, desc)
		}
		sums[desc] += t.Float(i, models.ColAmount)
	}

	sort.SliceStable(order, func(a, b int) bool {
		return sums[order[a]] > sums[order[b]]
	})
	if len(order) > pieTopN {
		order = order[:pieTopN]
	}

	labels := make([]string, 0, len(order))
	values := make([]float64, 0, len(order))
	for _, desc := range order {
		labels = append(labels, desc)
		values = append(values, sums[desc])
	}
	return labels, values
}

// monthlySeries groups amounts by (month abbreviation, type) and pivots
// into per-month income and expense, plus the savings line aligned to
// the same months. Months keep their first-appearance order in the
// table; a month missing one side defaults to 0.
func monthlySeries(t *table.Table) (labels []string, income, expense, savings []float64) {
	credit := make(map[string]float64)
	debit := make(map[string]float64)
	var months []string

	for i := 0; i < t.Len(); i++ {
		month, ok := monthAbbrev(t.String(i, models.ColDate))
		if !ok {
			continue
		}
		if _, seen := credit[month]; !seen {
			if _, seen := debit[month]; !seen {
				months = append(months, month)
			}
		}
		amount := t.Float(i, models.ColAmount)
		switch t.String(i, models.ColType) {
		case models.TypeCredit:
			credit[month] += amount
		case models.TypeDebit:
			debit[month] += amount
		default:
			// Row still claims the month slot even without a type.
			credit[month] += 0
		}
	}

	labels = []string{}
	income = []float64{}
	expense = []float64{}
	savings = []float64{}
	for _, m := range months {
		labels = append(labels, m)
		income = append(income, credit[m])
		expense = append(expense, debit[m])
		savings = append(savings, credit[m]-debit[m])
	}
	return labels, income, expense, savings
}

// dateFormats covers the representations the ingestion paths emit.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

func monthAbbrev(date string) (string, bool) {
	date = strings.TrimSpace(date)
	for _, layout := range dateFormats {
		if d, err := time.Parse(layout, date); err == nil {
			return d.Format("Jan"), true
		}
	}
	return "", false
}

// methodDonut groups amounts by payment method. Sources without a Method
// column yield empty series.
func methodDonut(t *table.Table) ([]string, []float64) {
	labels := []string{}
	values := []float64{}
	if !t.HasColumn(models.ColMethod) {
		return labels, values
	}

	sums := make(map[string]float64)
	var order []string
	for i := 0; i < t.Len(); i++ {
		method := t.String(i, models.ColMethod)
		if _, seen := sums[method]; !seen {
			order = append(order, method)
		}
		sums[method] += t.Float(i, models.ColAmount)
	}
	for _, m := range order {
		labels = append(labels, m)
		values = append(values, sums[m])
	}
	return labels, values
}

// radarSums totals amounts whose description mentions each fixed
// category, case-insensitively. A row can hit several buckets or none.
func radarSums(t *table.Table) []float64 {
	values := make([]float64, len(radarCategories))
	for i := 0; i < t.Len(); i++ {
		desc := strings.ToLower(t.String(i, models.ColDescription))
		for c, cat := range radarCategories {
			if strings.Contains(desc, strings.ToLower(cat)) {
				values[c] += t.Float(i, models.ColAmount)
			}
		}
	}
	return values
}

// round2 rounds at the presentation boundary only; everything upstream
// runs on full float64 precision.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
