package finance

import (
	"sort"
	"time"
)

// Summary aggregates a set of transactions for display. All amounts are
// in minor currency units.
type Summary struct {
	Income  int64
	Expense int64
	// Net is Income - Expense; negative when spending exceeded income.
	Net int64
	// ByCategory holds expense totals per category.
	ByCategory map[string]int64
	// Monthly is ordered oldest first, one entry per calendar month that
	// has at least one transaction.
	Monthly []MonthTotal
}

// MonthTotal is one month's worth of aggregated activity.
type MonthTotal struct {
	Year    int
	Month   time.Month
	Income  int64
	Expense int64
}

// Summarize aggregates transactions into totals, an expense breakdown by
// category, and a monthly series for charting.
func Summarize(txs []Transaction) Summary {
	s := Summary{ByCategory: make(map[string]int64)}
	months := make(map[int]*MonthTotal)

	for _, t := range txs {
		key := t.Date.Year()*100 + int(t.Date.Month())
		mt, ok := months[key]
		if !ok {
			mt = &MonthTotal{Year: t.Date.Year(), Month: t.Date.Month()}
			months[key] = mt
		}
		switch t.Kind {
		case Income:
			s.Income += t.Amount
			mt.Income += t.Amount
		case Expense:
			s.Expense += t.Amount
			mt.Expense += t.Amount
			s.ByCategory[t.Category] += t.Amount
		}
	}
	s.Net = s.Income - s.Expense

	keys := make([]int, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		s.Monthly = append(s.Monthly, *months[k])
	}
	return s
}

// TopCategories returns category names ordered by descending expense
// total, capped at n. Ties break alphabetically so output is stable.
func (s Summary) TopCategories(n int) []string {
	names := make([]string, 0, len(s.ByCategory))
	for name := range s.ByCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := s.ByCategory[names[i]], s.ByCategory[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	if n < len(names) {
		names = names[:n]
	}
	return names
}

// OverBudget reports whether expenses exceeded the given monthly budget.
// A zero budget means no budget is set and always reports false.
func (s Summary) OverBudget(monthlyBudget int64) bool {
	return monthlyBudget > 0 && s.Expense > monthlyBudget
}
