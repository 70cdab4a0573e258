package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tx(kind Kind, amount int64, category, date string) Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return Transaction{Kind: kind, Amount: amount, Category: category, Date: d}
}

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		tx(Income, 500000, "salary", "2026-07-01"),
		tx(Expense, 120000, "rent", "2026-07-02"),
		tx(Expense, 4500, "groceries", "2026-07-05"),
		tx(Expense, 5500, "groceries", "2026-08-03"),
		tx(Income, 500000, "salary", "2026-08-01"),
	}

	s := Summarize(txs)

	assert.Equal(t, int64(1000000), s.Income)
	assert.Equal(t, int64(130000), s.Expense)
	assert.Equal(t, int64(870000), s.Net)

	assert.Equal(t, map[string]int64{
		"rent":      120000,
		"groceries": 10000,
	}, s.ByCategory)

	assert.Equal(t, []MonthTotal{
		{Year: 2026, Month: time.July, Income: 500000, Expense: 124500},
		{Year: 2026, Month: time.August, Income: 500000, Expense: 5500},
	}, s.Monthly)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Income)
	assert.Zero(t, s.Expense)
	assert.Zero(t, s.Net)
	assert.Empty(t, s.ByCategory)
	assert.Empty(t, s.Monthly)
}

func TestSummarizeNegativeNet(t *testing.T) {
	s := Summarize([]Transaction{
		tx(Income, 100, "salary", "2026-08-01"),
		tx(Expense, 250, "rent", "2026-08-02"),
	})
	assert.Equal(t, int64(-150), s.Net)
}

func TestTopCategories(t *testing.T) {
	s := Summarize([]Transaction{
		tx(Expense, 300, "rent", "2026-08-01"),
		tx(Expense, 200, "dining", "2026-08-01"),
		tx(Expense, 200, "commute", "2026-08-01"),
		tx(Expense, 100, "misc", "2026-08-01"),
	})

	t.Run("ordered by total, ties alphabetical", func(t *testing.T) {
		assert.Equal(t, []string{"rent", "commute", "dining", "misc"}, s.TopCategories(10))
	})

	t.Run("capped at n", func(t *testing.T) {
		assert.Equal(t, []string{"rent", "commute"}, s.TopCategories(2))
	})

	t.Run("zero n", func(t *testing.T) {
		assert.Empty(t, s.TopCategories(0))
	})
}

func TestOverBudget(t *testing.T) {
	s := Summary{Expense: 1000}
	assert.True(t, s.OverBudget(999))
	assert.False(t, s.OverBudget(1000))
	assert.False(t, s.OverBudget(0), "zero budget means no budget is set")
}

func TestTransactionValidate(t *testing.T) {
	valid := tx(Expense, 100, "groceries", "2026-08-01")
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		mut  func(*Transaction)
		want error
	}{
		{"unknown kind", func(t *Transaction) { t.Kind = "gift" }, ErrInvalidKind},
		{"zero amount", func(t *Transaction) { t.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(t *Transaction) { t.Amount = -5 }, ErrInvalidAmount},
		{"empty category", func(t *Transaction) { t.Category = "" }, ErrMissingCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := valid
			tt.mut(&bad)
			assert.ErrorIs(t, bad.Validate(), tt.want)
		})
	}
}

func TestTransactionSigned(t *testing.T) {
	assert.Equal(t, int64(100), tx(Income, 100, "salary", "2026-08-01").Signed())
	assert.Equal(t, int64(-100), tx(Expense, 100, "rent", "2026-08-01").Signed())
}
