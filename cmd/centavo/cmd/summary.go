package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jdoyle/centavo/client"
	"github.com/jdoyle/centavo/finance"
)

var summaryMonth string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregated income and spending",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts client.ListTransactionsOptions
		if summaryMonth != "" {
			start, err := time.Parse("2006-01", summaryMonth)
			if err != nil {
				return fmt.Errorf("invalid --month %q: use YYYY-MM", summaryMonth)
			}
			opts.From = start
			opts.To = start.AddDate(0, 1, 0).Add(-time.Second)
		}

		m, c, cleanup, err := newAuthenticatedSession(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		txs, err := c.ListTransactions(cmd.Context(), opts)
		if err != nil {
			return err
		}
		s := finance.Summarize(txs)

		fmt.Printf("Income:   %s\n", finance.FormatAmount(s.Income))
		fmt.Printf("Expenses: %s\n", finance.FormatAmount(s.Expense))
		fmt.Printf("Net:      %s\n", finance.FormatAmount(s.Net))

		if cats := s.TopCategories(5); len(cats) > 0 {
			fmt.Println("\nTop spending categories:")
			for _, name := range cats {
				fmt.Printf("  %-16s %s\n", name, finance.FormatAmount(s.ByCategory[name]))
			}
		}

		if len(s.Monthly) > 1 {
			fmt.Println("\nMonthly:")
			for _, mt := range s.Monthly {
				fmt.Printf("  %04d-%02d  in %-12s out %s\n",
					mt.Year, mt.Month, finance.FormatAmount(mt.Income), finance.FormatAmount(mt.Expense))
			}
		}

		if budget := m.Snapshot().User.MonthlyBudget; s.OverBudget(budget) {
			fmt.Printf("\nOver budget: spent %s of %s\n",
				finance.FormatAmount(s.Expense), finance.FormatAmount(budget))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryMonth, "month", "", "Limit to one month (YYYY-MM)")
}
