package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jdoyle/centavo/client"
	"github.com/jdoyle/centavo/finance"
	"github.com/jdoyle/centavo/session"
)

var (
	txKind     string
	txCategory string
	txNote     string
	txDate     string

	listCategory string
	listFrom     string
	listTo       string
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Record and inspect transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Record a transaction, e.g. tx add 12.50 --kind expense --category groceries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := finance.ParseAmount(args[0])
		if err != nil {
			return err
		}
		tx := finance.Transaction{
			Kind:     finance.Kind(txKind),
			Amount:   amount,
			Category: txCategory,
			Note:     txNote,
		}
		if txDate != "" {
			d, err := time.Parse("2006-01-02", txDate)
			if err != nil {
				return fmt.Errorf("invalid date %q: use YYYY-MM-DD", txDate)
			}
			tx.Date = d
		} else {
			tx.Date = time.Now()
		}
		if err := tx.Validate(); err != nil {
			return err
		}

		_, c, cleanup, err := newAuthenticatedSession(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		created, err := c.CreateTransaction(cmd.Context(), tx)
		if err != nil {
			return err
		}
		fmt.Printf("Recorded %s of %s in %q (id %s)\n",
			created.Kind, finance.FormatAmount(created.Amount), created.Category, created.ID)
		return nil
	},
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := client.ListTransactionsOptions{Category: listCategory}
		if listFrom != "" {
			d, err := time.Parse("2006-01-02", listFrom)
			if err != nil {
				return fmt.Errorf("invalid --from %q: use YYYY-MM-DD", listFrom)
			}
			opts.From = d
		}
		if listTo != "" {
			d, err := time.Parse("2006-01-02", listTo)
			if err != nil {
				return fmt.Errorf("invalid --to %q: use YYYY-MM-DD", listTo)
			}
			opts.To = d
		}

		_, c, cleanup, err := newAuthenticatedSession(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		txs, err := c.ListTransactions(cmd.Context(), opts)
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			fmt.Println("No transactions.")
			return nil
		}
		for _, tx := range txs {
			sign := "+"
			if tx.Kind == finance.Expense {
				sign = "-"
			}
			fmt.Printf("%s  %s%-12s %-16s %s  %s\n",
				tx.Date.Format("2006-01-02"), sign,
				finance.FormatAmount(tx.Amount), tx.Category, tx.ID, tx.Note)
		}
		return nil
	},
}

var txRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, c, cleanup, err := newAuthenticatedSession(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := c.DeleteTransaction(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

// newAuthenticatedSession bootstraps a session and fails fast when no
// user is logged in.
func newAuthenticatedSession(cmd *cobra.Command) (*session.Manager, *client.Client, func(), error) {
	m, cleanup, err := newSession()
	if err != nil {
		return nil, nil, nil, err
	}
	m.Bootstrap(cmd.Context())
	if !m.Snapshot().Authenticated() {
		cleanup()
		return nil, nil, nil, fmt.Errorf("%w: run 'centavo login' first", session.ErrNotAuthenticated)
	}
	return m, m.Client(), cleanup, nil
}

func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txListCmd)
	txCmd.AddCommand(txRmCmd)

	txAddCmd.Flags().StringVar(&txKind, "kind", "expense", "Transaction kind: income or expense")
	txAddCmd.Flags().StringVar(&txCategory, "category", "", "Category (required)")
	txAddCmd.Flags().StringVar(&txNote, "note", "", "Free-form note")
	txAddCmd.Flags().StringVar(&txDate, "date", "", "Date as YYYY-MM-DD (default today)")
	txAddCmd.MarkFlagRequired("category")

	txListCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	txListCmd.Flags().StringVar(&listFrom, "from", "", "Only transactions on or after this date (YYYY-MM-DD)")
	txListCmd.Flags().StringVar(&listTo, "to", "", "Only transactions on or before this date (YYYY-MM-DD)")
}
