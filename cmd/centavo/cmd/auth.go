package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdoyle/centavo/finance"
	"github.com/jdoyle/centavo/session"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in and store the session tokens",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cleanup, err := newSession()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		m.Bootstrap(ctx)
		if err := m.Login(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		snap := m.Snapshot()
		fmt.Printf("Logged in as %s <%s>\n", snap.User.Name, snap.User.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <name> <email> <password>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cleanup, err := newSession()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		m.Bootstrap(ctx)
		if err := m.Register(ctx, args[0], args[1], args[2]); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		snap := m.Snapshot()
		fmt.Printf("Account created. Logged in as %s <%s>\n", snap.User.Name, snap.User.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear stored tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cleanup, err := newSession()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		m.Bootstrap(ctx)
		m.Logout(ctx)
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user's profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cleanup, err := newSession()
		if err != nil {
			return err
		}
		defer cleanup()

		m.Bootstrap(cmd.Context())
		snap := m.Snapshot()
		if !snap.Authenticated() {
			return session.ErrNotAuthenticated
		}
		u := snap.User
		fmt.Printf("%s <%s>\n", u.Name, u.Email)
		if u.Verified {
			fmt.Println("Email: verified")
		} else {
			fmt.Println("Email: not verified")
		}
		if u.MonthlyBudget > 0 {
			fmt.Printf("Monthly budget: %s\n", finance.FormatAmount(u.MonthlyBudget))
		}
		if u.SavingsTarget > 0 {
			fmt.Printf("Savings target: %s\n", finance.FormatAmount(u.SavingsTarget))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
