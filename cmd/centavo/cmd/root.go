package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jdoyle/centavo/client"
	"github.com/jdoyle/centavo/session"
	bboltstore "github.com/jdoyle/centavo/storage/bbolt"
)

// Version is the CLI version printed in the banner.
const Version = "0.1.0"

var (
	apiURL  string
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "centavo",
	Short: "Centavo is a personal finance tracker",
	Long: `Track income and expenses, view summaries, and manage your account
from the command line. Complete documentation is available at
https://github.com/jdoyle/centavo`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	defaultURL := os.Getenv("CENTAVO_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultURL, "Backend API base URL (env: CENTAVO_API_URL)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "Directory for persistent data")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".centavo"
	}
	return filepath.Join(home, ".centavo")
}

// cliLogger keeps command output clean: only warnings and errors reach
// the terminal.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// newSession builds the token store, HTTP client, and session manager
// for a command. The returned cleanup closes both the manager and the
// store.
func newSession() (*session.Manager, func(), error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, nil, err
	}
	store, err := bboltstore.NewStoreFromFile(filepath.Join(dataDir, "tokens.db"), nil)
	if err != nil {
		return nil, nil, err
	}
	logger := cliLogger()
	c := client.New(apiURL,
		client.WithTokenStore(store),
		client.WithLogger(logger),
	)
	m := session.NewManager(c, store, session.WithLogger(logger))
	cleanup := func() {
		m.Close()
		store.Close()
	}
	return m, cleanup, nil
}
