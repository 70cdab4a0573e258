package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/jdoyle/centavo/devserver"
)

var (
	devPort      int
	devAccessTTL time.Duration
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local in-memory stand-in for the backend API",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := devserver.New(
			devserver.WithAccessTTL(devAccessTTL),
			devserver.WithLogger(cliLogger()),
		)

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})
		r.Mount("/", s.Router())

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", devPort),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Development API listening on port %d (state is in memory only)...\n", devPort)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(devserverCmd)
	devserverCmd.Flags().IntVarP(&devPort, "port", "p", 8080, "Port to listen on")
	devserverCmd.Flags().DurationVar(&devAccessTTL, "access-ttl", 15*time.Minute, "Access token lifetime")
}
