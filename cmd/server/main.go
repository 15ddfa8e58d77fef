/*
main.go - Application entry point

PURPOSE:
  The desk command. Serves the registration API and offers a few operator
  subcommands around the same pricing, admission and receipt code.

COMMANDS:
  desk serve              HTTP API + outbox scheduler
  desk quote              Print a fee breakdown
  desk window             Print an admission window
  desk register FILE      Submit a registration form from a JSON file
  desk receipts           List archived receipts
  desk retry              Resubmit pending receipts once

CONFIGURATION:
  Environment variables (or a .env file), see config/config.go.
  Flags override the environment.

EXAMPLES:
  # Run with in-memory database
  desk serve --db=":memory:"

  # Quote three months in a 4-sharing room without advance
  desk quote --room 4-sharing --months 3 --no-advance

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Settings
*/
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/youstel/registration-desk/backend"
	"github.com/youstel/registration-desk/config"
	"github.com/youstel/registration-desk/logging"
	"github.com/youstel/registration-desk/registration"
	"github.com/youstel/registration-desk/store/sqlite"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "desk",
		Short:         "Youstel hostel registration desk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		ServeCmd(),
		QuoteCmd(),
		WindowCmd(),
		RegisterCmd(),
		ReceiptsCmd(),
		RetryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the shared --db flag.
// Logs go to the command's stderr so stdout carries only command output.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db") {
		cfg.DatabasePath, _ = cmd.Flags().GetString("db")
	}
	logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel)
	slog.Debug("configuration loaded", "database", cfg.DatabasePath, "backend", cfg.APIBaseURL)
	return cfg, nil
}

// openDesk wires the archive, backend client and desk for a command.
// The caller closes the returned store.
func openDesk(cfg *config.Config) (*registration.Desk, *sqlite.Store, error) {
	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	client := backend.NewClient(cfg.APIBaseURL, cfg.BackendTimeout)
	desk := registration.NewDesk(client, store)
	desk.MaxAttempts = cfg.MaxAttempts
	return desk, store, nil
}

func addDBFlag(cmd *cobra.Command) {
	cmd.Flags().String("db", "", "SQLite database path (\":memory:\" for in-memory)")
}
