package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/youstel/registration-desk/api"
)

// ServeCmd runs the HTTP API and the outbox scheduler.
//
// GRACEFUL SHUTDOWN:
//
//	On SIGINT/SIGTERM:
//	1. Stop accepting new connections
//	2. Wait for active requests to complete (30s timeout)
//	3. Stop the outbox scheduler
//	4. Close database connection
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registration API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetString("port")
			}
			if noOutbox, _ := cmd.Flags().GetBool("no-outbox"); noOutbox {
				cfg.OutboxEnabled = false
			}

			desk, store, err := openDesk(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			handler := api.NewHandler(desk, cfg.APIBaseURL)
			router := api.NewRouter(handler, cfg.CORSOrigins)

			scheduler := api.NewOutboxScheduler(desk)
			scheduler.CheckInterval = cfg.OutboxInterval
			scheduler.Enabled = cfg.OutboxEnabled
			scheduler.Start()
			defer scheduler.Stop()
			if scheduler.Enabled {
				slog.Info("outbox scheduled", "next_run", scheduler.NextRunTime())
			}

			server := &http.Server{
				Addr:         cfg.Addr(),
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: cfg.BackendTimeout + 15*time.Second,
				IdleTimeout:  60 * time.Second,
			}

			serveErr := make(chan error, 1)
			go func() {
				slog.Info("server starting",
					"addr", server.Addr,
					"backend", cfg.APIBaseURL,
					"database", cfg.DatabasePath,
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
			}()

			// Wait for interrupt signal
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-serveErr:
				return err
			case <-quit:
			}

			slog.Info("shutting down server")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				return err
			}

			slog.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().String("port", "", "HTTP server port (default from PORT)")
	cmd.Flags().Bool("no-outbox", false, "Don't resubmit pending registrations in the background")
	addDBFlag(cmd)

	return cmd
}
