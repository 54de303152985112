package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MeKo-Tech/mosaic/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the assembly API",
	Long: `Start an HTTP server that provides REST and WebSocket endpoints for
document assembly.

The server provides the following endpoints:
  POST /assemble     - Assemble a detection payload into a document
  GET  /assemble/ws  - WebSocket assembly with per-page progress
  GET  /health       - Health check endpoint
  GET  /metrics      - Prometheus metrics

Examples:
  mosaic serve
  mosaic serve --port 8080
  mosaic serve --host 0.0.0.0 --port 3000`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	host := cfg.Server.Host
	if cmd.Flags().Changed("host") {
		host, _ = cmd.Flags().GetString("host")
	}
	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	corsOrigin := cfg.Server.CORSOrigin
	if cmd.Flags().Changed("cors-origin") {
		corsOrigin, _ = cmd.Flags().GetString("cors-origin")
	}
	maxBody := cfg.Server.MaxBodyMB
	if cmd.Flags().Changed("max-body-size") {
		maxBody, _ = cmd.Flags().GetInt64("max-body-size")
	}
	timeout := cfg.Server.TimeoutSec
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetInt("timeout")
	}
	shutdownTimeout := cfg.Server.ShutdownTimeout
	if cmd.Flags().Changed("shutdown-timeout") {
		shutdownTimeout, _ = cmd.Flags().GetInt("shutdown-timeout")
	}

	srv := server.NewServer(server.Config{
		Host:            host,
		Port:            port,
		CORSOrigin:      corsOrigin,
		MaxBodyMB:       maxBody,
		TimeoutSec:      timeout,
		MaxWorkers:      cfg.Assembly.MaxWorkers,
		AssemblerConfig: cfg.ToAssemblerConfig(),
	})

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Serve in the background so we can handle shutdown signals
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting assembly server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

func init() {
	serveCmd.Flags().String("host", "localhost", "host interface to bind")
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	serveCmd.Flags().String("cors-origin", "*", "allowed CORS origin")
	serveCmd.Flags().Int64("max-body-size", 50, "maximum request body size in MB")
	serveCmd.Flags().Int("timeout", 30, "per-request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "graceful shutdown timeout in seconds")

	rootCmd.AddCommand(serveCmd)
}
