package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/poselab/posecoach/internal/analysis"
	"github.com/poselab/posecoach/internal/handlers"
	"github.com/poselab/posecoach/internal/pose"
	"github.com/poselab/posecoach/internal/storage"
)

func newServeCmd() *cobra.Command {
	var port string
	var dbPath string
	var provider string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the pose analysis web API",
		Long: `Starts the Posecoach API on the specified port.

The API accepts a photograph per request, scores the pose against the
reference catalog, and records each attempt for history lookup.`,
		Example: `  # Start server on default port 8080
  posecoach serve

  # Use the Gemini estimator and a custom database location
  posecoach serve --provider gemini --db /var/lib/posecoach/attempts.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := pose.LoadCatalog()
			if err != nil {
				return err
			}

			service, err := analysis.NewService(catalog, provider)
			if err != nil {
				return err
			}

			store, err := storage.NewAttemptStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			handler := handlers.New(service, store)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/poses", handler.HandlePoses)
			mux.HandleFunc("/api/analyze", handler.HandleAnalyze)
			mux.HandleFunc("/api/history", handler.HandleHistory)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: handlers.CORS(mux),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Posecoach API available", "addr", addr, "poses", len(catalog.Names()), "db", dbPath)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "data/attempts.db", "Path to the attempt history database")
	cmd.Flags().StringVar(&provider, "provider", "", "Estimator provider: mediapipe, gemini, or ollama (default from POSE_PROVIDER)")

	return cmd
}
