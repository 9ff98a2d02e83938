package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/config/file"
	"github.com/lexatlas-labs/clauseline-cli/internal/adapters/driving/rest"
	"github.com/lexatlas-labs/clauseline-cli/internal/logger"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serves the REST API: document submission and status, timelines,
clause details, grounded questions and the Prometheus metrics endpoint.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", rest.DefaultAddr, "Listen address")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	cfg := rest.Config{
		Addr:      serveAddr,
		Analysis:  analysisService,
		RAG:       ragService,
		Knowledge: knowledgeService,
	}
	if configStore != nil {
		cfg.MaxUploadBytes = configfile.AnalysisSettings(configStore).MaxUploadBytes
	}

	server := rest.NewServer(cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case sig := <-sigCh:
		logger.Info("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}
