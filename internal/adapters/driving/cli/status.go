package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// statusETAPrecision rounds the displayed ETA to whole seconds.
const statusETAPrecision = time.Second

var statusCmd = &cobra.Command{
	Use:   "status [document-id]",
	Short: "Show the processing status of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	status, err := analysisService.Status(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	cmd.Printf("Document: %s\n", status.DocumentID)
	cmd.Printf("State:    %s\n", status.State)

	switch status.State {
	case domain.StateAnalyzing:
		cmd.Printf("Progress: %.0f%%\n", status.Progress*100)
		if status.ETA > 0 {
			cmd.Printf("ETA:      %s\n", status.ETA.Round(statusETAPrecision))
		}
	case domain.StateFailed:
		cmd.Printf("Reason:   %s\n", status.FailureReason)
	case domain.StateCompleted:
		cmd.Printf("\nView the timeline with: clauseline timeline %s\n", status.DocumentID)
	}
	return nil
}
