package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Submit a document for clause analysis",
	Long: `Submits a PDF, DOCX or plaintext document to the analysis pipeline.

The command returns a document ID immediately; follow progress with
'clauseline status' or pass --wait to block until analysis finishes.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

// Flags for the analyze command.
var (
	analyzeDocType   string
	analyzeProviders []string
	analyzeWait      bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeDocType, "type", "t", "other",
		"Document type: rental_agreement, loan_contract, terms_of_service or other")
	analyzeCmd.Flags().StringSliceVarP(&analyzeProviders, "provider", "p", nil,
		"Judge provider preference order (ollama, openai, anthropic)")
	analyzeCmd.Flags().BoolVarP(&analyzeWait, "wait", "w", false,
		"Block until analysis reaches a terminal state")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	upload := &domain.RawUpload{
		Filename: filepath.Base(path),
		Content:  content,
	}
	opts := domain.SubmitOptions{
		DocumentType:       domain.ParseDocumentType(analyzeDocType),
		ProviderPreference: analyzeProviders,
	}

	ctx := context.Background()
	doc, err := analysisService.Submit(ctx, upload, opts)
	if err != nil {
		return fmt.Errorf("failed to submit document: %w", err)
	}

	cmd.Printf("Document submitted: %s\n", doc.ID)
	if !analyzeWait {
		cmd.Printf("Check progress with: clauseline status %s\n", doc.ID)
		return nil
	}

	return waitForDocument(ctx, cmd, doc.ID)
}

// waitForDocument polls until the document reaches a terminal state.
func waitForDocument(ctx context.Context, cmd *cobra.Command, documentID string) error {
	lastState := domain.DocumentState("")
	for {
		status, err := analysisService.Status(ctx, documentID)
		if err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}

		if status.State != lastState {
			cmd.Printf("  %s\n", status.State)
			lastState = status.State
		}

		if status.State.Terminal() {
			if status.State == domain.StateFailed {
				return fmt.Errorf("analysis failed: %s", status.FailureReason)
			}
			cmd.Printf("\nAnalysis complete. View it with: clauseline timeline %s\n", documentID)
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
}
