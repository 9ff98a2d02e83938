package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded in analysed documents",
	Long: `Answers a free-text question using retrieval over analysed clauses
and the seeded legal knowledge base. Scope the question to a single
document with --document; without it the question runs over every
analysed document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// Flags for the ask command.
var (
	askDocumentID string
	askTopK       int
)

func init() {
	askCmd.Flags().StringVarP(&askDocumentID, "document", "d", "",
		"Scope the question to one document ID")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0,
		"Number of grounding sources to retrieve")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if ragService == nil {
		return errors.New("rag service not configured")
	}

	question := strings.Join(args, " ")
	answer, err := ragService.Ask(cmd.Context(), question, driving.AskOptions{
		DocumentID: askDocumentID,
		TopK:       askTopK,
	})
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	cmd.Printf("%s\n", answer.Answer)
	cmd.Printf("\nConfidence: %.0f%%\n", answer.ConfidenceScore*100)
	if len(answer.Sources) > 0 {
		cmd.Printf("Sources:\n")
		for i, source := range answer.Sources {
			cmd.Printf("  [%d] %s (similarity %.2f)\n", i+1, sourceLabel(source.DocumentID, source.ClauseID), source.Similarity)
		}
	}
	return nil
}

func sourceLabel(documentID, clauseID string) string {
	if documentID == "" {
		return clauseID
	}
	return fmt.Sprintf("%s / %s", documentID, clauseID)
}
