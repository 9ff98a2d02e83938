package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List submitted documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [document-id]",
	Short: "Cancel an in-flight document analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runCancel,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Delete a document, its clauses and its index entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	docs, err := analysisService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(docs) == 0 {
		cmd.Println("No documents submitted yet.")
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("%s  %-11s %-17s %s\n", doc.ID, doc.State, doc.Type, doc.Title)
	}
	return nil
}

func runCancel(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	if err := analysisService.Cancel(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to cancel document: %w", err)
	}
	cmd.Printf("Cancelled document %s\n", args[0])
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	if err := analysisService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}
