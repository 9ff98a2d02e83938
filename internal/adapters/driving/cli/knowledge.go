package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var initKBCmd = &cobra.Command{
	Use:   "init-kb",
	Short: "Seed the legal knowledge base",
	Long: `Seeds the built-in legal reference entries into storage and, when an
embedding provider is configured, indexes them for retrieval. Seeding
is idempotent; existing entries are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInitKB,
}

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Inspect the legal knowledge base",
}

var knowledgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge base entries",
	Args:  cobra.NoArgs,
	RunE:  runKnowledgeList,
}

func init() {
	knowledgeCmd.AddCommand(knowledgeListCmd)
	rootCmd.AddCommand(initKBCmd)
	rootCmd.AddCommand(knowledgeCmd)
}

func runInitKB(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	if err := knowledgeService.Seed(cmd.Context()); err != nil {
		return fmt.Errorf("failed to seed knowledge base: %w", err)
	}

	entries, err := knowledgeService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list knowledge base: %w", err)
	}
	cmd.Printf("Knowledge base ready with %d entries.\n", len(entries))
	return nil
}

func runKnowledgeList(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	entries, err := knowledgeService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list knowledge base: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("Knowledge base is empty. Seed it with: clauseline init-kb")
		return nil
	}

	for _, entry := range entries {
		cmd.Printf("%-24s %s [%s]\n", entry.ID, entry.Title, strings.Join(entry.Categories, ", "))
	}
	return nil
}
