// Package cli implements the cobra command surface for clauseline.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
	"github.com/lexatlas-labs/clauseline-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Wired services, injected before Execute.
var (
	analysisService  driving.AnalysisService
	ragService       driving.RAGService
	knowledgeService driving.KnowledgeService
	configStore      driven.ConfigStore
)

// verbose toggles debug logging for all commands.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "clauseline",
	Short: "Clause-timeline analysis for legal documents",
	Long: `Clauseline analyses legal documents clause by clause.

Upload a contract, lease or terms-of-service document and clauseline
extracts its text, segments it into clauses, judges each clause with a
configured AI provider and assembles a navigable risk timeline. Ask
free-text questions about analysed documents with the ask command.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Services carries the wired driving ports into the CLI.
type Services struct {
	Analysis  driving.AnalysisService
	RAG       driving.RAGService
	Knowledge driving.KnowledgeService
	Config    driven.ConfigStore
}

// SetServices injects the wired services. Must be called before
// Execute.
func SetServices(s Services) {
	analysisService = s.Analysis
	ragService = s.RAG
	knowledgeService = s.Knowledge
	configStore = s.Config
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
