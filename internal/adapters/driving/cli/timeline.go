package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline [document-id]",
	Short: "Show the analysis timeline for a completed document",
	Long: `Prints the frozen analysis artefact for a completed document: the
document summary, the clause timeline in reading order and the
recommended navigation flow.`,
	Args: cobra.ExactArgs(1),
	RunE: runTimeline,
}

// timelineFull includes the plain-language explanation per clause.
var timelineFull bool

func init() {
	timelineCmd.Flags().BoolVarP(&timelineFull, "full", "f", false,
		"Include plain-language explanations for every clause")

	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	result, err := analysisService.Result(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotCompleted) {
			return fmt.Errorf("document is not completed yet; check 'clauseline status %s'", args[0])
		}
		return fmt.Errorf("failed to get analysis result: %w", err)
	}

	printSummary(cmd, result)
	printTimeline(cmd, result.Timeline)
	printNavigation(cmd, result.Navigation)
	return nil
}

func printSummary(cmd *cobra.Command, result *domain.AnalysisResult) {
	summary := result.Summary

	cmd.Printf("%s (%s)\n", result.Document.Title, result.Document.Type)
	cmd.Printf("%s\n\n", strings.Repeat("=", 60))
	cmd.Printf("Overall sentiment: %s\n", summary.OverallSentiment)
	cmd.Printf("Compliance score:  %.0f/100\n", summary.ComplianceScore)
	cmd.Printf("Risk bands:        %d low / %d medium / %d high\n",
		summary.LowRiskClauses, summary.MediumRiskClauses, summary.HighRiskClauses)
	if summary.DegradedClauses > 0 {
		cmd.Printf("Degraded clauses:  %d (manual review needed)\n", summary.DegradedClauses)
	}

	if len(summary.CriticalIssues) > 0 {
		cmd.Printf("\nCritical issues:\n")
		for _, issue := range summary.CriticalIssues {
			cmd.Printf("  ! %s\n", issue)
		}
	}
	if len(summary.Recommendations) > 0 {
		cmd.Printf("\nRecommendations:\n")
		for _, rec := range summary.Recommendations {
			cmd.Printf("  - %s\n", rec)
		}
	}
}

func printTimeline(cmd *cobra.Command, items []domain.TimelineItem) {
	cmd.Printf("\nTimeline (%d clauses):\n", len(items))
	for _, item := range items {
		marker := severityMarker(item.SeverityLevel)
		cmd.Printf("  %2d. %s %s [%s, severity %d]", item.SequenceNumber, marker, item.Title, item.Type, item.SeverityLevel)
		if item.Degraded {
			cmd.Printf(" (degraded)")
		}
		cmd.Printf("\n")

		if timelineFull && item.PlainLanguageExplanation != "" {
			cmd.Printf("      %s\n", item.PlainLanguageExplanation)
		}
	}
}

func printNavigation(cmd *cobra.Command, nav domain.TimelineNavigation) {
	if len(nav.CriticalCheckpoints) > 0 {
		cmd.Printf("\nCritical checkpoints: clauses %s\n", joinInts(nav.CriticalCheckpoints))
	}
	if len(nav.RecommendedFlow) > 0 {
		cmd.Printf("Recommended reading order: %s\n", joinInts(nav.RecommendedFlow))
	}
}

// severityMarker renders a compact terminal indicator per severity.
func severityMarker(level int) string {
	switch {
	case level >= 5:
		return "[!!]"
	case level == 4:
		return "[! ]"
	case level == 3:
		return "[~ ]"
	default:
		return "[  ]"
	}
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return strings.Join(parts, ", ")
}
