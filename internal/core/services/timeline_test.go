package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

func clauseWithSeverity(seq, severity int) domain.Clause {
	return domain.Clause{
		ID:             fmt.Sprintf("c-%d", seq),
		SequenceNumber: seq,
		Title:          "Clause",
		Text:           "Some clause text",
		State:          domain.ClauseStateAnalyzed,
		SeverityLevel:  severity,
	}
}

func TestBuildTimeline_OrdersBySequence(t *testing.T) {
	clauses := []domain.Clause{
		clauseWithSeverity(3, 5),
		clauseWithSeverity(1, 1),
		clauseWithSeverity(2, 3),
	}

	items := BuildTimeline(clauses)
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].SequenceNumber)
	assert.Equal(t, 2, items[1].SequenceNumber)
	assert.Equal(t, 3, items[2].SequenceNumber)
}

func TestBuildTimeline_PositionAndIndicators(t *testing.T) {
	clauses := []domain.Clause{
		clauseWithSeverity(1, 1),
		clauseWithSeverity(2, 3),
		clauseWithSeverity(3, 4),
		clauseWithSeverity(4, 5),
	}

	items := BuildTimeline(clauses)
	require.Len(t, items, 4)

	assert.InDelta(t, 25.0, items[0].PositionPercent, 0.001)
	assert.InDelta(t, 100.0, items[3].PositionPercent, 0.001)

	assert.Equal(t, "safe", items[0].VisualIndicator)
	assert.Equal(t, "caution", items[1].VisualIndicator)
	assert.Equal(t, "warning", items[2].VisualIndicator)
	assert.Equal(t, "critical", items[3].VisualIndicator)

	assert.Equal(t, "#22C55E", items[0].SeverityColor)
	assert.Equal(t, "#DC2626", items[3].SeverityColor)
}

func TestBuildTimeline_MarksDegradedClauses(t *testing.T) {
	degraded := clauseWithSeverity(1, 1)
	degraded.State = domain.ClauseStateFailed

	items := BuildTimeline([]domain.Clause{degraded, clauseWithSeverity(2, 2)})
	require.Len(t, items, 2)
	assert.True(t, items[0].Degraded)
	assert.False(t, items[1].Degraded)
}

func TestBuildSummary_RiskBands(t *testing.T) {
	clauses := []domain.Clause{
		clauseWithSeverity(1, 1),
		clauseWithSeverity(2, 2),
		clauseWithSeverity(3, 3),
		clauseWithSeverity(4, 4),
		clauseWithSeverity(5, 5),
	}

	summary := BuildSummary("doc-1", domain.DocTypeRentalAgreement, clauses)
	assert.Equal(t, "doc-1", summary.DocumentID)
	assert.Equal(t, 2, summary.LowRiskClauses)
	assert.Equal(t, 1, summary.MediumRiskClauses)
	assert.Equal(t, 2, summary.HighRiskClauses)
	assert.Equal(t, 0, summary.DegradedClauses)
	assert.Equal(t, domain.SentimentModerate, summary.OverallSentiment)
}

func TestBuildSummary_ComplianceScore(t *testing.T) {
	tests := []struct {
		name       string
		severities []int
		expected   float64
	}{
		{name: "all severity one", severities: []int{1, 1, 1}, expected: 100},
		{name: "all severity five", severities: []int{5, 5}, expected: 20},
		{name: "mixed", severities: []int{1, 5}, expected: 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clauses := make([]domain.Clause, 0, len(tc.severities))
			for i, s := range tc.severities {
				clauses = append(clauses, clauseWithSeverity(i+1, s))
			}
			summary := BuildSummary("doc-1", domain.DocTypeOther, clauses)
			assert.InDelta(t, tc.expected, summary.ComplianceScore, 0.001)
		})
	}
}

func TestBuildSummary_CriticalIssuesUniqueAndCapped(t *testing.T) {
	clauses := []domain.Clause{
		{SequenceNumber: 1, State: domain.ClauseStateAnalyzed, SeverityLevel: 5,
			RiskFactors: []string{"Unlimited liability", "No cure period"}},
		{SequenceNumber: 2, State: domain.ClauseStateAnalyzed, SeverityLevel: 4,
			RiskFactors: []string{"Unlimited liability", "Unilateral amendment", "Hidden fees"}},
		{SequenceNumber: 3, State: domain.ClauseStateAnalyzed, SeverityLevel: 2,
			RiskFactors: []string{"Low-risk factor never listed"}},
		{SequenceNumber: 4, State: domain.ClauseStateAnalyzed, SeverityLevel: 5,
			RiskFactors: []string{"Waived jury trial", "Automatic renewal"}},
	}

	summary := BuildSummary("doc-1", domain.DocTypeOther, clauses)
	require.Len(t, summary.CriticalIssues, 5)
	assert.Equal(t, []string{
		"Unlimited liability",
		"No cure period",
		"Unilateral amendment",
		"Hidden fees",
		"Waived jury trial",
	}, summary.CriticalIssues)
}

func TestBuildSummary_DegradedCountAndRecommendation(t *testing.T) {
	degraded := clauseWithSeverity(2, 1)
	degraded.State = domain.ClauseStateFailed

	summary := BuildSummary("doc-1", domain.DocTypeOther, []domain.Clause{
		clauseWithSeverity(1, 1),
		degraded,
	})
	assert.Equal(t, 1, summary.DegradedClauses)
	require.NotEmpty(t, summary.Recommendations)
	assert.Contains(t, summary.Recommendations[0], "manual review")
}

func TestBuildSummary_Empty(t *testing.T) {
	summary := BuildSummary("doc-1", domain.DocTypeOther, nil)
	assert.Zero(t, summary.ComplianceScore)
	assert.Equal(t, domain.SentimentMinimal, summary.OverallSentiment)
}

func TestBuildNavigation_CheckpointsAscending(t *testing.T) {
	clauses := []domain.Clause{
		clauseWithSeverity(5, 5),
		clauseWithSeverity(1, 1),
		clauseWithSeverity(3, 4),
		clauseWithSeverity(2, 2),
		clauseWithSeverity(4, 3),
	}

	nav := BuildNavigation(clauses)
	assert.Equal(t, 5, nav.TotalSteps)
	assert.Equal(t, []int{3, 5}, nav.CriticalCheckpoints)
}

func TestBuildNavigation_FlowStrictlyAscendingNoDuplicates(t *testing.T) {
	clauses := make([]domain.Clause, 0, 20)
	for seq := 1; seq <= 20; seq++ {
		severity := 1
		if seq == 7 || seq == 13 {
			severity = 5
		}
		clauses = append(clauses, clauseWithSeverity(seq, severity))
	}

	nav := BuildNavigation(clauses)
	flow := nav.RecommendedFlow
	require.NotEmpty(t, flow)

	assert.Equal(t, 1, flow[0])
	assert.Equal(t, 20, flow[len(flow)-1])
	assert.Contains(t, flow, 7)
	assert.Contains(t, flow, 13)
	for i := 1; i < len(flow); i++ {
		assert.Greater(t, flow[i], flow[i-1])
	}
}

func TestBuildNavigation_ShortDocumentIncludesEveryClause(t *testing.T) {
	clauses := []domain.Clause{
		clauseWithSeverity(1, 1),
		clauseWithSeverity(2, 2),
		clauseWithSeverity(3, 1),
	}

	nav := BuildNavigation(clauses)
	assert.Equal(t, []int{1, 2, 3}, nav.RecommendedFlow)
	assert.Empty(t, nav.CriticalCheckpoints)
}

func TestBuildNavigation_Empty(t *testing.T) {
	nav := BuildNavigation(nil)
	assert.Zero(t, nav.TotalSteps)
	assert.Empty(t, nav.RecommendedFlow)
}
