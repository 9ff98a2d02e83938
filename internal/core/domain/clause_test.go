package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityColor(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		expected string
	}{
		{name: "level 1 green", level: 1, expected: "#22C55E"},
		{name: "level 2 light green", level: 2, expected: "#84CC16"},
		{name: "level 3 yellow", level: 3, expected: "#EAB308"},
		{name: "level 4 orange", level: 4, expected: "#F97316"},
		{name: "level 5 red", level: 5, expected: "#DC2626"},
		{name: "below range clamps to 1", level: 0, expected: "#22C55E"},
		{name: "above range clamps to 5", level: 9, expected: "#DC2626"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SeverityColor(tc.level))
		})
	}
}

func TestSeverityColor_Deterministic(t *testing.T) {
	// Re-running the mapping never changes the colour for a fixed level.
	for level := 1; level <= 5; level++ {
		first := SeverityColor(level)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, SeverityColor(level))
		}
	}
}

func TestClampSeverity(t *testing.T) {
	assert.Equal(t, 1, ClampSeverity(-3))
	assert.Equal(t, 1, ClampSeverity(1))
	assert.Equal(t, 3, ClampSeverity(3))
	assert.Equal(t, 5, ClampSeverity(5))
	assert.Equal(t, 5, ClampSeverity(42))
}

func TestClauseState_TerminalOutcome(t *testing.T) {
	assert.False(t, ClauseStatePending.TerminalOutcome())
	assert.False(t, ClauseStatePendingEmbedding.TerminalOutcome())
	assert.True(t, ClauseStateAnalyzed.TerminalOutcome())
	assert.True(t, ClauseStateFailed.TerminalOutcome())
}

func TestPlaceholderJudgment_MinimalRisk(t *testing.T) {
	j := PlaceholderJudgment()
	assert.Equal(t, 1, j.SeverityLevel)
	assert.NotEmpty(t, j.RiskFactors)
	assert.Zero(t, j.ConfidenceScore)
}
