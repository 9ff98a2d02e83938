package domain

import "time"

// ClauseState is the per-clause outcome within the analyzing stage.
type ClauseState string

// Clause analysis states. A clause is only fully analysed once both
// its record and its embedding index entry are durably written; the
// pending state makes a crash between the two writes detectable.
const (
	ClauseStatePending          ClauseState = "pending"
	ClauseStatePendingEmbedding ClauseState = "analyzed_pending_embedding"
	ClauseStateAnalyzed         ClauseState = "analyzed"
	ClauseStateFailed           ClauseState = "analysis_failed"
)

// TerminalOutcome reports whether the clause has reached a terminal
// per-clause outcome.
func (s ClauseState) TerminalOutcome() bool {
	return s == ClauseStateAnalyzed || s == ClauseStateFailed
}

// Clause is a contiguous, analysable unit of a legal document.
// Created during segmentation with text and position only; the
// judgment fields are filled by the AI analysis stage.
type Clause struct {
	// ID is unique within the owning document.
	ID string

	// DocumentID links to the parent document.
	DocumentID string

	// SequenceNumber is the 1-based, contiguous ordering key that
	// defines timeline order.
	SequenceNumber int

	// Title is the heuristic clause title.
	Title string

	// Text is the full clause text span.
	Text string

	// Type is an open string classification (payment, termination, ...).
	Type string

	// StartOffset and EndOffset locate the clause in the extracted text.
	StartOffset int
	EndOffset   int

	// PageNumber is the 1-based page the clause starts on, 0 if unknown.
	PageNumber int

	// State is the per-clause analysis outcome.
	State ClauseState

	// SeverityLevel is 1 (lowest risk) to 5 (highest risk).
	SeverityLevel int

	// RiskFactors are the specific risks the judgment identified.
	RiskFactors []string

	// LegalImplications is the judgment's legal analysis.
	LegalImplications string

	// PlainLanguageExplanation is the judgment's lay explanation.
	PlainLanguageExplanation string

	// ComplianceFlags tag potential compliance issues.
	ComplianceFlags []string

	// RelatedClauseIDs reference clauses within the same document.
	RelatedClauseIDs []string

	// AnalyzedAt is when the judgment was recorded.
	AnalyzedAt time.Time
}

// SeverityColor returns the clause's display colour tier. It is a pure
// function of SeverityLevel, never stored independently.
func (c *Clause) SeverityColor() string {
	return SeverityColor(c.SeverityLevel)
}

// severityColors maps severity levels to their colour hex codes.
var severityColors = map[int]string{
	1: "#22C55E", // green
	2: "#84CC16", // light green
	3: "#EAB308", // yellow
	4: "#F97316", // orange
	5: "#DC2626", // red
}

// SeverityColor maps a severity level to its colour hex code.
// Out-of-range levels clamp to the nearest valid tier.
func SeverityColor(level int) string {
	return severityColors[ClampSeverity(level)]
}

// ClampSeverity forces a severity level into the valid 1..5 range.
func ClampSeverity(level int) int {
	if level < 1 {
		return 1
	}
	if level > 5 {
		return 5
	}
	return level
}

// ClauseDraft is a segmented clause span before analysis.
type ClauseDraft struct {
	// SequenceNumber is the 1-based position in the document.
	SequenceNumber int

	// Title is the heuristic title.
	Title string

	// Text is the clause text.
	Text string

	// Type is the keyword-derived classification.
	Type string

	// StartOffset and EndOffset locate the span in the source text.
	StartOffset int
	EndOffset   int
}
