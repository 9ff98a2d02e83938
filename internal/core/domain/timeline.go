package domain

// Sentiment classifies the overall risk posture of a document.
type Sentiment string

// Overall document sentiments, derived from mean severity.
const (
	SentimentCritical Sentiment = "critical_risk"
	SentimentHigh     Sentiment = "high_risk"
	SentimentModerate Sentiment = "moderate_risk"
	SentimentLow      Sentiment = "low_risk"
	SentimentMinimal  Sentiment = "minimal_risk"
)

// SentimentForMeanSeverity converts a mean severity score to a
// sentiment classification.
func SentimentForMeanSeverity(mean float64) Sentiment {
	switch {
	case mean >= 4.5:
		return SentimentCritical
	case mean >= 3.5:
		return SentimentHigh
	case mean >= 2.5:
		return SentimentModerate
	case mean >= 1.5:
		return SentimentLow
	default:
		return SentimentMinimal
	}
}

// DocumentSummary holds the document-level aggregates computed once,
// at assembly time, from the final clause set. It is never partially
// materialised.
type DocumentSummary struct {
	// DocumentID identifies the summarised document.
	DocumentID string

	// LowRiskClauses counts clauses with severity 1-2.
	LowRiskClauses int

	// MediumRiskClauses counts clauses with severity 3.
	MediumRiskClauses int

	// HighRiskClauses counts clauses with severity 4-5.
	HighRiskClauses int

	// DegradedClauses counts clauses whose analysis failed and which
	// carry a placeholder judgment.
	DegradedClauses int

	// CriticalIssues lists the top unique risk factors.
	CriticalIssues []string

	// Recommendations lists document-level recommendations.
	Recommendations []string

	// ComplianceScore is in [0,100]; 100 exactly when every clause
	// has severity 1.
	ComplianceScore float64

	// OverallSentiment classifies the document's risk posture.
	OverallSentiment Sentiment
}

// TimelineNavigation is the derived navigation structure for a
// completed document. Pure function of the final clause set.
type TimelineNavigation struct {
	// TotalSteps equals the clause count.
	TotalSteps int

	// CriticalCheckpoints are sequence numbers of clauses with
	// severity >= 4, in ascending order.
	CriticalCheckpoints []int

	// RecommendedFlow is a strictly ascending, duplicate-free
	// subsequence of sequence numbers biased toward checkpoints.
	RecommendedFlow []int
}

// TimelineItem is a single clause as presented on the timeline,
// ordered by sequence number regardless of analysis completion order.
type TimelineItem struct {
	ClauseID                 string
	SequenceNumber           int
	Title                    string
	Text                     string
	Type                     string
	SeverityLevel            int
	SeverityColor            string
	PlainLanguageExplanation string
	RiskFactors              []string
	LegalImplications        string
	ComplianceFlags          []string
	RelatedClauseIDs         []string
	Degraded                 bool

	// PositionPercent is the clause's relative position, 0-100.
	PositionPercent float64

	// VisualIndicator is the timeline marker tier for rendering hints.
	VisualIndicator string
}

// AnalysisResult is the frozen artefact of a completed document:
// ordered timeline, summary aggregates and navigation.
type AnalysisResult struct {
	Document   Document
	Timeline   []TimelineItem
	Summary    DocumentSummary
	Navigation TimelineNavigation
}
