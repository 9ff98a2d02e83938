package domain

// Judgment is the structured result of analysing a single clause.
// Provider output that does not decode into this shape is treated as
// a provider failure, never passed deeper into the pipeline.
type Judgment struct {
	// SeverityLevel is 1..5, clamped at the provider boundary.
	SeverityLevel int `json:"severity_level"`

	// SeverityReasoning briefly explains the severity assessment.
	SeverityReasoning string `json:"severity_reasoning"`

	// RiskFactors lists specific risks.
	RiskFactors []string `json:"risk_factors"`

	// LegalImplications explains the legal consequences.
	LegalImplications string `json:"legal_implications"`

	// PlainLanguageExplanation is a lay explanation.
	PlainLanguageExplanation string `json:"plain_language_explanation"`

	// ComplianceFlags lists potential compliance issues.
	ComplianceFlags []string `json:"compliance_flags"`

	// Recommendations lists actionable follow-ups.
	Recommendations []string `json:"recommendations"`

	// ConfidenceScore is the provider's self-reported confidence, 0..1.
	ConfidenceScore float64 `json:"confidence_score"`
}

// PlaceholderJudgment is the minimal-risk judgment recorded for a
// clause whose analysis failed on every provider. The clause keeps its
// sequence slot so assembly can proceed; the document summary records
// the degraded count.
func PlaceholderJudgment() Judgment {
	return Judgment{
		SeverityLevel:            1,
		SeverityReasoning:        "Automated analysis unavailable for this clause",
		RiskFactors:              []string{"Analysis unavailable - manual review recommended"},
		LegalImplications:        "No automated legal analysis could be produced for this clause.",
		PlainLanguageExplanation: "This clause could not be analysed automatically. Review it manually or consult a legal professional.",
		ComplianceFlags:          nil,
		Recommendations:          []string{"Consult a legal professional for this clause"},
		ConfidenceScore:          0,
	}
}
