package rest

import (
	"time"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// ==================== Documents ====================

type documentResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	DocumentType  string  `json:"document_type"`
	State         string  `json:"state"`
	FailureReason string  `json:"failure_reason,omitempty"`
	ByteSize      int64   `json:"byte_size"`
	PageCount     int     `json:"page_count"`
	TotalClauses  int     `json:"total_clauses"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func toDocumentResponse(doc *domain.Document) documentResponse {
	return documentResponse{
		ID:            doc.ID,
		Title:         doc.Title,
		DocumentType:  string(doc.Type),
		State:         string(doc.State),
		FailureReason: doc.FailureReason,
		ByteSize:      doc.ByteSize,
		PageCount:     doc.PageCount,
		TotalClauses:  doc.TotalClauses,
		CreatedAt:     doc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     doc.UpdatedAt.Format(time.RFC3339),
	}
}

type statusResponse struct {
	DocumentID    string  `json:"document_id"`
	State         string  `json:"state"`
	Progress      float64 `json:"progress"`
	ETASeconds    float64 `json:"eta_seconds,omitempty"`
	FailureReason string  `json:"failure_reason,omitempty"`
}

// ==================== Clauses and timeline ====================

type clauseResponse struct {
	ID                       string   `json:"id"`
	SequenceNumber           int      `json:"sequence_number"`
	Title                    string   `json:"title"`
	Text                     string   `json:"text"`
	Type                     string   `json:"type"`
	PageNumber               int      `json:"page_number,omitempty"`
	State                    string   `json:"state"`
	SeverityLevel            int      `json:"severity_level"`
	SeverityColor            string   `json:"severity_color"`
	RiskFactors              []string `json:"risk_factors"`
	LegalImplications        string   `json:"legal_implications"`
	PlainLanguageExplanation string   `json:"plain_language_explanation"`
	ComplianceFlags          []string `json:"compliance_flags"`
	RelatedClauseIDs         []string `json:"related_clause_ids"`
}

func toClauseResponse(c *domain.Clause) clauseResponse {
	return clauseResponse{
		ID:                       c.ID,
		SequenceNumber:           c.SequenceNumber,
		Title:                    c.Title,
		Text:                     c.Text,
		Type:                     c.Type,
		PageNumber:               c.PageNumber,
		State:                    string(c.State),
		SeverityLevel:            c.SeverityLevel,
		SeverityColor:            c.SeverityColor(),
		RiskFactors:              c.RiskFactors,
		LegalImplications:        c.LegalImplications,
		PlainLanguageExplanation: c.PlainLanguageExplanation,
		ComplianceFlags:          c.ComplianceFlags,
		RelatedClauseIDs:         c.RelatedClauseIDs,
	}
}

type timelineItemResponse struct {
	ClauseID                 string   `json:"clause_id"`
	SequenceNumber           int      `json:"sequence_number"`
	Title                    string   `json:"title"`
	Text                     string   `json:"text"`
	Type                     string   `json:"type"`
	SeverityLevel            int      `json:"severity_level"`
	SeverityColor            string   `json:"severity_color"`
	PlainLanguageExplanation string   `json:"plain_language_explanation"`
	RiskFactors              []string `json:"risk_factors"`
	LegalImplications        string   `json:"legal_implications"`
	ComplianceFlags          []string `json:"compliance_flags"`
	RelatedClauseIDs         []string `json:"related_clause_ids"`
	Degraded                 bool     `json:"degraded"`
	PositionPercent          float64  `json:"position_percent"`
	VisualIndicator          string   `json:"visual_indicator"`
}

type summaryResponse struct {
	LowRiskClauses    int      `json:"low_risk_clauses"`
	MediumRiskClauses int      `json:"medium_risk_clauses"`
	HighRiskClauses   int      `json:"high_risk_clauses"`
	DegradedClauses   int      `json:"degraded_clauses"`
	CriticalIssues    []string `json:"critical_issues"`
	Recommendations   []string `json:"recommendations"`
	ComplianceScore   float64  `json:"compliance_score"`
	OverallSentiment  string   `json:"overall_sentiment"`
}

type navigationResponse struct {
	TotalSteps          int   `json:"total_steps"`
	CriticalCheckpoints []int `json:"critical_checkpoints"`
	RecommendedFlow     []int `json:"recommended_flow"`
}

type timelineResponse struct {
	Document   documentResponse       `json:"document"`
	Timeline   []timelineItemResponse `json:"timeline"`
	Summary    summaryResponse        `json:"summary"`
	Navigation navigationResponse     `json:"navigation"`
}

func toTimelineResponse(result *domain.AnalysisResult) timelineResponse {
	items := make([]timelineItemResponse, 0, len(result.Timeline))
	for _, item := range result.Timeline {
		items = append(items, timelineItemResponse{
			ClauseID:                 item.ClauseID,
			SequenceNumber:           item.SequenceNumber,
			Title:                    item.Title,
			Text:                     item.Text,
			Type:                     item.Type,
			SeverityLevel:            item.SeverityLevel,
			SeverityColor:            item.SeverityColor,
			PlainLanguageExplanation: item.PlainLanguageExplanation,
			RiskFactors:              item.RiskFactors,
			LegalImplications:        item.LegalImplications,
			ComplianceFlags:          item.ComplianceFlags,
			RelatedClauseIDs:         item.RelatedClauseIDs,
			Degraded:                 item.Degraded,
			PositionPercent:          item.PositionPercent,
			VisualIndicator:          item.VisualIndicator,
		})
	}

	return timelineResponse{
		Document: toDocumentResponse(&result.Document),
		Timeline: items,
		Summary: summaryResponse{
			LowRiskClauses:    result.Summary.LowRiskClauses,
			MediumRiskClauses: result.Summary.MediumRiskClauses,
			HighRiskClauses:   result.Summary.HighRiskClauses,
			DegradedClauses:   result.Summary.DegradedClauses,
			CriticalIssues:    result.Summary.CriticalIssues,
			Recommendations:   result.Summary.Recommendations,
			ComplianceScore:   result.Summary.ComplianceScore,
			OverallSentiment:  string(result.Summary.OverallSentiment),
		},
		Navigation: navigationResponse{
			TotalSteps:          result.Navigation.TotalSteps,
			CriticalCheckpoints: result.Navigation.CriticalCheckpoints,
			RecommendedFlow:     result.Navigation.RecommendedFlow,
		},
	}
}

type clauseDetailsResponse struct {
	Clause      clauseResponse   `json:"clause"`
	Related     []clauseResponse `json:"related_clauses"`
	Explanation string           `json:"contextual_explanation,omitempty"`
}

// ==================== RAG ====================

type ragQueryRequest struct {
	Question   string `json:"question"`
	DocumentID string `json:"document_id,omitempty"`
	TopK       int    `json:"top_k,omitempty"`
}

type ragSourceResponse struct {
	DocumentID     string  `json:"document_id"`
	ClauseID       string  `json:"clause_id"`
	SequenceNumber int     `json:"sequence_number,omitempty"`
	Text           string  `json:"text"`
	Similarity     float64 `json:"similarity"`
}

type ragAnswerResponse struct {
	Question        string              `json:"question"`
	Answer          string              `json:"answer"`
	ConfidenceScore float64             `json:"confidence_score"`
	Sources         []ragSourceResponse `json:"sources"`
}

func toRAGAnswerResponse(answer *domain.RAGAnswer) ragAnswerResponse {
	sources := make([]ragSourceResponse, 0, len(answer.Sources))
	for _, src := range answer.Sources {
		sources = append(sources, ragSourceResponse{
			DocumentID:     src.DocumentID,
			ClauseID:       src.ClauseID,
			SequenceNumber: src.SequenceNumber,
			Text:           src.Text,
			Similarity:     src.Similarity,
		})
	}
	return ragAnswerResponse{
		Question:        answer.Question,
		Answer:          answer.Answer,
		ConfidenceScore: answer.ConfidenceScore,
		Sources:         sources,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
