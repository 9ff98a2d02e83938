package services

import (
	"fmt"
	"sort"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// flowTargetSteps is the number of stops the recommended reading flow
// aims for on long documents.
const flowTargetSteps = 7

// maxCriticalIssues caps the critical issue list in the summary.
const maxCriticalIssues = 5

// documentTypeWeights scale the compliance score per document type.
// All types currently weigh equally.
var documentTypeWeights = map[domain.DocumentType]float64{
	domain.DocTypeRentalAgreement: 1.0,
	domain.DocTypeLoanContract:    1.0,
	domain.DocTypeTermsOfService:  1.0,
	domain.DocTypeOther:           1.0,
}

// BuildTimeline converts the final clause set into ordered timeline
// items. Items are ordered by sequence number regardless of the order
// in which analysis completed.
func BuildTimeline(clauses []domain.Clause) []domain.TimelineItem {
	ordered := sortedBySequence(clauses)
	total := len(ordered)

	items := make([]domain.TimelineItem, 0, total)
	for _, c := range ordered {
		items = append(items, domain.TimelineItem{
			ClauseID:                 c.ID,
			SequenceNumber:           c.SequenceNumber,
			Title:                    c.Title,
			Text:                     c.Text,
			Type:                     c.Type,
			SeverityLevel:            c.SeverityLevel,
			SeverityColor:            c.SeverityColor(),
			PlainLanguageExplanation: c.PlainLanguageExplanation,
			RiskFactors:              c.RiskFactors,
			LegalImplications:        c.LegalImplications,
			ComplianceFlags:          c.ComplianceFlags,
			RelatedClauseIDs:         c.RelatedClauseIDs,
			Degraded:                 c.State == domain.ClauseStateFailed,
			PositionPercent:          positionPercent(c.SequenceNumber, total),
			VisualIndicator:          visualIndicator(c.SeverityLevel),
		})
	}
	return items
}

// BuildSummary computes the document-level aggregates from the final
// clause set. Degraded clauses carry placeholder judgments, so they
// count in the risk bands as well as the degraded count.
func BuildSummary(documentID string, docType domain.DocumentType, clauses []domain.Clause) domain.DocumentSummary {
	summary := domain.DocumentSummary{DocumentID: documentID}
	if len(clauses) == 0 {
		summary.ComplianceScore = 0
		summary.OverallSentiment = domain.SentimentMinimal
		return summary
	}

	var severitySum, scoreSum float64
	for _, c := range clauses {
		severity := domain.ClampSeverity(c.SeverityLevel)
		switch {
		case severity <= 2:
			summary.LowRiskClauses++
		case severity == 3:
			summary.MediumRiskClauses++
		default:
			summary.HighRiskClauses++
		}
		if c.State == domain.ClauseStateFailed {
			summary.DegradedClauses++
		}
		severitySum += float64(severity)
		scoreSum += float64(6-severity) * 20
	}

	weight := documentTypeWeights[docType]
	if weight == 0 {
		weight = 1.0
	}
	summary.ComplianceScore = clampScore(scoreSum / float64(len(clauses)) * weight)
	summary.OverallSentiment = domain.SentimentForMeanSeverity(severitySum / float64(len(clauses)))
	summary.CriticalIssues = criticalIssues(clauses)
	summary.Recommendations = recommendations(summary)
	return summary
}

// BuildNavigation derives the navigation structure from the final
// clause set: all critical checkpoints plus an evenly spread reading
// flow anchored at the first and last clauses.
func BuildNavigation(clauses []domain.Clause) domain.TimelineNavigation {
	ordered := sortedBySequence(clauses)
	nav := domain.TimelineNavigation{TotalSteps: len(ordered)}
	if len(ordered) == 0 {
		return nav
	}

	include := make(map[int]bool)
	for _, c := range ordered {
		if domain.ClampSeverity(c.SeverityLevel) >= 4 {
			nav.CriticalCheckpoints = append(nav.CriticalCheckpoints, c.SequenceNumber)
			include[c.SequenceNumber] = true
		}
	}
	sort.Ints(nav.CriticalCheckpoints)

	include[ordered[0].SequenceNumber] = true
	include[ordered[len(ordered)-1].SequenceNumber] = true

	// Spread additional stops evenly until the flow reaches its target
	// length or runs out of clauses.
	stride := len(ordered) / flowTargetSteps
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < len(ordered) && len(include) < flowTargetSteps; i += stride {
		include[ordered[i].SequenceNumber] = true
	}

	nav.RecommendedFlow = make([]int, 0, len(include))
	for seq := range include {
		nav.RecommendedFlow = append(nav.RecommendedFlow, seq)
	}
	sort.Ints(nav.RecommendedFlow)
	return nav
}

// criticalIssues collects the unique risk factors of high-severity
// clauses in document order, capped at maxCriticalIssues.
func criticalIssues(clauses []domain.Clause) []string {
	seen := make(map[string]bool)
	var issues []string
	for _, c := range sortedBySequence(clauses) {
		if domain.ClampSeverity(c.SeverityLevel) < 4 {
			continue
		}
		for _, factor := range c.RiskFactors {
			if factor == "" || seen[factor] {
				continue
			}
			seen[factor] = true
			issues = append(issues, factor)
			if len(issues) == maxCriticalIssues {
				return issues
			}
		}
	}
	return issues
}

// recommendations derives document-level follow-up advice from the
// computed aggregates.
func recommendations(summary domain.DocumentSummary) []string {
	var recs []string
	if summary.HighRiskClauses > 0 {
		recs = append(recs, fmt.Sprintf(
			"Review the %d high-risk clause(s) with a legal professional before signing",
			summary.HighRiskClauses))
	}
	if summary.DegradedClauses > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d clause(s) could not be analysed automatically and need manual review",
			summary.DegradedClauses))
	}
	if summary.ComplianceScore < 60 {
		recs = append(recs, "Consider negotiating the flagged terms before agreeing to this document")
	}
	if len(recs) == 0 {
		recs = append(recs, "No high-risk clauses detected; a standard review is recommended")
	}
	return recs
}

// positionPercent is the clause's relative position on the timeline.
func positionPercent(sequence, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(sequence) / float64(total) * 100
}

// visualIndicator maps a severity level to a timeline marker tier.
func visualIndicator(severity int) string {
	switch domain.ClampSeverity(severity) {
	case 5:
		return "critical"
	case 4:
		return "warning"
	case 3:
		return "caution"
	default:
		return "safe"
	}
}

// clampScore forces a compliance score into [0,100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// sortedBySequence returns a copy of the clauses ordered by sequence
// number.
func sortedBySequence(clauses []domain.Clause) []domain.Clause {
	ordered := make([]domain.Clause, len(clauses))
	copy(ordered, clauses)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].SequenceNumber < ordered[j].SequenceNumber
	})
	return ordered
}
