// Package llm holds the pieces shared by every judge provider adapter:
// the clause analysis prompt and the strict judgment decoder. Provider
// subpackages handle only transport; the judgment schema is enforced
// here so all providers are interchangeable.
package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// MaxClauseChars caps the clause excerpt included in the prompt.
const MaxClauseChars = 800

// MaxKnowledgeChars caps each knowledge excerpt included in the prompt.
const MaxKnowledgeChars = 400

// SystemPrompt is the role instruction sent to chat-style providers.
const SystemPrompt = "You are a legal expert analysing contract clauses. Always respond with valid JSON."

// judgePromptTemplate asks for exactly the judgment schema. Providers
// send it verbatim; decoding enforces the schema on the way back.
const judgePromptTemplate = `You are a legal document analysis assistant. Analyse contract clauses and respond ONLY with valid JSON.

Required JSON format:
{
    "severity_level": 3,
    "severity_reasoning": "brief explanation",
    "risk_factors": ["risk1", "risk2"],
    "legal_implications": "legal explanation",
    "plain_language_explanation": "simple explanation",
    "compliance_flags": ["flag1"],
    "recommendations": ["rec1", "rec2"],
    "confidence_score": 0.85
}

Document Type: %s
Clause Type: %s
Clause Content: %s
%s
Guidelines:
- Severity: 1=Low, 2=Minor, 3=Moderate, 4=High, 5=Critical
- Be factual and professional
- Confidence score 0.0-1.0

Output only JSON:`

// BuildJudgePrompt renders the clause analysis prompt for a request.
func BuildJudgePrompt(req driven.JudgeRequest) string {
	clause := Truncate(req.ClauseText, MaxClauseChars)

	var reference string
	if len(req.KnowledgeContext) > 0 {
		var sb strings.Builder
		sb.WriteString("\nRelevant reference material:\n")
		for _, entry := range req.KnowledgeContext {
			fmt.Fprintf(&sb, "- %s: %s\n", entry.Title, Truncate(entry.Content, MaxKnowledgeChars))
		}
		reference = sb.String()
	}

	return fmt.Sprintf(judgePromptTemplate, req.DocumentType, req.ClauseType, clause, reference)
}

// Truncate cuts s to at most max bytes without splitting a multi-byte
// rune; the cut backs up to the nearest rune boundary.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// fencedJSON matches a JSON object inside a markdown code fence.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// DecodeJudgment parses a provider response into a validated judgment.
// It tries the raw content first, then a fenced code block, then the
// outermost brace-delimited object. Anything that fails schema
// validation is an error; callers never see partial judgments.
func DecodeJudgment(content string) (*domain.Judgment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	candidates := []string{content}
	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		candidates = append(candidates, m[1])
	}
	if start, end := strings.Index(content, "{"), strings.LastIndex(content, "}"); start >= 0 && end > start {
		candidates = append(candidates, content[start:end+1])
	}

	var lastErr error
	for _, candidate := range candidates {
		var j domain.Judgment
		if err := json.Unmarshal([]byte(candidate), &j); err != nil {
			lastErr = err
			continue
		}
		if err := validateJudgment(&j); err != nil {
			lastErr = err
			continue
		}
		return &j, nil
	}

	return nil, fmt.Errorf("no valid judgment in response: %w", lastErr)
}

// validateJudgment enforces the judgment schema.
func validateJudgment(j *domain.Judgment) error {
	if j.SeverityLevel < 1 || j.SeverityLevel > 5 {
		return fmt.Errorf("severity_level %d out of range", j.SeverityLevel)
	}
	if j.ConfidenceScore < 0 || j.ConfidenceScore > 1 {
		return fmt.Errorf("confidence_score %v out of range", j.ConfidenceScore)
	}
	if j.PlainLanguageExplanation == "" {
		return fmt.Errorf("missing plain_language_explanation")
	}
	if j.RiskFactors == nil {
		j.RiskFactors = []string{}
	}
	if j.ComplianceFlags == nil {
		j.ComplianceFlags = []string{}
	}
	if j.Recommendations == nil {
		j.Recommendations = []string{}
	}
	return nil
}
