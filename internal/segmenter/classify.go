package segmenter

import (
	"regexp"
	"strings"
)

// clausePatterns are the structural markers that open a clause, in
// priority order. A paragraph matching any of them starts a new span;
// when several match, the earliest pattern decides the title split.
var clausePatterns = []*regexp.Regexp{
	// Arabic numerals: 1., 1.1, 1.1.1
	regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\.?\s+(.+)`),
	// Roman numerals: I., II., III.
	regexp.MustCompile(`(?i)^\s*(I{1,3}|IV|V|VI{1,3}|IX|X)\.\s+(.+)`),
	// Letter numbering: (a), a), A.
	regexp.MustCompile(`^\s*\(?([a-zA-Z])[.)]\s+(.+)`),
	// Parenthetical numbers: (1), (2)
	regexp.MustCompile(`^\s*\((\d+)\)\s+(.+)`),
	// Section headers: Section 1, Article 1, Clause 1
	regexp.MustCompile(`(?i)^\s*(?:Section|Article|Clause)\s+(\d+)[.:]?\s+(.+)`),
	// Bullet points with numbers
	regexp.MustCompile(`^\s*[•\-*]\s*(\d+)\.?\s+(.+)`),
}

// headerPatterns match common legal section openers that carry no
// numbering.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(?:WHEREAS|NOW THEREFORE|IN WITNESS WHEREOF)`),
	regexp.MustCompile(`(?i)^\s*(?:This|The)\s+(?:Agreement|Contract|Lease)`),
	regexp.MustCompile(`(?i)^\s*Definitions?\s*:`),
	regexp.MustCompile(`(?i)^\s*Schedule\s+\d+:`),
	regexp.MustCompile(`(?i)^\s*Exhibit\s+\w+:`),
}

// allCapsHeader matches a short all-capitals line used as a section
// header.
var allCapsHeader = regexp.MustCompile(`^[A-Z][A-Z0-9 .,'&-]{3,80}$`)

// clauseKeywords indicate a clause boundary when they open a paragraph.
var clauseKeywords = []string{
	"agreement", "party", "parties", "term", "condition", "obligation",
	"right", "rights", "liability", "termination", "breach", "default",
	"payment", "fee", "compensation", "damages", "warranty", "representation",
	"confidentiality", "intellectual property", "force majeure", "governing law",
	"jurisdiction", "arbitration", "dispute", "notice", "amendment", "assignment",
	"severability", "entire agreement", "waiver", "indemnification", "insurance",
	"maintenance", "repair", "security deposit", "rent", "lease", "tenant",
	"landlord", "property", "premises",
}

// clauseTypeKeywords maps clause types to the keywords that indicate
// them. Iterated in fixed order so classification is deterministic.
var clauseTypeKeywords = []struct {
	typ      string
	keywords []string
}{
	{"payment", []string{"payment", "fee", "compensation", "rent", "deposit", "money"}},
	{"termination", []string{"termination", "end", "cancel", "expire", "breach", "default"}},
	{"liability", []string{"liability", "responsible", "obligation", "duty", "indemnify"}},
	{"confidentiality", []string{"confidential", "secret", "private", "disclose", "protect"}},
	{"governing_law", []string{"governing law", "jurisdiction", "court", "arbitration"}},
	{"force_majeure", []string{"force majeure", "act of god", "unforeseeable", "emergency"}},
	{"intellectual_property", []string{"intellectual property", "copyright", "trademark", "patent"}},
	{"maintenance", []string{"maintenance", "repair", "condition", "fix", "restore"}},
	{"security_deposit", []string{"security deposit", "refund", "return"}},
	{"notice", []string{"notice", "notify", "communication", "contact", "address"}},
	{"assignment", []string{"assignment", "transfer", "sublet", "delegate"}},
	{"amendment", []string{"amendment", "modify", "change", "alter", "revise"}},
	{"severability", []string{"severability", "separate", "independent", "invalid"}},
	{"waiver", []string{"waiver", "forgo", "relinquish", "abandon"}},
	{"insurance", []string{"insurance", "insure", "coverage", "policy"}},
}

// sentenceEnd matches sentence-terminating punctuation.
var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// isClauseStart reports whether the paragraph opens a new clause.
func isClauseStart(text string) bool {
	text = strings.TrimSpace(text)

	for _, pattern := range clausePatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	for _, pattern := range headerPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	if firstLine := strings.SplitN(text, "\n", 2)[0]; allCapsHeader.MatchString(strings.TrimSpace(firstLine)) {
		return true
	}

	// A clause keyword among the opening words also marks a boundary.
	opening := strings.ToLower(text)
	if len(opening) > 50 {
		opening = opening[:50]
	}
	for _, keyword := range clauseKeywords {
		if strings.HasPrefix(opening, keyword) {
			return true
		}
	}

	return false
}

// extractTitle derives a heuristic title for a clause span.
func extractTitle(text string) string {
	text = strings.TrimSpace(text)

	// Prefer the remainder after a structural marker.
	for _, pattern := range clausePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			title := strings.TrimSpace(m[2])
			if i := strings.IndexByte(title, '\n'); i >= 0 {
				title = strings.TrimSpace(title[:i])
			}
			if len(title) <= 100 {
				return title
			}
		}
	}

	// Otherwise the first reasonably sized sentence.
	for i, sentence := range sentenceEnd.Split(text, 3) {
		if i >= 2 {
			break
		}
		sentence = strings.TrimSpace(sentence)
		if len(sentence) >= 10 && len(sentence) <= 100 {
			return sentence
		}
	}

	// Fallback: leading characters.
	if len(text) > 50 {
		text = text[:50]
	}
	return strings.TrimSpace(text)
}

// classify determines a clause type from its content.
func classify(text string) string {
	lower := strings.ToLower(text)

	for _, entry := range clauseTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.typ
			}
		}
	}

	for _, word := range []string{"rent", "lease", "tenant", "landlord"} {
		if strings.Contains(lower, word) {
			return "property_details"
		}
	}
	for _, word := range []string{"party", "parties", "agreement"} {
		if strings.Contains(lower, word) {
			return "party_details"
		}
	}
	return "general"
}
