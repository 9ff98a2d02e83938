// Package segmenter splits extracted legal text into an ordered
// sequence of clause drafts. Segmentation is a pure function: identical
// input always yields an identical clause sequence, with no randomness
// and no external calls.
package segmenter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// DefaultMinClauseLen is the minimum clause length in characters.
// Shorter spans are dropped as headers or artefacts.
const DefaultMinClauseLen = 50

// DefaultMergeBelow merges a clause into its predecessor when it is
// shorter than this and shares the predecessor's type.
const DefaultMergeBelow = 200

// DefaultMaxClauseLen splits clauses longer than this.
const DefaultMaxClauseLen = 2000

// DefaultChunkSize is the fallback chunk size when no structural
// markers are found.
const DefaultChunkSize = 1200

// DefaultChunkOverlap is the fallback chunk overlap.
const DefaultChunkOverlap = 200

// DefaultMergeAbove triggers a coarser merge pass when segmentation
// yields more clauses than this.
const DefaultMergeAbove = 50

// mergeTarget is the minimum clause size the coarse merge pass grows
// clauses to.
const mergeTarget = 500

// Segmenter identifies clause boundaries in extracted text.
type Segmenter struct {
	minClauseLen int
	mergeBelow   int
	maxClauseLen int
	chunkSize    int
	chunkOverlap int
	mergeAbove   int
}

// Option configures the segmenter.
type Option func(*Segmenter)

// WithMinClauseLen sets the minimum clause length in characters.
func WithMinClauseLen(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.minClauseLen = n
		}
	}
}

// WithMaxClauseLen sets the maximum clause length in characters.
func WithMaxClauseLen(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.maxClauseLen = n
		}
	}
}

// WithChunkSize sets the fallback chunk size in characters.
func WithChunkSize(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithChunkOverlap sets the fallback chunk overlap in characters.
func WithChunkOverlap(n int) Option {
	return func(s *Segmenter) {
		if n >= 0 {
			s.chunkOverlap = n
		}
	}
}

// New creates a segmenter with the given options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		minClauseLen: DefaultMinClauseLen,
		mergeBelow:   DefaultMergeBelow,
		maxClauseLen: DefaultMaxClauseLen,
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		mergeAbove:   DefaultMergeAbove,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.chunkOverlap >= s.chunkSize {
		s.chunkOverlap = s.chunkSize / 4
	}

	return s
}

// paragraph is a text span with its position in the source text.
type paragraph struct {
	text  string
	start int
	end   int
}

// span is a candidate clause before draft conversion.
type span struct {
	text  string
	title string
	typ   string
	start int
	end   int
}

// Segment splits text into ordered clause drafts.
// Returns domain.ErrNoExtractableContent when even fallback chunking
// yields no clauses.
func (s *Segmenter) Segment(text string) ([]domain.ClauseDraft, error) {
	paragraphs := splitParagraphs(text)
	spans := s.identifySpans(paragraphs)
	spans = s.postProcess(spans)
	spans = s.splitOversized(spans)

	if len(spans) == 0 {
		spans = s.fallbackChunks(text)
	}
	if len(spans) == 0 {
		return nil, domain.ErrNoExtractableContent
	}

	drafts := make([]domain.ClauseDraft, len(spans))
	for i, sp := range spans {
		title := sp.title
		if title == "" {
			title = fmt.Sprintf("Clause %03d", i+1)
		}
		drafts[i] = domain.ClauseDraft{
			SequenceNumber: i + 1,
			Title:          title,
			Text:           sp.text,
			Type:           sp.typ,
			StartOffset:    sp.start,
			EndOffset:      sp.end,
		}
	}
	return drafts, nil
}

// paragraphBreak matches a blank line between paragraphs.
var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// splitParagraphs splits text on blank lines, tracking positions.
func splitParagraphs(text string) []paragraph {
	var paragraphs []paragraph
	pos := 0

	for _, raw := range paragraphBreak.Split(text, -1) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		start := strings.Index(text[pos:], trimmed)
		if start == -1 {
			start = 0
		}
		start += pos

		paragraphs = append(paragraphs, paragraph{
			text:  trimmed,
			start: start,
			end:   start + len(trimmed),
		})
		pos = start + len(trimmed)
	}

	return paragraphs
}

// identifySpans groups paragraphs into clause spans. A paragraph that
// matches a boundary marker starts a new span; others extend the
// current one.
func (s *Segmenter) identifySpans(paragraphs []paragraph) []span {
	var spans []span
	var current *span

	flush := func() {
		if current == nil {
			return
		}
		if sp := s.finaliseSpan(*current); sp != nil {
			spans = append(spans, *sp)
		}
		current = nil
	}

	for i, para := range paragraphs {
		if isClauseStart(para.text) || i == 0 {
			flush()
			current = &span{
				text:  para.text,
				title: extractTitle(para.text),
				start: para.start,
				end:   para.end,
			}
			continue
		}

		current.text += "\n\n" + para.text
		current.end = para.end
	}
	flush()

	return spans
}

// finaliseSpan classifies a span, discarding spans that are too short
// to be a clause at all.
func (s *Segmenter) finaliseSpan(sp span) *span {
	sp.text = strings.TrimSpace(sp.text)
	if len(sp.text) < 20 {
		return nil
	}
	sp.typ = classify(sp.text)
	return &sp
}

// postProcess drops tiny spans, merges short same-type neighbours and
// coarsens the result when segmentation produced too many clauses.
func (s *Segmenter) postProcess(spans []span) []span {
	var processed []span
	for _, sp := range spans {
		// Very short spans are likely headers or artefacts.
		if len(sp.text) < s.minClauseLen {
			continue
		}

		if len(processed) > 0 && len(sp.text) < s.mergeBelow && processed[len(processed)-1].typ == sp.typ {
			last := &processed[len(processed)-1]
			last.text += "\n\n" + sp.text
			last.end = sp.end
			continue
		}

		processed = append(processed, sp)
	}

	if len(processed) <= s.mergeAbove {
		return processed
	}

	// Too many small clauses: grow each to at least mergeTarget.
	var merged []span
	var current *span
	for _, sp := range processed {
		sp := sp
		switch {
		case current == nil:
			current = &sp
		case len(current.text) < mergeTarget:
			current.text += "\n\n" + sp.text
			current.end = sp.end
		default:
			merged = append(merged, *current)
			current = &sp
		}
	}
	if current != nil {
		merged = append(merged, *current)
	}
	return merged
}

// splitOversized splits any span longer than the maximum clause length
// into sequential parts at paragraph or sentence boundaries.
func (s *Segmenter) splitOversized(spans []span) []span {
	var out []span
	for _, sp := range spans {
		if len(sp.text) <= s.maxClauseLen {
			out = append(out, sp)
			continue
		}

		offset := sp.start
		remaining := sp.text
		part := 1
		for len(remaining) > 0 {
			cut := len(remaining)
			if cut > s.maxClauseLen {
				cut = breakPoint(remaining, s.maxClauseLen)
			}

			piece := strings.TrimSpace(remaining[:cut])
			if piece != "" {
				title := sp.title
				if part > 1 {
					title = fmt.Sprintf("%s (cont. %d)", sp.title, part)
				}
				out = append(out, span{
					text:  piece,
					title: title,
					typ:   sp.typ,
					start: offset,
					end:   offset + cut,
				})
				part++
			}

			offset += cut
			remaining = remaining[cut:]
		}
	}
	return out
}

// breakPoint finds a natural split position at or before limit,
// preferring paragraph breaks, then sentence ends, then whitespace.
func breakPoint(text string, limit int) int {
	window := text[:limit]

	if i := strings.LastIndex(window, "\n\n"); i > limit/2 {
		return i
	}
	if i := strings.LastIndexAny(window, ".!?"); i > limit/2 {
		return i + 1
	}
	if i := strings.LastIndexAny(window, " \t\n"); i > limit/2 {
		return i
	}
	return limit
}

// fallbackChunks produces fixed-size overlapping chunks when no
// structural segmentation survived.
func (s *Segmenter) fallbackChunks(text string) []span {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var spans []span
	start := 0
	part := 1
	for start < len(trimmed) {
		end := start + s.chunkSize
		if end > len(trimmed) {
			end = len(trimmed)
		}

		piece := strings.TrimSpace(trimmed[start:end])
		if piece != "" {
			spans = append(spans, span{
				text:  piece,
				title: fmt.Sprintf("Section %d", part),
				typ:   classify(piece),
				start: start,
				end:   end,
			})
			part++
		}

		if end == len(trimmed) {
			break
		}
		start += s.chunkSize - s.chunkOverlap
	}
	return spans
}
