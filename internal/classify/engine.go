// Package classify locates Bible-book keywords in a transcript and decides,
// occurrence by occurrence, whether each one is a genuine scripture
// reference or a coincidental word ("Mark 10:3 says" vs "my friend Mark").
//
// The decision combines two signals: whether the matched word carries the
// keyword's canonical capitalization, and whether the surrounding context
// contains a corroborating pattern (verse syntax, attribution verbs,
// "book of", ...). The pass is a pure batch transform: fresh accumulators
// per call, no shared state, identical inputs give identical outputs.
package classify

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/versemeter/versemeter/internal/books"
	"github.com/versemeter/versemeter/internal/model"
)

// Engine classifies keyword occurrences. Safe for concurrent use: all
// state is immutable after construction.
type Engine struct {
	catalog  []contextPattern
	chapters func(string) (int, bool)
}

// NewEngine builds an engine over the canonical book data.
func NewEngine() *Engine {
	return &Engine{
		catalog:  newPatternCatalog(),
		chapters: books.ChapterCount,
	}
}

// Analyze runs one classification pass over the transcript. Keywords are
// matched case-insensitively on word boundaries; segments attribute
// timestamps to occurrences. Empty transcripts and absent keywords are
// handled by policy: zero counts, empty buckets.
//
// All byte offsets index the transcript as given. Lowercasing can change
// a rune's byte length (U+0130 and the Kelvin sign both shrink), so it is
// confined to each context window and never used for offset arithmetic.
func (e *Engine) Analyze(transcript string, keywords []string, segments []model.Segment) *model.Result {
	index := NewSegmentIndex(segments, len(model.SegmentJoiner))

	res := &model.Result{
		Counts:        make(map[string]int, len(keywords)),
		SuspectCounts: make(map[string]int, len(keywords)),
		Positions:     make(map[string]*model.Buckets, len(keywords)),
	}

	for _, keyword := range keywords {
		buckets := &model.Buckets{}
		res.Positions[keyword] = buckets
		scanner := newKeywordScanner(keyword)

		valid, suspect := 0, 0
		for _, occ := range scanner.occurrences(transcript) {
			res.Stats.TotalMatches++

			capitalized := transcript[occ.start:occ.end] == keyword
			if capitalized {
				res.Stats.CapitalizedMatches++
			}

			window := extractWindow(transcript, occ.start, occ.end)
			_, matchedText, hasPattern := e.matchContext(window, keyword, scanner.chapter)

			ref := model.Reference{
				Context:        "..." + window.original + "...",
				MatchedPattern: matchedText,
			}
			if seg, ok := index.Locate(occ.start); ok {
				start := seg.Start
				ref.Start = &start
				ref.Text = seg.Text
			}

			d := model.Resolve(capitalized, hasPattern)
			buckets.Append(d, ref)
			switch d {
			case model.DispositionValid:
				valid++
				res.Stats.ScriptureReferences++
			case model.DispositionSuspect:
				suspect++
				res.Stats.SuspectReferences++
			case model.DispositionFalsePositive:
				res.Stats.FalsePositives++
			case model.DispositionNotCounted:
				res.Stats.NotCounted++
			}
		}

		res.Counts[keyword] = valid
		res.SuspectCounts[keyword] = suspect
	}

	return res
}

// occurrence is one whole-word keyword match, as byte offsets into the
// transcript.
type occurrence struct {
	start, end int
}

// keywordScanner bundles the per-keyword expressions so each compiles once
// per Analyze pass: the whole-word occurrence scan and the bare
// "Keyword N" chapter fallback.
type keywordScanner struct {
	word    *regexp.Regexp
	chapter *regexp.Regexp
}

func newKeywordScanner(keyword string) keywordScanner {
	quoted := regexp.QuoteMeta(strings.ToLower(keyword))
	return keywordScanner{
		word:    regexp.MustCompile(`(?i)\b` + quoted + `\b`),
		chapter: regexp.MustCompile(`\b` + quoted + `\s+(\d+)`),
	}
}

// occurrences finds every whole-word match of the keyword, left to right,
// non-overlapping. Matching is case-insensitive against the original text,
// so offsets always index the transcript as given. Multi-word keywords
// ("1 Samuel") match literally, internal space included.
func (s keywordScanner) occurrences(transcript string) []occurrence {
	locs := s.word.FindAllStringIndex(transcript, -1)
	occs := make([]occurrence, len(locs))
	for i, loc := range locs {
		occs[i] = occurrence{start: loc[0], end: loc[1]}
	}
	return occs
}

// contextWindow is the bounded text around one occurrence. The lowercase
// copy drives pattern search; the original-case copy supplies evidence
// text for display.
type contextWindow struct {
	original   string
	lower      string
	keywordPos int // occurrence offset within the lowered window
}

// extractWindow slices the bounded context around one occurrence and
// lowercases it for pattern search. The keyword position is recomputed in
// the lowered copy because lowercasing the prefix may shift byte offsets.
func extractWindow(transcript string, occStart, occEnd int) contextWindow {
	start := occStart - contextRadius
	if start < 0 {
		start = 0
	}
	end := occEnd + contextRadius
	if end > len(transcript) {
		end = len(transcript)
	}
	original := transcript[start:end]
	return contextWindow{
		original:   original,
		lower:      strings.ToLower(original),
		keywordPos: len(strings.ToLower(transcript[start:occStart])),
	}
}

// evidence maps a span found in the lowered window back to the original
// text. Lowercasing maps one rune to one rune, so walking both copies in
// parallel keeps the spans aligned even when byte lengths differ. If the
// walk runs off either copy, the lowered span is returned as-is.
func (w contextWindow) evidence(start, end int) string {
	oi, li := 0, 0
	oStart := 0
	for li < end {
		if oi >= len(w.original) || li >= len(w.lower) {
			return w.lower[start:end]
		}
		if li == start {
			oStart = oi
		}
		_, on := utf8.DecodeRuneInString(w.original[oi:])
		_, ln := utf8.DecodeRuneInString(w.lower[li:])
		oi += on
		li += ln
	}
	return w.original[oStart:oi]
}

// matchContext searches the window for the best corroborating pattern.
// Returns the pattern name, the matched original-case text (trimmed), and
// whether anything corroborated. When the catalog finds nothing, a bare
// "Keyword N" is accepted if N is a plausible chapter number for the book.
func (e *Engine) matchContext(w contextWindow, keyword string, chapterRe *regexp.Regexp) (string, string, bool) {
	cands := findCandidates(e.catalog, w.lower, w.keywordPos)
	if best, ok := selectBest(cands); ok {
		return best.name, strings.TrimSpace(w.evidence(best.start, best.end)), true
	}
	return e.fallbackChapter(w, keyword, chapterRe)
}

// fallbackChapter implements the chapter-number rule: "Genesis 12" counts
// because Genesis has 50 chapters, "Jude 12" does not because Jude has
// one. Tagged chapter_number to keep it distinguishable from the catalog.
func (e *Engine) fallbackChapter(w contextWindow, keyword string, re *regexp.Regexp) (string, string, bool) {
	max, ok := e.chapters(keyword)
	if !ok {
		return "", "", false
	}
	m := re.FindStringSubmatchIndex(w.lower)
	if m == nil {
		return "", "", false
	}
	n, err := strconv.Atoi(w.lower[m[2]:m[3]])
	if err != nil || n < 1 || n > max {
		return "", "", false
	}
	return "chapter_number", strings.TrimSpace(w.evidence(m[0], m[1])), true
}
