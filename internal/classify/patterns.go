package classify

import (
	"regexp"

	"github.com/versemeter/versemeter/internal/books"
)

const (
	// contextRadius is how many characters of transcript are kept on each
	// side of an occurrence when building its context window.
	contextRadius = 150

	// maxPatternDistance is the proximity gate: a pattern occurrence only
	// counts as corroboration when it starts within this many characters
	// of the keyword. Widening it inflates false positives.
	maxPatternDistance = 50
)

// contextPattern is one corroborating cue searched for in a context window.
// Higher priority wins over closer distance.
type contextPattern struct {
	name     string
	priority int
	re       *regexp.Regexp
}

// newPatternCatalog compiles the corroborating-pattern set. Order in the
// slice only matters for tie-breaking between candidates with identical
// priority and distance (first listed wins).
func newPatternCatalog() []contextPattern {
	alt := books.LowerAlternation()
	return []contextPattern{
		{"verse_ref", 10, regexp.MustCompile(`\s*\d+:\d+`)},
		{"verse_range", 9, regexp.MustCompile(`\s*\d+:\d+-\d+`)},
		{"chapter_verse", 8, regexp.MustCompile(`\s*\d+\s+\d+`)},
		{"chapter_verse_range", 7, regexp.MustCompile(`\s*\d+\s+\d+-\d+`)},
		{"chapter_word", 6, regexp.MustCompile(`chapter\s+\d+`)},
		{"verse_word", 5, regexp.MustCompile(`verse\s+\d+`)},
		{"book_of", 4, regexp.MustCompile(`book of\s+`)},
		{"gospel", 3, regexp.MustCompile(`\s+gospel`)},
		{"scripture", 3, regexp.MustCompile(`\s+scripture`)},
		{"bible", 3, regexp.MustCompile(`\s+bible`)},
		{"according_to", 2, regexp.MustCompile(`according to\s+`)},
		{"says_in", 2, regexp.MustCompile(`says in\s+`)},
		{"writes", 2, regexp.MustCompile(`\s+writes`)},
		{"says", 1, regexp.MustCompile(`\s+says`)},
		{"teaches", 1, regexp.MustCompile(`\s+teaches`)},
		{"tells", 1, regexp.MustCompile(`\s+tells`)},
		// RE2 has no lookahead, so the book name is part of the match;
		// distance is measured from the match start either way.
		{"in_book", 0, regexp.MustCompile(`\bin (?:` + alt + `)`)},
	}
}

// candidate is one pattern occurrence found inside a context window.
type candidate struct {
	name     string
	priority int
	start    int // offsets within the window
	end      int
	distance int // |keyword position - pattern start|
}

// findCandidates scans the lowercase window with every catalog pattern and
// returns all occurrences that pass the proximity gate.
func findCandidates(catalog []contextPattern, lowerWindow string, keywordPos int) []candidate {
	var out []candidate
	for i := range catalog {
		p := &catalog[i]
		for _, loc := range p.re.FindAllStringIndex(lowerWindow, -1) {
			distance := keywordPos - loc[0]
			if distance < 0 {
				distance = -distance
			}
			if distance > maxPatternDistance {
				continue
			}
			out = append(out, candidate{
				name:     p.name,
				priority: p.priority,
				start:    loc[0],
				end:      loc[1],
				distance: distance,
			})
		}
	}
	return out
}

// selectBest reduces the candidate list to the single winner: highest
// priority, ties broken by smallest distance, further ties by catalog
// order. Returns false when the list is empty.
func selectBest(cands []candidate) (candidate, bool) {
	if len(cands) == 0 {
		return candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.priority > best.priority ||
			(c.priority == best.priority && c.distance < best.distance) {
			best = c
		}
	}
	return best, true
}
