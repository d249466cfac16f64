package classify

import (
	"strings"
	"testing"
)

func TestSelectBest_PriorityBeatsDistance(t *testing.T) {
	// "chapter 5" sits right next to the keyword, "10:3" further away but
	// still inside the gate. The verse reference must win on priority.
	window := "mark chapter 5 tells the story and then 10:3 appears"
	catalog := newPatternCatalog()

	cands := findCandidates(catalog, window, 0)
	best, ok := selectBest(cands)
	if !ok {
		t.Fatal("expected candidates in window")
	}
	if best.name != "verse_ref" {
		t.Errorf("best pattern = %s, want verse_ref", best.name)
	}
	if !strings.Contains(window[best.start:best.end], "10:3") {
		t.Errorf("best match text = %q, want it to contain 10:3", window[best.start:best.end])
	}
}

func TestSelectBest_DistanceBreaksTies(t *testing.T) {
	cands := []candidate{
		{name: "gospel", priority: 3, distance: 40},
		{name: "bible", priority: 3, distance: 10},
		{name: "says", priority: 1, distance: 1},
	}
	best, ok := selectBest(cands)
	if !ok {
		t.Fatal("expected a winner")
	}
	if best.name != "bible" {
		t.Errorf("best = %s, want bible (same priority, closer)", best.name)
	}
}

func TestSelectBest_Empty(t *testing.T) {
	if _, ok := selectBest(nil); ok {
		t.Error("empty candidate list must select nothing")
	}
}

func TestFindCandidates_ProximityGate(t *testing.T) {
	catalog := newPatternCatalog()

	// Keyword at offset 0, verse reference ~70 characters away: outside
	// the +/-50 gate, so it must not corroborate.
	window := "mark " + strings.Repeat("x", 65) + " 10:3 appears far away"
	for _, c := range findCandidates(catalog, window, 0) {
		if c.name == "verse_ref" {
			t.Errorf("verse_ref at distance %d should be outside the gate", c.distance)
		}
	}

	// Same shape but within the gate.
	window = "mark " + strings.Repeat("x", 20) + " 10:3 close by"
	found := false
	for _, c := range findCandidates(catalog, window, 0) {
		if c.name == "verse_ref" {
			found = true
		}
	}
	if !found {
		t.Error("verse_ref within the gate should be a candidate")
	}
}

func TestFindCandidates_AttributionVerbs(t *testing.T) {
	catalog := newPatternCatalog()
	window := "as paul writes to the church"

	var names []string
	for _, c := range findCandidates(catalog, window, 3) {
		names = append(names, c.name)
	}
	joined := strings.Join(names, ",")
	if !strings.Contains(joined, "writes") {
		t.Errorf("expected writes candidate, got %s", joined)
	}
}

func TestFindCandidates_InBeforeBookName(t *testing.T) {
	catalog := newPatternCatalog()

	window := "as we read in genesis this morning"
	found := false
	for _, c := range findCandidates(catalog, window, 11) {
		if c.name == "in_book" {
			found = true
			if c.priority != 0 {
				t.Errorf("in_book priority = %d, want 0", c.priority)
			}
		}
	}
	if !found {
		t.Error("expected in_book candidate before a recognized book name")
	}

	// "in" before a non-book word must not match.
	window = "we sat in silence for a while"
	for _, c := range findCandidates(catalog, window, 7) {
		if c.name == "in_book" {
			t.Error("in_book must not match before a non-book word")
		}
	}
}
