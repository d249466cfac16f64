package score

import (
	"testing"

	"github.com/versemeter/versemeter/internal/model"
)

func rankReports() []*model.VideoReport {
	return []*model.VideoReport{
		{
			VideoID: "aaaaaaaaaaa",
			Title:   "On Grace",
			Channel: "Grace Church",
			Counts:  map[string]int{"Mark": 5, "Romans": 2, "Jude": 0},
			Stats:   model.Stats{ScriptureReferences: 7},
		},
		{
			VideoID: "bbbbbbbbbbb",
			Title:   "On Faith",
			Channel: "Grace Church",
			Counts:  map[string]int{"Romans": 4},
			Stats:   model.Stats{ScriptureReferences: 4},
		},
		{
			VideoID:  "ccccccccccc",
			Title:    "On Hope",
			Channel:  "Hope Chapel",
			Location: "Austin, Texas",
			Counts:   map[string]int{"Mark": 1, "Psalms": 6},
			Stats:    model.Stats{ScriptureReferences: 7},
		},
	}
}

func TestTopBooks(t *testing.T) {
	r := NewRanker(rankReports())

	books := r.TopBooks(2)
	if len(books) != 2 {
		t.Fatalf("got %d books", len(books))
	}
	// Mark and Romans both total 6; alphabetical tie-break puts Mark first.
	if books[0].Book != "Mark" || books[0].Count != 6 {
		t.Errorf("first = %+v", books[0])
	}
	if books[1].Book != "Psalms" && books[1].Book != "Romans" {
		t.Errorf("second = %+v", books[1])
	}

	// Zero-count books never appear.
	for _, b := range r.TopBooks(0) {
		if b.Book == "Jude" {
			t.Error("zero-count book ranked")
		}
	}
}

func TestTopBooks_TieBreak(t *testing.T) {
	r := NewRanker(rankReports())
	all := r.TopBooks(0)
	if len(all) != 3 {
		t.Fatalf("got %d books: %+v", len(all), all)
	}
	// Mark 6, Psalms 6, Romans 6: all tied, alphabetical order.
	want := []string{"Mark", "Psalms", "Romans"}
	for i, b := range all {
		if b.Book != want[i] {
			t.Errorf("rank %d = %q, want %q", i, b.Book, want[i])
		}
	}
}

func TestTopChannels(t *testing.T) {
	r := NewRanker(rankReports())

	channels := r.TopChannels(0)
	if len(channels) != 2 {
		t.Fatalf("got %d channels", len(channels))
	}
	if channels[0].Channel != "Grace Church" || channels[0].References != 11 || channels[0].Videos != 2 {
		t.Errorf("first = %+v", channels[0])
	}
	if channels[1].Location != "Austin, Texas" {
		t.Errorf("second = %+v", channels[1])
	}
}

func TestTopSermons(t *testing.T) {
	r := NewRanker(rankReports())

	sermons := r.TopSermons(2)
	if len(sermons) != 2 {
		t.Fatalf("got %d sermons", len(sermons))
	}
	// Two sermons tied at 7; video ID tie-break.
	if sermons[0].VideoID != "aaaaaaaaaaa" || sermons[1].VideoID != "ccccccccccc" {
		t.Errorf("order: %q, %q", sermons[0].VideoID, sermons[1].VideoID)
	}
}

func TestRanker_Empty(t *testing.T) {
	r := NewRanker(nil)
	if got := r.TopBooks(10); len(got) != 0 {
		t.Errorf("TopBooks on empty = %+v", got)
	}
	if got := r.TopChannels(10); len(got) != 0 {
		t.Errorf("TopChannels on empty = %+v", got)
	}
	if got := r.TopSermons(10); len(got) != 0 {
		t.Errorf("TopSermons on empty = %+v", got)
	}
}
