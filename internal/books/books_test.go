package books

import (
	"strings"
	"testing"
)

func TestCanonShape(t *testing.T) {
	if len(Canon) != 66 {
		t.Fatalf("Canon has %d books, want 66", len(Canon))
	}
	if Canon[0] != "Genesis" || Canon[38] != "Malachi" || Canon[39] != "Matthew" || Canon[65] != "Revelation" {
		t.Errorf("canon order wrong: %q, %q, %q, %q", Canon[0], Canon[38], Canon[39], Canon[65])
	}

	// Every book has a chapter count, and no stray entries exist.
	for _, book := range Canon {
		if _, ok := ChapterCount(book); !ok {
			t.Errorf("no chapter count for %s", book)
		}
	}
	if len(chapters) != len(Canon) {
		t.Errorf("chapters has %d entries, canon has %d", len(chapters), len(Canon))
	}
}

func TestChapterCount(t *testing.T) {
	cases := []struct {
		book string
		want int
	}{
		{"Genesis", 50},
		{"Psalms", 150},
		{"Jude", 1},
		{"Obadiah", 1},
		{"Revelation", 22},
	}
	for _, c := range cases {
		got, ok := ChapterCount(c.book)
		if !ok || got != c.want {
			t.Errorf("ChapterCount(%q) = %d, %v; want %d", c.book, got, ok, c.want)
		}
	}

	if _, ok := ChapterCount("Enoch"); ok {
		t.Error("ChapterCount accepted a non-canonical book")
	}
	// Lookup is by canonical name, not case-insensitive.
	if _, ok := ChapterCount("genesis"); ok {
		t.Error("ChapterCount should require canonical capitalization")
	}
}

func TestIsBook(t *testing.T) {
	for _, name := range []string{"Mark", "mark", " 1 Samuel ", "song of solomon"} {
		if !IsBook(name) {
			t.Errorf("IsBook(%q) = false", name)
		}
	}
	for _, name := range []string{"Enoch", "Marks", ""} {
		if IsBook(name) {
			t.Errorf("IsBook(%q) = true", name)
		}
	}
}

func TestLowerAlternation(t *testing.T) {
	alt := LowerAlternation()

	parts := strings.Split(alt, "|")
	if len(parts) != 66 {
		t.Fatalf("alternation has %d parts, want 66", len(parts))
	}
	for _, p := range parts {
		if p != strings.ToLower(p) {
			t.Errorf("alternation part %q is not lowercase", p)
		}
	}
	if !strings.Contains(alt, "song of solomon") {
		t.Error("multi-word books must keep their internal spaces")
	}
}
