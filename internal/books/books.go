// Package books holds the canonical Bible book list and chapter counts used
// as static lookup data by the classifier. The tables are package-level
// constants in spirit: they are populated once and never mutated.
package books

import "strings"

// Canon is the ordered list of the 66 books of the Protestant canon.
// Order matters: downstream reports expand counts in this order.
var Canon = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles",
	"Ezra", "Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Solomon", "Isaiah", "Jeremiah",
	"Lamentations", "Ezekiel", "Daniel", "Hosea", "Joel",
	"Amos", "Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	"Matthew", "Mark", "Luke", "John", "Acts", "Romans",
	"1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians",
	"1 Timothy", "2 Timothy", "Titus", "Philemon", "Hebrews",
	"James", "1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}

// chapters maps each canonical book name to its chapter count, used to
// validate bare "Book N" references.
var chapters = map[string]int{
	"Genesis": 50, "Exodus": 40, "Leviticus": 27, "Numbers": 36, "Deuteronomy": 34,
	"Joshua": 24, "Judges": 21, "Ruth": 4, "1 Samuel": 31, "2 Samuel": 24,
	"1 Kings": 22, "2 Kings": 25, "1 Chronicles": 29, "2 Chronicles": 36,
	"Ezra": 10, "Nehemiah": 13, "Esther": 10, "Job": 42, "Psalms": 150,
	"Proverbs": 31, "Ecclesiastes": 12, "Song of Solomon": 8, "Isaiah": 66,
	"Jeremiah": 52, "Lamentations": 5, "Ezekiel": 48, "Daniel": 12, "Hosea": 14,
	"Joel": 3, "Amos": 9, "Obadiah": 1, "Jonah": 4, "Micah": 7, "Nahum": 3,
	"Habakkuk": 3, "Zephaniah": 3, "Haggai": 2, "Zechariah": 14, "Malachi": 4,
	"Matthew": 28, "Mark": 16, "Luke": 24, "John": 21, "Acts": 28,
	"Romans": 16, "1 Corinthians": 16, "2 Corinthians": 13, "Galatians": 6,
	"Ephesians": 6, "Philippians": 4, "Colossians": 4, "1 Thessalonians": 5,
	"2 Thessalonians": 3, "1 Timothy": 6, "2 Timothy": 4, "Titus": 3, "Philemon": 1,
	"Hebrews": 13, "James": 5, "1 Peter": 5, "2 Peter": 3, "1 John": 5,
	"2 John": 1, "3 John": 1, "Jude": 1, "Revelation": 22,
}

// ChapterCount returns the chapter count for a canonical book name.
func ChapterCount(book string) (int, bool) {
	n, ok := chapters[book]
	return n, ok
}

// IsBook reports whether name is a canonical book name (case-insensitive).
func IsBook(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, b := range Canon {
		if strings.ToLower(b) == lower {
			return true
		}
	}
	return false
}

// LowerAlternation returns the lowercased book names joined with "|" for
// embedding in a regular expression alternation.
func LowerAlternation() string {
	lowered := make([]string, len(Canon))
	for i, b := range Canon {
		lowered[i] = strings.ToLower(b)
	}
	return strings.Join(lowered, "|")
}
