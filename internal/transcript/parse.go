package transcript

import (
	"encoding/xml"
	"fmt"
	"html"
	"strings"

	"github.com/versemeter/versemeter/internal/model"
)

// timedText mirrors the caption track XML: a flat list of <text> elements
// with start/dur attributes in seconds.
type timedText struct {
	XMLName xml.Name         `xml:"transcript"`
	Texts   []timedTextEntry `xml:"text"`
}

type timedTextEntry struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

// ParseTimedText parses a timedtext XML document into ordered segments.
// Caption bodies are entity-escaped twice in the wild ("&amp;#39;"), so a
// second unescape pass runs after XML decoding. Empty entries are dropped.
func ParseTimedText(data []byte) ([]model.Segment, error) {
	var doc timedText
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}

	segments := make([]model.Segment, 0, len(doc.Texts))
	for _, entry := range doc.Texts {
		text := normalizeCaption(entry.Body)
		if text == "" {
			continue
		}
		segments = append(segments, model.Segment{
			Text:  text,
			Start: entry.Start,
		})
	}
	return segments, nil
}

// normalizeCaption unescapes residual entities and flattens line breaks so
// segment text is a single line.
func normalizeCaption(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
