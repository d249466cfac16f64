package model

// Segment is one timestamped slice of a transcript as produced by the
// captioning source. Segments arrive in transcript order; joining their
// text with SegmentJoiner reconstructs the full transcript.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"` // seconds from video start
}

// SegmentJoiner is the separator inserted between segment texts when the
// full transcript is assembled. Offset math in the classifier accounts for
// its length per boundary.
const SegmentJoiner = " "
