package model

// Disposition is the final classification of one keyword occurrence.
// It is a pure function of capitalization and corroborating context:
//
//	capitalized + context   -> Valid
//	lowercase   + context   -> Suspect
//	capitalized + no context -> FalsePositive
//	lowercase   + no context -> NotCounted
type Disposition int

const (
	DispositionValid Disposition = iota
	DispositionSuspect
	DispositionFalsePositive
	DispositionNotCounted
)

func (d Disposition) String() string {
	switch d {
	case DispositionValid:
		return "valid"
	case DispositionSuspect:
		return "suspect"
	case DispositionFalsePositive:
		return "false_positive"
	default:
		return "not_counted"
	}
}

// Resolve maps (capitalized, hasPattern) to a Disposition. This table is
// the single source of truth for the four-way split.
func Resolve(capitalized, hasPattern bool) Disposition {
	switch {
	case capitalized && hasPattern:
		return DispositionValid
	case !capitalized && hasPattern:
		return DispositionSuspect
	case capitalized && !hasPattern:
		return DispositionFalsePositive
	default:
		return DispositionNotCounted
	}
}

// Reference is the persisted evidence for one occurrence: where it was
// spoken, the surrounding context, and which pattern corroborated it.
// Start is nil when no owning segment could be resolved for the offset.
type Reference struct {
	Start          *float64 `json:"start,omitempty"` // seconds, nil if unattributed
	Context        string   `json:"context"`         // "...window..." with ellipsis markers
	Text           string   `json:"text,omitempty"`  // owning segment text
	MatchedPattern string   `json:"matched_pattern"` // corroborating text, "" if none
}

// Buckets holds the per-keyword references split by disposition.
type Buckets struct {
	Valid         []Reference `json:"valid"`
	Suspect       []Reference `json:"suspect"`
	FalsePositive []Reference `json:"false_positive"`
	NotCounted    []Reference `json:"not_counted"`
}

// Append places a reference into the bucket for the given disposition.
func (b *Buckets) Append(d Disposition, ref Reference) {
	switch d {
	case DispositionValid:
		b.Valid = append(b.Valid, ref)
	case DispositionSuspect:
		b.Suspect = append(b.Suspect, ref)
	case DispositionFalsePositive:
		b.FalsePositive = append(b.FalsePositive, ref)
	case DispositionNotCounted:
		b.NotCounted = append(b.NotCounted, ref)
	}
}

// Total returns the number of references across all four buckets.
func (b *Buckets) Total() int {
	return len(b.Valid) + len(b.Suspect) + len(b.FalsePositive) + len(b.NotCounted)
}

// Stats aggregates occurrence classifications across all keywords of one
// analysis. The four disposition counters are mutually exclusive and sum
// to TotalMatches.
type Stats struct {
	TotalMatches        int `json:"total_matches"`
	CapitalizedMatches  int `json:"capitalized_matches"`
	ScriptureReferences int `json:"scripture_references"`
	SuspectReferences   int `json:"suspect_references"`
	FalsePositives      int `json:"false_positives"`
	NotCounted          int `json:"not_counted"`
}

// Result is the complete output of one classification pass. It is built
// fresh per call and never mutated after return.
type Result struct {
	Counts        map[string]int      `json:"counts"`         // keyword -> confirmed references
	SuspectCounts map[string]int      `json:"suspect_counts"` // keyword -> suspect references
	Positions     map[string]*Buckets `json:"positions"`
	Stats         Stats               `json:"stats"`
}
