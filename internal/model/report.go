package model

import "time"

// VideoMeta is what the watch-page scrape yields for a video.
type VideoMeta struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	ChannelURL string `json:"channel_url,omitempty"`
	Location   string `json:"location,omitempty"`
}

// VideoReport is the full per-video analysis record persisted in the
// results store. Counts and SuspectCounts are expanded to the full canon
// so every report has the same shape.
type VideoReport struct {
	VideoID          string              `json:"video_id"`
	Title            string              `json:"title"`
	Channel          string              `json:"channel"`
	ChannelURL       string              `json:"channel_url,omitempty"`
	Location         string              `json:"location,omitempty"`
	TranscriptLength int                 `json:"transcript_length"`
	ProcessedAt      time.Time           `json:"processed_at"`
	Stats            Stats               `json:"stats"`
	Counts           map[string]int      `json:"counts"`
	SuspectCounts    map[string]int      `json:"suspect_counts"`
	Positions        map[string]*Buckets `json:"positions"`

	LLM *LLMSummary `json:"llm,omitempty"` // optional, never affects counts
}

// LLMSummary is an optional model-generated summary of the sermon. It is
// produced after classification and never feeds back into it.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
