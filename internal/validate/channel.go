// Package validate decides whether a channel looks like a sermon
// channel before its videos are analyzed.
package validate

import (
	"context"
	"strings"

	"github.com/versemeter/versemeter/internal/video"
)

// DefaultKeywords are the channel-description keywords that mark a
// channel as a sermon channel when no keywords are configured.
var DefaultKeywords = []string{"church", "christ", "jesus"}

// Result describes a validation decision.
type Result struct {
	Accepted bool   // channel passed validation (or validation is off)
	Matched  string // keyword that matched, empty when none did
	Reason   string // human-readable explanation for logs and reports
}

// ChannelValidator checks channel descriptions for sermon keywords.
type ChannelValidator struct {
	fetcher  *video.InfoFetcher
	keywords []string
	enabled  bool
}

// NewChannelValidator creates a validator. An empty keyword list falls
// back to DefaultKeywords.
func NewChannelValidator(fetcher *video.InfoFetcher, keywords []string, enabled bool) *ChannelValidator {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &ChannelValidator{
		fetcher:  fetcher,
		keywords: lowered,
		enabled:  enabled,
	}
}

// Validate fetches the channel description and checks it for keywords.
// A missing description is not proof the channel is unrelated, so it
// passes with a reason rather than blocking the analysis.
func (v *ChannelValidator) Validate(ctx context.Context, channelURL string) Result {
	if !v.enabled {
		return Result{Accepted: true, Reason: "validation disabled"}
	}
	if channelURL == "" {
		return Result{Accepted: true, Reason: "channel URL unknown, skipping validation"}
	}

	description := v.fetcher.FetchChannelDescription(ctx, channelURL)
	if description == "" {
		return Result{Accepted: true, Reason: "no channel description available"}
	}

	return v.check(description)
}

// check applies the keyword test to a description.
func (v *ChannelValidator) check(description string) Result {
	lowered := strings.ToLower(description)
	for _, kw := range v.keywords {
		if strings.Contains(lowered, kw) {
			return Result{
				Accepted: true,
				Matched:  kw,
				Reason:   "description mentions " + kw,
			}
		}
	}
	return Result{
		Accepted: false,
		Reason:   "description mentions none of: " + strings.Join(v.keywords, ", "),
	}
}
