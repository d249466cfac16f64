// Package score aggregates stored reports into the rankings shown by
// the stats command: most-cited books, most-analyzed channels and the
// most reference-dense sermons.
package score

import (
	"sort"

	"github.com/versemeter/versemeter/internal/model"
)

// BookRank is one book's total across all analyzed sermons.
type BookRank struct {
	Book  string `json:"book"`
	Count int    `json:"count"`
}

// ChannelRank is one channel's aggregate across its analyzed sermons.
type ChannelRank struct {
	Channel    string `json:"channel"`
	ChannelURL string `json:"channel_url,omitempty"`
	Location   string `json:"location,omitempty"`
	Videos     int    `json:"videos"`
	References int    `json:"references"`
}

// SermonRank is one sermon ordered by how many references it contains.
type SermonRank struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	References int    `json:"references"`
}

// Ranker computes rankings over a set of reports.
type Ranker struct {
	reports []*model.VideoReport
}

// NewRanker creates a ranker over the given reports.
func NewRanker(reports []*model.VideoReport) *Ranker {
	return &Ranker{reports: reports}
}

// TopBooks sums per-book counts across all reports and returns the
// limit highest. Books never cited are omitted. Ties break
// alphabetically so output is stable.
func (r *Ranker) TopBooks(limit int) []BookRank {
	totals := make(map[string]int)
	for _, report := range r.reports {
		for book, count := range report.Counts {
			if count > 0 {
				totals[book] += count
			}
		}
	}

	ranks := make([]BookRank, 0, len(totals))
	for book, count := range totals {
		ranks = append(ranks, BookRank{Book: book, Count: count})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return ranks[i].Book < ranks[j].Book
	})
	return truncateBooks(ranks, limit)
}

// TopChannels groups reports by channel and orders by total scripture
// references, then video count.
func (r *Ranker) TopChannels(limit int) []ChannelRank {
	byChannel := make(map[string]*ChannelRank)
	for _, report := range r.reports {
		name := report.Channel
		rank, ok := byChannel[name]
		if !ok {
			rank = &ChannelRank{
				Channel:    name,
				ChannelURL: report.ChannelURL,
				Location:   report.Location,
			}
			byChannel[name] = rank
		}
		rank.Videos++
		rank.References += report.Stats.ScriptureReferences
		if rank.Location == "" {
			rank.Location = report.Location
		}
	}

	ranks := make([]ChannelRank, 0, len(byChannel))
	for _, rank := range byChannel {
		ranks = append(ranks, *rank)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].References != ranks[j].References {
			return ranks[i].References > ranks[j].References
		}
		if ranks[i].Videos != ranks[j].Videos {
			return ranks[i].Videos > ranks[j].Videos
		}
		return ranks[i].Channel < ranks[j].Channel
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// TopSermons orders individual sermons by scripture reference count.
func (r *Ranker) TopSermons(limit int) []SermonRank {
	ranks := make([]SermonRank, 0, len(r.reports))
	for _, report := range r.reports {
		ranks = append(ranks, SermonRank{
			VideoID:    report.VideoID,
			Title:      report.Title,
			Channel:    report.Channel,
			References: report.Stats.ScriptureReferences,
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].References != ranks[j].References {
			return ranks[i].References > ranks[j].References
		}
		return ranks[i].VideoID < ranks[j].VideoID
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

func truncateBooks(ranks []BookRank, limit int) []BookRank {
	if limit > 0 && len(ranks) > limit {
		return ranks[:limit]
	}
	return ranks
}
