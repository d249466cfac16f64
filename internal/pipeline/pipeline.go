// Package pipeline orchestrates a full video analysis: resolve the video
// ID, scrape metadata, gate on channel validation, retrieve the
// transcript, classify references and persist the report.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/versemeter/versemeter/internal/books"
	"github.com/versemeter/versemeter/internal/cache"
	"github.com/versemeter/versemeter/internal/classify"
	"github.com/versemeter/versemeter/internal/fetch"
	"github.com/versemeter/versemeter/internal/llm"
	"github.com/versemeter/versemeter/internal/model"
	"github.com/versemeter/versemeter/internal/store"
	"github.com/versemeter/versemeter/internal/transcript"
	"github.com/versemeter/versemeter/internal/validate"
	"github.com/versemeter/versemeter/internal/video"
)

// ErrChannelRejected marks a video skipped because its channel failed
// sermon-channel validation.
var ErrChannelRejected = errors.New("channel failed validation")

// Pipeline runs analyses. Safe for concurrent use by the batch workers:
// every collaborator is either immutable or internally synchronized.
type Pipeline struct {
	info        *video.InfoFetcher
	validator   *validate.ChannelValidator
	transcripts *transcript.Fetcher
	engine      *classify.Engine
	cache       cache.Cache
	store       *store.Store
	renderer    *Renderer
	summarizer  *llm.Summarizer
	config      *model.Config
}

// New creates a pipeline from configuration. The store may be nil, in
// which case reports are not persisted.
func New(cfg *model.Config, st *store.Store) *Pipeline {
	client := fetch.NewClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, "", "", "")
	info := video.NewInfoFetcher(client, cfg.HTTP.UserAgent, cfg.HTTP.Timeout)

	var c cache.Cache = cache.Nop{}
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		info:        info,
		validator:   validate.NewChannelValidator(info, cfg.Validation.Keywords, cfg.Validation.Enabled),
		transcripts: transcript.NewFetcher(client, cfg.HTTP.Proxies),
		engine:      classify.NewEngine(),
		cache:       c,
		store:       st,
		renderer:    NewRenderer(cfg.Output.IncludeFooter),
		summarizer:  summarizer,
		config:      cfg,
	}
}

// cachedTranscript is the cache envelope for a retrieved transcript.
type cachedTranscript struct {
	Segments []model.Segment `json:"segments"`
}

// AnalyzeURL runs the full pipeline for one video URL or bare ID and
// persists the resulting report.
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL string) (*model.VideoReport, error) {
	videoID, err := video.ExtractID(rawURL)
	if err != nil {
		return nil, err
	}

	meta, err := p.fetchMeta(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("video metadata: %w", err)
	}

	if v := p.validator.Validate(ctx, meta.ChannelURL); !v.Accepted {
		return nil, fmt.Errorf("%w: %s", ErrChannelRejected, v.Reason)
	}

	if meta.ChannelURL != "" && meta.Location == "" {
		meta.Location = p.info.FetchChannelLocation(ctx, meta.ChannelURL)
	}

	text, segments, err := p.fetchTranscript(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}

	return p.analyze(ctx, meta, text, segments)
}

// Reprocess re-runs classification for an already-analyzed video using
// the cached transcript, keeping the stored metadata. Used after
// pattern or book-data changes.
func (p *Pipeline) Reprocess(ctx context.Context, videoID string) (*model.VideoReport, error) {
	if p.store == nil {
		return nil, fmt.Errorf("no results store configured")
	}
	previous, ok := p.store.Get(videoID)
	if !ok {
		return nil, fmt.Errorf("video %s has no stored report", videoID)
	}

	segments, ok := p.cachedSegments(videoID)
	if !ok {
		// Cache expired; refetch rather than fail the reprocess.
		text, fresh, err := p.fetchTranscript(ctx, videoID)
		if err != nil {
			return nil, fmt.Errorf("transcript: %w", err)
		}
		return p.analyze(ctx, metaFromReport(previous), text, fresh)
	}

	return p.analyze(ctx, metaFromReport(previous), classify.JoinSegments(segments), segments)
}

// analyze is the shared tail: classify, build the report, attach the
// optional summary, persist.
func (p *Pipeline) analyze(ctx context.Context, meta model.VideoMeta, text string, segments []model.Segment) (*model.VideoReport, error) {
	result := p.engine.Analyze(text, books.Canon, segments)

	report := &model.VideoReport{
		VideoID:          meta.VideoID,
		Title:            meta.Title,
		Channel:          meta.Channel,
		ChannelURL:       meta.ChannelURL,
		Location:         meta.Location,
		TranscriptLength: len(text),
		ProcessedAt:      time.Now().UTC(),
		Stats:            result.Stats,
		Counts:           result.Counts,
		SuspectCounts:    result.SuspectCounts,
		Positions:        result.Positions,
	}

	// Summary comes after classification and never feeds back into it.
	if p.summarizer.IsEnabled() {
		report.LLM = p.summarizer.GenerateSummary(ctx, report)
	}

	if p.store != nil {
		if err := p.store.Upsert(report); err != nil {
			return nil, fmt.Errorf("persist report: %w", err)
		}
	}
	return report, nil
}

// RenderReport writes the report to the requested outputs and prints
// the console summary. The LLM summary, when present, also goes to its
// own .llm.md file beside the markdown report.
func (p *Pipeline) RenderReport(report *model.VideoReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM summary: %s\n", llmPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// fetchMeta scrapes video metadata, caching it against the watch URL.
func (p *Pipeline) fetchMeta(ctx context.Context, videoID string) (model.VideoMeta, error) {
	key := cache.PageKey("meta:" + videoID)
	if data, ok := p.cache.Get(key); ok {
		var meta model.VideoMeta
		if err := json.Unmarshal(data, &meta); err == nil {
			return meta, nil
		}
	}

	meta, err := p.info.FetchInfo(ctx, videoID)
	if err != nil {
		return meta, err
	}

	if data, err := json.Marshal(meta); err == nil {
		_ = p.cache.Set(key, data, 0)
	}
	return meta, nil
}

// fetchTranscript returns the transcript for a video, from cache when
// possible. Attempt logs from live fetches go to stderr when verbose.
func (p *Pipeline) fetchTranscript(ctx context.Context, videoID string) (string, []model.Segment, error) {
	if segments, ok := p.cachedSegments(videoID); ok {
		return classify.JoinSegments(segments), segments, nil
	}

	result, err := p.transcripts.Fetch(ctx, videoID)
	if p.config.Output.Verbose {
		for _, line := range result.Logs {
			fmt.Fprintf(os.Stderr, "[transcript %s] %s\n", videoID, line)
		}
	}
	if err != nil {
		return "", nil, err
	}

	if data, err := json.Marshal(cachedTranscript{Segments: result.Segments}); err == nil {
		_ = p.cache.Set(cache.TranscriptKey(videoID), data, 0)
	}
	return result.Text, result.Segments, nil
}

func (p *Pipeline) cachedSegments(videoID string) ([]model.Segment, bool) {
	data, ok := p.cache.Get(cache.TranscriptKey(videoID))
	if !ok {
		return nil, false
	}
	var entry cachedTranscript
	if err := json.Unmarshal(data, &entry); err != nil || len(entry.Segments) == 0 {
		return nil, false
	}
	return entry.Segments, true
}

func metaFromReport(r *model.VideoReport) model.VideoMeta {
	return model.VideoMeta{
		VideoID:    r.VideoID,
		Title:      r.Title,
		Channel:    r.Channel,
		ChannelURL: r.ChannelURL,
		Location:   r.Location,
	}
}
