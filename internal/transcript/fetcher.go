// Package transcript retrieves the caption track for a video and turns it
// into the (full text, timed segments) pair the classifier consumes.
// Caption requests are frequently blocked by IP, so the fetcher rotates
// through a configured proxy list, trying each in order and keeping
// per-attempt logs.
package transcript

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/versemeter/versemeter/internal/classify"
	"github.com/versemeter/versemeter/internal/fetch"
	"github.com/versemeter/versemeter/internal/model"
)

const defaultWatchBase = "https://www.youtube.com/watch?v="

// captionTrackRe pulls the first caption track URL out of the watch page's
// embedded player response.
var captionTrackRe = regexp.MustCompile(`"captionTracks":\[\{"baseUrl":"([^"]+)"`)

// Fetcher retrieves transcripts.
type Fetcher struct {
	client    *fetch.Client
	proxies   []string
	watchBase string
}

// NewFetcher creates a transcript fetcher. proxies may be empty, in which
// case requests go direct.
func NewFetcher(client *fetch.Client, proxies []string) *Fetcher {
	return &Fetcher{
		client:    client,
		proxies:   proxies,
		watchBase: defaultWatchBase,
	}
}

// Result is a retrieved transcript: the joined text, its timed segments,
// and the per-attempt log trail.
type Result struct {
	Text     string
	Segments []model.Segment
	Logs     []string
}

// Fetch retrieves the transcript for a video ID, rotating through the
// proxy list. Each failed attempt is logged and the next proxy is tried;
// the error returned after exhausting all routes wraps the last failure.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (*Result, error) {
	routes := f.routes()

	var logs []string
	var lastErr error
	for _, r := range routes {
		logs = append(logs, fmt.Sprintf("trying %s", r.label))

		segments, err := f.attempt(ctx, r.client, videoID)
		if err != nil {
			logs = append(logs, fmt.Sprintf("%s failed: %v", r.label, err))
			lastErr = err
			continue
		}

		logs = append(logs, fmt.Sprintf("success with %s", r.label))
		return &Result{
			Text:     classify.JoinSegments(segments),
			Segments: segments,
			Logs:     logs,
		}, nil
	}

	return &Result{Logs: logs}, fmt.Errorf("could not retrieve transcript after %d attempt(s): %w", len(routes), lastErr)
}

type route struct {
	label  string
	client *fetch.Client
}

// routes expands the proxy list into fetch clients; with no proxies
// configured the single route is a direct connection.
func (f *Fetcher) routes() []route {
	if len(f.proxies) == 0 {
		return []route{{label: "direct connection", client: f.client}}
	}
	var routes []route
	for _, p := range f.proxies {
		c, err := f.client.WithProxy(p)
		if err != nil {
			continue
		}
		routes = append(routes, route{label: "proxy " + p, client: c})
	}
	if len(routes) == 0 {
		routes = []route{{label: "direct connection", client: f.client}}
	}
	return routes
}

// attempt runs one full retrieval through one client: watch page, caption
// track URL, timedtext XML.
func (f *Fetcher) attempt(ctx context.Context, client *fetch.Client, videoID string) ([]model.Segment, error) {
	page, err := client.GetWithRetry(ctx, f.watchBase+videoID)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	trackURL, err := extractCaptionTrackURL(page.Body)
	if err != nil {
		return nil, err
	}

	track, err := client.GetWithRetry(ctx, trackURL)
	if err != nil {
		return nil, fmt.Errorf("caption track: %w", err)
	}

	segments, err := ParseTimedText([]byte(track.Body))
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("caption track for %s is empty", videoID)
	}
	return segments, nil
}

// extractCaptionTrackURL finds the first caption track in the player
// response JSON embedded in the watch page. The URL arrives JSON-escaped.
func extractCaptionTrackURL(page string) (string, error) {
	m := captionTrackRe.FindStringSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("no caption track found on watch page")
	}
	u := m[1]
	u = strings.ReplaceAll(u, `\u0026`, "&")
	u = strings.ReplaceAll(u, `\/`, "/")
	return u, nil
}
