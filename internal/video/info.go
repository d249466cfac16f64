package video

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/versemeter/versemeter/internal/fetch"
	"github.com/versemeter/versemeter/internal/model"
	"github.com/versemeter/versemeter/internal/util"
)

const defaultSiteBase = "https://www.youtube.com"

var (
	authorRe      = regexp.MustCompile(`"author":"([^"]+)"`)
	authorLinkRe  = regexp.MustCompile(`<link itemprop="name" content="([^"]+)">`)
	channelIDRe   = regexp.MustCompile(`"channelId":"([^"]+)"`)
	descriptionRe = regexp.MustCompile(`"description":"([^"]+)"`)
	locationRe    = regexp.MustCompile(`(?i)<td[^>]*>Location</td>\s*<td[^>]*>([^<]+)</td>`)
)

// InfoFetcher scrapes video and channel metadata from page HTML.
type InfoFetcher struct {
	client   *fetch.Client
	robots   *util.RobotsChecker
	siteBase string
}

// NewInfoFetcher creates a metadata fetcher that honors robots.txt on the
// pages it scrapes.
func NewInfoFetcher(client *fetch.Client, userAgent string, timeout time.Duration) *InfoFetcher {
	return &InfoFetcher{
		client:   client,
		robots:   util.NewRobotsChecker(userAgent, timeout),
		siteBase: defaultSiteBase,
	}
}

// FetchInfo scrapes the watch page for title, channel name and channel
// URL. Missing fields degrade to placeholders rather than failing the
// analysis; only an unreachable page is an error.
func (f *InfoFetcher) FetchInfo(ctx context.Context, videoID string) (model.VideoMeta, error) {
	meta := model.VideoMeta{
		VideoID: videoID,
		Title:   "Unknown Title",
		Channel: "Unknown Channel",
	}

	pageURL := f.siteBase + "/watch?v=" + videoID
	if allowed, _, _ := f.robots.CanFetch(ctx, pageURL); !allowed {
		return meta, fmt.Errorf("robots.txt disallows fetching %s", pageURL)
	}

	page, err := f.client.GetWithRetry(ctx, pageURL)
	if err != nil {
		return meta, fmt.Errorf("watch page: %w", err)
	}

	if title := extractTitle(page.Body); title != "" {
		meta.Title = strings.TrimSpace(strings.TrimSuffix(title, " - YouTube"))
	}

	if m := authorRe.FindStringSubmatch(page.Body); m != nil {
		meta.Channel = strings.TrimSpace(m[1])
	} else if m := authorLinkRe.FindStringSubmatch(page.Body); m != nil {
		meta.Channel = strings.TrimSpace(m[1])
	}

	if m := channelIDRe.FindStringSubmatch(page.Body); m != nil {
		meta.ChannelURL = f.siteBase + "/channel/" + m[1]
	}

	return meta, nil
}

// FetchChannelLocation scrapes the channel about page for a location.
// Empty when the channel URL is unknown or the page has none.
func (f *InfoFetcher) FetchChannelLocation(ctx context.Context, channelURL string) string {
	body, err := f.aboutPage(ctx, channelURL)
	if err != nil {
		return ""
	}
	if m := locationRe.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// FetchChannelDescription scrapes the channel about page for its
// description. Empty on any failure.
func (f *InfoFetcher) FetchChannelDescription(ctx context.Context, channelURL string) string {
	body, err := f.aboutPage(ctx, channelURL)
	if err != nil {
		return ""
	}
	if m := descriptionRe.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func (f *InfoFetcher) aboutPage(ctx context.Context, channelURL string) (string, error) {
	if channelURL == "" {
		return "", fmt.Errorf("no channel URL")
	}
	aboutURL := strings.TrimSuffix(channelURL, "/") + "/about"
	if allowed, _, _ := f.robots.CanFetch(ctx, aboutURL); !allowed {
		return "", fmt.Errorf("robots.txt disallows fetching %s", aboutURL)
	}
	page, err := f.client.GetWithRetry(ctx, aboutURL)
	if err != nil {
		return "", err
	}
	return page.Body, nil
}

// extractTitle walks the parsed document for the <title> element. The
// title is real markup (unlike the JSON fields), so it goes through the
// HTML parser rather than a regex.
func extractTitle(page string) string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = n.FirstChild.Data
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}
