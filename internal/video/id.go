// Package video extracts video IDs from URLs and scrapes watch/channel
// pages for the metadata attached to every analysis report.
package video

import (
	"fmt"
	"regexp"
)

var bareIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// urlIDRes covers the URL shapes a video link arrives in.
var urlIDRes = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/live/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

// ExtractID pulls the 11-character video ID out of a URL. Bare IDs pass
// through unchanged.
func ExtractID(rawURL string) (string, error) {
	if bareIDRe.MatchString(rawURL) {
		return rawURL, nil
	}
	for _, re := range urlIDRes {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("not a recognizable video URL: %s", rawURL)
}
