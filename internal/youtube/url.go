// Package youtube talks to the video platform: it parses video IDs out of
// user-supplied URLs, looks up video metadata through the Data API and fetches
// caption transcripts.
package youtube

import (
	"net/url"
	"strings"
)

// Path prefixes checked in order when the watch-style ?v= parameter is absent.
var pathShapes = []string{"/embed/", "/v/", "/shorts/"}

// ExtractVideoID pulls the video ID out of a YouTube URL. It recognizes the
// standard watch URL, the youtu.be short link, embed URLs and shorts URLs.
// The host must actually be a YouTube host; "notyoutube.com/watch?v=x" does
// not parse. The ID is not validated against the platform here, that is left
// to the metadata and transcript lookups.
func ExtractVideoID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.ToLower(u.Host)
	switch host {
	case "www.youtube.com", "youtube.com", "m.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v, true
		}
		for _, shape := range pathShapes {
			if !strings.HasPrefix(u.Path, shape) {
				continue
			}
			id := strings.TrimPrefix(u.Path, shape)
			if idx := strings.Index(id, "/"); idx != -1 {
				id = id[:idx]
			}
			if id != "" {
				return id, true
			}
		}
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if id != "" && !strings.Contains(id, "/") {
			return id, true
		}
	}

	return "", false
}
