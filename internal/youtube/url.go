package youtube

import (
	"net/url"
	"strings"
)

const (
	videoHostSuffix = "youtube.com"
	shortLinkHost   = "youtu.be"

	watchPath    = "/watch"
	shortsPrefix = "/shorts/"
	livePrefix   = "/live/"
)

// IsAcceptable reports whether rawURL points at a single YouTube video the
// service can summarize. Malformed input yields false.
func IsAcceptable(rawURL string) bool {
	_, ok := VideoID(rawURL)
	return ok
}

// VideoID returns the video identifier segment of an acceptable URL. The
// second result is false for any URL IsAcceptable would reject.
func VideoID(rawURL string) (string, bool) {
	parsed, ok := parse(rawURL)
	if !ok {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	path := parsed.EscapedPath()
	if path == "" {
		path = parsed.Path
	}

	if strings.HasSuffix(host, videoHostSuffix) {
		switch {
		case path == watchPath:
			id := parsed.Query().Get("v")
			return id, id != ""
		case strings.HasPrefix(path, shortsPrefix):
			id := path[len(shortsPrefix):]
			return id, id != ""
		case strings.HasPrefix(path, livePrefix):
			id := path[len(livePrefix):]
			return id, id != ""
		default:
			return "", false
		}
	}

	if host == shortLinkHost {
		id := strings.TrimPrefix(path, "/")
		return id, len(path) > 1
	}

	return "", false
}

func parse(rawURL string) (*url.URL, bool) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return nil, false
	}
	if parsed.Hostname() == "" {
		return nil, false
	}
	return parsed, true
}
