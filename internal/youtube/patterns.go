package youtube

import (
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// PagePatterns scope the "send page" context menu to video pages.
var PagePatterns = []string{
	"*://*.youtube.com/watch*",
	"*://*.youtube.com/shorts*",
	"*://*.youtube.com/live*",
	"*://youtu.be/*",
}

// LinkPatterns scope the "send link" context menu to links pointing at videos.
var LinkPatterns = []string{
	"*://*.youtube.com/watch*",
	"*://*.youtube.com/shorts*",
	"*://*.youtube.com/live*",
	"*://youtu.be/*",
}

var (
	globCacheMu sync.Mutex
	globCache   = map[string]*regexp.Regexp{}
)

// MatchPattern reports whether rawURL satisfies a browser extension match
// pattern of the form <scheme>://<host><path>. A "*" scheme matches http and
// https, a "*." host prefix matches the domain and any subdomain, and "*" in
// the path matches any run of characters including the query string.
func MatchPattern(pattern, rawURL string) bool {
	scheme, rest, ok := strings.Cut(pattern, "://")
	if !ok {
		return false
	}
	hostPattern, pathPattern := rest, "/"
	if idx := strings.Index(rest, "/"); idx >= 0 {
		hostPattern, pathPattern = rest[:idx], rest[idx:]
	}

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Hostname() == "" {
		return false
	}

	urlScheme := strings.ToLower(parsed.Scheme)
	switch scheme {
	case "*":
		if urlScheme != "http" && urlScheme != "https" {
			return false
		}
	default:
		if urlScheme != strings.ToLower(scheme) {
			return false
		}
	}

	if !matchHost(strings.ToLower(hostPattern), strings.ToLower(parsed.Hostname())) {
		return false
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return compileGlob(pathPattern).MatchString(path)
}

// MatchAny reports whether rawURL satisfies at least one of patterns.
func MatchAny(patterns []string, rawURL string) bool {
	for _, pattern := range patterns {
		if MatchPattern(pattern, rawURL) {
			return true
		}
	}
	return false
}

func matchHost(pattern, host string) bool {
	switch {
	case pattern == "*":
		return true
	case strings.HasPrefix(pattern, "*."):
		base := pattern[2:]
		return host == base || strings.HasSuffix(host, "."+base)
	default:
		return host == pattern
	}
}

func compileGlob(glob string) *regexp.Regexp {
	globCacheMu.Lock()
	defer globCacheMu.Unlock()
	if re, ok := globCache[glob]; ok {
		return re
	}
	parts := strings.Split(glob, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	re := regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
	globCache[glob] = re
	return re
}
