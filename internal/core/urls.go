package core

import (
	"net/url"
	"regexp"
	"strings"
)

// urlRegex matches scheme-qualified URLs and bare www-prefixed hosts
var urlRegex = regexp.MustCompile(`(?i)(https?://[^\s]+|www\.[^\s]+)`)

// ExtractURLs returns the URL-like substrings of text in order of
// appearance. Duplicates are preserved and an empty input yields an empty
// slice. This never fails.
func ExtractURLs(text string) []string {
	if text == "" {
		return []string{}
	}
	matches := urlRegex.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// NormalizeURL ensures the URL carries an http scheme so it can be parsed
// and fetched. Already-qualified URLs are returned untouched.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "www.") {
		return "http://" + raw
	}
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "http://" + raw
	}
	return raw
}

// HostFromURL extracts the hostname of a URL, returning an empty string
// when the URL cannot be parsed.
func HostFromURL(raw string) string {
	parsed, err := url.Parse(NormalizeURL(raw))
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
