package wayback

import (
	"regexp"
	"strings"
)

const (
	watchPrefix = "https://youtube.com/watch?v="
	// canonicalLen is len(watchPrefix) plus an 11 character video id.
	canonicalLen = 39
)

var (
	videoIDRe    = regexp.MustCompile(`(v=|youtu\.be/)([a-zA-Z0-9_\-]+)`)
	scrapeDateRe = regexp.MustCompile(`archive\.org/web/([0-9]{14})`)
)

// ValidURL is a cheap pre-filter applied before any network call.
func ValidURL(u string) bool {
	if u == watchPrefix {
		return false
	}
	if len(u) != canonicalLen {
		return false
	}
	return strings.Contains(u, "youtube.com/watch") || strings.Contains(u, "youtu.be")
}

// VideoID returns the id found after "v=" or "youtu.be/", or "".
func VideoID(raw string) string {
	m := videoIDRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[2]
}

// CanonicalURL normalizes any watch or short link to the watch URL form.
// Links without a video id are returned unchanged.
func CanonicalURL(raw string) string {
	id := VideoID(raw)
	if id == "" {
		return raw
	}
	return watchPrefix + id
}

// ScrapeDate returns the 14-digit capture timestamp of an archive URL, or ""
// for URLs that are not archive captures.
func ScrapeDate(archiveURL string) string {
	m := scrapeDateRe.FindStringSubmatch(archiveURL)
	if m == nil {
		return ""
	}
	return m[1]
}
