package reader

import (
	"net/url"
	"regexp"
	"strings"
)

var socialPostPath = regexp.MustCompile(`^/([A-Za-z0-9_]{1,15})/status(?:es)?/(\d+)`)

var socialHosts = map[string]struct{}{
	"twitter.com": {},
	"x.com":       {},
}

// ClassifyURL derives the URL class used to build the strategy chain.
// Classification never alters the cache key.
func ClassifyURL(rawURL string) Class {
	if _, _, ok := SocialPostPath(rawURL); ok {
		return ClassSocialPost
	}
	return ClassGeneral
}

// SocialPostPath extracts the canonical (user, post ID) pair from a
// social-media post URL. ok is false for any URL that is not an individual
// post on a known platform.
func SocialPostPath(rawURL string) (user, id string, ok bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", false
	}
	host := strings.ToLower(strings.TrimPrefix(parsed.Hostname(), "www."))
	if _, known := socialHosts[host]; !known {
		return "", "", false
	}
	m := socialPostPath.FindStringSubmatch(parsed.Path)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
