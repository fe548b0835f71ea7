// Package platform classifies URLs into the set of sources clipscribe
// knows how to scrape.
package platform

import (
	"fmt"
	"net/url"
	"strings"
)

// Platform identifies the source of a URL.
type Platform int

const (
	Unknown Platform = iota
	TikTok
	YouTube
	Instagram
	Web
)

// String returns the platform name for logging.
func (p Platform) String() string {
	switch p {
	case TikTok:
		return "tiktok"
	case YouTube:
		return "youtube"
	case Instagram:
		return "instagram"
	case Web:
		return "web"
	default:
		return "unknown"
	}
}

// FromCode maps a numeric wire code to a Platform.
// Codes outside 0..4 map to Unknown.
func FromCode(code int32) Platform {
	if code < 0 || code > int32(Web) {
		return Unknown
	}
	return Platform(code)
}

// Detect classifies a URL by domain markers, checked in priority order.
// Anything unrecognized is treated as a generic web page, so Detect is
// total and never fails.
func Detect(rawURL string) Platform {
	lower := strings.ToLower(rawURL)

	switch {
	case strings.Contains(lower, "tiktok.com"):
		return TikTok
	case strings.Contains(lower, "youtube.com"), strings.Contains(lower, "youtu.be"):
		return YouTube
	case strings.Contains(lower, "instagram.com"):
		return Instagram
	default:
		return Web
	}
}

// Normalize strips the query string and fragment from a URL, keeping
// scheme, host and path. Callers use this for de-duplication.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return fmt.Sprintf("%s://%s%s", u.Scheme, u.Host, u.Path)
}

// IsValid reports whether the URL has both a scheme and a host.
func IsValid(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
