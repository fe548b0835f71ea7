package scraper

import (
	"testing"

	"clipscribe/internal/platform"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(Deps{
		Downloader: &fakeDownloader{dir: t.TempDir()},
		Extractor:  &fakeExtractor{},
		Posts:      &fakePosts{},
		Speech:     &fakeSpeech{},
		WorkDir:    t.TempDir(),
	})
}

func TestRegistryGet(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name string
		url  string
		hint platform.Platform
		want string
	}{
		{"TikTok by detection", "https://www.tiktok.com/@x/video/1", platform.Unknown, "tiktok"},
		{"YouTube by detection", "https://youtu.be/abc", platform.Unknown, "youtube"},
		{"Instagram by detection", "https://www.instagram.com/reel/A/", platform.Unknown, "instagram"},
		{"Web fallback by detection", "https://seriouseats.com/recipe", platform.Unknown, "web"},
		{"Matching hint", "https://www.tiktok.com/@x/video/1", platform.TikTok, "tiktok"},
		{"Web hint short-circuits", "https://www.tiktok.com/@x/video/1", platform.Web, "web"},
		{"Mismatched hint falls back", "https://youtu.be/abc", platform.Instagram, "web"},
		{"Hint for wrong platform", "https://www.instagram.com/p/A/", platform.TikTok, "web"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Get(tt.url, tt.hint)
			if got.Name() != tt.want {
				t.Errorf("Get(%q, %v) = %s; want %s", tt.url, tt.hint, got.Name(), tt.want)
			}
		})
	}
}

func TestRegistryNeverReturnsMismatch(t *testing.T) {
	r := testRegistry(t)

	urls := []string{
		"https://www.tiktok.com/@x/video/1",
		"https://www.youtube.com/watch?v=abc",
		"https://www.instagram.com/p/A/",
		"https://example.com/page",
		"garbage",
	}
	hints := []platform.Platform{
		platform.Unknown, platform.TikTok, platform.YouTube,
		platform.Instagram, platform.Web,
	}

	for _, url := range urls {
		for _, hint := range hints {
			s := r.Get(url, hint)
			if s.Name() != "web" && !s.CanHandle(url) {
				t.Errorf("Get(%q, %v) returned %s which cannot handle the URL", url, hint, s.Name())
			}
		}
	}
}

func TestRegistryGetIdempotent(t *testing.T) {
	r := testRegistry(t)

	url := "https://www.youtube.com/watch?v=abc"
	first := r.Get(url, platform.Unknown)
	second := r.Get(url, platform.Unknown)

	if first != second {
		t.Error("repeated dispatch for the same URL should return the same scraper")
	}
}
