package scraper

import (
	"context"
	"strings"
)

// YouTube scrapes YouTube videos. Same pipeline as TikTok, different
// domain markers.
type YouTube struct {
	pipeline videoPipeline
}

// NewYouTube creates a YouTube scraper.
func NewYouTube(dl VideoDownloader, extractor AudioExtractor, speech SpeechToText, language string) *YouTube {
	return &YouTube{
		pipeline: videoPipeline{
			name:       "youtube",
			downloader: dl,
			extractor:  extractor,
			speech:     speech,
			language:   language,
		},
	}
}

func (y *YouTube) Name() string {
	return "youtube"
}

func (y *YouTube) CanHandle(url string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be")
}

func (y *YouTube) Scrape(ctx context.Context, url string, transcribe bool) Result {
	return y.pipeline.scrape(ctx, url, transcribe)
}
