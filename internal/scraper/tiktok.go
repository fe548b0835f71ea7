package scraper

import (
	"context"
	"strings"
)

// TikTok scrapes TikTok videos.
type TikTok struct {
	pipeline videoPipeline
}

// NewTikTok creates a TikTok scraper.
func NewTikTok(dl VideoDownloader, extractor AudioExtractor, speech SpeechToText, language string) *TikTok {
	return &TikTok{
		pipeline: videoPipeline{
			name:       "tiktok",
			downloader: dl,
			extractor:  extractor,
			speech:     speech,
			language:   language,
		},
	}
}

func (t *TikTok) Name() string {
	return "tiktok"
}

func (t *TikTok) CanHandle(url string) bool {
	return strings.Contains(strings.ToLower(url), "tiktok.com")
}

func (t *TikTok) Scrape(ctx context.Context, url string, transcribe bool) Result {
	return t.pipeline.scrape(ctx, url, transcribe)
}
