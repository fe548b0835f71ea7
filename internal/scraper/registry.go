package scraper

import (
	"context"
	"log"
	"path/filepath"

	"clipscribe/internal/audio"
	"clipscribe/internal/platform"
)

// Deps bundles the collaborators the platform scrapers need.
type Deps struct {
	Downloader VideoDownloader
	Extractor  AudioExtractor
	Posts      PostFetcher

	// Speech may be nil when no transcription provider is configured;
	// pipelines then skip transcription.
	Speech   SpeechToText
	Language string

	// WorkDir is where temporary media files are staged.
	WorkDir string
}

// Registry selects the right scraper for a URL. The web scraper is the
// universal fallback, so selection never fails.
type Registry struct {
	scrapers map[platform.Platform]Scraper
	web      Scraper
}

// NewRegistry builds a registry with all platform scrapers registered.
func NewRegistry(deps Deps) *Registry {
	if deps.Extractor == nil {
		deps.Extractor = ffmpegExtractor{}
	}

	web := NewWeb()
	return &Registry{
		web: web,
		scrapers: map[platform.Platform]Scraper{
			platform.TikTok:    NewTikTok(deps.Downloader, deps.Extractor, deps.Speech, deps.Language),
			platform.YouTube:   NewYouTube(deps.Downloader, deps.Extractor, deps.Speech, deps.Language),
			platform.Instagram: NewInstagram(deps.Posts, deps.Extractor, deps.Speech, deps.Language, deps.WorkDir),
			platform.Web:       web,
		},
	}
}

// Get returns the scraper for a URL. The hint is advisory only: the
// chosen scraper is always asked to confirm it can handle the URL, and
// anything unconfirmed falls back to the web scraper.
func (r *Registry) Get(url string, hint platform.Platform) Scraper {
	p := hint
	if p == platform.Unknown {
		p = platform.Detect(url)
	}

	s, ok := r.scrapers[p]
	if !ok || p == platform.Web {
		log.Printf("[registry] using web scraper for %s", url)
		return r.web
	}

	if !s.CanHandle(url) {
		log.Printf("[registry] %s scraper cannot handle %s, using web scraper", s.Name(), url)
		return r.web
	}

	log.Printf("[registry] using %s scraper for %s", s.Name(), url)
	return s
}

// ffmpegExtractor adapts the audio package to the AudioExtractor
// interface.
type ffmpegExtractor struct{}

func (ffmpegExtractor) Extract(ctx context.Context, videoPath string) (string, error) {
	audioPath, err := audio.Extract(ctx, videoPath)
	if err != nil {
		return audioPath, err
	}
	if dur, err := audio.Duration(audioPath); err == nil {
		log.Printf("[audio] extracted %s of audio from %s", dur, filepath.Base(videoPath))
	}
	return audioPath, nil
}
