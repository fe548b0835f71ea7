package scraper

import (
	"context"
	"fmt"
	"log"
	"strconv"
)

// videoPipeline is the shared download→extract→transcribe flow behind
// the TikTok and YouTube scrapers. They differ only in which URLs they
// accept.
type videoPipeline struct {
	name       string
	downloader VideoDownloader
	extractor  AudioExtractor
	speech     SpeechToText
	language   string
}

func (p *videoPipeline) scrape(ctx context.Context, url string, transcribe bool) Result {
	log.Printf("[%s] scraping %s", p.name, url)

	dl, err := p.downloader.Download(ctx, url)
	if err != nil {
		log.Printf("[%s] failed to scrape %s: %v", p.name, url, err)
		return failed(url, fmt.Errorf("failed to download video: %w", err))
	}

	tracked := []string{dl.VideoPath}
	defer func() { removeFiles(tracked...) }()

	// The platform description doubles as the caption text.
	captions := dl.Description
	metadata := map[string]string{
		"title":    dl.Title,
		"author":   dl.Author,
		"duration": strconv.Itoa(dl.Duration),
	}

	transcript := ""
	if transcribe {
		transcript = p.transcribeVideo(ctx, dl.VideoPath, &tracked)
	}

	log.Printf("[%s] scraped %q", p.name, dl.Title)
	return Result{
		Captions:    captions,
		Description: captions,
		Transcript:  transcript,
		OriginalURL: url,
		Metadata:    metadata,
	}
}

// transcribeVideo extracts and transcribes the audio track. Failures
// here degrade to an empty transcript; the scrape itself still
// succeeds, since captions and metadata are already in hand.
func (p *videoPipeline) transcribeVideo(ctx context.Context, videoPath string, tracked *[]string) string {
	audioPath, err := p.extractor.Extract(ctx, videoPath)
	if audioPath != "" {
		*tracked = append(*tracked, audioPath)
	}
	if err != nil {
		log.Printf("[%s] audio extraction failed: %v", p.name, err)
		return ""
	}

	if p.speech == nil {
		log.Printf("[%s] no transcription provider configured, skipping", p.name)
		return ""
	}

	text, err := p.speech.Transcribe(ctx, audioPath, p.language)
	if err != nil {
		log.Printf("[%s] transcription failed: %v", p.name, err)
		return ""
	}
	return text
}
