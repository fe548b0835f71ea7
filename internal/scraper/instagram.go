package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"clipscribe/internal/instagram"
)

// Instagram scrapes Instagram posts and reels.
type Instagram struct {
	fetcher   PostFetcher
	extractor AudioExtractor
	speech    SpeechToText
	language  string
	workDir   string
}

// NewInstagram creates an Instagram scraper. workDir is where post
// media is staged before cleanup.
func NewInstagram(fetcher PostFetcher, extractor AudioExtractor, speech SpeechToText, language, workDir string) *Instagram {
	return &Instagram{
		fetcher:   fetcher,
		extractor: extractor,
		speech:    speech,
		language:  language,
		workDir:   workDir,
	}
}

func (s *Instagram) Name() string {
	return "instagram"
}

func (s *Instagram) CanHandle(url string) bool {
	return strings.Contains(strings.ToLower(url), "instagram.com")
}

func (s *Instagram) Scrape(ctx context.Context, url string, transcribe bool) Result {
	log.Printf("[instagram] scraping %s", url)

	shortcode := extractShortcode(url)
	if shortcode == "" {
		err := errors.New("could not extract shortcode from URL")
		log.Printf("[instagram] failed to scrape %s: %v", url, err)
		return failed(url, err)
	}

	var tracked []string
	defer func() {
		removeFiles(tracked...)
		// The fetcher writes media under the shortcode name; sweep
		// anything it left behind, not just the paths we tracked.
		sweepPrefix(s.workDir, shortcode)
	}()

	post, err := s.fetcher.FetchPost(ctx, shortcode)
	if err != nil {
		log.Printf("[instagram] failed to scrape %s: %v", url, err)
		return failed(url, fmt.Errorf("failed to fetch post: %w", err))
	}

	captions := post.Caption
	metadata := map[string]string{
		"title":  postTitle(captions),
		"author": post.Owner,
		"likes":  strconv.Itoa(post.Likes),
	}

	transcript := ""
	if post.IsVideo && transcribe {
		transcript = s.transcribePost(ctx, post, &tracked)
	}

	log.Printf("[instagram] scraped post by %s", post.Owner)
	return Result{
		Captions:    captions,
		Description: captions,
		Transcript:  transcript,
		OriginalURL: url,
		Metadata:    metadata,
	}
}

// transcribePost downloads the post video and transcribes its audio.
// Every failure in here is swallowed: the caption is already secured
// and is worth returning on its own.
func (s *Instagram) transcribePost(ctx context.Context, post *instagram.Post, tracked *[]string) string {
	videoPath, err := s.fetcher.DownloadVideo(ctx, post, s.workDir)
	if err != nil {
		log.Printf("[instagram] failed to download post video: %v", err)
		return ""
	}
	*tracked = append(*tracked, videoPath)

	audioPath, err := s.extractor.Extract(ctx, videoPath)
	if audioPath != "" {
		*tracked = append(*tracked, audioPath)
	}
	if err != nil {
		log.Printf("[instagram] audio extraction failed: %v", err)
		return ""
	}

	if s.speech == nil {
		return ""
	}

	text, err := s.speech.Transcribe(ctx, audioPath, s.language)
	if err != nil {
		log.Printf("[instagram] transcription failed: %v", err)
		return ""
	}
	return text
}

// postTitle synthesizes a title from the caption: its first 100
// characters, or a placeholder when there is no caption at all.
func postTitle(caption string) string {
	if caption == "" {
		return "Instagram Post"
	}
	runes := []rune(caption)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return caption
}

// extractShortcode pulls the post identifier out of the URL path.
// Handles both https://www.instagram.com/p/SHORTCODE/ and
// https://www.instagram.com/reel/SHORTCODE/ shapes; anything else
// yields an empty string.
func extractShortcode(url string) string {
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	for i, part := range parts {
		if (part == "p" || part == "reel") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
