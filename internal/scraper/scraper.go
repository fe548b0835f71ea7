// Package scraper extracts textual content from URLs across the
// platforms clipscribe supports. Each platform gets its own pipeline;
// all of them return the same Result shape and never let a failure
// escape as an error value.
package scraper

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"clipscribe/internal/downloader"
	"clipscribe/internal/instagram"
)

// Result is the uniform record every pipeline returns.
//
// On total failure Captions/Transcript/Metadata are empty and Error is
// set; OriginalURL is always echoed back. A transcription failure alone
// does not fail the scrape: the result is successful with an empty
// Transcript.
type Result struct {
	Captions    string            `json:"captions"`
	Description string            `json:"description"`
	Transcript  string            `json:"transcript"`
	OriginalURL string            `json:"original_url"`
	Metadata    map[string]string `json:"metadata"`
	Error       string            `json:"error,omitempty"`
}

// Scraper is the common contract of all platform pipelines.
type Scraper interface {
	// Name returns the scraper name for logging.
	Name() string

	// CanHandle reports whether this scraper can process the URL.
	CanHandle(url string) bool

	// Scrape extracts content from the URL. Failures are reported in
	// Result.Error, never as a panic or error value.
	Scrape(ctx context.Context, url string, transcribe bool) Result
}

// VideoDownloader fetches a video and its metadata.
type VideoDownloader interface {
	Download(ctx context.Context, url string) (*downloader.Result, error)
}

// AudioExtractor pulls a speech-ready audio track out of a video file.
type AudioExtractor interface {
	Extract(ctx context.Context, videoPath string) (string, error)
}

// SpeechToText transcribes an audio file.
type SpeechToText interface {
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}

// PostFetcher retrieves Instagram posts and their media.
type PostFetcher interface {
	FetchPost(ctx context.Context, shortcode string) (*instagram.Post, error)
	DownloadVideo(ctx context.Context, post *instagram.Post, destDir string) (string, error)
}

// failed builds the all-empty failure Result for a Tier-1 error.
func failed(url string, err error) Result {
	return Result{
		OriginalURL: url,
		Metadata:    map[string]string{},
		Error:       err.Error(),
	}
}

// removeFiles deletes temporary files, ignoring empty paths. Cleanup
// failures are logged and otherwise ignored.
func removeFiles(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[cleanup] failed to delete %s: %v", path, err)
		}
	}
}

// sweepPrefix deletes every file in dir whose name starts with prefix.
// Catches stray files written by collaborators under the post's
// identifier, not just the paths we tracked ourselves.
func sweepPrefix(dir, prefix string) {
	if dir == "" || prefix == "" {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			log.Printf("[cleanup] failed to delete %s: %v", entry.Name(), err)
		}
	}
}
