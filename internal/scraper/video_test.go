package scraper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipscribe/internal/downloader"
	"clipscribe/internal/instagram"
)

// fakeDownloader writes a real file so cleanup behavior is observable.
type fakeDownloader struct {
	dir  string
	err  error
	meta downloader.Result
}

func (f *fakeDownloader) Download(ctx context.Context, url string) (*downloader.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	path := filepath.Join(f.dir, "video.mp4")
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		return nil, err
	}
	result := f.meta
	result.VideoPath = path
	return &result, nil
}

type fakeExtractor struct {
	err error
}

func (f *fakeExtractor) Extract(ctx context.Context, videoPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

type fakeSpeech struct {
	text string
	err  error
}

func (f *fakeSpeech) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	return f.text, f.err
}

type fakePosts struct {
	post        *instagram.Post
	fetchErr    error
	downloadErr error
	dir         string
}

func (f *fakePosts) FetchPost(ctx context.Context, shortcode string) (*instagram.Post, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.post, nil
}

func (f *fakePosts) DownloadVideo(ctx context.Context, post *instagram.Post, destDir string) (string, error) {
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	path := filepath.Join(destDir, post.Shortcode+".mp4")
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func videoMeta() downloader.Result {
	return downloader.Result{
		Title:       "Weeknight ramen",
		Description: "The broth hack nobody told you about",
		Author:      "noodle_dad",
		Duration:    45,
	}
}

func TestVideoScrapeSuccess(t *testing.T) {
	dir := t.TempDir()
	s := NewTikTok(
		&fakeDownloader{dir: dir, meta: videoMeta()},
		&fakeExtractor{},
		&fakeSpeech{text: "boil for six minutes"},
		"en",
	)

	url := "https://www.tiktok.com/@noodle_dad/video/123"
	result := s.Scrape(context.Background(), url, true)

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.Captions != "The broth hack nobody told you about" {
		t.Errorf("Captions = %q", result.Captions)
	}
	if result.Description != result.Captions {
		t.Error("Description should mirror Captions")
	}
	if result.Transcript != "boil for six minutes" {
		t.Errorf("Transcript = %q", result.Transcript)
	}
	if result.OriginalURL != url {
		t.Errorf("OriginalURL = %q", result.OriginalURL)
	}
	if result.Metadata["title"] != "Weeknight ramen" || result.Metadata["author"] != "noodle_dad" || result.Metadata["duration"] != "45" {
		t.Errorf("unexpected metadata: %v", result.Metadata)
	}
}

func TestVideoScrapeDownloadFailure(t *testing.T) {
	s := NewYouTube(
		&fakeDownloader{err: errors.New("network unreachable")},
		&fakeExtractor{},
		&fakeSpeech{},
		"",
	)

	url := "https://youtu.be/abc"
	result := s.Scrape(context.Background(), url, true)

	if result.Error == "" {
		t.Fatal("expected error for failed download")
	}
	if result.Captions != "" || result.Transcript != "" {
		t.Error("failed scrape must not carry content")
	}
	if len(result.Metadata) != 0 {
		t.Errorf("failed scrape metadata = %v; want empty", result.Metadata)
	}
	if result.OriginalURL != url {
		t.Errorf("OriginalURL = %q; must be echoed even on failure", result.OriginalURL)
	}
}

func TestVideoScrapeTranscriptionFailureDegrades(t *testing.T) {
	dir := t.TempDir()
	s := NewTikTok(
		&fakeDownloader{dir: dir, meta: videoMeta()},
		&fakeExtractor{},
		&fakeSpeech{err: errors.New("provider quota exceeded")},
		"en",
	)

	result := s.Scrape(context.Background(), "https://www.tiktok.com/@x/video/1", true)

	if result.Error != "" {
		t.Fatalf("transcription failure must not fail the scrape, got error %q", result.Error)
	}
	if result.Transcript != "" {
		t.Errorf("Transcript = %q; want empty", result.Transcript)
	}
	if result.Captions == "" || result.Metadata["title"] == "" {
		t.Error("captions and metadata should survive a transcription failure")
	}
}

func TestVideoScrapeExtractionFailureDegrades(t *testing.T) {
	dir := t.TempDir()
	s := NewTikTok(
		&fakeDownloader{dir: dir, meta: videoMeta()},
		&fakeExtractor{err: errors.New("corrupt container")},
		&fakeSpeech{text: "should never be reached"},
		"en",
	)

	result := s.Scrape(context.Background(), "https://www.tiktok.com/@x/video/1", true)

	if result.Error != "" {
		t.Fatalf("extraction failure must not fail the scrape, got error %q", result.Error)
	}
	if result.Transcript != "" {
		t.Errorf("Transcript = %q; want empty", result.Transcript)
	}
}

func TestVideoScrapeSkipsTranscription(t *testing.T) {
	dir := t.TempDir()
	speech := &fakeSpeech{text: "should not be called"}
	s := NewYouTube(&fakeDownloader{dir: dir, meta: videoMeta()}, &fakeExtractor{}, speech, "")

	result := s.Scrape(context.Background(), "https://www.youtube.com/watch?v=1", false)

	if result.Transcript != "" {
		t.Errorf("Transcript = %q; want empty when transcribe=false", result.Transcript)
	}
}

func TestVideoScrapeCleansUpTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewTikTok(
		&fakeDownloader{dir: dir, meta: videoMeta()},
		&fakeExtractor{},
		&fakeSpeech{text: "ok"},
		"",
	)

	s.Scrape(context.Background(), "https://www.tiktok.com/@x/video/1", true)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("temp files left behind: %v", names)
	}
}

func TestVideoScrapeCleansUpOnTranscriptionFailure(t *testing.T) {
	dir := t.TempDir()
	s := NewTikTok(
		&fakeDownloader{dir: dir, meta: videoMeta()},
		&fakeExtractor{},
		&fakeSpeech{err: errors.New("boom")},
		"",
	)

	s.Scrape(context.Background(), "https://www.tiktok.com/@x/video/1", true)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp files left behind after degraded scrape: %d", len(entries))
	}
}
