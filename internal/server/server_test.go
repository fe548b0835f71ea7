package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"clipscribe/internal/downloader"
	"clipscribe/internal/instagram"
	"clipscribe/internal/scraper"
)

type stubDownloader struct {
	err  error
	meta downloader.Result
}

func (s *stubDownloader) Download(ctx context.Context, url string) (*downloader.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	meta := s.meta
	return &meta, nil
}

type stubExtractor struct{}

func (stubExtractor) Extract(ctx context.Context, videoPath string) (string, error) {
	return "", errors.New("no audio in tests")
}

type stubPosts struct{}

func (stubPosts) FetchPost(ctx context.Context, shortcode string) (*instagram.Post, error) {
	return nil, errors.New("not wired in tests")
}

func (stubPosts) DownloadVideo(ctx context.Context, post *instagram.Post, destDir string) (string, error) {
	return "", errors.New("not wired in tests")
}

func testServer(t *testing.T, apiKey string, dl *stubDownloader) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := scraper.NewRegistry(scraper.Deps{
		Downloader: dl,
		Extractor:  stubExtractor{},
		Posts:      stubPosts{},
		WorkDir:    t.TempDir(),
	})
	return NewServer(0, apiKey, registry).buildEngine()
}

func doScrape(t *testing.T, engine *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHandleScrape(t *testing.T) {
	engine := testServer(t, "", &stubDownloader{
		meta: downloader.Result{Title: "Ramen", Description: "broth secrets", Author: "chef", Duration: 30},
	})

	rec := doScrape(t, engine, `{"url": "https://www.tiktok.com/@chef/video/1", "transcribe": false}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}

	var resp struct {
		Code    int            `json:"code"`
		Data    scraper.Result `json:"data"`
		Message string         `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Captions != "broth secrets" {
		t.Errorf("captions = %q", resp.Data.Captions)
	}
	if resp.Data.Error != "" {
		t.Errorf("unexpected error %q", resp.Data.Error)
	}
	if resp.Message != "ok" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestHandleScrapeFailureStillWellFormed(t *testing.T) {
	engine := testServer(t, "", &stubDownloader{err: errors.New("geo blocked")})

	rec := doScrape(t, engine, `{"url": "https://www.tiktok.com/@chef/video/1"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("pipeline failures are not transport failures; status = %d", rec.Code)
	}

	var resp struct {
		Data    scraper.Result `json:"data"`
		Message string         `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Error == "" {
		t.Error("expected error field in result")
	}
	if resp.Data.OriginalURL != "https://www.tiktok.com/@chef/video/1" {
		t.Errorf("original_url = %q", resp.Data.OriginalURL)
	}
	if resp.Message != "scrape failed" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestHandleScrapeBadRequests(t *testing.T) {
	engine := testServer(t, "", &stubDownloader{})

	tests := []struct {
		name string
		body string
	}{
		{"Missing url", `{"transcribe": true}`},
		{"Not JSON", `url=x`},
		{"URL without scheme", `{"url": "example.com/recipe"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doScrape(t, engine, tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d; want 400", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	engine := testServer(t, "secret", &stubDownloader{meta: downloader.Result{Title: "t"}})

	rec := doScrape(t, engine, `{"url": "https://example.com"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key: status = %d; want 401", rec.Code)
	}

	rec = doScrape(t, engine, `{"url": "https://example.com"}`, map[string]string{"X-API-Key": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d; want 401", rec.Code)
	}

	// Health stays open without a key.
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	healthRec := httptest.NewRecorder()
	engine.ServeHTTP(healthRec, req)
	if healthRec.Code != http.StatusOK {
		t.Errorf("health: status = %d; want 200", healthRec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	engine := testServer(t, "", &stubDownloader{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
