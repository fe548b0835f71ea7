// Package instagram fetches post metadata and media from Instagram's
// web API.
package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	instagramBaseURL = "https://www.instagram.com"
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	mediaTypeVideo = 2
)

// Post is the subset of a post we care about.
type Post struct {
	Shortcode string
	Caption   string
	Owner     string
	Likes     int
	IsVideo   bool
	VideoURL  string
}

// Client talks to Instagram's unauthenticated web endpoints.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new Instagram client.
func NewClient() *Client {
	return &Client{
		baseURL: instagramBaseURL,
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// postInfo mirrors the JSON shape of the web info endpoint.
type postInfo struct {
	Items []struct {
		Code    string `json:"code"`
		Caption struct {
			Text string `json:"text"`
		} `json:"caption"`
		User struct {
			Username string `json:"username"`
		} `json:"user"`
		LikeCount     int `json:"like_count"`
		MediaType     int `json:"media_type"`
		VideoVersions []struct {
			URL string `json:"url"`
		} `json:"video_versions"`
	} `json:"items"`
}

// FetchPost retrieves metadata for the post identified by shortcode.
func (c *Client) FetchPost(ctx context.Context, shortcode string) (*Post, error) {
	url := fmt.Sprintf("%s/p/%s/?__a=1&__d=dis", c.baseURL, shortcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("post fetch failed: status %d", resp.StatusCode)
	}

	var info postInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode post data: %w", err)
	}
	if len(info.Items) == 0 {
		return nil, fmt.Errorf("post %s not found", shortcode)
	}

	item := info.Items[0]
	post := &Post{
		Shortcode: shortcode,
		Caption:   item.Caption.Text,
		Owner:     item.User.Username,
		Likes:     item.LikeCount,
		IsVideo:   item.MediaType == mediaTypeVideo,
	}
	if len(item.VideoVersions) > 0 {
		post.VideoURL = item.VideoVersions[0].URL
	}

	return post, nil
}

// DownloadVideo saves the post's video into destDir as <shortcode>.mp4
// and returns the path. The caller owns the file.
func (c *Client) DownloadVideo(ctx context.Context, post *Post, destDir string) (string, error) {
	if post.VideoURL == "" {
		return "", fmt.Errorf("post %s has no video URL", post.Shortcode)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, post.VideoURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("video request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video download failed: status %d", resp.StatusCode)
	}

	path := filepath.Join(destDir, post.Shortcode+".mp4")
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to save video: %w", err)
	}

	return path, nil
}
