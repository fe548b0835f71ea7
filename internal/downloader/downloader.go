// Package downloader fetches videos and their metadata via the local
// yt-dlp binary.
package downloader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// Result holds the downloaded file and the metadata yt-dlp reported.
type Result struct {
	VideoPath   string
	Title       string
	Description string
	Author      string
	Duration    int // seconds
}

// Client downloads videos into a working directory. Each download gets
// a unique filename so concurrent calls never collide.
type Client struct {
	binaryPath string
	workDir    string
}

// New creates a downloader writing into workDir.
func New(workDir string) *Client {
	return &Client{
		binaryPath: "yt-dlp", // assumes yt-dlp is in PATH
		workDir:    workDir,
	}
}

// info is the subset of yt-dlp's JSON output we consume.
type info struct {
	ID          string  `json:"id"`
	Ext         string  `json:"ext"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Uploader    string  `json:"uploader"`
	Channel     string  `json:"channel"`
	Duration    float64 `json:"duration"`
}

// Download fetches the video at url and returns its local path plus
// metadata. The caller owns the file and is responsible for deleting it.
func (c *Client) Download(ctx context.Context, url string) (*Result, error) {
	if err := os.MkdirAll(c.workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	name := uuid.New().String()
	outputTemplate := filepath.Join(c.workDir, name+".%(ext)s")

	cmd := exec.CommandContext(ctx, c.binaryPath,
		"-f", "best[ext=mp4]/best", // prefer MP4
		"--no-playlist",
		"--no-warnings",
		"--print-json",
		"-o", outputTemplate,
		url,
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w, stderr: %s", err, stderr.String())
	}

	meta, err := parseInfo(out.Bytes())
	if err != nil {
		return nil, err
	}

	ext := meta.Ext
	if ext == "" {
		ext = "mp4"
	}

	result := resultFromInfo(meta)
	result.VideoPath = filepath.Join(c.workDir, name+"."+ext)

	log.Printf("[download] fetched %q to %s", result.Title, result.VideoPath)
	return result, nil
}

// Probe extracts metadata without downloading the video.
func (c *Client) Probe(ctx context.Context, url string) (*Result, error) {
	cmd := exec.CommandContext(ctx, c.binaryPath,
		"--no-playlist",
		"--no-warnings",
		"--dump-json",
		"--skip-download",
		url,
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w, stderr: %s", err, stderr.String())
	}

	meta, err := parseInfo(out.Bytes())
	if err != nil {
		return nil, err
	}
	return resultFromInfo(meta), nil
}

func parseInfo(data []byte) (*info, error) {
	meta := &info{}
	if err := json.Unmarshal(bytes.TrimSpace(data), meta); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	return meta, nil
}

func resultFromInfo(meta *info) *Result {
	author := meta.Uploader
	if author == "" {
		author = meta.Channel
	}
	return &Result{
		Title:       meta.Title,
		Description: meta.Description,
		Author:      author,
		Duration:    int(meta.Duration),
	}
}
