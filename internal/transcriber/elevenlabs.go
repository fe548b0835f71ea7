package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"clipscribe/internal/config"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// ElevenLabs implements Transcriber using the ElevenLabs Speech-to-Text
// API (scribe_v1 model).
type ElevenLabs struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewElevenLabs creates a new ElevenLabs transcriber.
func NewElevenLabs(cfg config.TranscriptionConfig) (*ElevenLabs, error) {
	if cfg.ElevenLabsAPIKey == "" {
		return nil, fmt.Errorf("ElevenLabs API key not provided")
	}

	return &ElevenLabs{
		apiKey:  cfg.ElevenLabsAPIKey,
		baseURL: elevenLabsBaseURL,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}, nil
}

// Name returns the provider name.
func (e *ElevenLabs) Name() string {
	return "elevenlabs"
}

// Transcribe converts an audio file to text. The language hint is
// translated to ElevenLabs' three-letter dialect; an empty hint is
// omitted entirely so the model auto-detects.
func (e *ElevenLabs) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}

	if err := writer.WriteField("model_id", "scribe_v1"); err != nil {
		return "", err
	}
	if code := toElevenLabsLanguage(language); code != "" {
		if err := writer.WriteField("language_code", code); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/speech-to-text", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech-to-text request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("speech-to-text failed: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Text, nil
}
