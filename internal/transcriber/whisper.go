package transcriber

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"clipscribe/internal/config"
)

// Whisper implements Transcriber using the OpenAI audio API.
type Whisper struct {
	client *openai.Client
	model  string
}

// NewWhisper creates a new OpenAI-backed transcriber.
func NewWhisper(cfg config.TranscriptionConfig) (*Whisper, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not provided")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.WhisperModel
	if model == "" {
		model = "whisper-1"
	}

	return &Whisper{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Name returns the provider name.
func (w *Whisper) Name() string {
	return "whisper"
}

// Transcribe converts an audio file to text. Whisper already speaks
// two-letter language codes, so the hint passes through unchanged;
// empty means auto-detect.
func (w *Whisper) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	req := openai.AudioRequest{
		Model:    w.model,
		FilePath: audioPath,
		Language: language,
	}

	resp, err := w.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transcription API error: %w", err)
	}

	return resp.Text, nil
}
