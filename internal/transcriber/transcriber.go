// Package transcriber provides speech-to-text transcription behind a
// single provider-agnostic interface.
package transcriber

import (
	"context"
	"fmt"

	"clipscribe/internal/config"
)

// Transcriber converts an audio file to text.
//
// The language hint is in the common short form ("en", "pt-BR", ...).
// Each backend translates it to its own dialect where needed. An empty
// hint means auto-detect, never a default language, except for backends
// with no auto-detect mode. Transcription failures always propagate:
// swallowing them is the caller's decision, not ours.
type Transcriber interface {
	// Transcribe converts the audio file at audioPath to text.
	Transcribe(ctx context.Context, audioPath, language string) (string, error)

	// Name returns the provider name.
	Name() string
}

// New creates a Transcriber for the configured provider. Unknown
// provider names and missing credentials fail here, at construction,
// not per call.
func New(cfg config.TranscriptionConfig) (Transcriber, error) {
	switch cfg.Provider {
	case "elevenlabs":
		return NewElevenLabs(cfg)
	case "google":
		return NewGoogle(cfg)
	case "whisper":
		return NewWhisper(cfg)
	default:
		return nil, fmt.Errorf("unknown transcription provider: %q (supported: elevenlabs, google, whisper)", cfg.Provider)
	}
}
