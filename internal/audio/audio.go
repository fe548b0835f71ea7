// Package audio extracts speech-ready audio tracks from video files
// using the embedded ffmpeg WASM build, so no system ffmpeg is needed.
package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/gruf/go-ffmpreg/ffmpreg"
	"codeberg.org/gruf/go-ffmpreg/wasm"
	gowav "github.com/go-audio/wav"
	"github.com/tetratelabs/wazero"
)

// Extract converts the audio track of videoPath into a mono 16kHz WAV
// file next to it, returning the new path. 16kHz mono is what the
// speech recognition backends expect.
func Extract(ctx context.Context, videoPath string) (string, error) {
	audioPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"

	absInput, err := filepath.Abs(videoPath)
	if err != nil {
		return "", err
	}
	absOutput, err := filepath.Abs(audioPath)
	if err != nil {
		return "", err
	}

	inputDir := filepath.Dir(absInput)
	outputDir := filepath.Dir(absOutput)

	args := wasm.Args{
		Stderr: io.Discard,
		Stdout: io.Discard,
		Args: []string{
			"-i", absInput,
			"-vn",
			"-ar", "16000",
			"-ac", "1",
			"-c:a", "pcm_s16le",
			"-y",
			absOutput,
		},
		Config: func(cfg wazero.ModuleConfig) wazero.ModuleConfig {
			return cfg.WithFSConfig(wazero.NewFSConfig().
				WithDirMount(inputDir, inputDir).
				WithDirMount(outputDir, outputDir))
		},
	}

	rc, err := ffmpreg.Ffmpeg(ctx, args)
	if err != nil {
		return "", fmt.Errorf("ffmpeg failed: %w", err)
	}
	if rc != 0 {
		return "", fmt.Errorf("ffmpeg exited with code %d", rc)
	}

	return audioPath, nil
}

// Duration reads the length of a WAV file from its header. Used for
// logging before transcription; failures here are not fatal to anything.
func Duration(audioPath string) (time.Duration, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	decoder := gowav.NewDecoder(file)
	dur, err := decoder.Duration()
	if err != nil {
		return 0, fmt.Errorf("failed to read WAV duration: %w", err)
	}
	return dur, nil
}
