package transcriber

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"clipscribe/internal/config"
)

const googleSpeechBaseURL = "https://speech.googleapis.com/v1"

// Audio longer than this goes through the asynchronous
// longrunningrecognize endpoint; the synchronous one caps out around a
// minute of audio.
const googleSyncLimit = 10 * 1024 * 1024

// Google implements Transcriber using the Google Cloud Speech-to-Text
// REST API.
type Google struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGoogle creates a new Google STT transcriber.
func NewGoogle(cfg config.TranscriptionConfig) (*Google, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("Google STT API key not provided")
	}

	return &Google{
		apiKey:  cfg.GoogleAPIKey,
		baseURL: googleSpeechBaseURL,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}, nil
}

// Name returns the provider name.
func (g *Google) Name() string {
	return "google"
}

type googleRecognitionConfig struct {
	Encoding                   string `json:"encoding"`
	SampleRateHertz            int    `json:"sampleRateHertz"`
	LanguageCode               string `json:"languageCode"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
}

type googleRecognizeRequest struct {
	Config googleRecognitionConfig `json:"config"`
	Audio  struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type googleRecognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Transcribe converts an audio file to text. Google has no auto-detect
// mode, so an empty language hint falls back to en-US; BCP-47 codes
// pass through unchanged.
func (g *Google) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	content, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}

	if language == "" {
		language = "en-US"
	}

	reqBody := googleRecognizeRequest{
		Config: googleRecognitionConfig{
			Encoding:                   "LINEAR16",
			SampleRateHertz:            16000,
			LanguageCode:               language,
			EnableAutomaticPunctuation: true,
		},
	}
	reqBody.Audio.Content = base64.StdEncoding.EncodeToString(content)

	if len(content) > googleSyncLimit {
		return g.recognizeLongRunning(ctx, &reqBody)
	}
	return g.recognize(ctx, &reqBody)
}

func (g *Google) recognize(ctx context.Context, reqBody *googleRecognizeRequest) (string, error) {
	var result googleRecognizeResponse
	if err := g.post(ctx, "/speech:recognize", reqBody, &result); err != nil {
		return "", err
	}
	return joinTranscripts(&result), nil
}

// recognizeLongRunning starts an asynchronous recognition operation and
// polls it until done.
func (g *Google) recognizeLongRunning(ctx context.Context, reqBody *googleRecognizeRequest) (string, error) {
	var op struct {
		Name string `json:"name"`
	}
	if err := g.post(ctx, "/speech:longrunningrecognize", reqBody, &op); err != nil {
		return "", err
	}
	if op.Name == "" {
		return "", fmt.Errorf("long-running recognize returned no operation name")
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
		}

		var status struct {
			Done     bool                    `json:"done"`
			Response googleRecognizeResponse `json:"response"`
			Error    struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := g.get(ctx, "/operations/"+op.Name, &status); err != nil {
			return "", err
		}
		if !status.Done {
			continue
		}
		if status.Error.Message != "" {
			return "", fmt.Errorf("recognition failed: %s", status.Error.Message)
		}
		return joinTranscripts(&status.Response), nil
	}
}

func (g *Google) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url(path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return g.do(req, out)
}

func (g *Google) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url(path), nil)
	if err != nil {
		return err
	}
	return g.do(req, out)
}

func (g *Google) url(path string) string {
	return fmt.Sprintf("%s%s?key=%s", g.baseURL, path, g.apiKey)
}

func (g *Google) do(req *http.Request, out any) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("speech API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("speech API failed: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func joinTranscripts(resp *googleRecognizeResponse) string {
	var parts []string
	for _, res := range resp.Results {
		if len(res.Alternatives) > 0 {
			parts = append(parts, res.Alternatives[0].Transcript)
		}
	}
	return strings.Join(parts, " ")
}
