package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yml"
	AppDirName     = "clipscribe"
)

// ConfigDir returns the standard config directory for clipscribe.
// Windows: %APPDATA%\clipscribe\
// macOS/Linux: ~/.config/clipscribe/
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, AppDirName), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ConfigPath returns the path to the config file.
// e.g., ~/.config/clipscribe/config.yml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

type Config struct {
	// WorkDir is the directory for temporary video/audio files
	WorkDir string `yaml:"work_dir,omitempty"`

	// Server configuration for `clipscribe serve`
	Server ServerConfig `yaml:"server,omitempty"`

	// Transcription provider configuration
	Transcription TranscriptionConfig `yaml:"transcription,omitempty"`
}

// ServerConfig holds HTTP server settings for `clipscribe serve`
type ServerConfig struct {
	// Port is the HTTP listen port (default: 8080)
	Port int `yaml:"port,omitempty"`

	// APIKey for authentication (optional, if set all scrape requests
	// must include X-API-Key header)
	APIKey string `yaml:"api_key,omitempty"`
}

// TranscriptionConfig selects and configures the speech-to-text backend.
type TranscriptionConfig struct {
	// Provider is one of "elevenlabs", "google", "whisper"
	Provider string `yaml:"provider,omitempty"`

	// Language hint passed to the provider. Empty means auto-detect
	// (where the provider supports it).
	Language string `yaml:"language,omitempty"`

	// ElevenLabsAPIKey authenticates against the ElevenLabs STT API
	ElevenLabsAPIKey string `yaml:"elevenlabs_api_key,omitempty"`

	// GoogleAPIKey authenticates against the Google Speech-to-Text API
	GoogleAPIKey string `yaml:"google_api_key,omitempty"`

	// OpenAIAPIKey authenticates against the OpenAI audio API
	OpenAIAPIKey string `yaml:"openai_api_key,omitempty"`

	// WhisperModel overrides the OpenAI transcription model (default whisper-1)
	WhisperModel string `yaml:"whisper_model,omitempty"`

	// BaseURL overrides the OpenAI endpoint (for compatible gateways)
	BaseURL string `yaml:"base_url,omitempty"`
}

// DefaultWorkDir returns the default directory for temporary files.
func DefaultWorkDir() string {
	return filepath.Join(os.TempDir(), AppDirName)
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		WorkDir: DefaultWorkDir(),
		Server: ServerConfig{
			Port: 8080,
		},
		Transcription: TranscriptionConfig{
			Provider: "elevenlabs",
		},
	}
}

// Exists checks if config file exists
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from ~/.config/clipscribe/config.yml
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.WorkDir = expandPath(cfg.WorkDir)

	return cfg, nil
}

// LoadOrDefault loads config if it exists, otherwise returns defaults.
// Environment variables override file values either way.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.applyEnv()
	if cfg.WorkDir == "" {
		cfg.WorkDir = DefaultWorkDir()
	}
	return cfg
}

// applyEnv overlays environment variables onto the config. Credentials
// are normally supplied this way in deployments (and via .env locally).
func (c *Config) applyEnv() {
	if v := os.Getenv("CLIPSCRIBE_WORK_DIR"); v != "" {
		c.WorkDir = expandPath(v)
	}
	if v := os.Getenv("TRANSCRIPTION_PROVIDER"); v != "" {
		c.Transcription.Provider = v
	}
	if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		c.Transcription.ElevenLabsAPIKey = v
	}
	if v := os.Getenv("GOOGLE_STT_API_KEY"); v != "" {
		c.Transcription.GoogleAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Transcription.OpenAIAPIKey = v
	}
}

// expandPath expands the tilde (~) in the path to the user's home directory.
// It handles both forward and backward slashes to ensure cross-platform
// compatibility for configuration files.
func expandPath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~") {
		// Only expand if it's explicitly "~", "~/", or "~\"
		if len(path) == 1 || path[1] == '/' || path[1] == '\\' {
			home, err := os.UserHomeDir()
			if err == nil {
				subPath := path[1:]
				if len(subPath) > 0 && (subPath[0] == '/' || subPath[0] == '\\') {
					subPath = subPath[1:]
				}
				return filepath.Join(home, subPath)
			}
		}
	}

	return path
}

// Save writes the config to ~/.config/clipscribe/config.yml
func Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	configPath, err := ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# clipscribe configuration file\n# Run 'clipscribe init' to regenerate with defaults\n\n"
	content := header + string(data)

	return os.WriteFile(configPath, []byte(content), 0644)
}

// Init creates a new config.yml with default values
func Init() error {
	if Exists() {
		path, _ := ConfigPath()
		return fmt.Errorf("%s already exists", path)
	}
	return Save(DefaultConfig())
}
