package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Whisper   WhisperConfig   `yaml:"whisper"`
	LLM       LLMConfig       `yaml:"llm"`
	Subtitles SubtitlesConfig `yaml:"subtitles"`
	Download  DownloadConfig  `yaml:"download"`
	Player    PlayerConfig    `yaml:"player"`
	Paths     PathsConfig     `yaml:"paths"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WhisperConfig struct {
	Backend    string `yaml:"backend"` // "local" or "api"
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	APIModel   string `yaml:"api_model"`
	APIBase    string `yaml:"api_base"`
	APIKeyEnv  string `yaml:"api_key_env"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type LLMConfig struct {
	Provider             string   `yaml:"provider"` // "openai" or "gemini"
	Model                string   `yaml:"model"`
	APIBase              string   `yaml:"api_base"`
	APIKeyEnv            string   `yaml:"api_key_env"`
	GeminiAPIKeys        []string `yaml:"gemini_api_keys"`
	Temperature          float64  `yaml:"temperature"`
	MaxTokens            int      `yaml:"max_tokens"`
	CleanupEnabled       bool     `yaml:"cleanup_enabled"`
	TranslationEnabled   bool     `yaml:"translation_enabled"`
	TargetLanguage       string   `yaml:"target_language"`
	CleanupChunkSize     int      `yaml:"cleanup_chunk_size"`
	TranslationChunkSize int      `yaml:"translation_chunk_size"`
}

type SubtitlesConfig struct {
	MaxChars    int     `yaml:"max_chars"`
	MaxDuration float64 `yaml:"max_duration"`
}

type DownloadConfig struct {
	Format string `yaml:"format"`
}

type PlayerConfig struct {
	BinaryPath           string `yaml:"binary_path"`
	SubFontSize          int    `yaml:"sub_font_size"`
	SecondarySubFontSize int    `yaml:"secondary_sub_font_size"`
}

type PathsConfig struct {
	Workspace string `yaml:"workspace"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a config with every default applied and no file input.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Validate checks enum fields and fills defaults for everything left unset.
func (c *Config) Validate() error {
	switch c.Whisper.Backend {
	case "":
		c.Whisper.Backend = "local"
	case "local", "api":
	default:
		return fmt.Errorf("whisper.backend must be \"local\" or \"api\", got %q", c.Whisper.Backend)
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.APIModel == "" {
		c.Whisper.APIModel = "whisper-1"
	}
	if c.Whisper.APIKeyEnv == "" {
		c.Whisper.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "fr"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}

	switch c.LLM.Provider {
	case "":
		c.LLM.Provider = "openai"
	case "openai", "gemini":
	default:
		return fmt.Errorf("llm.provider must be \"openai\" or \"gemini\", got %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		if c.LLM.Provider == "gemini" {
			c.LLM.Model = "gemini-2.5-flash"
		} else {
			c.LLM.Model = "gpt-4.1-mini"
		}
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 4096
	}
	if c.LLM.TargetLanguage == "" {
		c.LLM.TargetLanguage = "en"
	}
	if c.LLM.CleanupChunkSize == 0 {
		c.LLM.CleanupChunkSize = 20
	}
	if c.LLM.TranslationChunkSize == 0 {
		c.LLM.TranslationChunkSize = 15
	}

	if c.Subtitles.MaxChars == 0 {
		c.Subtitles.MaxChars = 50
	}
	if c.Subtitles.MaxDuration == 0 {
		c.Subtitles.MaxDuration = 8.0
	}

	if c.Download.Format == "" {
		c.Download.Format = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	}

	if c.Player.BinaryPath == "" {
		c.Player.BinaryPath = "mpv"
	}
	if c.Player.SubFontSize == 0 {
		c.Player.SubFontSize = 40
	}
	if c.Player.SecondarySubFontSize == 0 {
		c.Player.SecondarySubFontSize = 32
	}

	if c.Paths.Workspace == "" {
		c.Paths.Workspace = "subflow_workspace"
	}

	if c.Server.Listen == "" {
		c.Server.Listen = "127.0.0.1:8750"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}

	return nil
}
