package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"rss-podcast/pkg/domain"
)

// Supported TTS backend names.
const (
	BackendCoqui      = "coqui"
	BackendFishSpeech = "fishspeech"
)

// ScraperConfig tunes feed fetching and full-article scraping.
type ScraperConfig struct {
	MaxWorkers         int    `yaml:"max_workers"`
	DaysBack           int    `yaml:"days_back"`
	ScrapeFullArticles bool   `yaml:"scrape_full_articles"`
	RequestTimeoutSec  int    `yaml:"request_timeout"`
	UserAgent          string `yaml:"user_agent"`
}

// RequestTimeout returns the per-request HTTP timeout.
func (c ScraperConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// LLMConfig describes the local completion endpoint (Ollama).
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSec  int     `yaml:"timeout"`
}

// Timeout returns the single request timeout for LLM calls.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// TTSConfig selects and tunes a speech synthesis backend.
type TTSConfig struct {
	Backend           string  `yaml:"backend"`
	ServerURL         string  `yaml:"server_url"`
	AudioFormat       string  `yaml:"audio_format"`
	Temperature       float64 `yaml:"temperature"`
	TopP              float64 `yaml:"top_p"`
	RepetitionPenalty float64 `yaml:"repetition_penalty"`
	PauseMillis       int     `yaml:"pause_ms"`
	TimeoutSec        int     `yaml:"timeout"`
}

// Pause returns the fixed inter-turn silence gap.
func (c TTSConfig) Pause() time.Duration {
	return time.Duration(c.PauseMillis) * time.Millisecond
}

// Timeout returns the per-segment synthesis timeout.
func (c TTSConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// PodcastConfig describes episode generation: language, voices and output.
type PodcastConfig struct {
	Language  string             `yaml:"language"`
	OutputDir string             `yaml:"output_dir"`
	Voices    domain.VoiceConfig `yaml:"voices"`
	TTS       TTSConfig          `yaml:"tts"`

	// MinScriptChars makes the generator request continuations until the
	// raw script reaches this length. Zero disables continuations.
	MinScriptChars int `yaml:"min_script_chars"`

	// MaxContinuations bounds the continuation requests per episode.
	MaxContinuations int `yaml:"max_continuations"`

	// ContinuationPolicy decides what happens to script lines matching
	// neither persona label: "append" (to the previous turn) or "drop".
	ContinuationPolicy string `yaml:"continuation_policy"`
}

// StorageConfig holds the on-disk layout for pipeline artifacts.
type StorageConfig struct {
	ArticlesDir string `yaml:"articles_dir"`
	PodcastsDir string `yaml:"podcasts_dir"`
}

// Config is the full application configuration.
type Config struct {
	Feeds   []domain.Feed `yaml:"-"`
	Scraper ScraperConfig `yaml:"scraper"`
	LLM     LLMConfig     `yaml:"llm"`
	Podcast PodcastConfig `yaml:"podcast"`
	Storage StorageConfig `yaml:"storage"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Scraper: ScraperConfig{
			MaxWorkers:         5,
			DaysBack:           7,
			ScrapeFullArticles: true,
			RequestTimeoutSec:  10,
			UserAgent:          "Mozilla/5.0 (rss-podcast bot)",
		},
		LLM: LLMConfig{
			BaseURL:     "http://localhost:11434",
			Model:       "qwen2.5:14b-instruct",
			Temperature: 0.8,
			MaxTokens:   4096,
			TimeoutSec:  300,
		},
		Podcast: PodcastConfig{
			Language:  "en",
			OutputDir: "output/podcasts",
			Voices: domain.VoiceConfig{
				HostSpeaker:   "Damien Black",
				CoHostSpeaker: "Claribel Dervla",
			},
			TTS: TTSConfig{
				Backend:           BackendCoqui,
				ServerURL:         "http://localhost:5002",
				AudioFormat:       "wav",
				Temperature:       0.15,
				TopP:              0.85,
				RepetitionPenalty: 10.0,
				PauseMillis:       400,
				TimeoutSec:        300,
			},
			MinScriptChars:     15000,
			MaxContinuations:   5,
			ContinuationPolicy: "append",
		},
		Storage: StorageConfig{
			ArticlesDir: "output/articles",
			PodcastsDir: "output/podcasts",
		},
	}
}

// Load reads configuration from a directory containing feeds.yaml and an
// optional podcast.yaml. Missing files fall back to defaults; malformed
// files or invalid values are configuration errors reported before any
// pipeline stage runs.
func Load(dir string) (*Config, error) {
	cfg := Default()

	podcastFile := filepath.Join(dir, "podcast.yaml")
	if data, err := os.ReadFile(podcastFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", podcastFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", podcastFile, err)
	}

	feeds, err := LoadFeeds(filepath.Join(dir, "feeds.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.Feeds = feeds

	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.LLM.BaseURL = host
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration values that every command depends on.
func (c *Config) Validate() error {
	if c.Scraper.MaxWorkers < 1 {
		return fmt.Errorf("scraper.max_workers must be at least 1")
	}
	if c.Scraper.DaysBack < 1 {
		return fmt.Errorf("scraper.days_back must be at least 1")
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm.base_url is required")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	switch c.Podcast.TTS.Backend {
	case BackendCoqui, BackendFishSpeech:
	default:
		return fmt.Errorf("podcast.tts.backend must be %q or %q, got %q",
			BackendCoqui, BackendFishSpeech, c.Podcast.TTS.Backend)
	}
	switch c.Podcast.ContinuationPolicy {
	case "append", "drop":
	default:
		return fmt.Errorf("podcast.continuation_policy must be \"append\" or \"drop\", got %q",
			c.Podcast.ContinuationPolicy)
	}
	return nil
}
