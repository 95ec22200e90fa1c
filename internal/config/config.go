// Package config loads the textgrab configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultImagePath is the image used when neither the config file, the
// environment, nor the command line names one.
const DefaultImagePath = "samples/hello.png"

// OpenAIConfig holds settings for the OpenAI vision engine.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Config is the full CLI configuration.
type Config struct {
	// Image is the path of the image to extract text from.
	Image string `yaml:"image"`

	// Language is the Tesseract language code (e.g. "eng", "jpn").
	Language string `yaml:"language"`

	// Engine selects the recognition backend: "tesseract" or "openai".
	Engine string `yaml:"engine"`

	// TimeoutSeconds bounds a single extraction call. Zero or negative
	// disables the deadline.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Preprocess toggles the image enhancement pipeline before recognition.
	Preprocess bool `yaml:"preprocess"`

	OpenAI OpenAIConfig `yaml:"openai"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	return &Config{
		Image:          DefaultImagePath,
		Language:       "eng",
		Engine:         "tesseract",
		TimeoutSeconds: 30,
		Preprocess:     true,
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
	}
}

// Load reads the configuration file at path and applies environment
// overrides on top of it.
//
// A missing file is not an error; defaults apply and the environment is
// still consulted. A file that exists but cannot be parsed is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file; run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values with environment variables when present.
func (c *Config) applyEnv() {
	if v := os.Getenv("TEXTGRAB_IMAGE"); v != "" {
		c.Image = v
	}
	if v := os.Getenv("TEXTGRAB_LANGUAGE"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("TEXTGRAB_ENGINE"); v != "" {
		c.Engine = v
	}
	if v := os.Getenv("TEXTGRAB_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
}

// Timeout returns the per-extraction deadline, or zero when disabled.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
