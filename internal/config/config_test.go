package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Image != DefaultImagePath {
		t.Errorf("Image: got %q, want %q", cfg.Image, DefaultImagePath)
	}
	if cfg.Language != "eng" {
		t.Errorf("Language: got %q, want eng", cfg.Language)
	}
	if cfg.Engine != "tesseract" {
		t.Errorf("Engine: got %q, want tesseract", cfg.Engine)
	}
	if !cfg.Preprocess {
		t.Error("Preprocess should default to true")
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds: got %d, want 30", cfg.TimeoutSeconds)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
image: receipts/scan.jpg
language: jpn
engine: openai
timeout_seconds: 5
preprocess: false
openai:
  api_key: file-key
  model: gpt-4o
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Image != "receipts/scan.jpg" {
		t.Errorf("Image: got %q", cfg.Image)
	}
	if cfg.Language != "jpn" {
		t.Errorf("Language: got %q", cfg.Language)
	}
	if cfg.Engine != "openai" {
		t.Errorf("Engine: got %q", cfg.Engine)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds: got %d", cfg.TimeoutSeconds)
	}
	if cfg.Preprocess {
		t.Error("Preprocess should be false")
	}
	if cfg.OpenAI.APIKey != "file-key" {
		t.Errorf("OpenAI.APIKey: got %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("OpenAI.Model: got %q", cfg.OpenAI.Model)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, "language: spa\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Language != "spa" {
		t.Errorf("Language: got %q, want spa", cfg.Language)
	}
	if cfg.Engine != "tesseract" {
		t.Errorf("unset fields should keep defaults, Engine: got %q", cfg.Engine)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("unset fields should keep defaults, OpenAI.Model: got %q", cfg.OpenAI.Model)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "image: [unclosed\n")

	if _, err := Load(path); err == nil {
		t.Error("Load should fail for invalid YAML")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "image: from-file.png\nlanguage: deu\n")

	t.Setenv("TEXTGRAB_IMAGE", "from-env.png")
	t.Setenv("TEXTGRAB_ENGINE", "openai")
	t.Setenv("TEXTGRAB_TIMEOUT_SECONDS", "7")
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Image != "from-env.png" {
		t.Errorf("env should override file, Image: got %q", cfg.Image)
	}
	if cfg.Language != "deu" {
		t.Errorf("file value without env override should survive, Language: got %q", cfg.Language)
	}
	if cfg.Engine != "openai" {
		t.Errorf("Engine: got %q", cfg.Engine)
	}
	if cfg.TimeoutSeconds != 7 {
		t.Errorf("TimeoutSeconds: got %d", cfg.TimeoutSeconds)
	}
	if cfg.OpenAI.APIKey != "env-key" {
		t.Errorf("OpenAI.APIKey: got %q", cfg.OpenAI.APIKey)
	}
}

func TestLoad_BadTimeoutEnvIgnored(t *testing.T) {
	t.Setenv("TEXTGRAB_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("unparseable timeout env should be ignored, got %d", cfg.TimeoutSeconds)
	}
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	cfg.TimeoutSeconds = 10
	if got := cfg.Timeout(); got != 10*time.Second {
		t.Errorf("Timeout: got %v, want 10s", got)
	}

	cfg.TimeoutSeconds = 0
	if got := cfg.Timeout(); got != 0 {
		t.Errorf("zero TimeoutSeconds should disable the deadline, got %v", got)
	}

	cfg.TimeoutSeconds = -3
	if got := cfg.Timeout(); got != 0 {
		t.Errorf("negative TimeoutSeconds should disable the deadline, got %v", got)
	}
}
