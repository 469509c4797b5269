package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api_key: file-key
base_url: https://docfold.internal
version: v2
timeout: 45s
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.APIKey)
	}
	if cfg.BaseURL != "https://docfold.internal" {
		t.Errorf("BaseURL = %q, want https://docfold.internal", cfg.BaseURL)
	}
	if cfg.Version != "v2" {
		t.Errorf("Version = %q, want v2", cfg.Version)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	cfg, err := Load(writeConfig(t, "api_key: k\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Version != "v1" {
		t.Errorf("Version = %q, want v1", cfg.Version)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want text", cfg.Logging.Format)
	}
	if cfg.BaseURL != "" {
		t.Errorf("BaseURL = %q, want empty", cfg.BaseURL)
	}
}

func TestLoadEnvFallback(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")

	cfg, err := Load(writeConfig(t, "version: v1\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want the environment value", cfg.APIKey)
	}
}

func TestLoadFileKeyWinsOverEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")

	cfg, err := Load(writeConfig(t, "api_key: file-key\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want the file value", cfg.APIKey)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "invalid log level",
			content: `
logging:
  level: verbose
`,
		},
		{
			name: "invalid log format",
			content: `
logging:
  format: xml
`,
		},
		{
			name:    "negative timeout",
			content: "timeout: -5s\n",
		},
		{
			name:    "malformed yaml",
			content: "logging: [broken\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Error("Load() error = nil, want an error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() error = nil, want an error")
	}
}

func TestDefault(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")

	cfg := Default()
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want the environment value", cfg.APIKey)
	}
	if cfg.Version != "v1" {
		t.Errorf("Version = %q, want v1", cfg.Version)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestLogger(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		cfg := Default()
		cfg.Logging.Format = format
		if cfg.Logger() == nil {
			t.Errorf("Logger() = nil for format %q", format)
		}
	}
}
