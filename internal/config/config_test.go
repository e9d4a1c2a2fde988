package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.DownloadDir != "downloads" {
		t.Errorf("expected default download dir 'downloads', got %q", cfg.DownloadDir)
	}
	if cfg.Workers != 10 {
		t.Errorf("expected default workers 10, got %d", cfg.Workers)
	}
	if cfg.Timeout.Base != 10*time.Second {
		t.Errorf("expected default base timeout 10s, got %v", cfg.Timeout.Base)
	}
	if cfg.Timeout.Max != 30*time.Second {
		t.Errorf("expected default max timeout 30s, got %v", cfg.Timeout.Max)
	}
	if cfg.Renderer.Engine != EngineHTTP {
		t.Errorf("expected default engine http, got %q", cfg.Renderer.Engine)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
download_dir: /tmp/files
workers: 4
log_level: debug
timeout:
  base: 5s
  max: 20s
renderer:
  engine: chrome
  wait: 3s
  browsers:
    chrome: /usr/bin/chromium
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.DownloadDir != "/tmp/files" {
		t.Errorf("expected download dir /tmp/files, got %q", cfg.DownloadDir)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected workers 4, got %d", cfg.Workers)
	}
	if cfg.Timeout.Base != 5*time.Second {
		t.Errorf("expected base timeout 5s, got %v", cfg.Timeout.Base)
	}
	if cfg.Timeout.Max != 20*time.Second {
		t.Errorf("expected max timeout 20s, got %v", cfg.Timeout.Max)
	}
	if cfg.Renderer.Engine != EngineChrome {
		t.Errorf("expected engine chrome, got %q", cfg.Renderer.Engine)
	}
	if cfg.Renderer.Wait != 3*time.Second {
		t.Errorf("expected renderer wait 3s, got %v", cfg.Renderer.Wait)
	}
	if got := cfg.Renderer.BrowserPath(); got != "/usr/bin/chromium" {
		t.Errorf("expected chrome browser path, got %q", got)
	}
	// Values the file omits keep their defaults
	if cfg.LogFile != "logs/wfd.log" {
		t.Errorf("expected default log file, got %q", cfg.LogFile)
	}
}

func TestLoadFromYAMLBadDuration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("timeout:\n  base: nonsense\n"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WFD_DOWNLOAD_DIR", "/data/dl")
	t.Setenv("WFD_WORKERS", "7")
	t.Setenv("WFD_TIMEOUT_BASE", "2s")
	t.Setenv("WFD_RENDERER_ENGINE", "edge")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.DownloadDir != "/data/dl" {
		t.Errorf("expected download dir /data/dl, got %q", cfg.DownloadDir)
	}
	if cfg.Workers != 7 {
		t.Errorf("expected workers 7, got %d", cfg.Workers)
	}
	if cfg.Timeout.Base != 2*time.Second {
		t.Errorf("expected base timeout 2s, got %v", cfg.Timeout.Base)
	}
	if cfg.Renderer.Engine != EngineEdge {
		t.Errorf("expected engine edge, got %q", cfg.Renderer.Engine)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("WFD_WORKERS", "many")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Error("expected error for non-numeric WFD_WORKERS")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty download dir", func(c *Config) { c.DownloadDir = "" }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"zero base timeout", func(c *Config) { c.Timeout.Base = 0 }, true},
		{"max below base", func(c *Config) { c.Timeout.Max = time.Second }, true},
		{"unknown engine", func(c *Config) { c.Renderer.Engine = "firefox" }, true},
		{"edge engine", func(c *Config) { c.Renderer.Engine = EngineEdge }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	cfg := Default()
	merged := cfg.Merge(Config{
		Workers:  3,
		Renderer: RendererConfig{Engine: EngineChrome},
	})

	if merged.Workers != 3 {
		t.Errorf("expected workers 3, got %d", merged.Workers)
	}
	if merged.Renderer.Engine != EngineChrome {
		t.Errorf("expected engine chrome, got %q", merged.Renderer.Engine)
	}
	// Zero-value overrides leave the base intact
	if merged.DownloadDir != cfg.DownloadDir {
		t.Errorf("expected download dir %q, got %q", cfg.DownloadDir, merged.DownloadDir)
	}
	if merged.Timeout.Base != cfg.Timeout.Base {
		t.Errorf("expected base timeout %v, got %v", cfg.Timeout.Base, merged.Timeout.Base)
	}
}
