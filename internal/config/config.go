package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Engines supported by the renderer factory.
const (
	EngineHTTP   = "http"
	EngineChrome = "chrome"
	EngineEdge   = "edge"
)

// DefaultUserAgent mirrors a desktop browser so sites serve the same
// markup they serve to users.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0"

// Config defines configuration for the wfd CLI.
type Config struct {
	DownloadDir string         `yaml:"download_dir"`
	Workers     int            `yaml:"workers"`
	LogFile     string         `yaml:"log_file"`
	LogLevel    string         `yaml:"log_level"`
	Timeout     TimeoutConfig  `yaml:"timeout"`
	Renderer    RendererConfig `yaml:"renderer"`
}

// TimeoutConfig bounds the per-attempt download deadline.
type TimeoutConfig struct {
	Base time.Duration `yaml:"base"`
	Max  time.Duration `yaml:"max"`
}

// RendererConfig selects and configures the page renderer backend.
type RendererConfig struct {
	// Engine is one of "http", "chrome" or "edge".
	Engine string `yaml:"engine"`

	// Browsers maps an engine name to a browser binary path,
	// used by the chrome and edge backends.
	Browsers map[string]string `yaml:"browsers"`

	// Wait is how long a browser backend waits for the page to settle.
	Wait time.Duration `yaml:"wait"`

	// UserAgent is sent on render and download requests.
	UserAgent string `yaml:"user_agent"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		DownloadDir: "downloads",
		Workers:     10,
		LogFile:     "logs/wfd.log",
		LogLevel:    "info",
		Timeout: TimeoutConfig{
			Base: 10 * time.Second,
			Max:  30 * time.Second,
		},
		Renderer: RendererConfig{
			Engine:    EngineHTTP,
			Wait:      5 * time.Second,
			UserAgent: DefaultUserAgent,
		},
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	DownloadDir string             `yaml:"download_dir"`
	Workers     int                `yaml:"workers"`
	LogFile     string             `yaml:"log_file"`
	LogLevel    string             `yaml:"log_level"`
	Timeout     yamlTimeoutConfig  `yaml:"timeout"`
	Renderer    yamlRendererConfig `yaml:"renderer"`
}

type yamlTimeoutConfig struct {
	Base string `yaml:"base"`
	Max  string `yaml:"max"`
}

type yamlRendererConfig struct {
	Engine    string            `yaml:"engine"`
	Browsers  map[string]string `yaml:"browsers"`
	Wait      string            `yaml:"wait"`
	UserAgent string            `yaml:"user_agent"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.DownloadDir != "" {
		cfg.DownloadDir = yc.DownloadDir
	}
	if yc.Workers != 0 {
		cfg.Workers = yc.Workers
	}
	if yc.LogFile != "" {
		cfg.LogFile = yc.LogFile
	}
	if yc.LogLevel != "" {
		cfg.LogLevel = yc.LogLevel
	}
	if yc.Timeout.Base != "" {
		d, err := time.ParseDuration(yc.Timeout.Base)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout.base: %w", err)
		}
		cfg.Timeout.Base = d
	}
	if yc.Timeout.Max != "" {
		d, err := time.ParseDuration(yc.Timeout.Max)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout.max: %w", err)
		}
		cfg.Timeout.Max = d
	}
	if yc.Renderer.Engine != "" {
		cfg.Renderer.Engine = yc.Renderer.Engine
	}
	if len(yc.Renderer.Browsers) > 0 {
		cfg.Renderer.Browsers = yc.Renderer.Browsers
	}
	if yc.Renderer.Wait != "" {
		d, err := time.ParseDuration(yc.Renderer.Wait)
		if err != nil {
			return Config{}, fmt.Errorf("parse renderer.wait: %w", err)
		}
		cfg.Renderer.Wait = d
	}
	if yc.Renderer.UserAgent != "" {
		cfg.Renderer.UserAgent = yc.Renderer.UserAgent
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the WFD_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("WFD_DOWNLOAD_DIR"); v != "" {
		c.DownloadDir = v
	}
	if v := os.Getenv("WFD_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse WFD_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("WFD_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("WFD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("WFD_TIMEOUT_BASE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse WFD_TIMEOUT_BASE: %w", err)
		}
		c.Timeout.Base = d
	}
	if v := os.Getenv("WFD_TIMEOUT_MAX"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse WFD_TIMEOUT_MAX: %w", err)
		}
		c.Timeout.Max = d
	}
	if v := os.Getenv("WFD_RENDERER_ENGINE"); v != "" {
		c.Renderer.Engine = v
	}
	if v := os.Getenv("WFD_RENDERER_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse WFD_RENDERER_WAIT: %w", err)
		}
		c.Renderer.Wait = d
	}
	if v := os.Getenv("WFD_USER_AGENT"); v != "" {
		c.Renderer.UserAgent = v
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DownloadDir == "" {
		return errors.New("config: download_dir is required")
	}
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	if c.Timeout.Base <= 0 {
		return errors.New("config: timeout.base must be positive")
	}
	if c.Timeout.Max < c.Timeout.Base {
		return errors.New("config: timeout.max must not be below timeout.base")
	}
	switch c.Renderer.Engine {
	case EngineHTTP, EngineChrome, EngineEdge:
	default:
		return fmt.Errorf("config: unsupported renderer engine %q", c.Renderer.Engine)
	}
	return nil
}

// BrowserPath returns the configured binary path for the active engine.
func (c *RendererConfig) BrowserPath() string {
	if c.Browsers == nil {
		return ""
	}
	return c.Browsers[c.Engine]
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.DownloadDir != "" {
		c.DownloadDir = override.DownloadDir
	}
	if override.Workers != 0 {
		c.Workers = override.Workers
	}
	if override.LogFile != "" {
		c.LogFile = override.LogFile
	}
	if override.LogLevel != "" {
		c.LogLevel = override.LogLevel
	}
	if override.Timeout.Base != 0 {
		c.Timeout.Base = override.Timeout.Base
	}
	if override.Timeout.Max != 0 {
		c.Timeout.Max = override.Timeout.Max
	}
	if override.Renderer.Engine != "" {
		c.Renderer.Engine = override.Renderer.Engine
	}
	if len(override.Renderer.Browsers) > 0 {
		c.Renderer.Browsers = override.Renderer.Browsers
	}
	if override.Renderer.Wait != 0 {
		c.Renderer.Wait = override.Renderer.Wait
	}
	if override.Renderer.UserAgent != "" {
		c.Renderer.UserAgent = override.Renderer.UserAgent
	}
	return c
}
