// Package config defines configuration structures for the wfd CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (WFD_ prefix)
//   - YAML configuration file
//
// # Structure
//
//	type Config struct {
//	    DownloadDir string
//	    Workers     int
//	    LogFile     string
//	    LogLevel    string
//	    Timeout     TimeoutConfig
//	    Renderer    RendererConfig
//	}
//
//	type TimeoutConfig struct {
//	    Base time.Duration
//	    Max  time.Duration
//	}
//
// The renderer section selects how pages are turned into HTML: a plain
// HTTP GET, or a headless chrome/edge session pointed at a configured
// browser binary.
package config
