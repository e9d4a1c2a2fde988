package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"gocloud.dev/blob/fileblob"

	"github.com/dfirsec/web-file-downloader/internal/config"
	"github.com/dfirsec/web-file-downloader/internal/downloader"
	wfdhttp "github.com/dfirsec/web-file-downloader/internal/http"
	"github.com/dfirsec/web-file-downloader/internal/render"
	"github.com/dfirsec/web-file-downloader/internal/report"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInvalidArgs  = 2
	ExitConfigError  = 3
	ExitStorageError = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("wfd", flag.ContinueOnError)

	configPath := fs.String("config", "", "Path to YAML config file")
	dir := fs.String("dir", "", "Download directory (default: downloads)")
	workers := fs.Int("workers", 0, "Maximum concurrent downloads")
	engine := fs.String("engine", "", "Page renderer: http, chrome or edge")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: wfd [options] <url> <filetype>

Download files of the given type (e.g. pdf, png) linked on a web page.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return ExitInvalidArgs
	}

	pageURL := fs.Arg(0)
	filetype := strings.TrimPrefix(fs.Arg(1), ".")

	if !validURL(pageURL) {
		fmt.Fprintf(os.Stderr, "Error: %q is not a valid http(s) URL\n", pageURL)
		return ExitInvalidArgs
	}
	if filetype == "" {
		fmt.Fprintln(os.Stderr, "Error: filetype must not be empty")
		return ExitInvalidArgs
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitConfigError
		}
		cfg = loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitConfigError
	}
	cfg = cfg.Merge(config.Config{
		DownloadDir: *dir,
		Workers:     *workers,
		Renderer:    config.RendererConfig{Engine: *engine},
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitConfigError
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[!] Received interrupt, shutting down...")
		cancel()
	}()

	// The download root is the one fatal resource: without it no task
	// can be scheduled.
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating download directory: %v\n", err)
		return ExitStorageError
	}
	bucket, err := fileblob.OpenBucket(cfg.DownloadDir, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening download directory: %v\n", err)
		return ExitStorageError
	}
	defer bucket.Close()

	renderer, err := render.New(cfg.Renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitConfigError
	}

	logger := newLogger(cfg)
	rep := report.New(os.Stdout, logger)

	client := wfdhttp.NewClient(wfdhttp.Options{UserAgent: cfg.Renderer.UserAgent})
	exec := downloader.NewExecutor(client, bucket, rep, cfg.Timeout.Base, cfg.Timeout.Max)
	orch := downloader.New(renderer, exec, bucket, rep, cfg.Workers)

	if err := orch.Run(ctx, pageURL, filetype); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}
	return ExitSuccess
}

// validURL accepts absolute http(s) URLs only.
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// newLogger builds the run's structured log sink. A log file that
// cannot be opened degrades to a discarded sink rather than aborting
// the run; the console reporter still shows everything.
func newLogger(cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogFile == "" {
		logger.SetOutput(io.Discard)
		return logger
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	logger.SetOutput(f)
	return logger
}
