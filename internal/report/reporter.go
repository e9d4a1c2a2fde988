package report

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Reporter is the run-scoped reporting handle. It writes one console
// line per task event and mirrors each event to a structured log sink.
// Created at run start, threaded through the orchestrator, and closed
// out with Summary.
//
// All methods are safe for concurrent use by download workers.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
	log *logrus.Logger

	skipped   atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
}

// printf serializes console writes; workers report concurrently and
// lines must not interleave.
func (r *Reporter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

// New creates a Reporter writing console lines to out and structured
// events to log. A nil out defaults to os.Stdout; a nil log discards
// structured events.
func New(out io.Writer, log *logrus.Logger) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Reporter{out: out, log: log}
}

// Locating announces the start of a run.
func (r *Reporter) Locating(filetype string) {
	r.printf("[*] Locating '%s' files...\n", filetype)
}

// RenderFailed reports that the page produced no HTML. The run ends
// here without error.
func (r *Reporter) RenderFailed(url string, err error) {
	r.printf("[!] Error retrieving HTML page from '%s'\n", url)
	r.log.WithField("url", url).WithError(err).Error("page render failed")
}

// NoLinks reports a scanned page with no matching candidates.
func (r *Reporter) NoLinks(filetype string) {
	r.printf("[-] No '%s' files found\n", filetype)
}

// SkippedExists reports a target already present in the download root.
func (r *Reporter) SkippedExists(name string) {
	r.skipped.Add(1)
	r.printf("[-] File already exists: %s\n", name)
}

// Downloading reports the start of a transfer.
func (r *Reporter) Downloading(name string) {
	r.printf("[+] Downloading: %s\n", name)
}

// Succeeded reports a completed download.
func (r *Reporter) Succeeded(name string, size int64) {
	r.succeeded.Add(1)
	r.log.WithFields(logrus.Fields{"file": name, "bytes": size}).Info("downloaded")
}

// NotFound reports a 404. Terminal: the URL is never retried.
func (r *Reporter) NotFound(url string) {
	r.failed.Add(1)
	r.printf("[!] File not found: %s\n", url)
	r.log.WithField("url", url).Error("file not found (404)")
}

// HTTPError reports a non-404 error status.
func (r *Reporter) HTTPError(url string, code int) {
	r.failed.Add(1)
	r.printf("[!] HTTP error %d while downloading %s\n", code, url)
	r.log.WithFields(logrus.Fields{"url": url, "status": code}).Error("http error")
}

// Timeout reports an attempt whose deadline elapsed mid-transfer.
func (r *Reporter) Timeout(url string) {
	r.failed.Add(1)
	r.printf("[!] Timeout occurred while downloading %s\n", url)
	r.log.WithField("url", url).Error("download timed out")
}

// TransportError reports a connection-level failure.
func (r *Reporter) TransportError(url string, err error) {
	r.failed.Add(1)
	r.printf("[!] Error occurred while downloading %s\n", url)
	r.log.WithField("url", url).WithError(err).Error("transport error")
}

// Mismatch reports a candidate whose served extension did not match the
// requested filetype.
func (r *Reporter) Mismatch(url, ext, filetype string) {
	r.log.WithFields(logrus.Fields{"url": url, "ext": ext, "filetype": filetype}).
		Warn("extension mismatch, not written")
}

// Retrying announces the retry wave.
func (r *Reporter) Retrying(n int) {
	r.printf("\n[!] Retrying %d failed download(s)...\n", n)
	r.log.WithField("count", n).Info("retrying failed downloads")
}

// Unrecovered lists URLs that still failed after the retry wave.
func (r *Reporter) Unrecovered(urls []string) {
	r.printf("\n[!] %d download(s) failed after retry:\n", len(urls))
	for _, u := range urls {
		r.printf("    %s\n", u)
		r.log.WithField("url", u).Error("failed after retry")
	}
}

// Summary prints the final per-run counts.
func (r *Reporter) Summary() {
	r.printf("\n[*] Done: %d downloaded, %d skipped, %d failed\n",
		r.succeeded.Load(), r.skipped.Load(), r.failed.Load())
}

// Counts returns the running totals.
func (r *Reporter) Counts() (succeeded, skipped, failed int64) {
	return r.succeeded.Load(), r.skipped.Load(), r.failed.Load()
}
