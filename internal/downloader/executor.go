package downloader

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"gocloud.dev/blob"

	wfdhttp "github.com/dfirsec/web-file-downloader/internal/http"
	"github.com/dfirsec/web-file-downloader/internal/report"
)

// chunkSize is the fixed read/write granularity for streaming bodies to
// storage, keeping memory use independent of file size.
const chunkSize = 1024

// Outcome classifies a single download attempt.
type Outcome int

const (
	// OutcomeSkipped means the target already existed; no network call
	// was made.
	OutcomeSkipped Outcome = iota

	// OutcomeSucceeded means the file was written completely.
	OutcomeSucceeded

	// OutcomeNotFound is a 404. Terminal.
	OutcomeNotFound

	// OutcomeHTTPError is any other HTTP error status. Retryable once.
	OutcomeHTTPError

	// OutcomeTimeout means the attempt's deadline elapsed before the
	// transfer completed. Retryable once.
	OutcomeTimeout

	// OutcomeTransport is a connection-level failure (reset, DNS, ...).
	// Terminal: within a two-attempt budget these tend to repeat
	// immediately, so the single retry is not spent on them.
	OutcomeTransport

	// OutcomeMismatch means the resolved extension failed the pre-write
	// re-validation. Terminal.
	OutcomeMismatch
)

// Retryable reports whether the outcome qualifies the URL for the
// retry wave.
func (o Outcome) Retryable() bool {
	return o == OutcomeHTTPError || o == OutcomeTimeout
}

// Executor performs single download attempts against a storage bucket.
type Executor struct {
	client *wfdhttp.Client
	bucket *blob.Bucket
	rep    *report.Reporter

	base time.Duration
	max  time.Duration
}

// NewExecutor creates an executor. Zero timeout bounds fall back to the
// defaults (10s base, 30s max).
func NewExecutor(client *wfdhttp.Client, bucket *blob.Bucket, rep *report.Reporter, base, max time.Duration) *Executor {
	if base <= 0 {
		base = DefaultBaseTimeout
	}
	if max < base {
		max = DefaultMaxTimeout
	}
	return &Executor{client: client, bucket: bucket, rep: rep, base: base, max: max}
}

// Do runs one attempt for the task and classifies the result. Errors
// never escape: every failure mode maps to an Outcome and a report
// event. The deadline is local to this attempt; expiry cancels only
// this transfer.
func (e *Executor) Do(ctx context.Context, t *Task) Outcome {
	// Re-check existence even though discovery already filtered: a
	// sibling task in the same wave may have created the key since.
	if exists, err := e.bucket.Exists(ctx, t.Name); err == nil && exists {
		e.rep.SkippedExists(t.Name)
		return OutcomeSkipped
	}

	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var timedOut atomic.Bool
	start := time.Now()
	timer := time.AfterFunc(Deadline(t.ExpectedSize, e.base, e.max), func() {
		timedOut.Store(true)
		cancel()
	})
	defer timer.Stop()

	resp, err := e.client.Get(attemptCtx, t.URL)
	if err != nil {
		return e.classify(t, err, &timedOut)
	}
	defer resp.Body.Close()

	// The one allowed ExpectedSize update for this attempt: once the
	// Content-Length is known, stretch the deadline to what the size
	// actually warrants.
	if resp.ContentLength > 0 {
		t.ExpectedSize = resp.ContentLength
		if d := Deadline(t.ExpectedSize, e.base, e.max); d > time.Since(start) {
			timer.Reset(d - time.Since(start))
		}
	}

	if !t.MatchesFiletype() {
		e.rep.Mismatch(t.URL, t.Ext, t.Filetype)
		return OutcomeMismatch
	}

	e.rep.Downloading(t.Name)

	written, err := e.write(attemptCtx, t.Name, resp.Body)
	if err != nil {
		if timedOut.Load() {
			e.rep.Timeout(t.URL)
			return OutcomeTimeout
		}
		e.rep.TransportError(t.URL, err)
		return OutcomeTransport
	}

	e.rep.Succeeded(t.Name, written)
	return OutcomeSucceeded
}

// write streams the body into the bucket in fixed-size chunks. The
// writer gets its own cancelable context so a failed copy aborts the
// commit and the partial object is discarded.
func (e *Executor) write(ctx context.Context, key string, body io.Reader) (int64, error) {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := e.bucket.NewWriter(wctx, key, nil)
	if err != nil {
		return 0, err
	}

	var written int64
	buf := make([]byte, chunkSize)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			nw, werr := w.Write(buf[:n])
			written += int64(nw)
			if werr != nil {
				cancel()
				w.Close()
				return written, werr
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			cancel()
			w.Close()
			return written, rerr
		}
	}

	if err := w.Close(); err != nil {
		return written, err
	}
	return written, nil
}

// classify maps a request error to an outcome and reports it.
func (e *Executor) classify(t *Task, err error, timedOut *atomic.Bool) Outcome {
	var statusErr *wfdhttp.StatusError

	switch {
	case timedOut.Load():
		e.rep.Timeout(t.URL)
		return OutcomeTimeout
	case errors.Is(err, wfdhttp.ErrNotFound):
		e.rep.NotFound(t.URL)
		return OutcomeNotFound
	case errors.As(err, &statusErr):
		e.rep.HTTPError(t.URL, statusErr.Code)
		return OutcomeHTTPError
	default:
		e.rep.TransportError(t.URL, err)
		return OutcomeTransport
	}
}
