package downloader

import (
	"context"
	"sync"

	"gocloud.dev/blob"
	"golang.org/x/sync/semaphore"

	"github.com/dfirsec/web-file-downloader/internal/extract"
	"github.com/dfirsec/web-file-downloader/internal/render"
	"github.com/dfirsec/web-file-downloader/internal/report"
)

// DefaultWorkers bounds concurrent downloads when no worker count is
// configured.
const DefaultWorkers = 10

// Orchestrator drives one run: a single page render, link discovery,
// an initial fan-out of download tasks, and exactly one retry wave over
// the retryable failures.
type Orchestrator struct {
	renderer render.Renderer
	exec     *Executor
	bucket   *blob.Bucket
	rep      *report.Reporter
	sem      *semaphore.Weighted
}

// New creates an orchestrator with a limiter of the given size.
func New(renderer render.Renderer, exec *Executor, bucket *blob.Bucket, rep *report.Reporter, workers int) *Orchestrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Orchestrator{
		renderer: renderer,
		exec:     exec,
		bucket:   bucket,
		rep:      rep,
		sem:      semaphore.NewWeighted(int64(workers)),
	}
}

// Run executes one full discovery-and-download pass for the page.
//
// The render happens synchronously, outside the limiter, and the page
// is fully scanned before any download starts. A failed or empty render
// ends the run without error: there is simply nothing to download.
// Per-task failures never surface as errors either; they are reported
// and, when retryable, resubmitted exactly once.
func (o *Orchestrator) Run(ctx context.Context, pageURL, filetype string) error {
	o.rep.Locating(filetype)

	html, err := o.renderer.Render(ctx, pageURL)
	if err != nil || html == "" {
		o.rep.RenderFailed(pageURL, err)
		return nil
	}

	tasks := o.discover(ctx, pageURL, filetype, html)
	if len(tasks) == 0 {
		o.rep.NoLinks(filetype)
		return nil
	}

	failures := newFailureCollector()
	o.runWave(ctx, tasks, failures)

	if failed := failures.drain(); len(failed) > 0 {
		o.rep.Retrying(len(failed))

		// A fresh collector for the retry wave: whatever fails in it is
		// reported and dropped, never resubmitted.
		second := newFailureCollector()
		o.runWave(ctx, o.rebuild(ctx, failed, filetype), second)

		if still := second.drain(); len(still) > 0 {
			o.rep.Unrecovered(still)
		}
	}

	o.rep.Summary()
	return nil
}

// discover turns candidate links into executable tasks. Candidates that
// do not resolve to a matching filename are dropped silently (the
// extractor over-approximates); duplicate URLs collapse into a single
// task; targets already present in the bucket are reported as skipped
// and never become tasks.
func (o *Orchestrator) discover(ctx context.Context, pageURL, filetype, html string) []*Task {
	var tasks []*Task
	seen := make(map[string]struct{})
	for _, link := range extract.Links(pageURL, filetype, html) {
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}

		t, err := NewTask(link, filetype, 1)
		if err != nil {
			continue
		}
		if exists, err := o.bucket.Exists(ctx, t.Name); err == nil && exists {
			o.rep.SkippedExists(t.Name)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks
}

// rebuild constructs brand-new second-attempt tasks for the failed
// URLs, re-filtering against storage in case a same-named sibling
// completed in the meantime.
func (o *Orchestrator) rebuild(ctx context.Context, failed []string, filetype string) []*Task {
	var tasks []*Task
	for _, u := range failed {
		t, err := NewTask(u, filetype, 2)
		if err != nil {
			continue
		}
		if exists, err := o.bucket.Exists(ctx, t.Name); err == nil && exists {
			o.rep.SkippedExists(t.Name)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks
}

// runWave fans the tasks out through the limiter and waits for all of
// them to finish. Retryable outcomes land in the collector.
func (o *Orchestrator) runWave(ctx context.Context, tasks []*Task, failures *failureCollector) {
	var wg sync.WaitGroup
	for _, t := range tasks {
		if err := o.sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(t *Task) {
			defer wg.Done()
			defer o.sem.Release(1)

			if outcome := o.exec.Do(ctx, t); outcome.Retryable() {
				failures.record(t.URL)
			}
		}(t)
	}
	wg.Wait()
}
