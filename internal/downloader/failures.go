package downloader

import "sync"

// failureCollector accumulates URLs whose attempt failed in a retryable
// way. Workers append concurrently during a wave; the orchestrator
// drains it once after the wave joins. The retry wave gets a fresh,
// empty collector, which is what caps every URL at two attempts.
type failureCollector struct {
	mu   sync.Mutex
	urls []string
	seen map[string]struct{}
}

func newFailureCollector() *failureCollector {
	return &failureCollector{seen: make(map[string]struct{})}
}

// record adds a failed URL. Duplicate records of the same URL collapse
// to one entry, first-seen order preserved.
func (f *failureCollector) record(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[url]; ok {
		return
	}
	f.seen[url] = struct{}{}
	f.urls = append(f.urls, url)
}

// drain returns the collected URLs.
func (f *failureCollector) drain() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.urls
}
