package downloader

import (
	"fmt"
	"sync"
	"testing"
)

func TestFailureCollectorOrderAndDedup(t *testing.T) {
	fc := newFailureCollector()

	fc.record("https://ex.com/a.pdf")
	fc.record("https://ex.com/b.pdf")
	fc.record("https://ex.com/a.pdf")

	got := fc.drain()
	if len(got) != 2 {
		t.Fatalf("expected 2 urls, got %d: %v", len(got), got)
	}
	if got[0] != "https://ex.com/a.pdf" || got[1] != "https://ex.com/b.pdf" {
		t.Errorf("expected first-seen order, got %v", got)
	}
}

func TestFailureCollectorConcurrent(t *testing.T) {
	fc := newFailureCollector()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fc.record(fmt.Sprintf("https://ex.com/%d.pdf", i))
		}(i)
	}
	wg.Wait()

	if got := fc.drain(); len(got) != 100 {
		t.Errorf("lost updates: expected 100 urls, got %d", len(got))
	}
}

func TestFailureCollectorEmpty(t *testing.T) {
	fc := newFailureCollector()
	if got := fc.drain(); len(got) != 0 {
		t.Errorf("expected empty drain, got %v", got)
	}
}
