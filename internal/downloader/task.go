package downloader

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Task is one download attempt's worth of state. Tasks are built at
// discovery time (attempt 1) or retry-submission time (attempt 2) and
// are not reused across attempts.
type Task struct {
	// URL is the source URL as extracted from the page.
	URL string

	// Name is the basename of the URL path; it doubles as the object
	// key under the download root. Query strings never reach it: the
	// URL path component excludes them.
	Name string

	// Ext is the lowercased extension of the URL path, leading dot
	// included.
	Ext string

	// Filetype is the extension token the caller asked for, without a
	// leading dot.
	Filetype string

	// ExpectedSize is the expected transfer size in bytes, 0 when
	// unknown. It is set at most once per attempt, from the response
	// Content-Length, to drive the deadline and reporting for that
	// attempt only.
	ExpectedSize int64

	// Attempt is 1 for the initial wave, 2 for the retry wave.
	Attempt int
}

// NewTask resolves a candidate URL into a Task. It fails — dropping the
// candidate — when the URL does not parse, names no file, or its
// extension does not match the requested filetype. The extractor's
// scans are heuristic, so rejection here is routine, not exceptional.
//
// Two distinct URLs with the same basename resolve to the same name;
// whichever finishes writing last wins. Accepted limitation.
func NewTask(rawURL, filetype string, attempt int) (*Task, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return nil, fmt.Errorf("no filename in url path %q", u.Path)
	}

	ext := strings.ToLower(path.Ext(u.Path))
	want := strings.TrimPrefix(filetype, ".")
	if !strings.EqualFold(strings.TrimPrefix(ext, "."), want) {
		return nil, fmt.Errorf("extension %q does not match filetype %q", ext, want)
	}

	return &Task{
		URL:      rawURL,
		Name:     name,
		Ext:      ext,
		Filetype: want,
		Attempt:  attempt,
	}, nil
}

// MatchesFiletype re-validates the extension against the requested
// filetype. The executor calls this before writing anything, guarding
// against candidates the extractor let through on looser grounds.
func (t *Task) MatchesFiletype() bool {
	return strings.EqualFold(strings.TrimPrefix(t.Ext, "."), t.Filetype)
}
