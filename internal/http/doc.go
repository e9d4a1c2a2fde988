// Package http provides the HTTP client used for page fetches and file
// downloads.
//
// This package handles:
//   - Connection pooling across many small downloads
//   - Browser-style request headers
//   - Status classification (404 vs other error statuses)
//
// It deliberately does not retry: the run allows at most two attempts
// per URL, and that budget belongs to the orchestrator.
//
// # Usage
//
//	client := http.NewClient(http.Options{UserAgent: ua})
//
//	resp, err := client.Get(ctx, url)
//	// errors.Is(err, http.ErrNotFound), errors.As(err, &statusErr)
//	defer resp.Body.Close()
package http
