package render

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserOptions configures the headless browser renderer.
type BrowserOptions struct {
	// ExecPath is the browser binary to launch. Chrome and Edge both
	// speak the DevTools protocol; either works here. Empty means
	// whatever chromedp finds on the system.
	ExecPath string

	// UserAgent overrides the browser's default user agent.
	UserAgent string

	// Wait is the maximum time to wait for the document body after
	// navigation. Default: 5s.
	Wait time.Duration
}

// BrowserRenderer drives a headless Chromium-family browser to obtain
// the fully rendered document, scripts included.
type BrowserRenderer struct {
	opts BrowserOptions
}

// NewBrowserRenderer creates a headless browser renderer.
func NewBrowserRenderer(opts BrowserOptions) *BrowserRenderer {
	if opts.Wait <= 0 {
		opts.Wait = 5 * time.Second
	}
	return &BrowserRenderer{opts: opts}
}

// Render navigates to the URL, waits for the body element, and returns
// the document's outer HTML. Each call runs a fresh browser session;
// one render per run does not justify keeping a session alive.
func (r *BrowserRenderer) Render(ctx context.Context, url string) (string, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
	)
	if r.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.opts.ExecPath))
	}
	if r.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(r.opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		waitForBody(r.opts.Wait),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

// waitForBody bounds the wait for the body element without cutting the
// whole render context short.
func waitForBody(wait time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, wait)
		defer cancel()
		return chromedp.WaitReady("body", chromedp.ByQuery).Do(waitCtx)
	})
}
