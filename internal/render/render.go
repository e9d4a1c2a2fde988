package render

import (
	"context"
	"fmt"

	"github.com/dfirsec/web-file-downloader/internal/config"
	wfdhttp "github.com/dfirsec/web-file-downloader/internal/http"
)

// Renderer turns a page URL into an HTML document. An empty string with
// a nil error means the page produced no usable content; callers treat
// both the same way as a render error.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// New builds the renderer selected by the configuration.
func New(cfg config.RendererConfig) (Renderer, error) {
	switch cfg.Engine {
	case config.EngineHTTP:
		return NewHTTPRenderer(cfg.UserAgent), nil
	case config.EngineChrome, config.EngineEdge:
		return NewBrowserRenderer(BrowserOptions{
			ExecPath:  cfg.BrowserPath(),
			UserAgent: cfg.UserAgent,
			Wait:      cfg.Wait,
		}), nil
	default:
		return nil, fmt.Errorf("render: unsupported engine %q", cfg.Engine)
	}
}

// HTTPRenderer fetches pages with a plain GET. It sees only server-side
// markup; pages that assemble their links in JavaScript need a browser
// backend instead.
type HTTPRenderer struct {
	client *wfdhttp.Client
}

// NewHTTPRenderer creates a plain-HTTP renderer.
func NewHTTPRenderer(userAgent string) *HTTPRenderer {
	opts := wfdhttp.DefaultOptions()
	opts.UserAgent = userAgent
	return &HTTPRenderer{client: wfdhttp.NewClient(opts)}
}

// Render fetches the page body.
func (r *HTTPRenderer) Render(ctx context.Context, url string) (string, error) {
	return r.client.GetString(ctx, url)
}
