package extract

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Links scans an HTML document for candidate download URLs matching the
// requested filetype. Best effort: malformed or truncated HTML yields
// whatever the scans can salvage, never an error.
//
// Three passes run in fixed order, and their results are concatenated
// without deduplication — downstream must tolerate duplicates and
// invalid candidates:
//
//  1. a raw-text regex scan for absolute URLs ending in the filetype as
//     typed, which catches URLs embedded in scripts and JSON blobs
//  2. anchor hrefs whose suffix matches the filetype case-insensitively,
//     resolved against the base URL
//  3. image sources (data-src preferred over src), resolved, with the
//     extension of the URL path compared case-insensitively
func Links(baseURL, filetype, html string) []string {
	var links []string

	pattern := regexp.MustCompile(`https?://\S+` + regexp.QuoteMeta(filetype))
	links = append(links, pattern.FindAllString(html, -1)...)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// The raw-text scan already ran; nothing more to salvage.
		return links
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	suffix := strings.ToLower(filetype)

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		if !strings.HasSuffix(strings.ToLower(href), suffix) {
			return
		}
		if resolved := resolve(base, href); resolved != "" {
			links = append(links, resolved)
		}
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if dataSrc, ok := s.Attr("data-src"); ok && dataSrc != "" {
			src = dataSrc
		}
		if src == "" {
			return
		}

		resolved := resolve(base, src)
		if resolved == "" {
			return
		}
		u, err := url.Parse(resolved)
		if err != nil {
			return
		}

		// The URL path excludes any query string, so the extension
		// check sees "a.png", not "a.png?v=2".
		ext := strings.TrimPrefix(path.Ext(u.Path), ".")
		if strings.EqualFold(ext, strings.TrimPrefix(filetype, ".")) {
			links = append(links, resolved)
		}
	})

	return links
}

// resolve resolves a possibly-relative reference against base. An
// unparseable reference is skipped rather than aborting the scan.
func resolve(base *url.URL, ref string) string {
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		if refURL.IsAbs() {
			return refURL.String()
		}
		return ""
	}
	return base.ResolveReference(refURL).String()
}
