// Package render turns a page URL into an HTML document.
//
// Two backends implement the Renderer interface: a plain HTTP GET, and
// a headless Chromium-family browser (chrome or edge binary) for pages
// that assemble their content in JavaScript. The backend is selected by
// configuration; the downloader core never inspects the concrete type.
package render
