// Package extract locates candidate download URLs in an HTML document.
//
// Extraction is heuristic by design: it combines a raw-text regex scan
// with anchor and image tag scans, emits duplicates freely, and never
// fails on malformed markup. The downloader validates every candidate
// again before writing anything to disk.
package extract
