// Package downloader is the core engine: it resolves extracted links
// into download tasks, fans them out under bounded concurrency, and
// retries retryable failures exactly once.
//
// # Attempt model
//
// Every discovered URL gets at most two attempts. The first wave runs
// all discovered tasks; retryable failures (HTTP error statuses and
// timeouts) are collected and resubmitted as fresh tasks in a single
// second wave. Second-wave failures are reported and dropped. 404s,
// transport errors, and extension mismatches are terminal on first
// sight.
//
// # Deadlines
//
// Each attempt carries its own deadline, computed from the expected
// size (flat 10s when unknown, stretched logarithmically up to 30s once
// the Content-Length arrives). Expiry cancels only that attempt's
// transfer and discards its partial output.
//
// # Storage
//
// Targets live in a blob bucket keyed by URL basename. Existence is
// checked at discovery and again at execution, so a rerun over a
// populated download root schedules nothing.
package downloader
