package downloader

import (
	"math"
	"time"
)

// Default deadline bounds.
const (
	DefaultBaseTimeout = 10 * time.Second
	DefaultMaxTimeout  = 30 * time.Second
)

// Deadline computes the per-attempt deadline from an expected size in
// bytes. Unknown sizes (<= 0) get the flat base; otherwise the base is
// extended by 10*log2(MiB+1) seconds, capped at max. The result is
// monotonic in size and never below base.
func Deadline(size int64, base, max time.Duration) time.Duration {
	if size <= 0 {
		return base
	}

	mb := float64(size) / (1024 * 1024)
	extra := 10 * math.Log2(mb+1)
	if limit := (max - base).Seconds(); extra > limit {
		extra = limit
	}

	d := base + time.Duration(extra*float64(time.Second))
	if d > max {
		d = max
	}
	return d
}
