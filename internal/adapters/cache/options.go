package cache

import "time"

// Option applies a configuration option to the ReportCache.
type Option func(*ReportCache)

// WithTTL sets the freshness window for cached reports.
func WithTTL(ttl time.Duration) Option {
	return func(c *ReportCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *ReportCache) {
		if now != nil {
			c.now = now
		}
	}
}
