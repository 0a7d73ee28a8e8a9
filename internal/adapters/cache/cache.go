// Package cache serves assembled reports with a freshness window: fresh
// entries are returned directly, stale entries are served while one
// background refresh runs, and at most one fetch per key is ever in flight.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/alliancelab/warboard/internal/domain/report"
	"github.com/alliancelab/warboard/pkg/metrics"
)

// defaultTTL sits inside the product's observed 2-5 minute freshness band.
const defaultTTL = 3 * time.Minute

// Source produces the authoritative report for an event.
type Source interface {
	Report(ctx context.Context, eventID string) (*report.EventReport, error)
}

type entry struct {
	rep       *report.EventReport
	fetchedAt time.Time
}

// ReportCache is a read-through cache keyed by event id.
type ReportCache struct {
	src Source
	ttl time.Duration
	now func() time.Time

	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates a cache over src with configuration options.
func New(src Source, opts ...Option) *ReportCache {
	c := &ReportCache{
		src:     src,
		ttl:     defaultTTL,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the report for eventID. A fresh entry is returned as-is; a
// stale one is returned immediately while a single background refresh runs;
// a miss blocks on one shared fetch. A refresh that resolves after a newer
// one has already updated the entry is simply dropped.
func (c *ReportCache) Get(ctx context.Context, eventID string) (*report.EventReport, error) {
	c.mu.RLock()
	e, ok := c.entries[eventID]
	c.mu.RUnlock()

	if ok {
		if c.now().Sub(e.fetchedAt) < c.ttl {
			metrics.RecordCacheHit()
			return e.rep, nil
		}
		metrics.RecordCacheStale()
		go c.refresh(eventID)
		return e.rep, nil
	}

	metrics.RecordCacheMiss()
	v, err, _ := c.group.Do(eventID, func() (any, error) {
		rep, err := c.src.Report(ctx, eventID)
		if err != nil {
			return nil, err
		}
		c.store(eventID, rep, c.now())
		return rep, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*report.EventReport), nil
}

// Invalidate drops the cached entry so the next read refetches.
func (c *ReportCache) Invalidate(eventID string) {
	c.mu.Lock()
	delete(c.entries, eventID)
	c.mu.Unlock()
}

// refresh refetches one key in the background; concurrent stale readers
// share a single fetch through the singleflight group.
func (c *ReportCache) refresh(eventID string) {
	started := c.now()
	_, _, _ = c.group.Do(eventID, func() (any, error) {
		rep, err := c.src.Report(context.Background(), eventID)
		if err != nil {
			// Keep serving the stale entry; the next stale read retries.
			return nil, err
		}
		c.store(eventID, rep, started)
		return rep, nil
	})
}

// store records a fetch result unless a newer fetch already landed.
func (c *ReportCache) store(eventID string, rep *report.EventReport, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.entries[eventID]; ok && cur.fetchedAt.After(fetchedAt) {
		return
	}
	c.entries[eventID] = entry{rep: rep, fetchedAt: fetchedAt}
}
