package report

import (
	"time"

	"github.com/alliancelab/warboard/internal/domain/model"
)

// Option applies a configuration option to an Assemble call.
type Option func(*assembleConfig)

type assembleConfig struct {
	eventID    string
	eventName  string
	eventStart time.Time
	eventEnd   time.Time
	binCount   int
}

// WithEventInfo attaches event metadata to the assembled report.
func WithEventInfo(ev model.Event) Option {
	return func(c *assembleConfig) {
		c.eventID = ev.ID
		c.eventName = ev.Name
		c.eventStart = ev.EventStart
		c.eventEnd = ev.EventEnd
	}
}

// WithDistributionBins overrides the histogram bin count.
func WithDistributionBins(n int) Option {
	return func(c *assembleConfig) {
		if n > 0 {
			c.binCount = n
		}
	}
}
