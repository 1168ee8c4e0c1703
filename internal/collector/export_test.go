package collector

import "time"

// WithSource sets the hardware source.
func WithSource(s Source) Options {
	return func(o *options) {
		o.source = s
	}
}

// WithTimeProvider sets the time provider for the collector.
func WithTimeProvider(tp timeProvider) Options {
	return func(o *options) {
		o.timeProvider = tp
	}
}

// WithStaticTTL sets the staleness threshold of the static tier.
func WithStaticTTL(ttl time.Duration) Options {
	return func(o *options) {
		o.staticTTL = ttl
	}
}

// WithCadence sets the refresh loop intervals.
func WithCadence(fast, slow time.Duration) Options {
	return func(o *options) {
		o.fastInterval = fast
		o.slowInterval = slow
	}
}

// RefreshDynamic runs one refresh iteration without waiting for the loop.
func (c *Collector) RefreshDynamic(lastSlow time.Time) time.Time {
	return c.refreshDynamic(lastSlow)
}
