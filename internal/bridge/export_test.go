package bridge

import "time"

// WithPushInterval sets the cadence of pushes to a connected viewer.
func WithPushInterval(interval time.Duration) Options {
	return func(o *options) {
		o.interval = interval
	}
}
