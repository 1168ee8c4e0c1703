package adapters

import (
	"strings"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

// sanitize strips non-printable bytes from raw firmware and driver strings,
// trims surrounding whitespace, and substitutes the unavailable sentinel for
// empty results. Firmware frequently pads fields with NULs or box-drawing
// garbage.
func sanitize(s string) string {
	if s == "" {
		return sysinfo.Unavailable
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, c := range []byte(s) {
		if c >= 0x20 && c <= 0x7E {
			b.WriteByte(c)
		} else {
			b.WriteByte(' ')
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return sysinfo.Unavailable
	}
	return out
}

// orUnavailable returns s trimmed, or the unavailable sentinel if empty.
func orUnavailable(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sysinfo.Unavailable
	}
	return s
}
