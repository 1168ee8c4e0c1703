package adapters

import (
	"errors"
	"math"

	"github.com/distatus/battery"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

// Battery reports the charge state of the first battery. Machines without
// one are classified as desktops on AC power.
func (s Source) Battery() (sysinfo.Battery, error) {
	bats, err := battery.GetAll()
	if err != nil {
		// Per-battery read errors still carry the readable entries.
		var errs battery.Errors
		if !errors.As(err, &errs) {
			return sysinfo.Battery{}, err
		}
		s.log.Warn("some batteries could not be read", "error", err)
	}

	if len(bats) == 0 {
		return sysinfo.DefaultBattery(), nil
	}

	b := bats[0]
	percent := 0
	if b.Full > 0 {
		percent = int(math.Round(b.Current / b.Full * 100))
	}
	percent = min(max(percent, 0), 100)

	plugged := b.State.Raw != battery.Discharging && b.State.Raw != battery.Empty
	return sysinfo.Battery{
		Percent:      uint(percent),
		PowerPlugged: plugged,
		IsDesktop:    false,
	}, nil
}
