package adapters

import (
	"github.com/yusufpapurcu/wmi"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

type win32Battery struct {
	EstimatedChargeRemaining uint16
	BatteryStatus            uint16
}

// BatteryStatus values indicating the system is on AC power.
const (
	batteryStatusOnAC     = 2
	batteryStatusCharging = 6
	batteryStatusOverload = 9
)

// Battery queries Win32_Battery. Machines reporting no battery instance are
// classified as desktops on AC power.
func (s Source) Battery() (sysinfo.Battery, error) {
	var bats []win32Battery
	if err := wmi.Query("SELECT EstimatedChargeRemaining, BatteryStatus FROM Win32_Battery", &bats); err != nil {
		return sysinfo.Battery{}, err
	}

	if len(bats) == 0 {
		return sysinfo.DefaultBattery(), nil
	}

	b := bats[0]
	percent := min(uint(b.EstimatedChargeRemaining), 100)
	st := b.BatteryStatus
	plugged := st == batteryStatusOnAC || (st >= batteryStatusCharging && st <= batteryStatusOverload)

	return sysinfo.Battery{
		Percent:      percent,
		PowerPlugged: plugged,
		IsDesktop:    false,
	}, nil
}
