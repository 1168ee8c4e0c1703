package adapters

import (
	"github.com/yusufpapurcu/wmi"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

type win32PhysicalMemory struct {
	Capacity      uint64
	Speed         uint32
	DeviceLocator string
	Manufacturer  string
}

// memorySlots queries Win32_PhysicalMemory for per-DIMM details.
func (s Source) memorySlots() ([]sysinfo.MemorySlot, error) {
	var mods []win32PhysicalMemory
	if err := wmi.Query("SELECT Capacity, Speed, DeviceLocator, Manufacturer FROM Win32_PhysicalMemory", &mods); err != nil {
		return nil, err
	}

	out := []sysinfo.MemorySlot{}
	for _, m := range mods {
		if m.Capacity == 0 {
			continue
		}
		out = append(out, sysinfo.MemorySlot{
			CapacityGB:   uint(m.Capacity / (1024 * 1024 * 1024)),
			SpeedMHz:     uint(m.Speed),
			Slot:         orUnavailable(m.DeviceLocator),
			Manufacturer: sanitize(m.Manufacturer),
		})
	}
	return out, nil
}
