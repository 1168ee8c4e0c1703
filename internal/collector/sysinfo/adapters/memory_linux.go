package adapters

import (
	"github.com/siderolabs/go-smbios/smbios"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

// memorySlots enumerates the populated DIMM slots from the SMBIOS tables.
func (s Source) memorySlots() ([]sysinfo.MemorySlot, error) {
	sm, err := smbios.New()
	if err != nil {
		return nil, err
	}

	mods := make([]memoryModule, 0, len(sm.MemoryDevices))
	for _, d := range sm.MemoryDevices {
		mods = append(mods, memoryModule{
			sizeRaw:      uint16(d.Size),
			extendedSize: uint32(d.ExtendedSize),
			speed:        uint16(d.Speed),
			locator:      d.DeviceLocator,
			manufacturer: d.Manufacturer,
		})
	}

	return modulesToSlots(mods), nil
}

// memoryModule carries the raw SMBIOS type 17 fields needed for a slot
// record.
type memoryModule struct {
	sizeRaw      uint16
	extendedSize uint32
	speed        uint16
	locator      string
	manufacturer string
}

// SMBIOS type 17 size semantics.
const (
	sizeUnknown  = 0xFFFF
	sizeExtended = 0x7FFF
	sizeKBFlag   = 0x8000
)

// modulesToSlots converts raw SMBIOS memory devices into slot records,
// dropping empty and unknown-size slots.
func modulesToSlots(mods []memoryModule) []sysinfo.MemorySlot {
	out := []sysinfo.MemorySlot{}
	for _, m := range mods {
		mb := moduleSizeMB(m)
		if mb == 0 {
			continue
		}

		out = append(out, sysinfo.MemorySlot{
			CapacityGB:   uint(mb / 1024),
			SpeedMHz:     uint(m.speed),
			Slot:         orUnavailable(m.locator),
			Manufacturer: sanitize(m.manufacturer),
		})
	}
	return out
}

// moduleSizeMB decodes the type 17 Size field: 0 means the slot is empty,
// 0xFFFF unknown, 0x7FFF defers to ExtendedSize, and bit 15 switches the
// unit from megabytes to kilobytes.
func moduleSizeMB(m memoryModule) uint64 {
	switch m.sizeRaw {
	case 0, sizeUnknown:
		return 0
	case sizeExtended:
		return uint64(m.extendedSize)
	}
	if m.sizeRaw&sizeKBFlag != 0 {
		return uint64(m.sizeRaw&^sizeKBFlag) / 1024
	}
	return uint64(m.sizeRaw)
}
