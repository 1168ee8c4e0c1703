package adapters

import (
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

// Memory returns RAM usage together with per-slot module details. Slot
// enumeration needs firmware access and is best effort: usage is still
// reported when it fails.
func (s Source) Memory() (sysinfo.Memory, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return sysinfo.Memory{}, err
	}

	slots, err := s.memorySlots()
	if err != nil {
		s.log.Warn("failed to enumerate memory modules", "error", err)
		slots = nil
	}

	return memoryFrom(vm.Total, vm.Available, vm.Used, vm.UsedPercent, slots), nil
}

func memoryFrom(total, available, used uint64, usedPercent float64, slots []sysinfo.MemorySlot) sysinfo.Memory {
	m := sysinfo.Memory{
		TotalGB:       sysinfo.BytesToGB(total),
		AvailableGB:   sysinfo.BytesToGB(available),
		UsedGB:        sysinfo.BytesToGB(used),
		Percent:       uint(math.Round(usedPercent)),
		Slots:         []sysinfo.MemorySlot{},
		TotalCapacity: sysinfo.Unavailable,
	}

	if len(slots) > 0 {
		m.Slots = slots
		var capacity uint
		for _, slot := range slots {
			capacity += slot.CapacityGB
		}
		m.TotalCapacity = fmt.Sprintf("%d GB", capacity)
	}
	return m
}
