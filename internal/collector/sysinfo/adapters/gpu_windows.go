package adapters

import (
	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows/registry"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
	"github.com/hwqc/hwqc/internal/collector/sysinfo/correlate"
)

type win32VideoController struct {
	Name          string
	DriverVersion string
}

// GPUs queries Win32_VideoController and enriches each controller with its
// dedicated video memory. VRAM sizes come from an independent registry
// enumeration and are matched back by name; Win32_VideoController's own
// AdapterRAM is a 32-bit field and caps out at 4 GB.
func (s Source) GPUs() ([]sysinfo.GPU, error) {
	var ctrls []win32VideoController
	if err := wmi.Query("SELECT Name, DriverVersion FROM Win32_VideoController", &ctrls); err != nil {
		return nil, err
	}

	mems := s.videoMemory()

	out := []sysinfo.GPU{}
	for _, c := range ctrls {
		name := sanitize(c.Name)
		out = append(out, sysinfo.GPU{
			Name:          name,
			DriverVersion: sanitize(c.DriverVersion),
			VRAM:          correlate.MatchVRAM(name, mems),
		})
	}
	return out, nil
}

// videoMemory walks the display adapter class key for the 64-bit dedicated
// memory size each driver registered.
func (s Source) videoMemory() []correlate.VideoMemory {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, s.platform.displayClassKey, registry.READ)
	if err != nil {
		s.log.Warn("display class key unavailable", "error", err)
		return nil
	}
	defer key.Close()

	subKeys, err := key.ReadSubKeyNames(-1)
	if err != nil {
		s.log.Warn("failed to list display adapters", "error", err)
		return nil
	}

	var mems []correlate.VideoMemory
	for _, name := range subKeys {
		sub, err := registry.OpenKey(key, name, registry.READ)
		if err != nil {
			continue
		}

		desc, _, err := sub.GetStringValue("DriverDesc")
		if err != nil {
			sub.Close()
			continue
		}
		size, _, err := sub.GetIntegerValue("HardwareInformation.qwMemorySize")
		sub.Close()
		if err != nil || size == 0 {
			continue
		}

		mems = append(mems, correlate.VideoMemory{Description: desc, Bytes: size})
	}
	return mems
}
