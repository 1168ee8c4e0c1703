package adapters

import (
	"github.com/jaypipes/ghw"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

// PCI class 04 is "multimedia controller"; subclasses 01 and 03 are the
// audio ones.
const (
	pciClassMultimedia  = "04"
	pciSubclassAudioDev = "01"
	pciSubclassAudioHD  = "03"
)

// AudioDevices enumerates PCI sound devices.
func (s Source) AudioDevices() ([]sysinfo.AudioDevice, error) {
	info, err := ghw.PCI()
	if err != nil {
		return nil, err
	}

	out := []sysinfo.AudioDevice{}
	for _, dev := range info.Devices {
		if dev.Class == nil || dev.Class.ID != pciClassMultimedia {
			continue
		}
		if dev.Subclass != nil && dev.Subclass.ID != pciSubclassAudioDev && dev.Subclass.ID != pciSubclassAudioHD {
			continue
		}

		a := sysinfo.AudioDevice{
			Name:         sysinfo.Unavailable,
			Manufacturer: sysinfo.Unavailable,
		}
		if dev.Product != nil {
			a.Name = sanitize(dev.Product.Name)
		}
		if dev.Vendor != nil {
			a.Manufacturer = sanitize(dev.Vendor.Name)
		}
		out = append(out, a)
	}
	return out, nil
}
