package adapters

import (
	"github.com/yusufpapurcu/wmi"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

type win32SoundDevice struct {
	Name         string
	Manufacturer string
}

// AudioDevices queries Win32_SoundDevice.
func (s Source) AudioDevices() ([]sysinfo.AudioDevice, error) {
	var devs []win32SoundDevice
	if err := wmi.Query("SELECT Name, Manufacturer FROM Win32_SoundDevice", &devs); err != nil {
		return nil, err
	}

	out := []sysinfo.AudioDevice{}
	for _, d := range devs {
		out = append(out, sysinfo.AudioDevice{
			Name:         sanitize(d.Name),
			Manufacturer: sanitize(d.Manufacturer),
		})
	}
	return out, nil
}
