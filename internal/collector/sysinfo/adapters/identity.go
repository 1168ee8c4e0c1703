package adapters

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/hwqc/hwqc/internal/collector/sysinfo/correlate"
)

// DeviceID derives the stable device identity from the board serial, host
// name, architecture and logical processor count. Each input degrades
// independently; the correlation layer handles the fallbacks.
func (s Source) DeviceID() (string, error) {
	var serial string
	board, err := s.Motherboard()
	if err != nil {
		s.log.Warn("deriving device identity without a board serial", "error", err)
	} else {
		serial = board.BoardSerial
	}

	var hostname string
	hi, err := host.Info()
	if err != nil {
		s.log.Warn("deriving device identity without a host name", "error", err)
	} else {
		hostname = hi.Hostname
	}

	logical, err := cpu.Counts(true)
	if err != nil {
		logical = runtime.NumCPU()
	}

	return correlate.DeviceID(serial, hostname, s.arch, logical), nil
}

// DeviceName returns the sanitized host name.
func (s Source) DeviceName() (string, error) {
	hi, err := host.Info()
	if err != nil {
		return "", err
	}
	return sanitize(hi.Hostname), nil
}
