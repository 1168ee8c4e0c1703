package adapters

import (
	"path/filepath"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
	"github.com/hwqc/hwqc/internal/fileutils"
)

// Motherboard reads board and BIOS identity from the DMI sysfs tree. The
// serial files are root-only on most distributions; unreadable fields settle
// on the unavailable sentinel.
func (s Source) Motherboard() (sysinfo.Motherboard, error) {
	read := func(name string) string {
		return sanitize(fileutils.ReadFileLogError(filepath.Join(s.platform.dmiDir, name), s.log))
	}

	return sysinfo.Motherboard{
		Product:      read("board_name"),
		Manufacturer: read("board_vendor"),
		BIOSVersion:  read("bios_version"),
		BIOSSerial:   read("product_serial"),
		BoardSerial:  read("board_serial"),
	}, nil
}
