package adapters

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/pci"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
	"github.com/hwqc/hwqc/internal/collector/sysinfo/correlate"
	"github.com/hwqc/hwqc/internal/cmdutils"
	"github.com/hwqc/hwqc/internal/fileutils"
)

const modinfoTimeout = 2 * time.Second

// GPUs enumerates the graphics cards and enriches each with a driver
// version and its VRAM size. VRAM comes from an independent DRM sysfs walk
// and is matched back to the card by name.
func (s Source) GPUs() ([]sysinfo.GPU, error) {
	info, err := ghw.GPU()
	if err != nil {
		return nil, err
	}

	mems := s.videoMemory()

	out := []sysinfo.GPU{}
	for _, card := range info.GraphicsCards {
		name := sysinfo.Unavailable
		driver := ""
		if card.DeviceInfo != nil {
			if card.DeviceInfo.Product != nil {
				name = sanitize(card.DeviceInfo.Product.Name)
			}
			driver = card.DeviceInfo.Driver
		}

		out = append(out, sysinfo.GPU{
			Name:          name,
			DriverVersion: s.driverVersion(driver),
			VRAM:          correlate.MatchVRAM(name, mems),
		})
	}
	return out, nil
}

// videoMemory walks the DRM device tree for dedicated VRAM totals. Only
// discrete GPUs expose mem_info_vram_total; integrated ones simply yield no
// entry and stay at the unavailable sentinel.
func (s Source) videoMemory() []correlate.VideoMemory {
	dirs, err := filepath.Glob(s.platform.drmGlob)
	if err != nil {
		s.log.Warn("bad DRM glob", "pattern", s.platform.drmGlob, "error", err)
		return nil
	}

	var pciInfo *pci.Info
	if len(dirs) > 0 {
		if pciInfo, err = ghw.PCI(); err != nil {
			s.log.Warn("PCI database unavailable for VRAM descriptions", "error", err)
			pciInfo = nil
		}
	}

	var mems []correlate.VideoMemory
	for _, dir := range dirs {
		raw := fileutils.ReadFileLogError(filepath.Join(dir, "mem_info_vram_total"), s.log)
		if raw == "" {
			continue
		}
		size, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.log.Warn("unparsable VRAM size", "dir", dir, "value", raw)
			continue
		}

		desc := ""
		if pciInfo != nil {
			if target, err := filepath.EvalSymlinks(dir); err == nil {
				if dev := pciInfo.GetDevice(filepath.Base(target)); dev != nil && dev.Product != nil {
					desc = dev.Product.Name
				}
			}
		}

		mems = append(mems, correlate.VideoMemory{Description: desc, Bytes: size})
	}
	return mems
}

// driverVersion resolves a kernel module name to its version via modinfo.
func (s Source) driverVersion(module string) string {
	if module == "" {
		return sysinfo.Unavailable
	}

	args := append(s.platform.modinfoCmd[1:], module)
	stdout, stderr, err := cmdutils.RunWithTimeout(context.Background(), modinfoTimeout, s.platform.modinfoCmd[0], args...)
	if err != nil {
		s.log.Warn("modinfo failed", "module", module, "error", err, "stderr", stderr)
		return sysinfo.Unavailable
	}

	return orUnavailable(strings.TrimSpace(stdout))
}
