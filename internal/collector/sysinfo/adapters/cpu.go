package adapters

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

// usageSampleInterval is the window of the dual-sample CPU usage
// measurement. The CPU category intentionally takes about this long.
const usageSampleInterval = 100 * time.Millisecond

// CPUs returns one record per physical processor package, including a usage
// percentage sampled over usageSampleInterval.
func (s Source) CPUs() ([]sysinfo.CPU, error) {
	infos, err := cpu.Info()
	if err != nil {
		return nil, err
	}

	cores, err := cpu.Counts(false)
	if err != nil {
		s.log.Warn("failed to count physical cores", "error", err)
		cores = 0
	}
	threads, err := cpu.Counts(true)
	if err != nil {
		s.log.Warn("failed to count logical processors", "error", err)
		threads = 0
	}

	var usage float64
	percents, err := cpu.Percent(usageSampleInterval, false)
	if err != nil {
		s.log.Warn("failed to sample CPU usage", "error", err)
	} else if len(percents) > 0 {
		usage = percents[0]
	}

	return cpusFromInfo(infos, cores, threads, usage), nil
}

// cpusFromInfo collapses the per-logical-CPU entries reported on some
// platforms into one record per processor package.
func cpusFromInfo(infos []cpu.InfoStat, cores, threads int, usage float64) []sysinfo.CPU {
	out := []sysinfo.CPU{}
	seen := make(map[string]struct{}, 1)

	for _, in := range infos {
		key := in.PhysicalID + "\x00" + in.ModelName
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, sysinfo.CPU{
			Name:          sanitize(in.ModelName),
			Cores:         uint(cores),
			Threads:       uint(threads),
			ClockSpeedMHz: uint(in.Mhz),
			UsagePercent:  sysinfo.Round2(usage),
		})
	}
	return out
}
