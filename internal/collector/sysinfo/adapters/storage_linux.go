package adapters

import (
	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
	"github.com/hwqc/hwqc/internal/collector/sysinfo/correlate"
)

// Volumes lists the mounted physical volumes with usage numbers, each
// enriched with the backing disk's model and interface.
func (s Source) Volumes() ([]sysinfo.Volume, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}

	byVolume, labels, removable := s.diskIndex()

	vols := []sysinfo.Volume{}
	for _, p := range parts {
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil {
			s.log.Warn("failed to stat volume", "mountpoint", p.Mountpoint, "error", err)
			continue
		}

		v := sysinfo.Volume{
			Drive:  p.Mountpoint,
			Type:   sysinfo.DriveLocal,
			SizeGB: sysinfo.BytesToGB(usage.Total),
			FreeGB: sysinfo.BytesToGB(usage.Free),
		}
		if removable[p.Mountpoint] {
			v.Type = sysinfo.DriveRemovable
		}

		vols = append(vols, correlate.EnrichVolume(v, labels[p.Mountpoint], byVolume))
	}
	return vols, nil
}

// diskIndex maps mount points to the identity, filesystem label and
// removability of the physical disk behind them. Best effort: a missing
// block-device tree only degrades enrichment, not the volume list.
func (s Source) diskIndex() (byVolume map[string]correlate.DiskIdentity, labels map[string]string, removable map[string]bool) {
	block, err := ghw.Block()
	if err != nil {
		s.log.Warn("block device enumeration failed, volumes will not be enriched", "error", err)
		return nil, nil, nil
	}

	byVolume = map[string]correlate.DiskIdentity{}
	labels = map[string]string{}
	removable = map[string]bool{}

	for _, d := range block.Disks {
		id := correlate.DiskIdentity{
			Model:     sanitize(d.Model),
			Interface: d.StorageController.String(),
		}
		for _, part := range d.Partitions {
			if part.MountPoint == "" {
				continue
			}
			byVolume[part.MountPoint] = id
			labels[part.MountPoint] = part.Label
			removable[part.MountPoint] = d.IsRemovable
		}
	}
	return byVolume, labels, removable
}
