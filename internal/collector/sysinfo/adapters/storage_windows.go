package adapters

import (
	"github.com/yusufpapurcu/wmi"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
	"github.com/hwqc/hwqc/internal/collector/sysinfo/correlate"
)

type win32DiskDrive struct {
	DeviceID      string
	Model         string
	InterfaceType string
}

type win32Association struct {
	Antecedent string
	Dependent  string
}

type win32LogicalDisk struct {
	DeviceID   string
	DriveType  uint32
	Size       uint64
	FreeSpace  uint64
	VolumeName string
}

const driveTypeRemovable = 2

// Volumes queries Win32_LogicalDisk for fixed and removable drives, and
// chains the disk→partition→logical-disk associations to enrich fixed
// drives with their physical disk's model and interface.
func (s Source) Volumes() ([]sysinfo.Volume, error) {
	var logical []win32LogicalDisk
	q := "SELECT DeviceID, DriveType, Size, FreeSpace, VolumeName FROM Win32_LogicalDisk WHERE DriveType = 2 OR DriveType = 3"
	if err := wmi.Query(q, &logical); err != nil {
		return nil, err
	}

	byVolume := s.volumeDisks()

	vols := []sysinfo.Volume{}
	for _, l := range logical {
		v := sysinfo.Volume{
			Drive:  l.DeviceID,
			Type:   sysinfo.DriveLocal,
			SizeGB: sysinfo.BytesToGB(l.Size),
			FreeGB: sysinfo.BytesToGB(l.FreeSpace),
		}
		if l.DriveType == driveTypeRemovable {
			v.Type = sysinfo.DriveRemovable
		}

		vols = append(vols, correlate.EnrichVolume(v, l.VolumeName, byVolume))
	}
	return vols, nil
}

// volumeDisks maps drive letters to the physical disk behind them. Best
// effort: association query failures only degrade enrichment.
func (s Source) volumeDisks() map[string]correlate.DiskIdentity {
	var drives []win32DiskDrive
	if err := wmi.Query("SELECT DeviceID, Model, InterfaceType FROM Win32_DiskDrive", &drives); err != nil {
		s.log.Warn("physical disk query failed, volumes will not be enriched", "error", err)
		return nil
	}

	disks := make(map[string]correlate.DiskIdentity, len(drives))
	for _, d := range drives {
		disks[d.DeviceID] = correlate.DiskIdentity{
			Model:     sanitize(d.Model),
			Interface: sanitize(d.InterfaceType),
		}
	}

	diskToPart, err := s.associations("SELECT Antecedent, Dependent FROM Win32_DiskDriveToDiskPartition")
	if err != nil {
		s.log.Warn("disk to partition association query failed", "error", err)
		return nil
	}
	partToVolume, err := s.associations("SELECT Antecedent, Dependent FROM Win32_LogicalDiskToPartition")
	if err != nil {
		s.log.Warn("partition to volume association query failed", "error", err)
		return nil
	}

	return volumeDiskMap(disks, diskToPart, partToVolume)
}

func (s Source) associations(query string) ([]assoc, error) {
	var rows []win32Association
	if err := wmi.Query(query, &rows); err != nil {
		return nil, err
	}

	out := make([]assoc, 0, len(rows))
	for _, r := range rows {
		from := refDeviceID(r.Antecedent)
		to := refDeviceID(r.Dependent)
		if from == "" || to == "" {
			continue
		}
		out = append(out, assoc{from: from, to: to})
	}
	return out, nil
}
