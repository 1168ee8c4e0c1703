package adapters

import (
	"strings"

	"github.com/hwqc/hwqc/internal/collector/sysinfo/correlate"
)

// refDeviceID extracts the DeviceID from a WMI object-path reference such as
//
//	\\HOST\root\cimv2:Win32_DiskDrive.DeviceID="\\\\.\\PHYSICALDRIVE0"
//
// Association classes (Win32_DiskDriveToDiskPartition,
// Win32_LogicalDiskToPartition) report their endpoints in this form.
// Returns "" when the reference does not carry a DeviceID.
func refDeviceID(ref string) string {
	const marker = `DeviceID="`
	i := strings.Index(ref, marker)
	if i < 0 {
		return ""
	}
	rest := ref[i+len(marker):]
	j := strings.Index(rest, `"`)
	if j < 0 {
		return ""
	}
	return strings.ReplaceAll(rest[:j], `\\`, `\`)
}

// assoc is one edge of a WMI association, already reduced to DeviceIDs.
type assoc struct {
	from string
	to   string
}

// volumeDiskMap chains the physical-disk → partition and partition → logical
// volume associations into a mapping from logical volume identifier to
// physical disk identity.
func volumeDiskMap(disks map[string]correlate.DiskIdentity, diskToPart, partToVolume []assoc) map[string]correlate.DiskIdentity {
	partDisk := make(map[string]string, len(diskToPart))
	for _, a := range diskToPart {
		partDisk[a.to] = a.from
	}

	out := make(map[string]correlate.DiskIdentity, len(partToVolume))
	for _, a := range partToVolume {
		diskID, ok := partDisk[a.from]
		if !ok {
			continue
		}
		id, ok := disks[diskID]
		if !ok {
			continue
		}
		out[a.to] = id
	}
	return out
}
