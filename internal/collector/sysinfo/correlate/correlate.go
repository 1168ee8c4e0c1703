// Package correlate reconciles facts that span independently-keyed data
// sources: matching a physical disk to its logical volumes, matching a GPU
// name to a video-memory enumeration, deriving a stable device identity, and
// classifying network adapters. Every function is pure given its inputs.
package correlate

import (
	"fmt"
	"strings"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

const (
	unknownModel     = "Unknown Disk"
	unknownInterface = "Unknown"
	removableModel   = "Removable Disk"
	usbInterface     = "USB"
)

// DiskIdentity is the physical-disk identity attached to a logical volume.
type DiskIdentity struct {
	Model     string
	Interface string
}

// EnrichVolume fills in the model and interface of v from the physical-disk
// map. The map is keyed by the volume's own identifier (drive letter or
// mount point). Removable volumes are never looked up: they take their model
// from the volume label and a fixed USB interface.
func EnrichVolume(v sysinfo.Volume, label string, byVolume map[string]DiskIdentity) sysinfo.Volume {
	if v.Type == sysinfo.DriveRemovable {
		v.Model = removableModel
		if label != "" {
			v.Model = label
		}
		v.Interface = usbInterface
		return v
	}

	id, ok := byVolume[v.Drive]
	if !ok {
		v.Model = unknownModel
		v.Interface = unknownInterface
		return v
	}
	v.Model = id.Model
	v.Interface = id.Interface
	return v
}

// VideoMemory is one entry of the video-memory enumeration. It shares no key
// with the GPU source; matching is by name containment.
type VideoMemory struct {
	Description string
	Bytes       uint64
}

// MatchVRAM finds the video-memory entry whose description contains, or is
// contained in, the GPU name (case-insensitive, first match wins) and
// returns its size formatted in gigabytes with two decimals. Unmatched GPUs
// report sysinfo.Unavailable.
func MatchVRAM(gpuName string, mems []VideoMemory) string {
	if gpuName == "" || gpuName == sysinfo.Unavailable {
		return sysinfo.Unavailable
	}
	name := strings.ToLower(gpuName)

	for _, m := range mems {
		desc := strings.ToLower(m.Description)
		if desc == "" {
			continue
		}
		if strings.Contains(desc, name) || strings.Contains(name, desc) {
			return fmt.Sprintf("%.2f", float64(m.Bytes)/(1024*1024*1024))
		}
	}
	return sysinfo.Unavailable
}

// skipMarkers flags virtual and system adapters that carry no QC signal.
var skipMarkers = []string{"virtual", "pseudo", "loopback", "microsoft"}

// SkipAdapter reports whether a network adapter should be excluded from the
// snapshot based on its name or description.
func SkipAdapter(description string) bool {
	d := strings.ToLower(description)
	for _, m := range skipMarkers {
		if strings.Contains(d, m) {
			return true
		}
	}
	return false
}

// AdapterKind is the medium of a network adapter.
type AdapterKind int

const (
	// Ethernet is a wired adapter.
	Ethernet AdapterKind = iota
	// WLAN is a wireless adapter.
	WLAN
)

// wirelessMarkers identify wireless adapters by interface name on platforms
// where no capability flag is available.
var wirelessMarkers = []string{"wi-fi", "wifi", "wlan", "wireless", "802.11"}

// ClassifyAdapter decides the medium of an adapter. The wireless argument
// comes from a platform capability probe when the platform has one;
// otherwise the name is inspected.
func ClassifyAdapter(name string, wireless bool) AdapterKind {
	if wireless {
		return WLAN
	}
	n := strings.ToLower(name)
	for _, m := range wirelessMarkers {
		if strings.Contains(n, m) {
			return WLAN
		}
	}
	return Ethernet
}
