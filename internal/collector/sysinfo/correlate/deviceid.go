package correlate

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

// DeviceID derives a stable device identity from the board serial number,
// host name, CPU architecture code and logical processor count. The result
// is a 64-bit xxhash formatted as five hyphenated hex groups (8-4-4-4-12).
//
// The format is UUID-shaped but is NOT a UUID: the groups are bit slices of
// the same 64-bit value, so group 3 and the low bits of group 5 are
// correlated. Downstream consumers depend on the literal format; do not use
// it where real uniqueness is required.
//
// If the serial is unobtainable the fingerprint reduces to host name plus
// CPU fields. If the host name is unobtainable too, the raw host name string
// is returned unhashed.
func DeviceID(boardSerial, hostname, arch string, logicalCPUs int) string {
	serial := boardSerial
	if serial == sysinfo.Unavailable {
		serial = ""
	}
	if serial == "" && hostname == "" {
		return hostname
	}

	fp := serial + hostname + arch + strconv.Itoa(logicalCPUs)
	h := xxhash.Sum64String(fp)

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		uint32(h),
		(h>>16)&0xFFFF,
		(h>>32)&0xFFFF,
		(h>>48)&0xFFFF,
		h&0xFFFFFFFFFFFF)
}
