package adapters

import (
	"os"
	"path/filepath"
	"strings"
)

// virtualPrefixes are interface name prefixes for virtual devices that the
// sysfs check below can miss on older kernels.
var virtualPrefixes = []string{"veth", "docker", "br-", "virbr", "tap", "tun", "vnet"}

// isWireless checks the kernel's wireless capability directory.
func (s Source) isWireless(name string) bool {
	_, err := os.Stat(filepath.Join(s.platform.sysNetDir, name, "wireless"))
	return err == nil
}

// skipInterface reports whether name is a virtual device.
func (s Source) skipInterface(name string) bool {
	for _, p := range virtualPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	_, err := os.Stat(filepath.Join(s.platform.virtNetDir, name))
	return err == nil
}
