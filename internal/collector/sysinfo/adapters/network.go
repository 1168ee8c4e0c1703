package adapters

import (
	"net"
	"strings"

	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
	"github.com/hwqc/hwqc/internal/collector/sysinfo/correlate"
)

// Network returns the physical network adapters grouped by medium. Virtual,
// pseudo and loopback adapters are excluded.
func (s Source) Network() (sysinfo.Network, error) {
	stats, err := psnet.Interfaces()
	if err != nil {
		return sysinfo.Network{}, err
	}

	return groupAdapters(stats, s.isWireless, s.skipInterface), nil
}

func groupAdapters(stats []psnet.InterfaceStat, wireless, skip func(string) bool) sysinfo.Network {
	nw := sysinfo.DefaultNetwork()

	for _, st := range stats {
		if hasFlag(st.Flags, "loopback") || correlate.SkipAdapter(st.Name) || skip(st.Name) {
			continue
		}

		a := sysinfo.NetworkAdapter{
			Name:       sanitize(st.Name),
			MACAddress: orUnavailable(st.HardwareAddr),
			IPAddress:  sysinfo.Unavailable,
			Status:     sysinfo.NotConnected,
		}
		if ip := firstIPv4(st.Addrs); ip != "" {
			a.IPAddress = ip
			a.Status = sysinfo.Connected
		}

		switch correlate.ClassifyAdapter(st.Name, wireless(st.Name)) {
		case correlate.WLAN:
			nw.WLAN = append(nw.WLAN, a)
		default:
			nw.Ethernet = append(nw.Ethernet, a)
		}
	}
	return nw
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

// firstIPv4 returns the first IPv4 address in addrs, without its prefix
// length, or "" when the adapter has none.
func firstIPv4(addrs []psnet.InterfaceAddr) string {
	for _, addr := range addrs {
		raw := addr.Addr
		if i := strings.IndexByte(raw, '/'); i >= 0 {
			raw = raw[:i]
		}
		ip := net.ParseIP(raw)
		if ip == nil || ip.To4() == nil || ip.IsUnspecified() {
			continue
		}
		return ip.String()
	}
	return ""
}
