package adapters

// isWireless falls back to name classification on Windows, where adapter
// descriptions carry the medium ("Wi-Fi", "Wireless LAN", "802.11ac").
func (s Source) isWireless(name string) bool {
	return false
}

// skipInterface relies on the shared name markers; Windows exposes no sysfs
// analogue to probe for virtual devices.
func (s Source) skipInterface(name string) bool {
	return false
}
