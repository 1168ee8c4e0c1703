package adapters

// platformOptions are the Linux specific probe locations, overridable in
// tests.
type platformOptions struct {
	dmiDir     string
	drmGlob    string
	sysNetDir  string
	virtNetDir string

	modinfoCmd []string
}

func defaultPlatformOptions() platformOptions {
	return platformOptions{
		dmiDir:     "/sys/class/dmi/id",
		drmGlob:    "/sys/class/drm/card[0-9]*/device",
		sysNetDir:  "/sys/class/net",
		virtNetDir: "/sys/devices/virtual/net",

		modinfoCmd: []string{"modinfo", "-F", "version"},
	}
}
