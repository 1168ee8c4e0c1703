package adapters

// platformOptions are the Windows specific probe locations, overridable in
// tests.
type platformOptions struct {
	// displayClassKey is the registry key holding per-adapter display
	// driver data, including dedicated video memory sizes.
	displayClassKey string
}

func defaultPlatformOptions() platformOptions {
	return platformOptions{
		displayClassKey: `SYSTEM\CurrentControlSet\Control\Class\{4d36e968-e325-11ce-bfc1-08002be10318}`,
	}
}
