// Package sysinfo defines the hardware snapshot record assembled by the
// collector, together with the deterministic defaults used when a data
// source is unavailable. Consumers never observe a missing key, only a
// sentinel value.
package sysinfo

import "math"

// Unavailable is the sentinel for string fields with no obtainable value.
const Unavailable = "N/A"

// Snapshot is the merged, consumer-visible hardware record.
// Field order and JSON keys are part of the wire contract with the QC viewer.
type Snapshot struct {
	DeviceID    string        `json:"deviceId"`
	DeviceName  string        `json:"deviceName"`
	Motherboard Motherboard   `json:"motherboard"`
	CPUs        []CPU         `json:"cpu"`
	GPUs        []GPU         `json:"gpu"`
	Memory      Memory        `json:"memory"`
	Storage     []Volume      `json:"storage"`
	Network     Network       `json:"network"`
	Audio       []AudioDevice `json:"audio"`
	Battery     Battery       `json:"battery"`
}

// Motherboard contains board and BIOS identity facts.
type Motherboard struct {
	Product      string `json:"product_name"`
	Manufacturer string `json:"manufacturer"`
	BIOSVersion  string `json:"bios_version"`
	BIOSSerial   string `json:"bios_serial"`
	BoardSerial  string `json:"board_serial"`
}

// CPU describes one physical processor package.
type CPU struct {
	Name          string  `json:"name"`
	Cores         uint    `json:"cores"`
	Threads       uint    `json:"threads"`
	ClockSpeedMHz uint    `json:"clock_speed"`
	UsagePercent  float64 `json:"usage"`
}

// GPU describes one video controller. VRAM is a string-formatted decimal in
// gigabytes, or Unavailable when no video-memory enumeration matched.
type GPU struct {
	Name          string `json:"name"`
	DriverVersion string `json:"driver_version"`
	VRAM          string `json:"vram_total"`
}

// MemorySlot describes one populated RAM module.
type MemorySlot struct {
	CapacityGB   uint   `json:"capacity"`
	SpeedMHz     uint   `json:"speed"`
	Slot         string `json:"slot"`
	Manufacturer string `json:"manufacturer"`
}

// Memory aggregates RAM usage and per-slot details.
type Memory struct {
	TotalGB       float64      `json:"total"`
	AvailableGB   float64      `json:"available"`
	UsedGB        float64      `json:"used"`
	Percent       uint         `json:"percent"`
	Slots         []MemorySlot `json:"slots"`
	TotalCapacity string       `json:"total_capacity"`
}

// DriveType distinguishes fixed and removable volumes. The literals are
// load-bearing: the QC viewer keys its drive icons off them.
type DriveType string

const (
	// DriveLocal is a fixed local volume.
	DriveLocal DriveType = "Local Disk"
	// DriveRemovable is a removable (USB) volume.
	DriveRemovable DriveType = "Removable Disk"
)

// Volume describes one logical volume, enriched with the model and interface
// of the physical disk backing it.
type Volume struct {
	Drive     string    `json:"drive"`
	Type      DriveType `json:"type"`
	SizeGB    float64   `json:"size"`
	FreeGB    float64   `json:"free"`
	Model     string    `json:"model"`
	Interface string    `json:"interface"`
}

// ConnStatus is the connection state of a network adapter.
type ConnStatus string

const (
	// Connected means the adapter has an assigned IPv4 address.
	Connected ConnStatus = "Connected"
	// NotConnected means the adapter has no assigned IPv4 address.
	NotConnected ConnStatus = "Not Connected"
)

// NetworkAdapter describes one physical network adapter.
type NetworkAdapter struct {
	Name       string     `json:"name"`
	MACAddress string     `json:"mac_address"`
	IPAddress  string     `json:"ip_address"`
	Status     ConnStatus `json:"status"`
}

// Network groups adapters by medium.
type Network struct {
	Ethernet []NetworkAdapter `json:"ethernet"`
	WLAN     []NetworkAdapter `json:"wlan"`
}

// AudioDevice describes one sound device.
type AudioDevice struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
}

// Battery describes the power state. Desktops without a battery report a
// full, plugged-in battery.
type Battery struct {
	Percent      uint `json:"percent"`
	PowerPlugged bool `json:"power_plugged"`
	IsDesktop    bool `json:"is_desktop"`
}

// DefaultMotherboard returns the motherboard record used when the board
// source is unavailable.
func DefaultMotherboard() Motherboard {
	return Motherboard{
		Product:      Unavailable,
		Manufacturer: Unavailable,
		BIOSVersion:  Unavailable,
		BIOSSerial:   Unavailable,
		BoardSerial:  Unavailable,
	}
}

// DefaultMemory returns the memory record used when the memory source is
// unavailable.
func DefaultMemory() Memory {
	return Memory{
		Slots:         []MemorySlot{},
		TotalCapacity: Unavailable,
	}
}

// DefaultNetwork returns the network record used when the network source is
// unavailable. Both adapter lists marshal as empty arrays, not null.
func DefaultNetwork() Network {
	return Network{
		Ethernet: []NetworkAdapter{},
		WLAN:     []NetworkAdapter{},
	}
}

// DefaultBattery returns the battery record used when the power source is
// unavailable, which matches a desktop machine on AC power.
func DefaultBattery() Battery {
	return Battery{
		Percent:      100,
		PowerPlugged: true,
		IsDesktop:    true,
	}
}

// Default returns a snapshot where every category holds its documented
// failure value.
func Default() Snapshot {
	return Snapshot{
		DeviceID:    Unavailable,
		DeviceName:  Unavailable,
		Motherboard: DefaultMotherboard(),
		CPUs:        []CPU{},
		GPUs:        []GPU{},
		Memory:      DefaultMemory(),
		Storage:     []Volume{},
		Network:     DefaultNetwork(),
		Audio:       []AudioDevice{},
		Battery:     DefaultBattery(),
	}
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BytesToGB converts a byte count to gigabytes with two decimal places.
func BytesToGB(b uint64) float64 {
	return Round2(float64(b) / (1024 * 1024 * 1024))
}
