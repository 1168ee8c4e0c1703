package adapters

import (
	"github.com/yusufpapurcu/wmi"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

type win32BaseBoard struct {
	Product      string
	Manufacturer string
	SerialNumber string
}

type win32BIOS struct {
	SMBIOSBIOSVersion string
	SerialNumber      string
}

// Motherboard queries Win32_BaseBoard and Win32_BIOS for board identity.
func (s Source) Motherboard() (sysinfo.Motherboard, error) {
	board := sysinfo.DefaultMotherboard()

	var boards []win32BaseBoard
	if err := wmi.Query("SELECT Product, Manufacturer, SerialNumber FROM Win32_BaseBoard", &boards); err != nil {
		return board, err
	}
	if len(boards) > 0 {
		board.Product = sanitize(boards[0].Product)
		board.Manufacturer = sanitize(boards[0].Manufacturer)
		board.BoardSerial = sanitize(boards[0].SerialNumber)
	}

	var bios []win32BIOS
	if err := wmi.Query("SELECT SMBIOSBIOSVersion, SerialNumber FROM Win32_BIOS", &bios); err != nil {
		s.log.Warn("BIOS query failed", "error", err)
		return board, nil
	}
	if len(bios) > 0 {
		board.BIOSVersion = sanitize(bios[0].SMBIOSBIOSVersion)
		board.BIOSSerial = sanitize(bios[0].SerialNumber)
	}

	return board, nil
}
