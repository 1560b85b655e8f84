//go:build windows

package core

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"
)

// win32OperatingSystem is the subset of Win32_OperatingSystem we query.
type win32OperatingSystem struct {
	Caption string
}

// ntVersion returns the NT major, minor and build numbers without
// requiring an application manifest.
func ntVersion() (major, minor, build uint32) {
	major, minor, build = windows.RtlGetNtVersionNumbers()
	// The high bits of build carry flags.
	build &= 0xFFFF
	return major, minor, build
}

// OSDescription returns a human-readable OS string such as
// "Microsoft Windows 11 Pro (Build 22631)". The WMI caption is preferred;
// the version table is the fallback when WMI is unavailable.
func OSDescription() string {
	_, _, build := ntVersion()

	var dst []win32OperatingSystem
	if err := wmi.Query("SELECT Caption FROM Win32_OperatingSystem", &dst); err == nil && len(dst) > 0 && dst[0].Caption != "" {
		return fmt.Sprintf("%s (Build %d)", dst[0].Caption, build)
	}

	return windowsVersionString()
}

// windowsVersionString maps NT version numbers to a marketing name.
func windowsVersionString() string {
	major, minor, build := ntVersion()

	var name string
	switch {
	case major == 10 && build >= 22000:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	case major == 6 && minor == 3:
		name = "Windows 8.1"
	case major == 6 && minor == 2:
		name = "Windows 8"
	case major == 6 && minor == 1:
		name = "Windows 7"
	default:
		name = fmt.Sprintf("Windows %d.%d", major, minor)
	}

	return fmt.Sprintf("%s (Build %d)", name, build)
}
