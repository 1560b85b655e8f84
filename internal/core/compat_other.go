//go:build !windows

package core

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// OSDescription returns a human-readable OS string such as "ubuntu 24.04 (debian)".
func OSDescription() string {
	platform, family, version, err := host.PlatformInformation()
	if err != nil || platform == "" {
		return runtime.GOOS
	}
	if family != "" && family != platform {
		return fmt.Sprintf("%s %s (%s)", platform, version, family)
	}
	return fmt.Sprintf("%s %s", platform, version)
}
