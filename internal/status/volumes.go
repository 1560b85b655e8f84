// Package status reports disk usage for the mounted volumes.
package status

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/lakshaymaurya-felt/pcclean/internal/core"
)

// Volume is the usage snapshot of one mounted filesystem.
type Volume struct {
	Path        string  `json:"path"`
	Device      string  `json:"device"`
	Fstype      string  `json:"fstype"`
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// pseudoFstypes never hold user data worth reporting.
var pseudoFstypes = map[string]bool{
	"proc": true, "sysfs": true, "devtmpfs": true, "devpts": true,
	"cgroup": true, "cgroup2": true, "overlay": true, "squashfs": true,
	"securityfs": true, "debugfs": true, "tracefs": true, "autofs": true,
	"mqueue": true, "pstore": true, "bpf": true, "configfs": true,
	"fusectl": true, "hugetlbfs": true, "binfmt_misc": true, "nsfs": true,
}

// Volumes lists physical partitions with their usage, sorted by mount path.
// Partitions whose usage cannot be read are skipped.
func Volumes(ctx context.Context) ([]Volume, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing partitions: %w", err)
	}

	seen := make(map[string]bool, len(parts))
	var vols []Volume
	for _, p := range parts {
		if pseudoFstypes[p.Fstype] || seen[p.Mountpoint] {
			continue
		}
		seen[p.Mountpoint] = true

		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}
		vols = append(vols, Volume{
			Path:        p.Mountpoint,
			Device:      p.Device,
			Fstype:      p.Fstype,
			Total:       usage.Total,
			Used:        usage.Used,
			Free:        usage.Free,
			UsedPercent: usage.UsedPercent,
		})
	}
	sort.Slice(vols, func(i, j int) bool { return vols[i].Path < vols[j].Path })
	return vols, nil
}

// FreeSpace returns the free bytes on the volume holding path.
func FreeSpace(ctx context.Context, path string) (uint64, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("reading usage of %s: %w", path, err)
	}
	return usage.Free, nil
}

// Totals sums capacity and free space across vols.
func Totals(vols []Volume) (total, free uint64) {
	for _, v := range vols {
		total += v.Total
		free += v.Free
	}
	return total, free
}

// Print writes a plain usage table.
func Print(w io.Writer, vols []Volume) {
	fmt.Fprintf(w, "%-24s %-8s %10s %10s %10s %6s\n", "VOLUME", "TYPE", "SIZE", "USED", "FREE", "USE%")
	for _, v := range vols {
		fmt.Fprintf(w, "%-24s %-8s %10s %10s %10s %5.1f%%\n",
			truncate(v.Path, 24), v.Fstype,
			core.FormatSize(int64(v.Total)),
			core.FormatSize(int64(v.Used)),
			core.FormatSize(int64(v.Free)),
			v.UsedPercent)
	}
	total, free := Totals(vols)
	fmt.Fprintf(w, "%s free of %s\n", core.FormatSize(int64(free)), core.FormatSize(int64(total)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-n+3:])
}

// shortPath is used as a compact volume label in the dashboard.
func shortPath(p string) string {
	if p == "" {
		return "?"
	}
	return strings.TrimSuffix(p, `\`)
}
