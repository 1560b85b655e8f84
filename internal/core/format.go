package core

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

// FormatSize renders a byte count in binary units, e.g. "1.5 MiB".
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// decimalUnits maps the short unit names people type to binary units, so
// that "100MB" means 100 MiB like the sizes FormatSize prints.
var decimalUnits = map[string]string{
	"k": "KiB", "kb": "KiB",
	"m": "MiB", "mb": "MiB",
	"g": "GiB", "gb": "GiB",
	"t": "TiB", "tb": "TiB",
}

// ParseSize parses a human size such as "100MB", "1.5 GiB" or "512".
// Bare numbers are bytes and KB/MB/GB/TB are read as binary units.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}
	num := strings.TrimRightFunc(s, unicode.IsLetter)
	if unit, ok := decimalUnits[strings.ToLower(s[len(num):])]; ok {
		s = strings.TrimSpace(num) + " " + unit
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(n), nil
}
