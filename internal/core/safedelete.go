package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// ErrProtected is returned when a delete targets a never-delete path.
var ErrProtected = errors.New("path is protected")

// IsProtected reports whether path equals a protected path or is one of its
// ancestors. Comparison is case-insensitive on Windows.
func IsProtected(path string, protected []string) bool {
	target := normalize(path)
	if target == "" {
		return true
	}
	sep := string(filepath.Separator)
	for _, p := range protected {
		if p == "" {
			continue
		}
		guard := normalize(p)
		if target == guard {
			return true
		}
		prefix := strings.TrimSuffix(target, sep) + sep
		if strings.HasPrefix(guard, prefix) {
			return true
		}
	}
	return false
}

func normalize(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		cleaned = strings.ToLower(cleaned)
	}
	return cleaned
}

// SafeDelete removes a file or directory tree from fs and returns the number
// of bytes freed. Protected paths are refused. In dryRun mode nothing is
// removed but the would-be freed size is still returned.
func SafeDelete(fs afero.Fs, path string, protected []string, dryRun bool) (int64, error) {
	if IsProtected(path, protected) {
		return 0, fmt.Errorf("refusing to delete %s: %w", path, ErrProtected)
	}

	info, err := fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	size := info.Size()
	if info.IsDir() {
		size = dirSize(fs, path)
	}

	if dryRun {
		return size, nil
	}

	if info.IsDir() {
		err = fs.RemoveAll(path)
	} else {
		err = fs.Remove(path)
	}
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", path, err)
	}
	return size, nil
}

// dirSize sums regular file sizes below dir, ignoring unreadable entries.
func dirSize(fs afero.Fs, dir string) int64 {
	var total int64
	_ = afero.Walk(fs, dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total
}
