// Package registry finds and removes stale file references in the current
// user's registry hive. Only Windows has a registry; elsewhere every
// operation returns ErrUnsupported.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/lakshaymaurya-felt/pcclean/internal/core"
)

// ErrUnsupported is returned on platforms without a registry.
var ErrUnsupported = errors.New("registry cleaning is only available on Windows")

// ProblemFileNotFound is the problem reported for a reference to a missing binary.
const ProblemFileNotFound = "File not found"

// scanPaths are HKEY_CURRENT_USER subkeys whose string values commonly point
// at executables that may since have been removed.
var scanPaths = []string{
	`Software\Microsoft\Windows\CurrentVersion\Run`,
	`Software\Microsoft\Windows\CurrentVersion\Explorer\RecentDocs`,
	`Software\Classes\Local Settings\Software\Microsoft\Windows\Shell\MuiCache`,
}

const backupTimeout = 120 * time.Second

// Issue is one registry value referencing something that no longer exists.
type Issue struct {
	Key     string `json:"key"`   // subkey below HKEY_CURRENT_USER
	Value   string `json:"value"` // value name
	Data    string `json:"data"`
	Problem string `json:"problem"`
}

// Editor deletes registry values. Its zero value is ready to use.
type Editor struct{}

// DeleteValue removes value name from key below HKEY_CURRENT_USER.
func (Editor) DeleteValue(key, name string) error {
	return DeleteValue(key, name)
}

// windowsAbsPath matches C:\... and \\server\share paths.
var windowsAbsPath = regexp.MustCompile(`^(?:[A-Za-z]:\\|\\\\)`)

// referencedBinary extracts the executable or library a value points at.
// Data may be a bare path or a quoted path followed by arguments.
func referencedBinary(data string) (string, bool) {
	data = strings.TrimSpace(data)
	if data == "" {
		return "", false
	}

	path := data
	if strings.HasPrefix(data, `"`) {
		end := strings.Index(data[1:], `"`)
		if end < 0 {
			return "", false
		}
		path = data[1 : end+1]
	}

	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".exe") && !strings.HasSuffix(lower, ".dll") {
		return "", false
	}
	if !windowsAbsPath.MatchString(path) {
		return "", false
	}
	return path, true
}

// staleReference reports whether data names a binary that does not exist.
// Relative names are resolved through PATH by Windows and never reported.
func staleReference(data string, exists func(string) bool) bool {
	path, ok := referencedBinary(data)
	if !ok {
		return false
	}
	return !exists(path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Backup exports HKEY_CURRENT_USER\Software to a timestamped .reg file in dir
// and returns its path. An empty dir uses Documents\PCClean_Backups.
func Backup(ctx context.Context, dir string) (string, error) {
	if runtime.GOOS != "windows" {
		return "", ErrUnsupported
	}
	return backup(ctx, core.ExecRunner, dir, time.Now())
}

func backup(ctx context.Context, run core.Runner, dir string, now time.Time) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, "Documents", "PCClean_Backups")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	file := filepath.Join(dir, "registry_backup_"+now.Format("20060102_150405")+".reg")
	if _, err := core.RunCommand(ctx, run, backupTimeout, "reg", "export", `HKCU\Software`, file, "/y"); err != nil {
		return "", fmt.Errorf("registry backup: %w", err)
	}
	return file, nil
}
