//go:build windows

package registry

import (
	"context"

	"golang.org/x/sys/windows/registry"

	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
)

// Scan inspects every scan path and returns values referencing missing
// binaries. Keys that cannot be opened are skipped.
func Scan(ctx context.Context, rep progress.Reporter) ([]Issue, error) {
	rep = progress.Monotonic(rep)
	rep.Status("Scanning Windows Registry...")

	var issues []Issue
	for i, path := range scanPaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rep.Status("Scanning: " + path)

		found, err := scanKey(path, fileExists)
		if err == nil {
			issues = append(issues, found...)
		}
		rep.Progress(progress.Percent(i+1, len(scanPaths)))
	}
	return issues, nil
}

// scanKey reads every string value of one key.
func scanKey(path string, exists func(string) bool) ([]Issue, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, path, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	names, err := key.ReadValueNames(0)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, name := range names {
		data, _, err := key.GetStringValue(name)
		if err != nil {
			// Binary and integer values carry no path.
			continue
		}
		if staleReference(data, exists) {
			issues = append(issues, Issue{
				Key:     path,
				Value:   name,
				Data:    data,
				Problem: ProblemFileNotFound,
			})
		}
	}
	return issues, nil
}

// DeleteValue removes value name from key below HKEY_CURRENT_USER.
func DeleteValue(key, name string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, key, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()
	return k.DeleteValue(name)
}
