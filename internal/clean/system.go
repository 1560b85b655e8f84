package clean

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/pcclean/internal/config"
	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
)

// installerExtensions are leftover setup packages in Downloads.
var installerExtensions = map[string]bool{
	".msi": true,
	".msp": true,
	".msu": true,
	".exe": true,
}

// adobeTempPatterns mark Adobe files worth cleaning outside temp directories.
var adobeTempPatterns = []string{
	"adobetemp",
	"adobe_temp",
	"acrobat_tmp",
	"acrocef",
	"acrobat",
}

// isAdobeTemp keeps files inside temp or cache directories, and files
// whose names carry an Adobe temp marker.
func isAdobeTemp(path string) bool {
	dir := strings.ToLower(filepath.Dir(path))
	for _, marker := range []string{"temp", "cache", "tmp"} {
		if strings.Contains(dir, marker) {
			return true
		}
	}
	name := strings.ToLower(filepath.Base(path))
	for _, p := range adobeTempPatterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// scanSystem walks the system targets, then lists installers left at the
// top level of Downloads.
func (s *Scanner) scanSystem(ctx context.Context, log logrus.FieldLogger, rep progress.Reporter) ([]Item, error) {
	items, err := s.scanTargets(ctx, log, config.CategorySystem, CategorySystem, "Scanning system directories...", nil, rep)
	if err != nil {
		return nil, err
	}

	installers, err := s.scanInstallers(ctx, log, rep)
	if err != nil {
		return nil, err
	}
	return append(items, installers...), nil
}

func (s *Scanner) scanInstallers(ctx context.Context, log logrus.FieldLogger, rep progress.Reporter) ([]Item, error) {
	dir := s.catalog.Downloads
	if !s.isDir(dir) {
		return nil, nil
	}
	rep.Status("Scanning: " + dir)

	var items []Item
	err := s.walk(ctx, log, dir, walkSpec{maxDepth: 1}, func(path string, info os.FileInfo) {
		if installerExtensions[strings.ToLower(filepath.Ext(path))] {
			items = append(items, fileItem(path, info, CategorySystem, "Old installer"))
		}
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
