package clean

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/pcclean/internal/core"
	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
)

// ─── Catalog targets ─────────────────────────────────────────────────────────

// location is one directory to walk and the description for items in it.
type location struct {
	dir         string
	description string
}

// scanTargets walks every location of the catalog's targets in category.
// keep, when set, filters files by path.
func (s *Scanner) scanTargets(ctx context.Context, log logrus.FieldLogger, catalogCategory string, category Category, intro string, keep func(path string) bool, rep progress.Reporter) ([]Item, error) {
	rep.Status(intro)

	var locations []location
	seen := make(map[string]bool)
	for _, t := range s.catalog.TargetsFor(catalogCategory) {
		for _, dir := range uniqueDirs(t.Paths) {
			key := strings.ToLower(dir)
			if seen[key] {
				continue
			}
			seen[key] = true
			locations = append(locations, location{dir: dir, description: t.Description})
		}
	}

	items, err := s.scanLocations(ctx, log, locations, category, walkSpec{}, func(path string, _ os.FileInfo) bool {
		return keep == nil || keep(path)
	}, rep)
	if err != nil {
		return nil, err
	}
	rep.Progress(100)
	return items, nil
}

// scanLocations walks each location in turn, reporting progress per location.
// Missing locations are skipped but still count toward progress.
func (s *Scanner) scanLocations(ctx context.Context, log logrus.FieldLogger, locations []location, category Category, spec walkSpec, match func(string, os.FileInfo) bool, rep progress.Reporter) ([]Item, error) {
	var items []Item
	seen := make(map[string]bool)
	for i, loc := range locations {
		if s.isDir(loc.dir) {
			rep.Status("Scanning: " + loc.dir)
			err := s.walk(ctx, log, loc.dir, spec, func(path string, info os.FileInfo) {
				// Nested locations, e.g. %TEMP% and %TEMP%\Adobe, must not report twice.
				if seen[path] || !match(path, info) {
					return
				}
				seen[path] = true
				items = append(items, fileItem(path, info, category, loc.description))
			})
			if err != nil {
				return nil, err
			}
		}
		rep.Progress(progress.Percent(i+1, len(locations)))
	}
	return items, nil
}

// ─── Junk ────────────────────────────────────────────────────────────────────

func (s *Scanner) scanJunk(ctx context.Context, log logrus.FieldLogger, rep progress.Reporter) ([]Item, error) {
	rep.Status("Scanning for junk files...")
	exts := extSet(s.settings.Junk.Extensions)
	spec := walkSpec{
		maxDepth: s.settings.Junk.MaxDepth,
		skip:     skipSet(s.catalog.SkipDirs),
	}

	locations := []location{{dir: s.catalog.Home, description: "Junk file"}}
	items, err := s.scanLocations(ctx, log, locations, CategoryJunk, spec, func(path string, _ os.FileInfo) bool {
		return exts[strings.ToLower(filepath.Ext(path))]
	}, rep)
	if err != nil {
		return nil, err
	}
	rep.Progress(100)
	return items, nil
}

// ─── Large files ─────────────────────────────────────────────────────────────

func (s *Scanner) scanLarge(ctx context.Context, log logrus.FieldLogger, rep progress.Reporter) ([]Item, error) {
	threshold, err := s.settings.LargeFileThreshold()
	if err != nil {
		return nil, err
	}
	rep.Status(fmt.Sprintf("Scanning for files larger than %s...", core.FormatSize(threshold)))

	spec := walkSpec{
		maxDepth: s.settings.LargeFiles.MaxDepth,
		skip:     skipSet(s.catalog.SkipDirs, []string{"appdata"}),
		onDir: func(path string) {
			rep.Status("Scanning: " + truncatePath(path, 50))
		},
	}

	locations := []location{{dir: s.catalog.Home, description: "Large file"}}
	items, err := s.scanLocations(ctx, log, locations, CategoryLarge, spec, func(_ string, info os.FileInfo) bool {
		return info.Size() >= threshold
	}, rep)
	if err != nil {
		return nil, err
	}
	rep.Progress(100)
	return items, nil
}

// ─── Videos ──────────────────────────────────────────────────────────────────

func (s *Scanner) scanVideos(ctx context.Context, log logrus.FieldLogger, rep progress.Reporter) ([]Item, error) {
	days := s.settings.Videos.MinAgeDays
	rep.Status(fmt.Sprintf("Scanning for video files older than %d days...", days))

	cutoff := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	exts := extSet(s.settings.Videos.Extensions)
	spec := walkSpec{maxDepth: s.settings.Videos.MaxDepth}

	var locations []location
	for _, dir := range uniqueDirs(s.catalog.VideoDirs) {
		locations = append(locations, location{dir: dir, description: "Old video"})
	}

	items, err := s.scanLocations(ctx, log, locations, CategoryVideos, spec, func(path string, info os.FileInfo) bool {
		return exts[strings.ToLower(filepath.Ext(path))] && info.ModTime().Before(cutoff)
	}, rep)
	if err != nil {
		return nil, err
	}
	rep.Progress(100)
	return items, nil
}

// truncatePath shortens long paths for status lines, keeping the head.
func truncatePath(path string, max int) string {
	runes := []rune(path)
	if len(runes) <= max {
		return path
	}
	return string(runes[:max]) + "..."
}
