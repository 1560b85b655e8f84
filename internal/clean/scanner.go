// Package clean finds reclaimable items by category and deletes the ones
// the user selects.
package clean

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/lakshaymaurya-felt/pcclean/internal/config"
	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
)

// Scanner finds items for every category. It is safe for concurrent use.
type Scanner struct {
	fs       afero.Fs
	catalog  config.Catalog
	settings *config.Settings
	log      logrus.FieldLogger
	now      func() time.Time
	registry func(context.Context, progress.Reporter) ([]Item, error)
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithScanFs scans fs instead of the OS filesystem.
func WithScanFs(fs afero.Fs) ScannerOption {
	return func(s *Scanner) { s.fs = fs }
}

// WithScanLogger sends scan diagnostics to log.
func WithScanLogger(log logrus.FieldLogger) ScannerOption {
	return func(s *Scanner) { s.log = log }
}

// WithClock overrides the time used for age filters.
func WithClock(now func() time.Time) ScannerOption {
	return func(s *Scanner) { s.now = now }
}

// NewScanner creates a Scanner over catalog. Nil settings use the defaults.
func NewScanner(catalog config.Catalog, settings *config.Settings, opts ...ScannerOption) *Scanner {
	if settings == nil {
		settings = config.Default()
	}
	s := &Scanner{
		fs:       afero.NewOsFs(),
		catalog:  catalog,
		settings: settings,
		now:      time.Now,
		registry: scanRegistry,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	return s
}

// Scan runs the scanner for category. Duplicates are searched below the
// catalog's home directory; use ScanDuplicates for another root.
func (s *Scanner) Scan(ctx context.Context, category Category, rep progress.Reporter) ([]Item, error) {
	rep = progress.Monotonic(rep)
	log := s.log.WithFields(logrus.Fields{
		"scan_id":  uuid.NewString(),
		"category": string(category),
	})

	var (
		items []Item
		err   error
	)
	switch category {
	case CategoryTemp:
		items, err = s.scanTargets(ctx, log, config.CategoryTemp, CategoryTemp, "Scanning temporary file locations...", nil, rep)
	case CategoryAdobe:
		items, err = s.scanTargets(ctx, log, config.CategoryAdobe, CategoryAdobe, "Scanning for Adobe temporary files...", isAdobeTemp, rep)
	case CategorySystem:
		items, err = s.scanSystem(ctx, log, rep)
	case CategoryJunk:
		items, err = s.scanJunk(ctx, log, rep)
	case CategoryLarge:
		items, err = s.scanLarge(ctx, log, rep)
	case CategoryVideos:
		items, err = s.scanVideos(ctx, log, rep)
	case CategoryDuplicates:
		return s.ScanDuplicates(ctx, s.catalog.Home, rep)
	case CategoryRegistry:
		items, err = s.registry(ctx, rep)
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if err != nil {
		log.WithError(err).Error("scan failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"items": len(items),
		"bytes": TotalSize(items),
	}).Info("scan complete")
	return items, nil
}

// walkSpec controls one bounded walk.
type walkSpec struct {
	maxDepth int             // 0 = unlimited; files directly in root are depth 0
	skip     map[string]bool // lowercase directory names
	onDir    func(path string)
}

// walk visits every regular file below root. Unreadable directories are
// skipped. It returns ctx.Err() if cancelled.
func (s *Scanner) walk(ctx context.Context, log logrus.FieldLogger, root string, spec walkSpec, visit func(path string, info os.FileInfo)) error {
	var walkDir func(dir string, depth int) error
	walkDir = func(dir string, depth int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if spec.maxDepth > 0 && depth >= spec.maxDepth {
			return nil
		}

		infos, err := afero.ReadDir(s.fs, dir)
		if err != nil {
			log.WithError(err).WithField("path", dir).Debug("skipping directory")
			return nil
		}

		for _, info := range infos {
			path := filepath.Join(dir, info.Name())
			switch {
			case info.IsDir():
				if spec.skip[strings.ToLower(info.Name())] {
					continue
				}
				if spec.onDir != nil {
					spec.onDir(path)
				}
				if err := walkDir(path, depth+1); err != nil {
					return err
				}
			case info.Mode().IsRegular():
				visit(path, info)
			}
		}
		return nil
	}
	return walkDir(root, 0)
}

func (s *Scanner) isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := s.fs.Stat(path)
	return err == nil && info.IsDir()
}

// uniqueDirs drops empty and repeated paths. %TEMP% often points to
// %LOCALAPPDATA%\Temp, so comparison ignores case.
func uniqueDirs(dirs []string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, d := range dirs {
		if d == "" {
			continue
		}
		cleaned := filepath.Clean(d)
		key := strings.ToLower(cleaned)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, cleaned)
		}
	}
	return unique
}

func skipSet(names ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, list := range names {
		for _, n := range list {
			set[strings.ToLower(n)] = true
		}
	}
	return set
}

func extSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = true
	}
	return set
}

func fileItem(path string, info os.FileInfo, category Category, description string) Item {
	return Item{
		Path:        path,
		Name:        info.Name(),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		Category:    category,
		Description: description,
		Kind:        KindFile,
	}
}
