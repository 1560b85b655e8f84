package dupes

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Walker enumerates regular files below a root.
type Walker struct {
	fs      afero.Fs
	exclude map[string]bool
}

// NewWalker creates a walker over fs. exclude is a list of directory names
// (case-insensitive) that are never descended.
func NewWalker(fs afero.Fs, exclude []string) *Walker {
	excMap := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excMap[strings.ToLower(e)] = true
	}
	return &Walker{fs: fs, exclude: excMap}
}

// Walk returns a single-use sequence of every regular file below root, in
// pre-order with directory entries sorted by name. Entries that cannot be
// listed or stat'ed are yielded as a zero FileRecord with an *EntryError and
// the walk continues with their siblings. Symlinks and other non-regular
// entries are neither followed nor yielded. The walk stops early when ctx is
// cancelled.
func (w *Walker) Walk(ctx context.Context, root string) iter.Seq2[FileRecord, error] {
	return func(yield func(FileRecord, error) bool) {
		order := 0
		w.walkDir(ctx, filepath.Clean(root), &order, yield)
	}
}

func (w *Walker) walkDir(ctx context.Context, dir string, order *int, yield func(FileRecord, error) bool) bool {
	if ctx.Err() != nil {
		return false
	}

	names, err := w.readDirNames(dir)
	if err != nil {
		// Permission denied, vanished mid-walk, or a loop error: skip the subtree.
		return yield(FileRecord{}, &EntryError{Path: dir, Op: OpList, Err: err})
	}

	for _, name := range names {
		path := filepath.Join(dir, name)

		info, err := w.lstat(path)
		if err != nil {
			if !yield(FileRecord{}, &EntryError{Path: path, Op: OpStat, Err: err}) {
				return false
			}
			continue
		}

		mode := info.Mode()
		switch {
		case mode.IsDir():
			if w.exclude[strings.ToLower(name)] {
				continue
			}
			if !w.walkDir(ctx, path, order, yield) {
				return false
			}
		case mode.IsRegular():
			rec := FileRecord{Path: path, Size: info.Size(), Order: *order}
			*order++
			if !yield(rec, nil) {
				return false
			}
		}
	}
	return true
}

func (w *Walker) readDirNames(dir string) ([]string, error) {
	f, err := w.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// lstat avoids following symlinks when the filesystem supports it.
func (w *Walker) lstat(path string) (os.FileInfo, error) {
	if l, ok := w.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return w.fs.Stat(path)
}
