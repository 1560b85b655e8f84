// Package dupes finds byte-identical files below a directory.
//
// A scan walks the tree, buckets files by exact size, hashes only the files
// that share a size with another file, and groups those by digest. Each
// group's earliest discovered file is canonical and every other member is
// reported as a duplicate of it.
package dupes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
)

const maxWorkers = 8

// Finder runs duplicate scans. A Finder holds configuration only and may run
// any number of scans concurrently.
type Finder struct {
	fs        afero.Fs
	workers   int
	chunkSize int
	exclude   []string
	log       logrus.FieldLogger
	onState   func(State)
}

// Option configures a Finder.
type Option func(*Finder)

// WithFs scans fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(f *Finder) { f.fs = fs }
}

// WithWorkers bounds concurrent hashing. n <= 0 picks a default from the CPU count.
func WithWorkers(n int) Option {
	return func(f *Finder) { f.workers = n }
}

// WithChunkSize sets the read size used while hashing.
func WithChunkSize(n int) Option {
	return func(f *Finder) { f.chunkSize = n }
}

// WithExclude skips directories with any of the given names.
func WithExclude(names []string) Option {
	return func(f *Finder) { f.exclude = names }
}

// WithLogger sends scan diagnostics to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(f *Finder) { f.log = log }
}

// WithStateHook calls fn on every state transition, synchronously.
func WithStateHook(fn func(State)) Option {
	return func(f *Finder) { f.onState = fn }
}

// NewFinder creates a Finder.
func NewFinder(opts ...Option) *Finder {
	f := &Finder{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(f)
	}
	if f.workers <= 0 {
		f.workers = min(runtime.NumCPU(), maxWorkers)
	}
	if f.chunkSize <= 0 {
		f.chunkSize = DefaultChunkSize
	}
	if f.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		f.log = l
	}
	return f
}

// FindDuplicates scans root on the OS filesystem with default settings.
// Either callback may be nil.
func FindDuplicates(root string, onProgress func(int), onStatus func(string)) ([]Duplicate, error) {
	rep := progress.Funcs{OnProgress: onProgress, OnStatus: onStatus}
	return NewFinder().Find(context.Background(), root, rep)
}

// Find scans root and returns every duplicate file. The only error returned
// for a completed scan is a *RootError; unreadable entries and files that
// fail to hash are logged and left out. If ctx is cancelled the scan stops
// and returns ctx.Err() with no results.
//
// rep receives status messages at phase boundaries and non-decreasing
// percentages during hashing, ending at 100 on success. On a root error it
// receives nothing.
func (f *Finder) Find(ctx context.Context, root string, rep progress.Reporter) ([]Duplicate, error) {
	rep = progress.Monotonic(rep)
	log := f.log.WithFields(logrus.Fields{
		"scan_id": uuid.NewString(),
		"root":    root,
	})
	f.enter(log, StateIdle)

	abs, err := f.validateRoot(root)
	if err != nil {
		f.enter(log, StateFailed)
		log.WithError(err).Error("scan root rejected")
		return nil, err
	}

	f.enter(log, StateEnumeratingFiles)
	rep.Status("Building file list...")

	bucketer := NewBucketer()
	walker := NewWalker(f.fs, f.exclude)
	skipped := 0
	for rec, walkErr := range walker.Walk(ctx, abs) {
		if walkErr != nil {
			skipped++
			log.WithError(walkErr).Debug("skipping entry")
			continue
		}
		bucketer.Add(rec)
	}
	if err := ctx.Err(); err != nil {
		return nil, f.cancelled(log, err)
	}

	f.enter(log, StateGroupingBySize)
	buckets := bucketer.Buckets()
	total := CountCandidates(buckets)
	log.WithFields(logrus.Fields{
		"files":      bucketer.Seen(),
		"skipped":    skipped,
		"buckets":    len(buckets),
		"candidates": total,
	}).Info("file list built")
	rep.Status(fmt.Sprintf("Found %d files. Comparing...", bucketer.Seen()))

	f.enter(log, StateHashing)
	hashed := f.hashCandidates(ctx, log, buckets, total, rep)
	if err := ctx.Err(); err != nil {
		return nil, f.cancelled(log, err)
	}

	f.enter(log, StateGroupingByDigest)
	groups := GroupByDigest(buckets, hashed)
	result := Flatten(groups)

	f.enter(log, StateDone)
	rep.Progress(100)
	if len(result) == 0 {
		rep.Status("No duplicates found")
	} else {
		rep.Status(fmt.Sprintf("Found %d duplicate files in %d groups", len(result), len(groups)))
	}
	log.WithFields(logrus.Fields{
		"groups":     len(groups),
		"duplicates": len(result),
	}).Info("scan complete")
	return result, nil
}

func (f *Finder) validateRoot(root string) (string, error) {
	if root == "" {
		return "", &RootError{Path: root, Kind: RootNotFound}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &RootError{Path: root, Kind: RootInaccessible, Err: err}
	}

	info, err := f.fs.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &RootError{Path: abs, Kind: RootNotFound, Err: err}
		}
		return "", &RootError{Path: abs, Kind: RootInaccessible, Err: err}
	}
	if !info.IsDir() {
		return "", &RootError{Path: abs, Kind: RootNotDirectory}
	}

	dir, err := f.fs.Open(abs)
	if err != nil {
		return "", &RootError{Path: abs, Kind: RootInaccessible, Err: err}
	}
	dir.Close()
	return abs, nil
}

type hashOutcome struct {
	rec HashedRecord
	err error
}

// hashCandidates hashes every candidate on a bounded pool and returns the
// successes in completion order. Progress is reported from this goroutine
// only, once per processed candidate.
func (f *Finder) hashCandidates(ctx context.Context, log logrus.FieldLogger, buckets []SizeBucket, total int, rep progress.Reporter) []HashedRecord {
	if total == 0 {
		return nil
	}

	hasher := NewHasher(f.fs, f.chunkSize)
	jobs := make(chan FileRecord)
	results := make(chan hashOutcome)

	var wg sync.WaitGroup
	for i := 0; i < f.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range jobs {
				hr, err := hasher.Hash(ctx, rec)
				select {
				case results <- hashOutcome{rec: hr, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, bucket := range buckets {
			for _, rec := range bucket.Files {
				rep.Status("Hashing: " + filepath.Base(rec.Path))
				select {
				case jobs <- rec:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	hashed := make([]HashedRecord, 0, total)
	processed := 0
	for out := range results {
		processed++
		if out.err != nil {
			if ctx.Err() == nil {
				log.WithError(out.err).Warn("dropping candidate")
			}
		} else {
			hashed = append(hashed, out.rec)
		}
		rep.Progress(progress.Percent(processed, total))
	}
	return hashed
}

func (f *Finder) cancelled(log logrus.FieldLogger, err error) error {
	f.enter(log, StateFailed)
	log.WithError(err).Warn("scan cancelled")
	return err
}

func (f *Finder) enter(log logrus.FieldLogger, s State) {
	log.WithField("state", s.String()).Debug("scan state")
	if f.onState != nil {
		f.onState(s)
	}
}
