package clean

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/lakshaymaurya-felt/pcclean/internal/core"
	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
)

// RegistryEditor removes registry values.
type RegistryEditor interface {
	DeleteValue(key, name string) error
}

// Result is the outcome for one item.
type Result struct {
	Item  Item
	Freed int64
	Err   error
}

// Summary totals a deletion run.
type Summary struct {
	Deleted int
	Failed  int
	Freed   int64
	Results []Result
}

func (s Summary) String() string {
	return fmt.Sprintf("Deletion complete: %d items deleted (%s freed)", s.Deleted, core.FormatSize(s.Freed))
}

// Errors returns the failed results.
func (s Summary) Errors() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Deleter removes selected items, refusing protected paths.
type Deleter struct {
	fs        afero.Fs
	protected []string
	dryRun    bool
	registry  RegistryEditor
	log       logrus.FieldLogger
}

// DeleterOption configures a Deleter.
type DeleterOption func(*Deleter)

// WithDeleteFs deletes from fs instead of the OS filesystem.
func WithDeleteFs(fs afero.Fs) DeleterOption {
	return func(d *Deleter) { d.fs = fs }
}

// WithDryRun reports what would be freed without deleting anything.
func WithDryRun(dryRun bool) DeleterOption {
	return func(d *Deleter) { d.dryRun = dryRun }
}

// WithRegistry handles registry items through editor.
func WithRegistry(editor RegistryEditor) DeleterOption {
	return func(d *Deleter) { d.registry = editor }
}

// WithDeleteLogger sends deletion records to log.
func WithDeleteLogger(log logrus.FieldLogger) DeleterOption {
	return func(d *Deleter) { d.log = log }
}

// NewDeleter creates a Deleter that never touches protected or any of their ancestors.
func NewDeleter(protected []string, opts ...DeleterOption) *Deleter {
	d := &Deleter{fs: afero.NewOsFs(), protected: protected}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.log = l
	}
	return d
}

// Delete removes items one by one; a failure never stops the rest. If ctx
// is cancelled the remaining items are reported as failed with ctx.Err().
func (d *Deleter) Delete(ctx context.Context, items []Item, rep progress.Reporter) Summary {
	rep = progress.Monotonic(rep)
	var sum Summary

	for i, it := range items {
		var res Result
		if err := ctx.Err(); err != nil {
			res = Result{Item: it, Err: err}
		} else {
			rep.Status("Deleting: " + it.Name)
			res = d.deleteOne(it)
		}

		sum.Results = append(sum.Results, res)
		if res.Err != nil {
			sum.Failed++
			d.log.WithError(res.Err).WithField("path", it.Path).Warn("delete failed")
		} else {
			sum.Deleted++
			sum.Freed += res.Freed
			d.log.WithFields(logrus.Fields{
				"path":    it.Path,
				"freed":   res.Freed,
				"dry_run": d.dryRun,
			}).Info("deleted")
		}
		rep.Progress(progress.Percent(i+1, len(items)))
	}

	rep.Progress(100)
	rep.Status(sum.String())
	return sum
}

func (d *Deleter) deleteOne(it Item) Result {
	if it.Kind == KindRegistry {
		if d.registry == nil {
			return Result{Item: it, Err: errors.New("registry editing not available")}
		}
		if d.dryRun {
			return Result{Item: it}
		}
		if err := d.registry.DeleteValue(it.Path, it.Name); err != nil {
			return Result{Item: it, Err: fmt.Errorf("delete registry value %s\\%s: %w", it.Path, it.Name, err)}
		}
		return Result{Item: it}
	}

	freed, err := core.SafeDelete(d.fs, it.Path, d.protected, d.dryRun)
	return Result{Item: it, Freed: freed, Err: err}
}
