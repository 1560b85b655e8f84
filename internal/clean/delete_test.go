package clean

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"

	"github.com/lakshaymaurya-felt/pcclean/internal/core"
)

type fakeEditor struct {
	deleted []string
	err     error
}

func (f *fakeEditor) DeleteValue(key, name string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, key+`\`+name)
	return nil
}

func exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	if err != nil {
		t.Fatal(err)
	}
	return ok
}

func TestDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/a.tmp", 4)
	writeFile(t, fs, "/data/b.tmp", 6)
	writeFile(t, fs, "/data/keep/c.tmp", 1)

	items := []Item{
		{Path: "/data/a.tmp", Name: "a.tmp", Size: 4},
		{Path: "/data/b.tmp", Name: "b.tmp", Size: 6},
		{Path: "/data/missing.tmp", Name: "missing.tmp"},
		{Path: "/data", Name: "data"},
	}

	logger, hook := test.NewNullLogger()
	var log progressLog
	sum := NewDeleter([]string{"/data/keep"}, WithDeleteFs(fs), WithDeleteLogger(logger)).
		Delete(context.Background(), items, log.reporter())

	if sum.Deleted != 2 || sum.Failed != 2 || sum.Freed != 10 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.String() != "Deletion complete: 2 items deleted (10 B freed)" {
		t.Errorf("String() = %q", sum.String())
	}
	if exists(t, fs, "/data/a.tmp") || exists(t, fs, "/data/b.tmp") {
		t.Error("files not removed")
	}
	if !exists(t, fs, "/data/keep/c.tmp") {
		t.Error("protected descendant removed")
	}

	failed := sum.Errors()
	if len(failed) != 2 {
		t.Fatalf("Errors() = %+v", failed)
	}
	if !errors.Is(failed[1].Err, core.ErrProtected) {
		t.Errorf("ancestor of protected path: err = %v", failed[1].Err)
	}

	if log.percents[len(log.percents)-1] != 100 {
		t.Errorf("progress = %v", log.percents)
	}
	if log.statuses[len(log.statuses)-1] != sum.String() {
		t.Errorf("final status = %q", log.statuses[len(log.statuses)-1])
	}

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 2 {
		t.Errorf("warnings = %d, want 2", warnings)
	}
}

func TestDelete_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/a.tmp", 4)
	writeFile(t, fs, "/data/dir/x", 3)
	writeFile(t, fs, "/data/dir/y", 5)

	items := []Item{
		{Path: "/data/a.tmp", Name: "a.tmp"},
		{Path: "/data/dir", Name: "dir"},
		{Path: `Software\Run`, Name: "Updater", Kind: KindRegistry},
	}
	editor := &fakeEditor{}
	sum := NewDeleter(nil, WithDeleteFs(fs), WithDryRun(true), WithRegistry(editor)).
		Delete(context.Background(), items, nil)

	if sum.Deleted != 3 || sum.Freed != 12 {
		t.Errorf("summary = %+v", sum)
	}
	if !exists(t, fs, "/data/a.tmp") || !exists(t, fs, "/data/dir/x") {
		t.Error("dry run removed files")
	}
	if len(editor.deleted) != 0 {
		t.Errorf("dry run edited registry: %v", editor.deleted)
	}
}

func TestDelete_Registry(t *testing.T) {
	items := []Item{{Path: `Software\Run`, Name: "Updater", Kind: KindRegistry}}

	editor := &fakeEditor{}
	sum := NewDeleter(nil, WithDeleteFs(afero.NewMemMapFs()), WithRegistry(editor)).
		Delete(context.Background(), items, nil)
	if sum.Deleted != 1 || len(editor.deleted) != 1 || editor.deleted[0] != `Software\Run\Updater` {
		t.Errorf("summary = %+v, deleted = %v", sum, editor.deleted)
	}

	sum = NewDeleter(nil, WithRegistry(&fakeEditor{err: errors.New("access denied")})).
		Delete(context.Background(), items, nil)
	if sum.Failed != 1 {
		t.Errorf("expected failure, got %+v", sum)
	}

	sum = NewDeleter(nil).Delete(context.Background(), items, nil)
	if sum.Failed != 1 {
		t.Errorf("registry item without editor should fail, got %+v", sum)
	}
}

func TestDelete_Cancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/a", 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum := NewDeleter(nil, WithDeleteFs(fs)).Delete(ctx, []Item{{Path: "/data/a", Name: "a"}}, nil)
	if sum.Failed != 1 || !errors.Is(sum.Results[0].Err, context.Canceled) {
		t.Errorf("summary = %+v", sum)
	}
	if !exists(t, fs, "/data/a") {
		t.Error("cancelled delete removed a file")
	}
}

func TestRegistryItems(t *testing.T) {
	items := registryItems(nil)
	if items == nil || len(items) != 0 {
		t.Errorf("registryItems(nil) = %#v", items)
	}
}
