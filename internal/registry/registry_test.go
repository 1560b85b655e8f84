package registry

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestReferencedBinary(t *testing.T) {
	tests := []struct {
		data string
		want string
		ok   bool
	}{
		{`C:\Program Files\App\app.exe`, `C:\Program Files\App\app.exe`, true},
		{`"C:\Program Files\App\app.exe" --minimized`, `C:\Program Files\App\app.exe`, true},
		{`C:\Windows\System32\shell32.DLL`, `C:\Windows\System32\shell32.DLL`, true},
		{`\\server\share\tool.exe`, `\\server\share\tool.exe`, true},
		{`rundll32.exe`, "", false},
		{`C:\Users\me\notes.txt`, "", false},
		{`"C:\broken.exe`, "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, ok := referencedBinary(tt.data)
			if ok != tt.ok || got != tt.want {
				t.Errorf("referencedBinary(%q) = %q, %v; want %q, %v", tt.data, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestStaleReference(t *testing.T) {
	existing := map[string]bool{`C:\present.exe`: true}
	exists := func(p string) bool { return existing[p] }

	if staleReference(`C:\present.exe`, exists) {
		t.Error("existing binary reported stale")
	}
	if !staleReference(`"C:\gone.exe" /background`, exists) {
		t.Error("missing binary not reported")
	}
	if staleReference(`notepad.exe`, exists) {
		t.Error("PATH-relative binary reported stale")
	}
}

func TestBackup_RunsRegExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	var gotArgs []string
	run := func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return nil, nil
	}

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	file, err := backup(context.Background(), run, dir, now)
	if err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dir, "registry_backup_20260314_092653.reg")
	if file != want {
		t.Errorf("file = %s, want %s", file, want)
	}
	if strings.Join(gotArgs, " ") != `reg export HKCU\Software `+want+" /y" {
		t.Errorf("ran %v", gotArgs)
	}
}

func TestBackup_Failure(t *testing.T) {
	run := func(context.Context, string, ...string) ([]byte, error) {
		return []byte("access denied"), errors.New("exit status 1")
	}
	_, err := backup(context.Background(), run, t.TempDir(), time.Now())
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("expected wrapped command output, got %v", err)
	}
}
