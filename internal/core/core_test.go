package core

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"100MB", 100 * 1024 * 1024, false},
		{"100 mb", 100 * 1024 * 1024, false},
		{"100MiB", 100 * 1024 * 1024, false},
		{"2G", 2 << 30, false},
		{"1.5KB", 1536, false},
		{"512", 512, false},
		{" 1 GiB ", 1 << 30, false},
		{"", 0, true},
		{"lots", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsProtected(t *testing.T) {
	root := filepath.FromSlash("/data")
	protected := []string{filepath.Join(root, "system"), filepath.Join(root, "users", "me")}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"exact match", filepath.Join(root, "system"), true},
		{"ancestor of protected", filepath.Join(root, "users"), true},
		{"filesystem root", filepath.FromSlash("/"), true},
		{"child of protected", filepath.Join(root, "system", "tmp", "x.log"), false},
		{"sibling", filepath.Join(root, "systemd"), false},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProtected(tt.path, protected); got != tt.want {
				t.Errorf("IsProtected(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSafeDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/scan/cache", 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := afero.WriteFile(fs, "/scan/cache/a.bin", make([]byte, 100), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := afero.WriteFile(fs, "/scan/cache/b.bin", make([]byte, 50), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := afero.WriteFile(fs, "/scan/keep.txt", []byte("keep"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Run("DryRun", func(t *testing.T) {
		freed, err := SafeDelete(fs, "/scan/cache/a.bin", nil, true)
		if err != nil {
			t.Fatalf("SafeDelete() error = %v", err)
		}
		if freed != 100 {
			t.Errorf("freed = %d, want 100", freed)
		}
		if ok, _ := afero.Exists(fs, "/scan/cache/a.bin"); !ok {
			t.Error("dry run removed the file")
		}
	})

	t.Run("Protected", func(t *testing.T) {
		_, err := SafeDelete(fs, "/scan", []string{"/scan/keep.txt"}, false)
		if !errors.Is(err, ErrProtected) {
			t.Fatalf("SafeDelete() error = %v, want ErrProtected", err)
		}
	})

	t.Run("Directory", func(t *testing.T) {
		freed, err := SafeDelete(fs, "/scan/cache", nil, false)
		if err != nil {
			t.Fatalf("SafeDelete() error = %v", err)
		}
		if freed != 150 {
			t.Errorf("freed = %d, want 150", freed)
		}
		if ok, _ := afero.Exists(fs, "/scan/cache"); ok {
			t.Error("directory still exists")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := SafeDelete(fs, "/scan/nope", nil, false); err == nil {
			t.Error("SafeDelete() should fail for a missing path")
		}
	})
}
