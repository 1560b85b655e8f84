package dns

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
)

// fakeRunner records invocations and fails the listed commands.
type fakeRunner struct {
	fail  map[string]bool
	calls []string
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmd)
	if f.fail[cmd] {
		return []byte("not found"), errors.New("exit status 1")
	}
	return nil, nil
}

func newTestFlusher(goos string, r *fakeRunner) *Flusher {
	logger, _ := test.NewNullLogger()
	return &Flusher{goos: goos, run: r.run, log: logger}
}

func TestFlush(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		fail    []string
		calls   []string
		wantErr bool
	}{
		{
			name:  "windows",
			goos:  "windows",
			calls: []string{"ipconfig /flushdns"},
		},
		{
			name:  "darwin runs follow-up",
			goos:  "darwin",
			calls: []string{"dscacheutil -flushcache", "killall -HUP mDNSResponder"},
		},
		{
			name:  "darwin follow-up failure is ignored",
			goos:  "darwin",
			fail:  []string{"killall -HUP mDNSResponder"},
			calls: []string{"dscacheutil -flushcache", "killall -HUP mDNSResponder"},
		},
		{
			name:    "darwin primary failure skips follow-up",
			goos:    "darwin",
			fail:    []string{"dscacheutil -flushcache"},
			calls:   []string{"dscacheutil -flushcache"},
			wantErr: true,
		},
		{
			name:  "linux falls back",
			goos:  "linux",
			fail:  []string{"resolvectl flush-caches"},
			calls: []string{"resolvectl flush-caches", "systemd-resolve --flush-caches"},
		},
		{
			name:    "linux all fail",
			goos:    "linux",
			fail:    []string{"resolvectl flush-caches", "systemd-resolve --flush-caches", "service nscd restart"},
			calls:   []string{"resolvectl flush-caches", "systemd-resolve --flush-caches", "service nscd restart"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{fail: map[string]bool{}}
			for _, c := range tt.fail {
				r.fail[c] = true
			}

			err := newTestFlusher(tt.goos, r).Flush(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if strings.Join(r.calls, "|") != strings.Join(tt.calls, "|") {
				t.Errorf("calls = %v, want %v", r.calls, tt.calls)
			}
		})
	}
}

func TestFlush_Unsupported(t *testing.T) {
	r := &fakeRunner{}
	err := newTestFlusher("plan9", r).Flush(context.Background())
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("no commands expected, got %v", r.calls)
	}
}
