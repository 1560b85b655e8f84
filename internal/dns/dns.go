// Package dns flushes the operating system's DNS resolver cache.
package dns

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/pcclean/internal/core"
)

// ErrUnsupported is returned when no flush command is known for the platform.
var ErrUnsupported = errors.New("DNS cache clearing is not supported on this platform")

const commandTimeout = 30 * time.Second

// Message is reported after a successful flush.
const Message = "DNS cache cleared successfully!"

// plan lists the commands for one platform. The first primary command that
// succeeds wins; follow-ups then run best-effort.
type plan struct {
	primary  [][]string
	followUp [][]string
}

var plans = map[string]plan{
	"windows": {
		primary: [][]string{{"ipconfig", "/flushdns"}},
	},
	"darwin": {
		primary:  [][]string{{"dscacheutil", "-flushcache"}},
		followUp: [][]string{{"killall", "-HUP", "mDNSResponder"}},
	},
	"linux": {
		primary: [][]string{
			{"resolvectl", "flush-caches"},
			{"systemd-resolve", "--flush-caches"},
			{"service", "nscd", "restart"},
		},
	},
}

// Flusher runs the platform's flush commands.
type Flusher struct {
	goos string
	run  core.Runner
	log  logrus.FieldLogger
}

// NewFlusher creates a Flusher for the running platform.
func NewFlusher(log logrus.FieldLogger) *Flusher {
	return &Flusher{goos: runtime.GOOS, run: core.ExecRunner, log: log}
}

// Flush clears the resolver cache. The error of the last attempted command
// is returned when every primary command fails.
func (f *Flusher) Flush(ctx context.Context) error {
	p, ok := plans[f.goos]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupported, f.goos)
	}

	var lastErr error
	succeeded := false
	for _, argv := range p.primary {
		_, err := core.RunCommand(ctx, f.run, commandTimeout, argv[0], argv[1:]...)
		if err == nil {
			f.log.WithField("command", strings.Join(argv, " ")).Info("DNS cache cleared")
			succeeded = true
			break
		}
		f.log.WithError(err).Debug("flush command failed")
		lastErr = err
	}
	if !succeeded {
		return fmt.Errorf("unable to clear DNS cache, may require administrator privileges: %w", lastErr)
	}

	for _, argv := range p.followUp {
		if _, err := core.RunCommand(ctx, f.run, commandTimeout, argv[0], argv[1:]...); err != nil {
			f.log.WithError(err).Warn("follow-up flush command failed")
		}
	}
	return nil
}
