//go:build !windows

package registry

import (
	"context"

	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
)

// Scan reports ErrUnsupported.
func Scan(_ context.Context, rep progress.Reporter) ([]Issue, error) {
	if rep != nil {
		rep.Status(ErrUnsupported.Error())
	}
	return nil, ErrUnsupported
}

// DeleteValue reports ErrUnsupported.
func DeleteValue(_, _ string) error {
	return ErrUnsupported
}
