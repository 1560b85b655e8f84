package dupes

import (
	"errors"
	"fmt"
)

// ErrRoot is matched by every *RootError via errors.Is.
var ErrRoot = errors.New("scan root unusable")

// RootKind classifies why a scan root was rejected.
type RootKind int

const (
	RootNotFound RootKind = iota
	RootNotDirectory
	RootInaccessible
)

func (k RootKind) String() string {
	switch k {
	case RootNotFound:
		return "does not exist"
	case RootNotDirectory:
		return "is not a directory"
	case RootInaccessible:
		return "is not accessible"
	}
	return "is unusable"
}

// RootError is the only failure a scan surfaces: the root itself cannot be
// scanned. No partial result accompanies it.
type RootError struct {
	Path string
	Kind RootKind
	Err  error
}

func (e *RootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scan root %q %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("scan root %q %s", e.Path, e.Kind)
}

func (e *RootError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRoot}
	}
	return []error{ErrRoot, e.Err}
}

// Walk operations reported by EntryError.
const (
	OpList = "list"
	OpStat = "stat"
)

// EntryError describes a directory or file the walker had to skip.
// It is logged and never returned from a scan.
type EntryError struct {
	Path string
	Op   string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// HashError describes a candidate that could not be fully hashed. The
// candidate is dropped from its bucket.
type HashError struct {
	Path string
	Err  error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("hash %s: %v", e.Path, e.Err)
}

func (e *HashError) Unwrap() error { return e.Err }
