package core

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"
)

// maxOutput bounds how much command output is kept in a CommandError.
const maxOutput = 200

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands directly (not via a shell).
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// CommandError reports a command that could not be run or exited non-zero.
type CommandError struct {
	Command  string
	ExitCode int // -1 when the command never exited
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	switch {
	case errors.Is(e.Err, context.DeadlineExceeded):
		return fmt.Sprintf("%s timed out", e.Command)
	case e.ExitCode >= 0 && e.Output != "":
		return fmt.Sprintf("%s failed (exit code %d): %s", e.Command, e.ExitCode, e.Output)
	case e.ExitCode >= 0:
		return fmt.Sprintf("%s failed (exit code %d)", e.Command, e.ExitCode)
	case e.Output != "":
		return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// RunCommand runs name with args through run under timeout. A nil run uses
// ExecRunner. On failure the returned error is a *CommandError.
func RunCommand(ctx context.Context, run Runner, timeout time.Duration, name string, args ...string) (string, error) {
	if run == nil {
		run = ExecRunner
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	output, err := run(ctx, name, args...)
	if err == nil {
		return strings.TrimSpace(string(output)), nil
	}

	cmdErr := &CommandError{
		Command:  strings.TrimSpace(name + " " + strings.Join(args, " ")),
		ExitCode: -1,
		Output:   truncateOutput(string(output)),
		Err:      err,
	}
	if ctx.Err() != nil {
		cmdErr.Err = ctx.Err()
		return "", cmdErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	return "", cmdErr
}

// truncateOutput trims output to maxOutput bytes at a valid UTF-8 boundary.
func truncateOutput(output string) string {
	output = strings.TrimSpace(output)
	if len(output) <= maxOutput {
		return output
	}
	output = output[:maxOutput]
	for len(output) > 0 && !utf8.ValidString(output) {
		output = output[:len(output)-1]
	}
	return output + "..."
}
