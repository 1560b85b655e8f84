package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunCommand_Success(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte("  flushed\n"), nil
	}

	out, err := RunCommand(context.Background(), run, time.Second, "ipconfig", "/flushdns")
	if err != nil {
		t.Fatal(err)
	}
	if out != "flushed" {
		t.Errorf("output = %q", out)
	}
	if gotName != "ipconfig" || len(gotArgs) != 1 || gotArgs[0] != "/flushdns" {
		t.Errorf("ran %s %v", gotName, gotArgs)
	}
}

func TestRunCommand_Failure(t *testing.T) {
	cause := errors.New("boom")
	run := func(context.Context, string, ...string) ([]byte, error) {
		return []byte(strings.Repeat("é", 150)), cause
	}

	_, err := RunCommand(context.Background(), run, time.Second, "reg", "export")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.Command != "reg export" {
		t.Errorf("Command = %q", cmdErr.Command)
	}
	if cmdErr.ExitCode != -1 {
		t.Errorf("ExitCode = %d", cmdErr.ExitCode)
	}
	if !strings.HasSuffix(cmdErr.Output, "...") || len(cmdErr.Output) > maxOutput+3 {
		t.Errorf("output not truncated: %d bytes", len(cmdErr.Output))
	}
	if !errors.Is(err, cause) {
		t.Error("CommandError should unwrap to the cause")
	}
}

func TestRunCommand_Timeout(t *testing.T) {
	run := func(ctx context.Context, _ string, _ ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, errors.New("signal: killed")
	}

	_, err := RunCommand(context.Background(), run, 10*time.Millisecond, "slow")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("message = %q", err.Error())
	}
}
