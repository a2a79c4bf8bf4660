package buildtool_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/kraken-mutate/mutantkraken/internal/buildtool"
)

func fakeExecContext(t *testing.T, script string) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	t.Helper()

	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "/bin/sh", "-c", script)
	}
}

func TestGradleRunner_assemble_classifiesSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake exec uses /bin/sh")
	}
	r := &buildtool.GradleRunner{ExecContext: fakeExecContext(t, "exit 0")}
	status, err := r.Assemble(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != buildtool.Success {
		t.Fatalf("got %v, want Success", status)
	}
}

func TestGradleRunner_test_classifiesFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake exec uses /bin/sh")
	}
	r := &buildtool.GradleRunner{ExecContext: fakeExecContext(t, "exit 1")}
	status, err := r.Test(context.Background(), t.TempDir(), "")
	if err == nil {
		t.Fatal("expected an error for a non-zero exit")
	}
	if status != buildtool.Failure {
		t.Fatalf("got %v, want Failure", status)
	}
}

func TestGradleRunner_test_classifiesTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake exec uses /bin/sh")
	}
	r := &buildtool.GradleRunner{ExecContext: fakeExecContext(t, "sleep 2")}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	status, err := r.Test(ctx, t.TempDir(), "")
	if err == nil {
		t.Fatal("expected an error for a timed-out run")
	}
	if status != buildtool.TimedOut {
		t.Fatalf("got %v, want TimedOut", status)
	}
}

func TestGradleRunner_check_failsWhenWrapperMissing(t *testing.T) {
	r := buildtool.NewGradleRunner()
	if err := r.Check(t.TempDir()); err == nil {
		t.Fatal("expected an error when no wrapper script is present")
	}
}

func TestGradleRunner_check_failsWhenWrapperNotExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "gradlew")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := buildtool.NewGradleRunner()
	if err := r.Check(dir); err == nil {
		t.Fatal("expected an error for a non-executable wrapper")
	}
}
