/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package buildtool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/kraken-mutate/mutantkraken/internal/mkerrors"
)

// wrapperName is the Gradle wrapper script name for the current OS.
func wrapperName() string {
	if runtime.GOOS == "windows" {
		return "gradlew.bat"
	}

	return "gradlew"
}

// GradleRunner drives a project's Gradle wrapper. It never invokes a
// system-wide `gradle`: the wrapper pins the build to a known Gradle
// version, which is what makes per-worker workspace clones reproducible.
type GradleRunner struct {
	// ExecContext lets tests substitute a fake process launcher; the
	// zero value uses exec.CommandContext.
	ExecContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewGradleRunner builds a GradleRunner using the real exec.CommandContext.
func NewGradleRunner() *GradleRunner {
	return &GradleRunner{ExecContext: exec.CommandContext}
}

// Check verifies dir has a Gradle wrapper script present and, on
// POSIX, executable.
func (g *GradleRunner) Check(dir string) error {
	path := filepath.Join(dir, wrapperName())
	info, err := os.Stat(path)
	if err != nil {
		return mkerrors.Wrap(mkerrors.GeneralError, err, "gradle wrapper not found at %s", path)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return mkerrors.New(mkerrors.GeneralError, "gradle wrapper at %s is not executable", path)
	}

	return nil
}

// Assemble runs `gradlew assemble` in dir.
func (g *GradleRunner) Assemble(ctx context.Context, dir string) (ExitStatus, error) {
	return g.run(ctx, dir, "assemble")
}

// Test runs `gradlew test`, optionally scoped with `--tests filter`, in dir.
func (g *GradleRunner) Test(ctx context.Context, dir, filter string) (ExitStatus, error) {
	args := []string{"test"}
	if filter != "" {
		args = append(args, "--tests", filter)
	}

	return g.run(ctx, dir, args...)
}

func (g *GradleRunner) run(ctx context.Context, dir string, args ...string) (ExitStatus, error) {
	execContext := g.ExecContext
	if execContext == nil {
		execContext = exec.CommandContext
	}

	cmd := execContext(ctx, filepath.Join(dir, wrapperName()), args...)
	cmd.Dir = dir
	// stdout/stderr are left nil (discarded): child output would
	// otherwise buffer unread and risk a pipe deadlock under W
	// concurrent workers. Diagnostics live in the engine's own log.
	err := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return TimedOut, fmt.Errorf("%s %v timed out: %w", wrapperName(), args, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Failure, exitErr
	}
	if err != nil {
		return SpawnError, err
	}

	return Success, nil
}
