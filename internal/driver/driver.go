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

// Package driver orchestrates the full mutation testing pipeline:
// discover sources, parse them, enumerate candidate mutations,
// materialize mutant files, build and test each mutant under bounded
// parallelism, and hand the finalized results to the report package.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kraken-mutate/mutantkraken/internal/buildtool"
	"github.com/kraken-mutate/mutantkraken/internal/discovery"
	"github.com/kraken-mutate/mutantkraken/internal/generation"
	"github.com/kraken-mutate/mutantkraken/internal/log"
	"github.com/kraken-mutate/mutantkraken/internal/mkerrors"
	"github.com/kraken-mutate/mutantkraken/internal/mutation"
	"github.com/kraken-mutate/mutantkraken/internal/operator"
	"github.com/kraken-mutate/mutantkraken/internal/parsetree"
	"github.com/kraken-mutate/mutantkraken/internal/report"
	"github.com/kraken-mutate/mutantkraken/internal/workdir"
	"github.com/kraken-mutate/mutantkraken/internal/workerpool"
)

// RunConfig is the typed configuration the driver consumes.
type RunConfig struct {
	ProjectRoot         string
	IgnoreDirectories   []string
	IgnoreFileRegexes   []*regexp.Regexp
	EnabledOperators    []string
	MaxDiscoveryThreads int
	PerMutantTimeout    time.Duration
	OverallTimeout      time.Duration // zero means no overall timeout
	AnnotateMutants     bool
	DisplaySummaryTable bool
}

// Paths is every file and directory the engine writes under the
// project root's output directory.
type Paths struct {
	Root          string
	MutationsDir  string
	BackupsDir    string
	TempDir       string
	LogsDir       string
	MutationsJSON string
	CSV           string
	HTML          string
	CSS           string
}

// NewPaths derives the persisted-state layout from a project root.
func NewPaths(projectRoot string) Paths {
	root := filepath.Join(projectRoot, "mutant-kraken-dist")
	mutationsDir := filepath.Join(root, "mutations")

	return Paths{
		Root:          root,
		MutationsDir:  mutationsDir,
		BackupsDir:    filepath.Join(root, "backups"),
		TempDir:       filepath.Join(root, "temp"),
		LogsDir:       filepath.Join(root, "logs"),
		MutationsJSON: filepath.Join(mutationsDir, "mutations.json"),
		CSV:           filepath.Join(root, "output.csv"),
		HTML:          filepath.Join(root, "report.html"),
		CSS:           filepath.Join(root, "mutation-report.css"),
	}
}

func ensureDirs(paths Paths) error {
	for _, dir := range []string{paths.Root, paths.MutationsDir, paths.BackupsDir, paths.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return nil
}

// Run executes the full pipeline. If cfg.OverallTimeout is positive,
// the pipeline runs on its own goroutine behind a completion channel;
// expiry surfaces as a top-level error without force-killing any
// in-flight per-mutant child process, which is left to finish its
// current build/test step.
func Run(ctx context.Context, cfg RunConfig, parser parsetree.Parser, runner buildtool.Runner, consoleOut io.Writer) (report.Results, error) {
	paths := NewPaths(cfg.ProjectRoot)
	if err := ensureDirs(paths); err != nil {
		return report.Results{}, mkerrors.NewFatal(mkerrors.OutputDirFailed, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		results report.Results
		err     error
	}
	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		results, err := runPipeline(runCtx, cfg, paths, parser, runner)
		done <- outcome{results: results, err: err}
	}()

	var o outcome
	if cfg.OverallTimeout <= 0 {
		o = <-done
	} else {
		select {
		case o = <-done:
		case <-time.After(cfg.OverallTimeout):
			log.Warnf("overall run timeout of %s exceeded; letting in-flight mutants finish their current step", cfg.OverallTimeout)
			cancel()
			<-done // drain so the goroutine doesn't leak; its result is discarded

			return report.Results{}, mkerrors.New(mkerrors.GeneralError, "overall run timeout of %s exceeded", cfg.OverallTimeout)
		}
	}
	if o.err != nil {
		return report.Results{}, o.err
	}
	o.results.Elapsed = time.Since(start)

	if err := report.Do(o.results, report.Paths{
		MutationsJSON: paths.MutationsJSON,
		CSV:           paths.CSV,
		HTML:          paths.HTML,
		CSS:           paths.CSS,
	}, cfg.DisplaySummaryTable, consoleOut); err != nil {
		return o.results, err
	}

	return o.results, nil
}

// runPipeline runs phases 1 through 5: discover, parse, enumerate,
// materialize, build/test. It returns the finalized per-file mutant
// lists; Run attaches Elapsed and invokes the reporter.
func runPipeline(ctx context.Context, cfg RunConfig, paths Paths, parser parsetree.Parser, runner buildtool.Runner) (report.Results, error) {
	files, err := discovery.Discover(cfg.ProjectRoot, discovery.Options{
		IgnoreDirectories: cfg.IgnoreDirectories,
		IgnoreFileRegexes: cfg.IgnoreFileRegexes,
	})
	if err != nil {
		return report.Results{}, err
	}
	if len(files) == 0 {
		return report.Results{}, mkerrors.NewFatal(mkerrors.NoFilesFound, nil)
	}

	ops := operator.All()
	if len(cfg.EnabledOperators) > 0 {
		ops = operator.ByNames(cfg.EnabledOperators)
	}

	byFile := enumerate(files, cfg.ProjectRoot, parser, ops, cfg.MaxDiscoveryThreads)
	if len(byFile) == 0 {
		return report.Results{}, mkerrors.NewFatal(mkerrors.NoMutationsFound, nil)
	}

	mutantFiles, err := generation.Generate(byFile, generation.Options{
		ProjectRoot:  cfg.ProjectRoot,
		MutationsDir: paths.MutationsDir,
		Annotate:     cfg.AnnotateMutants,
		Concurrency:  cfg.MaxDiscoveryThreads,
	})
	if err != nil {
		return report.Results{}, err
	}

	if err := buildAndTest(ctx, cfg, paths, byFile, mutantFiles, runner); err != nil {
		return report.Results{}, err
	}

	return report.Results{ProjectRoot: cfg.ProjectRoot, ByFile: byFile}, nil
}

// enumerate parses every file and runs every operator over it,
// bounded by a worker pool. A single file's parse or read failure is
// logged and that file is skipped; the run continues with whatever
// files succeeded.
func enumerate(files []string, projectRoot string, parser parsetree.Parser, ops []operator.Operator, concurrency int) []*mutation.FileMutations {
	pool := workerpool.New("discovery", concurrency)
	pool.Start()

	var (
		mu     sync.Mutex
		byFile []*mutation.FileMutations
	)
	for _, f := range files {
		f := f
		pool.Submit(func() {
			fm := enumerateFile(f, projectRoot, parser, ops)
			if fm == nil {
				return
			}
			mu.Lock()
			byFile = append(byFile, fm)
			mu.Unlock()
		})
	}
	pool.Wait()

	return byFile
}

func enumerateFile(relPath, projectRoot string, parser parsetree.Parser, ops []operator.Operator) *mutation.FileMutations {
	src, err := os.ReadFile(filepath.Join(projectRoot, relPath))
	if err != nil {
		log.Errorf("reading %s: %s", relPath, err)

		return nil
	}

	tree, err := parser.Parse(src)
	if err != nil {
		log.Errorf("parsing %s: %s", relPath, err)

		return nil
	}

	var muts []*mutation.Mutation
	for _, op := range ops {
		muts = append(muts, op.FindMutations(tree, relPath)...)
	}
	if len(muts) == 0 {
		return nil
	}

	return &mutation.FileMutations{FilePath: relPath, Mutations: muts}
}

// buildAndTest runs the pre-flight baseline checks, backs up every
// mutated file's original contents, then drives W = min(5, n) workers
// each processing its chunk of mutants serially against its own
// isolated workspace.
func buildAndTest(ctx context.Context, cfg RunConfig, paths Paths, byFile []*mutation.FileMutations, mutantFiles []generation.MutantFile, runner buildtool.Runner) error {
	if err := runner.Check(cfg.ProjectRoot); err != nil {
		return mkerrors.NewFatal(mkerrors.BaselineAssembleFailed, err)
	}
	if status, err := runner.Assemble(ctx, cfg.ProjectRoot); err != nil || status != buildtool.Success {
		return mkerrors.NewFatal(mkerrors.BaselineAssembleFailed, err)
	}
	if status, err := runner.Test(ctx, cfg.ProjectRoot, ""); err != nil || status != buildtool.Success {
		return mkerrors.NewFatal(mkerrors.BaselineTestFailed, err)
	}

	for _, fm := range byFile {
		if err := backupFile(cfg.ProjectRoot, paths.BackupsDir, fm.FilePath); err != nil {
			return mkerrors.Wrap(mkerrors.MutationBuildTestError, err, "backing up %s", fm.FilePath)
		}
	}

	var allMutants []*mutation.Mutation
	for _, fm := range byFile {
		allMutants = append(allMutants, fm.Mutations...)
	}
	w := min(5, len(allMutants))
	if w == 0 {
		return nil
	}
	chunks := chunkMutants(allMutants, w)

	pathByMutation := make(map[*mutation.Mutation]string, len(mutantFiles))
	for _, mf := range mutantFiles {
		pathByMutation[mf.Mutation] = mf.Path
	}

	if err := os.MkdirAll(paths.TempDir, 0o755); err != nil {
		return mkerrors.NewFatal(mkerrors.OutputDirFailed, err)
	}
	wdDealer := workdir.NewCachedDealer(paths.TempDir, cfg.ProjectRoot, paths.Root)
	defer func() {
		wdDealer.Clean()
		_ = os.RemoveAll(paths.TempDir)
	}()

	bar := progressbar.Default(int64(len(allMutants)), "mutating")
	var barMu sync.Mutex
	advance := func(n int) {
		barMu.Lock()
		_ = bar.Add(n)
		barMu.Unlock()
	}

	pool := workerpool.New("build-test", w)
	pool.Start()
	for i, c := range chunks {
		i, c := i, c
		pool.Submit(func() {
			workspace, err := wdDealer.Get(fmt.Sprintf("worker-%d", i))
			if err != nil {
				log.Errorf("preparing workspace %d: %s", i, err)
				for _, m := range c {
					m.SetResult(mutation.Failed)
				}
				advance(len(c))

				return
			}
			processChunk(ctx, c, workspace, cfg, paths, runner, pathByMutation, advance)
		})
	}
	pool.Wait()

	return nil
}

func processChunk(
	ctx context.Context,
	chunk []*mutation.Mutation,
	workspace string,
	cfg RunConfig,
	paths Paths,
	runner buildtool.Runner,
	pathByMutation map[*mutation.Mutation]string,
	advance func(int),
) {
	for _, m := range chunk {
		if ctxDone(ctx) {
			// Overall timeout fired: stop scheduling new mutants in this
			// chunk. Already-completed mutants in earlier iterations keep
			// their result; this one and the rest stay InProgress.
			return
		}

		mutantPath, ok := pathByMutation[m]
		if !ok {
			m.SetResult(mutation.Failed)
			advance(1)

			continue
		}
		dst := filepath.Join(workspace, m.FilePath())
		if err := copyMutantFile(mutantPath, dst); err != nil {
			log.Errorf("copying mutant file for %s into workspace: %s", m.FilePath(), err)
			m.SetResult(mutation.Failed)
			advance(1)

			continue
		}

		assembleCtx, cancel := withPerMutantTimeout(ctx, cfg.PerMutantTimeout)
		status, err := runner.Assemble(assembleCtx, workspace)
		cancel()
		if err != nil || status != buildtool.Success {
			m.SetResult(mutation.BuildFailed)
			_ = restoreFile(workspace, paths.BackupsDir, m.FilePath())
			advance(1)

			continue
		}

		testCtx, cancel := withPerMutantTimeout(ctx, cfg.PerMutantTimeout)
		status, _ = runner.Test(testCtx, workspace, testFilter(m.FilePath()))
		cancel()

		switch status {
		case buildtool.Success:
			m.SetResult(mutation.Survived)
		case buildtool.Failure:
			m.SetResult(mutation.Killed)
		case buildtool.TimedOut:
			m.SetResult(mutation.Timeout)
		default:
			m.SetResult(mutation.Failed)
		}

		_ = restoreFile(workspace, paths.BackupsDir, m.FilePath())
		advance(1)
	}
}

// withPerMutantTimeout only imposes a deadline when timeout is
// positive; context.WithTimeout treats a zero or negative duration as
// already expired, which would fail every mutant's build immediately.
func withPerMutantTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}

func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// testFilter derives the test-class filter from a source file's
// basename, per the convention basename_without_ext + "Test".
func testFilter(relPath string) string {
	base := filepath.Base(relPath)
	ext := filepath.Ext(base)

	return strings.TrimSuffix(base, ext) + "Test"
}

func chunkMutants(mutants []*mutation.Mutation, w int) [][]*mutation.Mutation {
	chunks := make([][]*mutation.Mutation, w)
	for i, m := range mutants {
		chunks[i%w] = append(chunks[i%w], m)
	}

	return chunks
}

func backupFile(projectRoot, backupsDir, relPath string) error {
	data, err := os.ReadFile(filepath.Join(projectRoot, relPath))
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(backupsDir, filepath.Base(relPath)), data, 0o644) //nolint:gosec
}

func restoreFile(workspace, backupsDir, relPath string) error {
	data, err := os.ReadFile(filepath.Join(backupsDir, filepath.Base(relPath)))
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(workspace, relPath), data, 0o644) //nolint:gosec
}

func copyMutantFile(mutantPath, dst string) error {
	data, err := os.ReadFile(mutantPath)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0o644) //nolint:gosec
}
