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

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kraken-mutate/mutantkraken/cmd/internal/flags"
	"github.com/kraken-mutate/mutantkraken/internal/buildtool"
	"github.com/kraken-mutate/mutantkraken/internal/configuration"
	"github.com/kraken-mutate/mutantkraken/internal/driver"
	"github.com/kraken-mutate/mutantkraken/internal/gradleproject"
	"github.com/kraken-mutate/mutantkraken/internal/log"
	"github.com/kraken-mutate/mutantkraken/internal/mkerrors"
	"github.com/kraken-mutate/mutantkraken/internal/parsetree"
)

type mutateCmd struct {
	cmd *cobra.Command
}

const (
	mutateCommandName = "mutate"

	paramMaxThreads   = "max-threads"
	paramTimeout      = "timeout"
	paramDisplayTable = "display-end-table"
	paramAnnotate     = "annotate"
)

func newMutateCmd(ctx context.Context) (*mutateCmd, error) {
	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s [path]", mutateCommandName),
		Aliases: []string{"run", "m"},
		Args:    cobra.MaximumNArgs(1),
		Short:   "Run the mutation testing pipeline",
		Long:    mutateLongExplainer(),
		RunE:    runMutate(ctx),
	}

	if err := setMutateFlags(cmd); err != nil {
		return nil, err
	}

	return &mutateCmd{cmd: cmd}, nil
}

func mutateLongExplainer() string {
	return heredoc.Doc(`
		Discovers source files, enumerates candidate mutants, materializes
		each as a standalone file, then rebuilds and retests the project
		once per mutant in an isolated workspace, classifying each mutant
		as killed, survived, build-failed, timed out, or failed.

		The project must assemble and pass its own test suite before any
		mutant is attempted; that baseline failing aborts the run.
	`)
}

func runMutate(ctx context.Context) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		path, _ := os.Getwd()
		if len(args) > 0 {
			path = args[0]
		}

		project, err := gradleproject.Find(path)
		if err != nil {
			return err
		}

		cfg := configuration.RunConfig(project.Root)

		paths := driver.NewPaths(project.Root)
		if err := os.MkdirAll(paths.LogsDir, 0o755); err != nil {
			return mkerrors.NewFatal(mkerrors.OutputDirFailed, err)
		}
		level := log.ParseLevel(configuration.Get[string](configuration.LoggingLogLevelKey))
		log.Init(level, color.Output, filepath.Join(paths.LogsDir, "mutant-kraken.log"))

		parser, ok := parsetree.Get()
		if !ok {
			return mkerrors.New(mkerrors.GeneralError, "no target-language parser registered; import a parsetree.Register-ing package")
		}

		runner := buildtool.NewGradleRunner()

		log.Infof("mutating %s", project.Root)

		// driver.Run watches ctx itself: a cancellation (e.g. the
		// process's own signal handler) stops it from scheduling new
		// mutants without force-killing an in-flight child.
		_, err = driver.Run(ctx, cfg, parser, runner, cmd.OutOrStdout())

		return err
	}
}

func setMutateFlags(cmd *cobra.Command) error {
	cmd.Flags().SortFlags = false
	cmd.Flags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		name = strings.ReplaceAll(name, "_", "-")

		return pflag.NormalizedName(name)
	})

	fls := []*flags.Flag{
		{Name: paramMaxThreads, CfgKey: configuration.ThreadingMaxThreadsKey, DefaultV: configuration.DefaultMaxThreads, Usage: "maximum number of concurrent discovery/generation workers"},
		{Name: paramTimeout, CfgKey: configuration.GeneralTimeoutKey, DefaultV: float64(30), Usage: "per-mutant build/test timeout, in seconds"},
		{Name: paramDisplayTable, CfgKey: configuration.OutputDisplayEndTableKey, DefaultV: false, Usage: "print a per-file summary table when the run finishes"},
		{Name: paramAnnotate, CfgKey: configuration.GeneralAnnotateMutantsKey, DefaultV: false, Usage: "annotate each mutant file with a comment describing the change"},
	}

	for _, f := range fls {
		if err := flags.Set(cmd, f); err != nil {
			return err
		}
	}

	return nil
}
