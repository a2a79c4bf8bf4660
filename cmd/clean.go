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
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/kraken-mutate/mutantkraken/internal/driver"
	"github.com/kraken-mutate/mutantkraken/internal/gradleproject"
)

const cleanCommandName = "clean"

type cleanCmd struct {
	cmd *cobra.Command
}

func newCleanCmd() *cleanCmd {
	cmd := &cobra.Command{
		Use:   cleanCommandName + " [path]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Remove the persisted mutation output directory",
		Long:  cleanLongExplainer(),
		RunE:  runClean,
	}

	return &cleanCmd{cmd: cmd}
}

func cleanLongExplainer() string {
	return heredoc.Doc(`
		Deletes the output directory a previous 'mutate' run wrote under
		the project root: mutant files, backups, logs, and reports.
	`)
}

func runClean(cmd *cobra.Command, args []string) error {
	path, _ := os.Getwd()
	if len(args) > 0 {
		path = args[0]
	}

	project, err := gradleproject.Find(path)
	if err != nil {
		return err
	}

	root := driver.NewPaths(project.Root).Root
	if err := os.RemoveAll(root); err != nil {
		return err
	}

	cmd.Printf("removed %s\n", root)

	return nil
}
