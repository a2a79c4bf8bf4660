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
	"encoding/json"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/kraken-mutate/mutantkraken/internal/configuration"
)

const (
	configCommandName = "config"
	paramSetup        = "setup"

	configFileName = "mutantkraken.config.json"
)

type configCmd struct {
	cmd *cobra.Command
}

func newConfigCmd() *configCmd {
	cmd := &cobra.Command{
		Use:   configCommandName,
		Short: "Print or scaffold the configuration file",
		Long:  configLongExplainer(),
		RunE:  runConfig,
	}
	cmd.Flags().Bool(paramSetup, false, fmt.Sprintf("write a template %s in the current directory", configFileName))

	return &configCmd{cmd: cmd}
}

func configLongExplainer() string {
	return heredoc.Doc(`
		Without --setup, explains where a config file may live and which
		environment variables override it. With --setup, writes a
		template file in the current directory unless one is already
		present.
	`)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	setup, err := cmd.Flags().GetBool(paramSetup)
	if err != nil {
		return err
	}
	if !setup {
		cmd.Println(configExplainer())

		return nil
	}

	return writeConfigTemplate(cmd)
}

func configExplainer() string {
	return heredoc.Doc(`
		mutantkraken reads mutantkraken.config.json from the current
		directory, the project root, $HOME/.mutantkraken,
		$XDG_CONFIG_HOME/mutantkraken, or /etc/mutantkraken, in that
		order, and every key can also be set through an
		MUTANTKRAKEN_-prefixed environment variable (nested keys joined
		by underscore, e.g. MUTANTKRAKEN_THREADING_MAX_THREADS).

		Run 'mutantkraken config --setup' to scaffold a template in the
		current directory.
	`)
}

func writeConfigTemplate(cmd *cobra.Command) error {
	if _, err := os.Stat(configFileName); err == nil {
		return fmt.Errorf("%s already exists", configFileName)
	}

	template := map[string]any{
		"general": map[string]any{
			"timeout":          0,
			"overall_timeout":  0,
			"operators":        configuration.OperatorNames(),
			"annotate_mutants": false,
		},
		"ignore": map[string]any{
			"ignore_files":       configuration.DefaultIgnoreFiles,
			"ignore_directories": configuration.DefaultIgnoreDirectories,
		},
		"threading": map[string]any{
			"max_threads": configuration.DefaultMaxThreads,
		},
		"output": map[string]any{
			"display_end_table": true,
		},
		"logging": map[string]any{
			"log_level": "info",
		},
	}

	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(configFileName, data, 0o644); err != nil { //nolint:gosec
		return err
	}

	cmd.Printf("wrote %s\n", configFileName)

	return nil
}
