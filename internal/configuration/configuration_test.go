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

package configuration_test

import (
	"testing"
	"time"

	"github.com/kraken-mutate/mutantkraken/internal/configuration"
)

type envEntry struct {
	name  string
	value string
}

func TestInit(t *testing.T) {
	testCases := []struct {
		wantedConfig map[string]any
		name         string
		configPaths  []string
		envEntries   []envEntry
	}{
		{
			name:        "from single file",
			configPaths: []string{"testdata/config1/mutantkraken.config.json"},
			wantedConfig: map[string]any{
				"logging.log_level":        "debug",
				"threading.max_threads":    float64(8),
				"output.display_end_table": true,
			},
		},
		{
			name:        "from directory",
			configPaths: []string{"./testdata/config2"},
			wantedConfig: map[string]any{
				"threading.max_threads": float64(4),
			},
		},
		{
			name: "from env",
			envEntries: []envEntry{
				{name: "MUTANTKRAKEN_LOGGING_LOG_LEVEL", value: "warn"},
			},
			wantedConfig: map[string]any{
				"logging.log_level": "warn",
			},
		},
		{
			name: "env overrides file",
			configPaths: []string{"testdata/config1/mutantkraken.config.json"},
			envEntries: []envEntry{
				{name: "MUTANTKRAKEN_LOGGING_LOG_LEVEL", value: "error"},
			},
			wantedConfig: map[string]any{
				"logging.log_level": "error",
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			defer configuration.Reset()
			for _, e := range tc.envEntries {
				t.Setenv(e.name, e.value)
			}

			if err := configuration.Init(tc.configPaths); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for key, want := range tc.wantedConfig {
				if got := configuration.Get[any](key); got != want {
					t.Errorf("Get(%q) = %v, want %v", key, got, want)
				}
			}
		})
	}
}

func TestInit_missingFileFallsBackToDefaults(t *testing.T) {
	defer configuration.Reset()

	if err := configuration.Init([]string{"./testdata/does-not-exist"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := configuration.RunConfig("/project")
	if cfg.MaxDiscoveryThreads != configuration.DefaultMaxThreads {
		t.Errorf("expected default max threads %d, got %d", configuration.DefaultMaxThreads, cfg.MaxDiscoveryThreads)
	}
}

func TestSetGetReset(t *testing.T) {
	defer configuration.Reset()

	configuration.Set(configuration.OutputDisplayEndTableKey, true)
	if got := configuration.Get[bool](configuration.OutputDisplayEndTableKey); !got {
		t.Fatal("expected Set/Get round trip to return true")
	}

	configuration.Reset()
	if got := configuration.Get[bool](configuration.OutputDisplayEndTableKey); got {
		t.Fatal("expected Reset to clear the value")
	}
}

func TestRunConfig_defaults(t *testing.T) {
	defer configuration.Reset()

	if err := configuration.Init([]string{"./testdata/config2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := configuration.RunConfig("/project")
	if cfg.ProjectRoot != "/project" {
		t.Errorf("unexpected project root: %s", cfg.ProjectRoot)
	}
	if cfg.MaxDiscoveryThreads != 4 {
		t.Errorf("expected max threads 4 from config2, got %d", cfg.MaxDiscoveryThreads)
	}
	if len(cfg.IgnoreDirectories) == 0 {
		t.Error("expected default ignore directories when config doesn't set any")
	}
	if len(cfg.IgnoreFileRegexes) != 1 {
		t.Errorf("expected the default single ignore_files pattern, got %d", len(cfg.IgnoreFileRegexes))
	}
	if cfg.EnabledOperators != nil {
		t.Errorf("expected nil enabled operators (meaning: all) when unset, got %v", cfg.EnabledOperators)
	}
	if cfg.PerMutantTimeout != configuration.DefaultPerMutantTimeout {
		t.Errorf("expected the default per-mutant timeout when unset, got %s", cfg.PerMutantTimeout)
	}
}

func TestRunConfig_explicitValues(t *testing.T) {
	defer configuration.Reset()

	if err := configuration.Init([]string{"testdata/config1/mutantkraken.config.json"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := configuration.RunConfig("/project")
	if cfg.MaxDiscoveryThreads != 8 {
		t.Errorf("expected max threads 8, got %d", cfg.MaxDiscoveryThreads)
	}
	if !cfg.DisplaySummaryTable {
		t.Error("expected display_end_table true")
	}
	if cfg.PerMutantTimeout != 30*time.Second {
		t.Errorf("expected per-mutant timeout 30s, got %s", cfg.PerMutantTimeout)
	}
	if len(cfg.EnabledOperators) != 2 {
		t.Errorf("expected 2 enabled operators, got %d: %v", len(cfg.EnabledOperators), cfg.EnabledOperators)
	}
}

func TestOperatorNames(t *testing.T) {
	names := configuration.OperatorNames()
	if len(names) != 15 {
		t.Fatalf("expected all 15 operator names, got %d", len(names))
	}
}
