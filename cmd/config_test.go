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
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigCmd(t *testing.T) {
	c := newConfigCmd()
	if c.cmd.Name() != configCommandName {
		t.Errorf("expected %q, got %q", configCommandName, c.cmd.Name())
	}

	f := c.cmd.Flags().Lookup(paramSetup)
	if f == nil {
		t.Fatal("expected a --setup flag")
	}
	if f.Value.Type() != "bool" {
		t.Errorf("expected type 'bool', got %q", f.Value.Type())
	}
}

func TestWriteConfigTemplate(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	c := newConfigCmd()
	if err := writeConfigTemplate(c.cmd); err != nil {
		t.Fatalf("expected no error, got %s", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		t.Fatalf("expected the template file to exist: %s", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("expected valid JSON, got error: %s", err)
	}
	for _, section := range []string{"general", "ignore", "threading", "output", "logging"} {
		if _, ok := parsed[section]; !ok {
			t.Errorf("expected a %q section in the template", section)
		}
	}

	if err := writeConfigTemplate(c.cmd); err == nil {
		t.Errorf("expected an error when the template file already exists")
	}
}
