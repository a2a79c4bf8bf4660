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
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	c, err := newRootCmd(context.Background(), "1.2.3")
	if err != nil {
		t.Fatal("newRootCmd should not fail")
	}
	cmd := c.cmd

	if cmd.Version != "1.2.3" {
		t.Errorf("expected %q, got %q", "1.2.3", cmd.Version)
	}

	for _, name := range []string{"mutate", "config", "clean"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a %q subcommand", name)
		}
	}

	logLevel := cmd.PersistentFlags().Lookup("log-level")
	if logLevel == nil {
		t.Fatal("expected to have a log-level flag")
	}
	if logLevel.Value.Type() != "string" {
		t.Errorf("expected value type to be 'string', got %v", logLevel.Value.Type())
	}
}

func TestNewRootCmd_noVersion(t *testing.T) {
	_, err := newRootCmd(context.Background(), "")
	if err == nil {
		t.Errorf("expected failure when version is empty")
	}
}

func TestRootCmd_execute_configFlag(t *testing.T) {
	c, err := newRootCmd(context.Background(), "1.2.3")
	if err != nil {
		t.Fatal("newRootCmd should not fail")
	}
	_ = c.execute()

	cfgFile := c.cmd.PersistentFlags().Lookup(paramConfigFile)
	if cfgFile == nil {
		t.Fatal("expected a config flag to be registered by execute()")
	}
	if cfgFile.Value.Type() != "string" {
		t.Errorf("expected value type to be 'string', got %v", cfgFile.Value.Type())
	}
}
