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

func TestNewMutateCmd(t *testing.T) {
	c, err := newMutateCmd(context.Background())
	if err != nil {
		t.Fatal("newMutateCmd should not fail")
	}
	cmd := c.cmd

	if cmd.Name() != mutateCommandName {
		t.Errorf("expected %q, got %q", mutateCommandName, cmd.Name())
	}

	flags := cmd.Flags()

	testCases := []struct {
		name     string
		flagType string
		defValue string
	}{
		{name: paramMaxThreads, flagType: "int", defValue: "30"},
		{name: paramTimeout, flagType: "float64", defValue: "30"},
		{name: paramDisplayTable, flagType: "bool", defValue: "false"},
		{name: paramAnnotate, flagType: "bool", defValue: "false"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := flags.Lookup(tc.name)
			if f == nil {
				t.Fatalf("expected a %q flag", tc.name)
			}
			if f.Value.Type() != tc.flagType {
				t.Errorf("expected type %q, got %q", tc.flagType, f.Value.Type())
			}
			if f.DefValue != tc.defValue {
				t.Errorf("expected default %q, got %q", tc.defValue, f.DefValue)
			}
		})
	}
}

func TestRunMutate_noGradleProject(t *testing.T) {
	dir := t.TempDir()

	run := runMutate(context.Background())
	err := run(nil, []string{dir})
	if err == nil {
		t.Errorf("expected a failure when no gradle project root can be found")
	}
}
