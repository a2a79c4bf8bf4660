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

// Package gradleproject locates the root of the Gradle project being
// mutated, the analogue of what gomodule did for a Go module: walk
// upward from the calling directory until a build marker is found.
package gradleproject

import (
	"os"
	"path/filepath"

	"github.com/kraken-mutate/mutantkraken/internal/mkerrors"
)

// markers are checked in order at each ancestor directory; finding any
// one of them is enough to call that directory the project root.
var markers = []string{"settings.gradle", "settings.gradle.kts", "build.gradle", "build.gradle.kts"}

// Project describes where the engine found the Gradle project it is
// about to mutate.
type Project struct {
	// Root is the directory containing the project's Gradle build files.
	Root string
	// CallingDir is path, relative to Root, that the engine was invoked from.
	CallingDir string
}

// Find walks upward from path looking for a Gradle project root.
func Find(path string) (Project, error) {
	if path == "" {
		return Project{}, mkerrors.New(mkerrors.GeneralError, "path is not set")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Project{}, mkerrors.Wrap(mkerrors.GeneralError, err, "resolving %s", path)
	}

	root := findRoot(abs)
	if root == "" {
		return Project{}, mkerrors.New(mkerrors.GeneralError, "no Gradle project found above %s", path)
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		rel = "."
	}

	return Project{Root: root, CallingDir: rel}, nil
}

func findRoot(path string) string {
	path = filepath.Clean(path)
	for {
		for _, marker := range markers {
			if fi, err := os.Stat(filepath.Join(path, marker)); err == nil && !fi.IsDir() {
				return path
			}
		}
		d := filepath.Dir(path)
		if d == path {
			break
		}
		path = d
	}

	return ""
}
