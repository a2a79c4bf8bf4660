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

// Package discovery walks a project tree and finds the source files
// the engine should generate mutations for.
package discovery

import (
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/kraken-mutate/mutantkraken/internal/mkerrors"
)

// SourceExtension is the target language's primary file extension.
const SourceExtension = ".kt"

// OutputDirName is the engine's own output directory, always skipped
// during discovery to avoid recursing into its own generated state.
const OutputDirName = "mutant-kraken-dist"

// Options configures a Discover call.
type Options struct {
	IgnoreDirectories []string
	IgnoreFileRegexes []*regexp.Regexp
}

// Discover walks root recursively and returns every matching source
// file path, relative to root. Order is unspecified; callers must not
// depend on it. Fails with a MutationGatheringError if root itself is
// unreadable.
func Discover(root string, opts Options) ([]string, error) {
	ignoredDirs := make(map[string]bool, len(opts.IgnoreDirectories))
	for _, d := range opts.IgnoreDirectories {
		ignoredDirs[d] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// A single unreadable descendant shouldn't abort the whole
			// walk; skip it and keep going.
			return nil
		}

		base := d.Name()
		if d.IsDir() {
			if path != root && (ignoredDirs[base] || base == OutputDirName) {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(base) != SourceExtension {
			return nil
		}
		for _, re := range opts.IgnoreFileRegexes {
			if re.MatchString(base) {
				return nil
			}
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		files = append(files, rel)

		return nil
	})
	if err != nil {
		return nil, mkerrors.Wrap(mkerrors.MutationGatheringError, err, "discovering source files under %s", root)
	}

	return files, nil
}
