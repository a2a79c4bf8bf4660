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

// Package workdir creates per-worker hermetic copies of the project
// tree so that N concurrent build/test workers never race on the same
// files. Running N concurrent builds in the user's working copy would
// race on build outputs and test reports; each worker instead gets its
// own temp directory clone.
package workdir

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kraken-mutate/mutantkraken/internal/mkerrors"
)

// wrapperScripts are copied with byte-for-byte permission preservation
// so their executable bit survives the clone; every other file is
// written fresh with default permissions.
var wrapperScripts = map[string]bool{
	"gradlew":     true,
	"gradlew.bat": true,
}

// Dealer hands out isolated workspace directories, one per identifier,
// and removes them all on Clean.
type Dealer interface {
	Get(idf string) (string, error)
	Clean()
	Root() string
}

// CachedDealer is the Dealer implementation: a cache of
// already-created workspaces keyed by caller-chosen identifier
// (typically a worker index), all rooted under one temp-dir root.
type CachedDealer struct {
	mu      sync.RWMutex
	cache   map[string]string
	root    string
	srcDir  string
	skipDir string
}

// NewCachedDealer builds a Dealer that clones srcDir into subdirectories
// of root, never copying the skipDir subtree (the engine's own output
// directory, to prevent recursive fanout).
func NewCachedDealer(root, srcDir, skipDir string) *CachedDealer {
	return &CachedDealer{
		cache:   make(map[string]string),
		root:    root,
		srcDir:  srcDir,
		skipDir: skipDir,
	}
}

// Root returns the directory all workspaces are created under.
func (cd *CachedDealer) Root() string { return cd.root }

// Get returns the workspace directory for idf, cloning the project
// tree into a new temp directory the first time idf is requested and
// reusing it afterwards.
func (cd *CachedDealer) Get(idf string) (string, error) {
	if dir, ok := cd.fromCache(idf); ok {
		return dir, nil
	}

	dst, err := os.MkdirTemp(cd.root, "wd-*")
	if err != nil {
		return "", mkerrors.Wrap(mkerrors.MutationBuildTestError, err, "creating workspace directory")
	}

	skipAbs, err := filepath.Abs(cd.skipDir)
	if err != nil {
		return "", mkerrors.Wrap(mkerrors.MutationBuildTestError, err, "resolving output directory")
	}

	err = filepath.Walk(cd.srcDir, func(srcPath string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		abs, absErr := filepath.Abs(srcPath)
		if absErr == nil && (abs == skipAbs || isWithin(abs, skipAbs)) {
			if info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		rel, relErr := filepath.Rel(cd.srcDir, srcPath)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}

		return copyEntry(srcPath, filepath.Join(dst, rel), info)
	})
	if err != nil {
		return "", mkerrors.Wrap(mkerrors.MutationBuildTestError, err, "cloning project tree into workspace")
	}

	cd.setCache(idf, dst)

	return dst, nil
}

// Clean removes every workspace this Dealer has created.
func (cd *CachedDealer) Clean() {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	for _, dir := range cd.cache {
		_ = os.RemoveAll(dir)
	}
	cd.cache = make(map[string]string)
}

func (cd *CachedDealer) fromCache(idf string) (string, bool) {
	cd.mu.RLock()
	defer cd.mu.RUnlock()
	dir, ok := cd.cache[idf]

	return dir, ok
}

func (cd *CachedDealer) setCache(idf, dir string) {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	cd.cache[idf] = dir
}

func isWithin(path, dir string) bool {
	if path == dir {
		return true
	}

	return strings.HasPrefix(path, dir+string(filepath.Separator))
}

func copyEntry(srcPath, dstPath string, info fs.FileInfo) error {
	mode := info.Mode()
	switch {
	case mode.IsDir():
		if err := os.Mkdir(dstPath, mode.Perm()); err != nil && !os.IsExist(err) {
			return err
		}

		return nil
	case mode.IsRegular():
		return copyFile(srcPath, dstPath, mode)
	default:
		// Symlinks and other special files are not part of a Gradle
		// project's meaningful build inputs; skip them.
		return nil
	}
}

func copyFile(srcPath, dstPath string, mode fs.FileMode) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return err
	}

	base := filepath.Base(srcPath)
	if wrapperScripts[base] {
		return preserveExecBit(dstPath, mode)
	}

	return nil
}
