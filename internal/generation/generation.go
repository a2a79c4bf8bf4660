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

// Package generation materializes one mutated file per candidate
// mutation.Mutation into the engine's output mutations directory.
package generation

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kraken-mutate/mutantkraken/internal/mkerrors"
	"github.com/kraken-mutate/mutantkraken/internal/mutation"
	"github.com/kraken-mutate/mutantkraken/internal/workerpool"
)

// Options configures a generation pass.
type Options struct {
	// ProjectRoot is where the FilePath of every mutation is relative to.
	ProjectRoot string
	// MutationsDir is the directory mutant files are written into.
	MutationsDir string
	// Annotate, if true, inserts a cosmetic comment block naming the
	// operator and the change before the mutated line.
	Annotate bool
	// Concurrency bounds how many files are materialized in parallel.
	Concurrency int
}

// MutantFile is the materialized path for one mutation.
type MutantFile struct {
	Mutation *mutation.Mutation
	Path     string
}

// Generate writes one mutant file per mutation in byFile, reading each
// original file once and reusing its bytes for every mutant of that
// file. Returns the flat list of materialized files.
func Generate(byFile []*mutation.FileMutations, opts Options) ([]MutantFile, error) {
	if err := os.MkdirAll(opts.MutationsDir, 0o755); err != nil {
		return nil, mkerrors.Wrap(mkerrors.MutationGenerationError, err, "creating mutations directory %s", opts.MutationsDir)
	}

	pool := workerpool.New("generation", opts.Concurrency)
	pool.Start()

	var (
		mu       sync.Mutex
		results  []MutantFile
		firstErr error
	)

	for _, fm := range byFile {
		fm := fm
		pool.Submit(func() {
			files, err := generateFile(fm, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			results = append(results, files...)
		})
	}
	pool.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return results, nil
}

// generateFile materializes every mutation for a single source file,
// reading its original bytes exactly once.
func generateFile(fm *mutation.FileMutations, opts Options) ([]MutantFile, error) {
	original, err := os.ReadFile(filepath.Join(opts.ProjectRoot, fm.FilePath))
	if err != nil {
		return nil, mkerrors.Wrap(mkerrors.FileReadingError, err, "reading original file %s", fm.FilePath)
	}

	base := filepath.Base(fm.FilePath)
	out := make([]MutantFile, 0, len(fm.Mutations))
	for _, m := range fm.Mutations {
		buf := splice(original, m)
		if opts.Annotate {
			buf = annotate(buf, m)
		}
		name := fmt.Sprintf("%s_%s", m.ID(), base)
		path := filepath.Join(opts.MutationsDir, name)
		if err := os.WriteFile(path, buf, 0o644); err != nil {
			return nil, mkerrors.Wrap(mkerrors.MutationGenerationError, err, "writing mutant file %s", path)
		}
		out = append(out, MutantFile{Mutation: m, Path: path})
	}

	return out, nil
}

// splice produces the mutated byte buffer: bytes [0,start) + new_text
// + bytes [end,eof).
func splice(original []byte, m *mutation.Mutation) []byte {
	var buf bytes.Buffer
	buf.Grow(len(original) + len(m.NewText()) - (m.EndByte() - m.StartByte()))
	buf.Write(original[:m.StartByte()])
	buf.WriteString(m.NewText())
	buf.Write(original[m.EndByte():])

	return buf.Bytes()
}

// annotate inserts a comment block immediately before m's line, naming
// the operator, the change, and the mutation id. Purely cosmetic: it
// does not affect any byte offset used elsewhere, since every mutant
// file is generated independently from the original buffer.
func annotate(mutated []byte, m *mutation.Mutation) []byte {
	lines := bytes.Split(mutated, []byte("\n"))
	idx := m.LineNumber() - 1
	if idx < 0 || idx > len(lines) {
		return mutated
	}
	comment := fmt.Sprintf(
		"// mutant-kraken: %s %q -> %q [%s]",
		m.Operator(), m.OldText(), m.NewText(), m.ID(),
	)
	out := make([][]byte, 0, len(lines)+1)
	out = append(out, lines[:idx]...)
	out = append(out, []byte(comment))
	out = append(out, lines[idx:]...)

	return bytes.Join(out, []byte("\n"))
}
