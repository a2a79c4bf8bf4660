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

// Package mutation holds the Mutation value type and its Result state
// machine: the record an operator emits, and the outcome the build/test
// phase eventually attaches to it.
package mutation

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Result is the classification of a Mutation after the build/test
// phase has run it, or its initial pending state before that.
type Result int

const (
	// InProgress is the zero value: the mutant has not been built/tested yet.
	InProgress Result = iota
	// Killed means the test suite failed against the mutant: a good mutant.
	Killed
	// Survived means the test suite passed against the mutant: a gap in coverage.
	Survived
	// BuildFailed means the mutant did not compile.
	BuildFailed
	// Timeout means the test phase exceeded its per-mutant budget.
	Timeout
	// Failed means a process-level error occurred running the mutant,
	// distinct from a build or test failure.
	Failed
)

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case InProgress:
		return "IN PROGRESS"
	case Killed:
		return "KILLED"
	case Survived:
		return "SURVIVED"
	case BuildFailed:
		return "BUILD FAILED"
	case Timeout:
		return "TIMED OUT"
	case Failed:
		return "FAILED"
	default:
		panic("this should not happen")
	}
}

// Operator names the mutation operator that produced a Mutation. It is
// a plain string rather than an enum: operators register themselves by
// name (see the operator package's registry) and nothing outside that
// registry needs to switch on it.
type Operator string

// Mutation is a single candidate edit: replace the half-open byte span
// [StartByte, EndByte) of FilePath's original contents with NewText.
//
// A Mutation is created once by an operator and then owned by exactly
// one worker for the duration of its build/test run; SetResult is
// synchronized only so that a racy double-set (a bug, not a supported
// use) fails loudly instead of corrupting state silently.
type Mutation struct {
	id         uuid.UUID
	filePath   string
	startByte  int
	endByte    int
	oldText    string
	newText    string
	lineNumber int
	operator   Operator

	mu     sync.Mutex
	result Result
}

// New builds a Mutation, validating the invariants every operator must
// uphold: a non-negative, non-inverted byte span, and a NewText that
// actually differs from OldText (otherwise the "mutation" would be a
// no-op and never be killable).
func New(filePath string, startByte, endByte int, oldText, newText string, lineNumber int, op Operator) (*Mutation, error) {
	if startByte < 0 || endByte < startByte {
		return nil, fmt.Errorf("mutation: invalid byte span [%d,%d) in %s", startByte, endByte, filePath)
	}
	if oldText == newText {
		return nil, fmt.Errorf("mutation: %s at %s:%d produced no change", op, filePath, lineNumber)
	}

	return &Mutation{
		id:         uuid.New(),
		filePath:   filePath,
		startByte:  startByte,
		endByte:    endByte,
		oldText:    oldText,
		newText:    newText,
		lineNumber: lineNumber,
		operator:   op,
		result:     InProgress,
	}, nil
}

// ID is the mutation's unique identifier, stable for its lifetime and
// used to name its materialized file and report row.
func (m *Mutation) ID() uuid.UUID { return m.id }

// FilePath is the source file this mutation applies to, relative to the
// project root.
func (m *Mutation) FilePath() string { return m.filePath }

// StartByte is the inclusive start of the mutated span.
func (m *Mutation) StartByte() int { return m.startByte }

// EndByte is the exclusive end of the mutated span.
func (m *Mutation) EndByte() int { return m.endByte }

// OldText is the original span's text.
func (m *Mutation) OldText() string { return m.oldText }

// NewText is the replacement text. The empty string means deletion.
func (m *Mutation) NewText() string { return m.newText }

// LineNumber is the 1-based line the mutated span starts on.
func (m *Mutation) LineNumber() int { return m.lineNumber }

// Operator is the name of the operator that produced this mutation.
func (m *Mutation) Operator() Operator { return m.operator }

// Result returns the mutation's current classification.
func (m *Mutation) Result() Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.result
}

// SetResult transitions the mutation out of InProgress exactly once.
// A second call panics: the build/test phase hands each mutation to a
// single worker, so a repeat call means that invariant was broken
// upstream and the result is no longer trustworthy.
func (m *Mutation) SetResult(r Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.result != InProgress {
		panic(fmt.Sprintf("mutation: result already set to %s, cannot set to %s", m.result, r))
	}
	m.result = r
}

// FileMutations groups every Mutation generated for a single source
// file, the unit the generation phase materializes and the report
// phase groups by.
type FileMutations struct {
	FilePath  string
	Mutations []*Mutation
}
