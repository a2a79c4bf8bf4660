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

// Package mkerrors implements the error taxonomy shared across the
// engine: a small set of kinds that callers can match on with
// errors.Is/errors.As, plus the exit-coded errors that terminate a run.
package mkerrors

import "fmt"

// Kind classifies an error raised anywhere in the engine.
type Kind int

const (
	// FileReadingError is a source I/O failure during discovery or parsing.
	FileReadingError Kind = iota
	// MutationGenerationError is a failure materializing a mutant file.
	MutationGenerationError
	// MutationGatheringError is a failure enumerating candidate mutations.
	MutationGatheringError
	// MutationBuildTestError is a structural failure around the build/test
	// phase (missing backup, unreadable workspace).
	MutationBuildTestError
	// ConversionError means the parser emitted a node kind the taxonomy
	// does not recognize, or a UTF-8/boundary invariant was violated.
	ConversionError
	// GeneralError covers everything else: spawn failure, timeout
	// bookkeeping, top-level I/O.
	GeneralError
)

func (k Kind) String() string {
	switch k {
	case FileReadingError:
		return "file reading error"
	case MutationGenerationError:
		return "mutation generation error"
	case MutationGatheringError:
		return "mutation gathering error"
	case MutationBuildTestError:
		return "mutation build/test error"
	case ConversionError:
		return "conversion error"
	case GeneralError:
		return "general error"
	default:
		panic("this should not happen")
	}
}

// Error is the taxonomy-tagged error returned throughout the engine.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// New builds an Error of the given Kind with a formatted message.
func New(k Kind, format string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given Kind wrapping a lower-level cause.
func Wrap(k Kind, cause error, format string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...), err: cause}
}

// Kind returns the error's Kind.
func (e *Error) Kind() Kind {
	return e.kind
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.err)
	}

	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

// FatalReason names a condition that terminates a run with a specific
// process exit code, distinct from the per-mutant Kind taxonomy above.
type FatalReason int

const (
	// NoFilesFound is raised when discovery matches zero source files.
	NoFilesFound FatalReason = iota
	// NoMutationsFound is raised when zero candidate mutations were generated.
	NoMutationsFound
	// BaselineAssembleFailed is raised when the unmutated project fails to build.
	BaselineAssembleFailed
	// BaselineTestFailed is raised when the unmutated project's tests fail.
	BaselineTestFailed
	// OutputDirFailed is raised when the engine cannot create its output directories.
	OutputDirFailed
)

var fatalMessages = map[FatalReason]string{
	NoFilesFound:           "no matching source files found",
	NoMutationsFound:       "no mutations were generated",
	BaselineAssembleFailed: "baseline build failed",
	BaselineTestFailed:     "baseline test suite failed",
	OutputDirFailed:        "could not create engine output directory",
}

var fatalExitCodes = map[FatalReason]int{
	NoFilesFound:           10,
	NoMutationsFound:       11,
	BaselineAssembleFailed: 12,
	BaselineTestFailed:     13,
	OutputDirFailed:        14,
}

// FatalError is a top-level error that maps to a specific non-zero
// process exit code, letting main() propagate a run-stopping failure
// without inspecting its cause.
type FatalError struct {
	reason FatalReason
	cause  error
}

// NewFatal builds a FatalError for the given reason, optionally wrapping a cause.
func NewFatal(reason FatalReason, cause error) *FatalError {
	return &FatalError{reason: reason, cause: cause}
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	msg := fatalMessages[e.reason]
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}

	return msg
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *FatalError) Unwrap() error {
	return e.cause
}

// ExitCode returns the process exit code associated with this FatalError.
func (e *FatalError) ExitCode() int {
	return fatalExitCodes[e.reason]
}

// Reason returns the FatalReason of this FatalError.
func (e *FatalError) Reason() FatalReason {
	return e.reason
}
