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

// Package parsetree defines the narrow boundary the mutation operators
// and the discovery/generation phases depend on: the concrete AST
// parser for the target language. That parser is supplied separately
// (see Register below) — this package only states the interfaces the
// core needs from it and a single-lock wrapper enforcing that a
// non-reentrant Parser is only ever touched by one goroutine at a time.
package parsetree

import "sync"

// Node is a single AST node. Operators only ever need these eight
// methods, mirroring what tree_sitter::Node exposes.
type Node interface {
	// Kind is the parser's own node-kind string and whether the parser
	// considers it a "named" kind (as opposed to anonymous punctuation
	// and keyword tokens).
	Kind() (kind string, named bool)

	// StartByte and EndByte delimit the node's half-open byte span in
	// the file that was parsed.
	StartByte() int
	EndByte() int

	// StartLine is the 1-based line number of StartByte.
	StartLine() int

	// Parent returns the node's parent, if any.
	Parent() (Node, bool)

	// Children returns the node's direct children, in source order.
	Children() []Node

	// NextSibling returns the node immediately following this one under
	// the same parent, if any.
	NextSibling() (Node, bool)

	// Text extracts this node's source text out of the full file
	// contents supplied by the caller.
	Text(source []byte) string
}

// Tree is a parsed file: a root Node plus the bytes it was parsed from.
type Tree interface {
	Root() Node
	Source() []byte
}

// Parser parses a single file's contents into a Tree. Implementations
// are supplied by the (out of scope) concrete target-language parser;
// this package never implements one itself.
type Parser interface {
	Parse(source []byte) (Tree, error)
}

// registered holds whatever concrete Parser an external package wired
// in via Register, mirroring database/sql's driver registration: this
// module never implements the target-language parser itself, only the
// seam a caller plugs one into.
var registered Parser

// Register installs p as the Parser subsequent Get calls return. A
// concrete target-language parser package is expected to call this
// from its own init(), imported for side effect by cmd/mutantkraken's
// main package.
func Register(p Parser) {
	registered = p
}

// Get returns the registered Parser, or false if none has been wired in.
func Get() (Parser, bool) {
	if registered == nil {
		return nil, false
	}

	return registered, true
}

// SerialParser wraps a non-reentrant Parser with a mutex, so that
// discovery/generation can share one instance across worker
// goroutines instead of building one per worker. This trades
// throughput for memory; callers needing more throughput can instead
// give each worker its own Parser instance.
type SerialParser struct {
	mu       sync.Mutex
	delegate Parser
}

// NewSerialParser wraps delegate so its Parse calls are serialized.
func NewSerialParser(delegate Parser) *SerialParser {
	return &SerialParser{delegate: delegate}
}

// Parse serializes access to the wrapped Parser.
func (s *SerialParser) Parse(source []byte) (Tree, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.delegate.Parse(source)
}
