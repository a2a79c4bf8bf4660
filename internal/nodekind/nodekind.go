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

// Package nodekind is the closed taxonomy of the target language's AST
// node kinds.
//
// The named variants below are generated from the parser's node-type
// manifest at engine-build time; run-time code only ever sees the
// Kind value, never the raw string, except at the ParseKind/Render
// boundary. Unknown
// named strings from the parser are a taxonomy error (mkerrors.ConversionError),
// never silently accepted: that is what catches grammar drift between
// the manifest this was generated from and the parser actually linked
// at run time.
package nodekind

import (
	"fmt"

	"github.com/kraken-mutate/mutantkraken/internal/mkerrors"
)

// named is the discriminant for the fixed, generated set of named kinds.
type named int

const (
	// ERROR mirrors the parser's own error-node kind.
	errorNode named = iota
	sourceFile
	additiveExpression
	multiplicativeExpression
	equalityExpression
	comparisonExpression
	conjunctionExpression
	disjunctionExpression
	assignment
	prefixExpression
	postfixExpression
	elvisExpression
	integerLiteral
	longLiteral
	realLiteral
	characterLiteral
	booleanLiteral
	stringLiteral
	lineStringLiteral
	callExpression
	propertyDeclaration
	variableDeclaration
	whenExpression
	whenEntry
	jumpExpression
	navigationSuffix
	simpleIdentifier
	catchBlock
)

// namedNames is the snake_case rendering of each named variant, the
// form used to compare against parser output. Generated in lockstep
// with the const block above.
var namedNames = [...]string{
	errorNode:                "ERROR",
	sourceFile:               "source_file",
	additiveExpression:       "additive_expression",
	multiplicativeExpression: "multiplicative_expression",
	equalityExpression:       "equality_expression",
	comparisonExpression:     "comparison_expression",
	conjunctionExpression:    "conjunction_expression",
	disjunctionExpression:    "disjunction_expression",
	assignment:               "assignment",
	prefixExpression:         "prefix_expression",
	postfixExpression:        "postfix_expression",
	elvisExpression:          "elvis_expression",
	integerLiteral:           "integer_literal",
	longLiteral:              "long_literal",
	realLiteral:              "real_literal",
	characterLiteral:         "character_literal",
	booleanLiteral:           "boolean_literal",
	stringLiteral:            "string_literal",
	lineStringLiteral:        "line_string_literal",
	callExpression:           "call_expression",
	propertyDeclaration:      "property_declaration",
	variableDeclaration:      "variable_declaration",
	whenExpression:           "when_expression",
	whenEntry:                "when_entry",
	jumpExpression:           "jump_expression",
	navigationSuffix:         "navigation_suffix",
	simpleIdentifier:         "simple_identifier",
	catchBlock:               "catch_block",
}

var namedByString = func() map[string]named {
	m := make(map[string]named, len(namedNames))
	for i, s := range namedNames {
		m[s] = named(i)
	}

	return m
}()

// sentinel distinguishes the three non-parser-sourced variants.
type sentinel int

const (
	none sentinel = iota
	nonNamed
	remove
	anyParent
)

// Kind is the tagged variant over every AST node kind the engine can
// match against: a named kind from the parser's manifest, a NonNamed
// token carrying its own text, the Remove deletion sentinel, or the
// AnyParent wildcard used as a parent-context constraint.
type Kind struct {
	named    named
	text     string
	sentinel sentinel
}

// Named builds a Kind from one of the generated named variants.
func Named(n named) Kind { //nolint:revive // n is an unexported enum, deliberately not part of the public API
	return Kind{named: n}
}

// NonNamed builds a Kind wrapping the literal text of a punctuation or
// keyword token the parser does not assign a named kind to.
func NonNamed(text string) Kind {
	return Kind{sentinel: nonNamed, text: text}
}

// Remove is the sentinel representing "delete this span". It renders to
// the empty string so the byte-splice generation code needs no special
// case for deletions.
var Remove = Kind{sentinel: remove}

// AnyParent is the wildcard parent-context constraint: "unrestricted".
var AnyParent = Kind{sentinel: anyParent}

// Named accessors for the variants operators match against.
var (
	SourceFile               = Named(sourceFile)
	AdditiveExpression       = Named(additiveExpression)
	MultiplicativeExpression = Named(multiplicativeExpression)
	EqualityExpression       = Named(equalityExpression)
	ComparisonExpression     = Named(comparisonExpression)
	ConjunctionExpression    = Named(conjunctionExpression)
	DisjunctionExpression    = Named(disjunctionExpression)
	Assignment               = Named(assignment)
	PrefixExpression         = Named(prefixExpression)
	PostfixExpression        = Named(postfixExpression)
	ElvisExpression          = Named(elvisExpression)
	IntegerLiteral           = Named(integerLiteral)
	LongLiteral              = Named(longLiteral)
	RealLiteral              = Named(realLiteral)
	CharacterLiteral         = Named(characterLiteral)
	BooleanLiteral           = Named(booleanLiteral)
	StringLiteral            = Named(stringLiteral)
	LineStringLiteral        = Named(lineStringLiteral)
	CallExpression           = Named(callExpression)
	PropertyDeclaration      = Named(propertyDeclaration)
	VariableDeclaration      = Named(variableDeclaration)
	WhenExpression           = Named(whenExpression)
	WhenEntry                = Named(whenEntry)
	JumpExpression           = Named(jumpExpression)
	NavigationSuffix         = Named(navigationSuffix)
	SimpleIdentifier         = Named(simpleIdentifier)
	CatchBlock               = Named(catchBlock)
)

// ParseKind converts a raw parser kind string into a Kind. Non-named
// tokens (anything absent from the manifest's named set) become
// NonNamed(s); this never fails for text the parser actually produces.
// An unrecognized string that the manifest marks as named, but the
// generated table doesn't know, is a taxonomy error.
func ParseKind(s string, isNamed bool) (Kind, error) {
	if !isNamed {
		return NonNamed(s), nil
	}
	n, ok := namedByString[s]
	if !ok {
		return Kind{}, mkerrors.New(mkerrors.ConversionError, "unrecognized node kind %q", s)
	}

	return Named(n), nil
}

// Render returns the snake_case string used to compare this Kind
// against parser output. NonNamed round-trips its own text. Remove
// renders to the empty string, by design: see the package doc.
func (k Kind) Render() string {
	switch k.sentinel {
	case nonNamed:
		return k.text
	case remove:
		return ""
	case anyParent:
		return "AnyParent"
	default:
		return namedNames[k.named]
	}
}

// String implements fmt.Stringer for diagnostics and test output.
func (k Kind) String() string {
	switch k.sentinel {
	case nonNamed:
		return fmt.Sprintf("NonNamed(%q)", k.text)
	case remove:
		return "Remove"
	case anyParent:
		return "AnyParent"
	default:
		return namedNames[k.named]
	}
}

// IsNonNamed reports whether this Kind wraps literal token text, and
// returns that text.
func (k Kind) IsNonNamed() (string, bool) {
	return k.text, k.sentinel == nonNamed
}

// IsRemove reports whether this Kind is the Remove deletion sentinel.
func (k Kind) IsRemove() bool {
	return k.sentinel == remove
}
