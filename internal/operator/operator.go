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

// Package operator implements the fifteen mutation operators: rule
// objects that pattern-match AST nodes by kind and parent-kind and
// emit candidate mutation.Mutation values.
//
// Every operator shares one traversal (Walk, below): a pre-order walk
// that, at each node, checks the node's kind against the operator's
// TokenSet and its parent's kind against ParentContext, and hands
// matches to the operator's own emission logic, in place of a
// per-operator AST visitor.
package operator

import (
	"github.com/kraken-mutate/mutantkraken/internal/mutation"
	"github.com/kraken-mutate/mutantkraken/internal/nodekind"
	"github.com/kraken-mutate/mutantkraken/internal/parsetree"
)

// Operator identifies mutation candidates in a parsed file and emits
// Mutation values for them.
type Operator interface {
	// Name is the operator's registry key, matching the name used in
	// the RunConfig's operators list.
	Name() mutation.Operator

	// TokenSet is the set of node kinds this operator matches against.
	TokenSet() []nodekind.Kind

	// ParentContext is the set of required parent kinds of a match. A
	// set containing nodekind.AnyParent relaxes the parent-kind check
	// entirely: any parent kind is accepted, but a parent must still
	// exist per the shared walk's match rule.
	ParentContext() []nodekind.Kind

	// FindMutations traverses tree and returns every mutation this
	// operator produces for filePath.
	FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation
}

// matches reports whether node's kind is in tokenSet and node has a
// parent whose kind is allowed by parentContext. A node without a
// parent never matches.
func matches(tokenSet, parentContext []nodekind.Kind, nodeKind nodekind.Kind, parent parsetree.Node, hasParent bool) bool {
	if !containsKind(tokenSet, nodeKind) {
		return false
	}
	if !hasParent {
		return false
	}
	if containsKind(parentContext, nodekind.AnyParent) {
		return true
	}
	parentKind, parentNamed := parent.Kind()
	pk, err := nodekind.ParseKind(parentKind, parentNamed)
	if err != nil {
		return false
	}

	return containsKind(parentContext, pk)
}

func containsKind(set []nodekind.Kind, k nodekind.Kind) bool {
	for _, s := range set {
		if s == k {
			return true
		}
	}

	return false
}

// nodeKindOf resolves a parsetree.Node's own Kind, skipping nodes whose
// kind string isn't in the named taxonomy at all (punctuation/keyword
// tokens the operators don't match on are simply never token-set
// members, so a ParseKind failure here just means "doesn't match").
func nodeKindOf(n parsetree.Node) (nodekind.Kind, bool) {
	s, named := n.Kind()
	k, err := nodekind.ParseKind(s, named)
	if err != nil {
		return nodekind.Kind{}, false
	}

	return k, true
}

// Walk performs the shared pre-order traversal: at every node, if it
// matches op's TokenSet/ParentContext, emit calls back with the node,
// its resolved kind, and its parent. Operators that need additional
// tree context (siblings, children) pull it from the node itself.
func Walk(tree parsetree.Tree, op Operator, emit func(node parsetree.Node, kind nodekind.Kind, parent parsetree.Node)) {
	tokenSet := op.TokenSet()
	parentContext := op.ParentContext()

	var visit func(n parsetree.Node)
	visit = func(n parsetree.Node) {
		kind, ok := nodeKindOf(n)
		if ok {
			parent, hasParent := n.Parent()
			if matches(tokenSet, parentContext, kind, parent, hasParent) {
				emit(n, kind, parent)
			}
		}
		for _, child := range n.Children() {
			visit(child)
		}
	}
	visit(tree.Root())
}

// registry is the fixed set of shipped operators, keyed by name.
var registry = map[mutation.Operator]Operator{}

func register(op Operator) {
	registry[op.Name()] = op
}

// All returns every registered operator, in a stable order matching
// spec declaration order (used as the tie-breaker for a file's mutant
// generation order, per the ordering guarantee on intra-file mutant
// lists).
func All() []Operator {
	names := []mutation.Operator{
		NameArithmeticReplacement,
		NameRelationalReplacement,
		NameLogicalReplacement,
		NameAssignmentReplacement,
		NameUnaryReplacement,
		NameUnaryRemoval,
		NameNotNullAssertion,
		NameElvisRemove,
		NameElvisLiteralChange,
		NameLiteralChange,
		NameExceptionChange,
		NameWhenRemoveBranch,
		NameRemoveLabel,
		NameFunctionalBinaryReplacement,
		NameFunctionalReplacement,
	}
	ops := make([]Operator, 0, len(names))
	for _, n := range names {
		if op, ok := registry[n]; ok {
			ops = append(ops, op)
		}
	}

	return ops
}

// ByNames returns the registered operators named in names, in All's
// declaration order, skipping unknown names.
func ByNames(names []string) []Operator {
	want := make(map[mutation.Operator]bool, len(names))
	for _, n := range names {
		want[mutation.Operator(n)] = true
	}
	var out []Operator
	for _, op := range All() {
		if want[op.Name()] {
			out = append(out, op)
		}
	}

	return out
}
