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

package operator

import (
	"github.com/kraken-mutate/mutantkraken/internal/mutation"
	"github.com/kraken-mutate/mutantkraken/internal/nodekind"
	"github.com/kraken-mutate/mutantkraken/internal/parsetree"
)

// knownExceptions is the closed set ExceptionChange draws its
// replacement from. ArithmeticException stands in for the original
// source's default-on-unrecognized behavior: an identifier the
// operator cannot classify is treated as if it were this one, rather
// than aborting the match.
var knownExceptions = []string{
	"ArithmeticException",
	"NullPointerException",
	"IllegalArgumentException",
	"IllegalStateException",
	"IndexOutOfBoundsException",
	"UnsupportedOperationException",
	"ClassCastException",
	"NumberFormatException",
	"RuntimeException",
	"Exception",
}

func indexOfException(name string) int {
	for i, e := range knownExceptions {
		if e == name {
			return i
		}
	}

	return 0 // unrecognized identifiers default to the first entry, ArithmeticException
}

// exceptionChange is ExceptionChange: matches the `throw` keyword,
// looks at the following call-expression's callee identifier, and
// replaces it with a distinct, randomly-chosen member of
// knownExceptions.
type exceptionChange struct{}

func (exceptionChange) Name() mutation.Operator { return NameExceptionChange }

func (exceptionChange) TokenSet() []nodekind.Kind { return []nodekind.Kind{nodekind.NonNamed("throw")} }

func (exceptionChange) ParentContext() []nodekind.Kind { return []nodekind.Kind{nodekind.AnyParent} }

func (e exceptionChange) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, e, func(node parsetree.Node, _ nodekind.Kind, _ parsetree.Node) {
		sibling, ok := node.NextSibling()
		if !ok {
			return
		}
		siblingKind, ok := nodeKindOf(sibling)
		if !ok || siblingKind != nodekind.CallExpression {
			return
		}
		children := sibling.Children()
		if len(children) == 0 {
			return
		}
		callee := children[0]
		calleeKind, ok := nodeKindOf(callee)
		if !ok || calleeKind != nodekind.SimpleIdentifier {
			return
		}

		original := callee.Text(tree.Source())
		idx, ok := distinctIndex(len(knownExceptions), indexOfException(original))
		if !ok {
			return
		}
		replacement := knownExceptions[idx]
		if replacement == original {
			return
		}
		m, err := mutation.New(filePath, callee.StartByte(), callee.EndByte(), original, replacement, callee.StartLine(), NameExceptionChange)
		if err != nil {
			return
		}
		out = append(out, m)
	})

	return out
}

func init() {
	register(exceptionChange{})
}
