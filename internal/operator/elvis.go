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

// elvisRemove is ElvisRemove: deletes the `?:` operator and everything
// after it up to the end of the enclosing elvis-expression. The span
// extends to parent.EndByte, which clamps to file size automatically
// when the elvis expression ends at end-of-file.
type elvisRemove struct{}

func (elvisRemove) Name() mutation.Operator { return NameElvisRemove }

func (elvisRemove) TokenSet() []nodekind.Kind { return []nodekind.Kind{nodekind.NonNamed("?:")} }

func (elvisRemove) ParentContext() []nodekind.Kind {
	return []nodekind.Kind{nodekind.ElvisExpression}
}

func (e elvisRemove) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, e, func(node parsetree.Node, _ nodekind.Kind, parent parsetree.Node) {
		end := parent.EndByte()
		if end > len(tree.Source()) {
			end = len(tree.Source())
		}
		fullOriginal := string(tree.Source()[node.StartByte():end])
		if fullOriginal == "" {
			return
		}
		m, err := mutation.New(filePath, node.StartByte(), end, fullOriginal, "", node.StartLine(), NameElvisRemove)
		if err != nil {
			return
		}
		out = append(out, m)
	})

	return out
}

// elvisLiteralChange is ElvisLiteralChange: matches `?:` and mutates
// the right-hand literal, delegating to the same literal-rewriting
// rule LiteralChange uses.
type elvisLiteralChange struct{}

func (elvisLiteralChange) Name() mutation.Operator { return NameElvisLiteralChange }

func (elvisLiteralChange) TokenSet() []nodekind.Kind {
	return []nodekind.Kind{nodekind.NonNamed("?:")}
}

func (elvisLiteralChange) ParentContext() []nodekind.Kind {
	return []nodekind.Kind{nodekind.ElvisExpression}
}

func (e elvisLiteralChange) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, e, func(node parsetree.Node, _ nodekind.Kind, _ parsetree.Node) {
		sibling, ok := node.NextSibling()
		if !ok {
			return
		}
		siblingKind, ok := nodeKindOf(sibling)
		if !ok {
			return
		}
		if m := mutateLiteralNode(sibling, siblingKind, tree.Source(), filePath, NameElvisLiteralChange); m != nil {
			out = append(out, m)
		}
	})

	return out
}

func init() {
	register(elvisRemove{})
	register(elvisLiteralChange{})
}
