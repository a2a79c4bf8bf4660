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

// unarySymbols are the real unary operator tokens UnaryReplacement and
// UnaryRemoval match against; Remove is never a node's own kind, only
// an emission alternative.
var unarySymbols = []string{"!", "++", "--"}

// unaryReplacement is UnaryReplacement: matches {!,++,--} inside
// prefix/postfix context and emits one mutant per other unary symbol
// plus the Remove sentinel (deletion).
type unaryReplacement struct{}

func (unaryReplacement) Name() mutation.Operator { return NameUnaryReplacement }

func (unaryReplacement) TokenSet() []nodekind.Kind {
	out := make([]nodekind.Kind, len(unarySymbols))
	for i, s := range unarySymbols {
		out[i] = nodekind.NonNamed(s)
	}

	return out
}

func (unaryReplacement) ParentContext() []nodekind.Kind {
	return []nodekind.Kind{nodekind.PrefixExpression, nodekind.PostfixExpression}
}

func (u unaryReplacement) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, u, func(node parsetree.Node, kind nodekind.Kind, _ parsetree.Node) {
		original, _ := kind.IsNonNamed()
		for _, sym := range unarySymbols {
			if sym == original {
				continue
			}
			if m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), original, sym, node.StartLine(), NameUnaryReplacement); err == nil {
				out = append(out, m)
			}
		}
		if m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), original, nodekind.Remove.Render(), node.StartLine(), NameUnaryReplacement); err == nil {
			out = append(out, m)
		}
	})

	return out
}

// unaryRemoval is UnaryRemoval: matches {+,-,!} inside prefix-expression
// and emits a single deletion mutant per match.
type unaryRemoval struct{}

func (unaryRemoval) Name() mutation.Operator { return NameUnaryRemoval }

func (unaryRemoval) TokenSet() []nodekind.Kind {
	return []nodekind.Kind{nodekind.NonNamed("+"), nodekind.NonNamed("-"), nodekind.NonNamed("!")}
}

func (unaryRemoval) ParentContext() []nodekind.Kind {
	return []nodekind.Kind{nodekind.PrefixExpression}
}

func (u unaryRemoval) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, u, func(node parsetree.Node, kind nodekind.Kind, _ parsetree.Node) {
		original, _ := kind.IsNonNamed()
		if m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), original, nodekind.Remove.Render(), node.StartLine(), NameUnaryRemoval); err == nil {
			out = append(out, m)
		}
	})

	return out
}

func init() {
	register(unaryReplacement{})
	register(unaryRemoval{})
}
