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

// notNullSymbols are the real assertion tokens NotNullAssertion matches.
var notNullSymbols = []string{"!!", "?."}

// notNullAssertion is NotNullAssertion: matches {!!,?.} inside postfix
// context and emits one mutant per other variant plus Remove.
type notNullAssertion struct{}

func (notNullAssertion) Name() mutation.Operator { return NameNotNullAssertion }

func (notNullAssertion) TokenSet() []nodekind.Kind {
	out := make([]nodekind.Kind, len(notNullSymbols))
	for i, s := range notNullSymbols {
		out[i] = nodekind.NonNamed(s)
	}

	return out
}

func (notNullAssertion) ParentContext() []nodekind.Kind {
	return []nodekind.Kind{nodekind.PostfixExpression}
}

func (n notNullAssertion) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, n, func(node parsetree.Node, kind nodekind.Kind, _ parsetree.Node) {
		original, _ := kind.IsNonNamed()
		for _, sym := range notNullSymbols {
			if sym == original {
				continue
			}
			if m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), original, sym, node.StartLine(), NameNotNullAssertion); err == nil {
				out = append(out, m)
			}
		}
		if m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), original, nodekind.Remove.Render(), node.StartLine(), NameNotNullAssertion); err == nil {
			out = append(out, m)
		}
	})

	return out
}

func init() {
	register(notNullAssertion{})
}
