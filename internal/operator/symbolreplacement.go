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

// symbolReplacement is the shared shape of the four fully-enumerative
// symbol-swap operators (Arithmetic/Relational/Logical/Assignment
// Replacement): match a fixed set of NonNamed operator tokens inside a
// required parent kind, and for each match emit one mutant per other
// member of the set. This mirrors internal/engine/mappings.go's
// tokenMutations table-driven swap, generalized from go/token values to
// NonNamed node-kind text.
type symbolReplacement struct {
	name          mutation.Operator
	symbols       []string
	parentContext []nodekind.Kind
}

func (s *symbolReplacement) Name() mutation.Operator { return s.name }

func (s *symbolReplacement) TokenSet() []nodekind.Kind {
	out := make([]nodekind.Kind, len(s.symbols))
	for i, sym := range s.symbols {
		out[i] = nodekind.NonNamed(sym)
	}

	return out
}

func (s *symbolReplacement) ParentContext() []nodekind.Kind { return s.parentContext }

func (s *symbolReplacement) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, s, func(node parsetree.Node, kind nodekind.Kind, _ parsetree.Node) {
		original, _ := kind.IsNonNamed()
		for _, sym := range s.symbols {
			if sym == original {
				continue
			}
			m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), original, sym, node.StartLine(), s.name)
			if err != nil {
				continue
			}
			out = append(out, m)
		}
	})

	return out
}

func init() {
	register(&symbolReplacement{
		name:          NameArithmeticReplacement,
		symbols:       []string{"+", "-", "*", "/", "%"},
		parentContext: []nodekind.Kind{nodekind.AdditiveExpression, nodekind.MultiplicativeExpression},
	})
	register(&symbolReplacement{
		name:          NameRelationalReplacement,
		symbols:       []string{"==", "!=", "<", "<=", ">", ">="},
		parentContext: []nodekind.Kind{nodekind.EqualityExpression, nodekind.ComparisonExpression},
	})
	register(&symbolReplacement{
		name:          NameLogicalReplacement,
		symbols:       []string{"&&", "||"},
		parentContext: []nodekind.Kind{nodekind.ConjunctionExpression, nodekind.DisjunctionExpression},
	})
	register(&symbolReplacement{
		name:          NameAssignmentReplacement,
		symbols:       []string{"=", "+=", "-=", "*=", "/=", "%="},
		parentContext: []nodekind.Kind{nodekind.Assignment},
	})
}
