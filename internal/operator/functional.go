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

// binarySwap is the fixed, deterministic counterpart table
// FunctionalBinaryReplacement swaps to. Unlike the randomized
// operators, every entry has exactly one documented counterpart, so
// each match produces exactly one mutant.
var binarySwap = map[string]string{
	"first":       "last",
	"last":        "first",
	"firstOrNull": "lastOrNull",
	"lastOrNull":  "firstOrNull",
	"find":        "findLast",
	"findLast":    "find",
}

// functionalBinaryReplacement is FunctionalBinaryReplacement.
type functionalBinaryReplacement struct{}

func (functionalBinaryReplacement) Name() mutation.Operator {
	return NameFunctionalBinaryReplacement
}

func (functionalBinaryReplacement) TokenSet() []nodekind.Kind {
	return []nodekind.Kind{nodekind.SimpleIdentifier}
}

func (functionalBinaryReplacement) ParentContext() []nodekind.Kind {
	return []nodekind.Kind{nodekind.NavigationSuffix}
}

func (f functionalBinaryReplacement) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, f, func(node parsetree.Node, _ nodekind.Kind, _ parsetree.Node) {
		original := node.Text(tree.Source())
		counterpart, ok := binarySwap[original]
		if !ok {
			return
		}
		m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), original, counterpart, node.StartLine(), NameFunctionalBinaryReplacement)
		if err != nil {
			return
		}
		out = append(out, m)
	})

	return out
}

// functionalSubGroups are the two randomized swap groups
// FunctionalReplacement picks a distinct member from.
var functionalSubGroups = [][]string{
	{"any", "all", "none"},
	{"forEach", "map", "filter"},
}

// functionalReplacement is FunctionalReplacement: matches a
// predicate/transform call name and replaces it with a random distinct
// member of the same sub-group.
type functionalReplacement struct{}

func (functionalReplacement) Name() mutation.Operator { return NameFunctionalReplacement }

func (functionalReplacement) TokenSet() []nodekind.Kind {
	return []nodekind.Kind{nodekind.SimpleIdentifier}
}

func (functionalReplacement) ParentContext() []nodekind.Kind {
	return []nodekind.Kind{nodekind.NavigationSuffix}
}

func (f functionalReplacement) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, f, func(node parsetree.Node, _ nodekind.Kind, _ parsetree.Node) {
		original := node.Text(tree.Source())
		group, idx := findFunctionalGroup(original)
		if group == nil {
			return
		}
		chosen, ok := distinctIndex(len(group), idx)
		if !ok {
			return
		}
		replacement := group[chosen]
		if replacement == original {
			return
		}
		m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), original, replacement, node.StartLine(), NameFunctionalReplacement)
		if err != nil {
			return
		}
		out = append(out, m)
	})

	return out
}

func findFunctionalGroup(text string) ([]string, int) {
	for _, group := range functionalSubGroups {
		for i, member := range group {
			if member == text {
				return group, i
			}
		}
	}

	return nil, -1
}

func init() {
	register(functionalBinaryReplacement{})
	register(functionalReplacement{})
}
