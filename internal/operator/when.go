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

// whenRemoveBranch is WhenRemoveBranch: matches a multi-arm `when`
// expression and, when it has two or more arms, deletes one
// non-last arm at random. A single-arm `when` emits nothing — the
// last arm is excluded from candidates because it commonly carries
// the `else` branch, whose removal would usually just be a parse
// error rather than a meaningful semantic change.
type whenRemoveBranch struct{}

func (whenRemoveBranch) Name() mutation.Operator { return NameWhenRemoveBranch }

func (whenRemoveBranch) TokenSet() []nodekind.Kind { return []nodekind.Kind{nodekind.WhenExpression} }

func (whenRemoveBranch) ParentContext() []nodekind.Kind { return []nodekind.Kind{nodekind.AnyParent} }

func (w whenRemoveBranch) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, w, func(node parsetree.Node, _ nodekind.Kind, _ parsetree.Node) {
		var entries []parsetree.Node
		for _, child := range node.Children() {
			if k, ok := nodeKindOf(child); ok && k == nodekind.WhenEntry {
				entries = append(entries, child)
			}
		}
		if len(entries) < 2 {
			return
		}
		idx := intn(len(entries) - 1)
		entry := entries[idx]
		original := entry.Text(tree.Source())
		if original == "" {
			return
		}
		m, err := mutation.New(filePath, entry.StartByte(), entry.EndByte(), original, "", entry.StartLine(), NameWhenRemoveBranch)
		if err != nil {
			return
		}
		out = append(out, m)
	})

	return out
}

func init() {
	register(whenRemoveBranch{})
}
