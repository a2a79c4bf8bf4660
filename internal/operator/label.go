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
	"strings"

	"github.com/kraken-mutate/mutantkraken/internal/mutation"
	"github.com/kraken-mutate/mutantkraken/internal/nodekind"
	"github.com/kraken-mutate/mutantkraken/internal/parsetree"
)

// removeLabel is RemoveLabel: matches a jump-expression
// (`return@L`/`continue@L`/`break@L`) and strips the `@label` suffix,
// keeping the bare keyword. Emits nothing if the jump carries no
// label.
type removeLabel struct{}

func (removeLabel) Name() mutation.Operator { return NameRemoveLabel }

func (removeLabel) TokenSet() []nodekind.Kind { return []nodekind.Kind{nodekind.JumpExpression} }

func (removeLabel) ParentContext() []nodekind.Kind { return []nodekind.Kind{nodekind.AnyParent} }

func (r removeLabel) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, r, func(node parsetree.Node, _ nodekind.Kind, _ parsetree.Node) {
		original := node.Text(tree.Source())
		at := strings.IndexByte(original, '@')
		if at < 0 {
			return
		}
		bare := strings.TrimRight(original[:at], " \t")
		m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), original, bare, node.StartLine(), NameRemoveLabel)
		if err != nil {
			return
		}
		out = append(out, m)
	})

	return out
}

func init() {
	register(removeLabel{})
}
