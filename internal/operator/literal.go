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
	"strconv"
	"strings"

	"github.com/kraken-mutate/mutantkraken/internal/mutation"
	"github.com/kraken-mutate/mutantkraken/internal/nodekind"
	"github.com/kraken-mutate/mutantkraken/internal/parsetree"
)

// literalSentinelString is LiteralChange's fixed replacement for any
// string literal, chosen (rather than a random string) because string
// domains have no natural "distinct value" notion to rejection-sample
// over.
const literalSentinelString = `"Hello I am a Mutant!"`

// literalKinds is the set of node kinds LiteralChange matches on
// directly. A negative literal (-5) parses as a PrefixExpression
// wrapping the literal; that's deliberately left out of this set so
// the walk matches only the literal child itself, once, rather than
// also matching the enclosing prefix and emitting a duplicate mutant
// over the same span. mutateLiteralNode's PrefixExpression branch
// still runs — it serves ElvisLiteralChange, which calls it directly
// on a sibling node without going through this token set.
var literalKinds = []nodekind.Kind{
	nodekind.IntegerLiteral,
	nodekind.LongLiteral,
	nodekind.RealLiteral,
	nodekind.CharacterLiteral,
	nodekind.BooleanLiteral,
	nodekind.StringLiteral,
	nodekind.LineStringLiteral,
}

// literalChange is LiteralChange.
type literalChange struct{}

func (literalChange) Name() mutation.Operator { return NameLiteralChange }

func (literalChange) TokenSet() []nodekind.Kind { return literalKinds }

func (literalChange) ParentContext() []nodekind.Kind {
	return []nodekind.Kind{nodekind.AnyParent}
}

func (l literalChange) FindMutations(tree parsetree.Tree, filePath string) []*mutation.Mutation {
	var out []*mutation.Mutation
	Walk(tree, l, func(node parsetree.Node, kind nodekind.Kind, _ parsetree.Node) {
		if m := mutateLiteralNode(node, kind, tree.Source(), filePath, NameLiteralChange); m != nil {
			out = append(out, m)
		}
	})

	return out
}

// mutateLiteralNode implements the literal-rewriting rule shared by
// LiteralChange and ElvisLiteralChange. For PrefixExpression nodes
// (the `-5` case) it recurses into the last child rather than
// rewriting the prefix operator itself, per the documented edge case.
func mutateLiteralNode(node parsetree.Node, kind nodekind.Kind, source []byte, filePath string, op mutation.Operator) *mutation.Mutation {
	if kind == nodekind.PrefixExpression {
		children := node.Children()
		if len(children) == 0 {
			return nil
		}
		last := children[len(children)-1]
		lastKind, ok := nodeKindOf(last)
		if !ok {
			return nil
		}

		return mutateLiteralNode(last, lastKind, source, filePath, op)
	}

	text := node.Text(source)
	line := node.StartLine()

	switch kind {
	case nodekind.IntegerLiteral:
		clean := strings.ReplaceAll(text, "_", "")
		v, err := strconv.ParseInt(clean, 10, 32)
		if err != nil {
			return nil
		}
		nv, ok := distinctInt32(int32(v), -2147483648, 2147483647)
		if !ok {
			return nil
		}
		m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), text, strconv.FormatInt(int64(nv), 10), line, op)
		if err != nil {
			return nil
		}

		return m

	case nodekind.LongLiteral:
		clean := strings.TrimSuffix(strings.ReplaceAll(text, "_", ""), "L")
		v, err := strconv.ParseInt(clean, 10, 64)
		if err != nil {
			return nil
		}
		nv, ok := distinctInt64(v)
		if !ok {
			return nil
		}
		m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), text, strconv.FormatInt(nv, 10)+"L", line, op)
		if err != nil {
			return nil
		}

		return m

	case nodekind.RealLiteral:
		clean := strings.TrimSuffix(text, "f")
		v, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return nil
		}
		nv, ok := distinctFloat(v)
		if !ok {
			return nil
		}
		m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), text, strconv.FormatFloat(nv, 'g', -1, 64), line, op)
		if err != nil {
			return nil
		}

		return m

	case nodekind.CharacterLiteral:
		inner := strings.Trim(text, "'")
		if len(inner) != 1 {
			return nil
		}
		nv, ok := distinctLowercase(inner[0])
		if !ok {
			return nil
		}
		m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), text, "'"+string(nv)+"'", line, op)
		if err != nil {
			return nil
		}

		return m

	case nodekind.BooleanLiteral:
		newText := "false"
		if text == "false" {
			newText = "true"
		}
		m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), text, newText, line, op)
		if err != nil {
			return nil
		}

		return m

	case nodekind.StringLiteral, nodekind.LineStringLiteral:
		if text == literalSentinelString {
			return nil
		}
		m, err := mutation.New(filePath, node.StartByte(), node.EndByte(), text, literalSentinelString, line, op)
		if err != nil {
			return nil
		}

		return m

	default:
		return nil
	}
}

func init() {
	register(literalChange{})
}
