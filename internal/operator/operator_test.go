package operator_test

import (
	"testing"

	"github.com/kraken-mutate/mutantkraken/internal/mutation"
	"github.com/kraken-mutate/mutantkraken/internal/operator"
)

func findOp(t *testing.T, name mutation.Operator) operator.Operator {
	t.Helper()
	for _, op := range operator.All() {
		if op.Name() == name {
			return op
		}
	}
	t.Fatalf("operator %s not registered", name)

	return nil
}

// TestArithmeticReplacement_emitsFourMutants covers scenario 1:
// `val c = a + b`, ArithmeticReplacement only, expects four mutants
// with new_text in {-,*,/,%}, all at the `+`'s byte span.
func TestArithmeticReplacement_emitsFourMutants(t *testing.T) {
	source := []byte("val c = a + b")
	root := &fakeNode{kind: "source_file", named: true, start: 0, end: len(source)}
	additive := &fakeNode{kind: "additive_expression", named: true, start: 8, end: 13}
	addChild(root, additive)
	plus := &fakeNode{kind: "+", named: false, start: 10, end: 11}
	addChild(additive, plus)
	tree := &fakeTree{root: root, source: source}

	op := findOp(t, operator.NameArithmeticReplacement)
	muts := op.FindMutations(tree, "Foo.kt")

	if len(muts) != 4 {
		t.Fatalf("got %d mutants, want 4", len(muts))
	}
	want := map[string]bool{"-": false, "*": false, "/": false, "%": false}
	for _, m := range muts {
		if m.StartByte() != 10 || m.EndByte() != 11 {
			t.Fatalf("mutant at wrong span: [%d,%d)", m.StartByte(), m.EndByte())
		}
		if _, ok := want[m.NewText()]; !ok {
			t.Fatalf("unexpected new_text %q", m.NewText())
		}
		want[m.NewText()] = true
	}
	for sym, seen := range want {
		if !seen {
			t.Fatalf("missing mutant with new_text %q", sym)
		}
	}
}

// TestRelationalReplacement_twoOccurrences covers scenario 2: two
// relational occurrences, five alternatives each, ten mutants total.
func TestRelationalReplacement_twoOccurrences(t *testing.T) {
	source := []byte("val d = a > b; val e = a < b")
	root := &fakeNode{kind: "source_file", named: true, start: 0, end: len(source)}

	cmp1 := &fakeNode{kind: "comparison_expression", named: true, start: 8, end: 13}
	addChild(root, cmp1)
	gt := &fakeNode{kind: ">", named: false, start: 10, end: 11}
	addChild(cmp1, gt)

	cmp2 := &fakeNode{kind: "comparison_expression", named: true, start: 23, end: 28}
	addChild(root, cmp2)
	lt := &fakeNode{kind: "<", named: false, start: 25, end: 26}
	addChild(cmp2, lt)

	tree := &fakeTree{root: root, source: source}
	op := findOp(t, operator.NameRelationalReplacement)
	muts := op.FindMutations(tree, "Foo.kt")

	if len(muts) != 10 {
		t.Fatalf("got %d mutants, want 10", len(muts))
	}
}

// TestElvisRemove_singleMutantSpansToParentEnd covers scenario 3.
func TestElvisRemove_singleMutantSpansToParentEnd(t *testing.T) {
	source := []byte("val x = a ?: b")
	root := &fakeNode{kind: "source_file", named: true, start: 0, end: len(source)}
	elvis := &fakeNode{kind: "elvis_expression", named: true, start: 8, end: 14}
	addChild(root, elvis)
	op1 := &fakeNode{kind: "?:", named: false, start: 10, end: 12}
	addChild(elvis, op1)

	tree := &fakeTree{root: root, source: source}
	op := findOp(t, operator.NameElvisRemove)
	muts := op.FindMutations(tree, "Foo.kt")

	if len(muts) != 1 {
		t.Fatalf("got %d mutants, want 1", len(muts))
	}
	m := muts[0]
	if m.StartByte() != 10 || m.EndByte() != 14 {
		t.Fatalf("span = [%d,%d), want [10,14)", m.StartByte(), m.EndByte())
	}
	if m.NewText() != "" {
		t.Fatalf("new_text = %q, want empty", m.NewText())
	}
}

// TestRemoveLabel_stripsLabelSuffix covers scenario 5.
func TestRemoveLabel_stripsLabelSuffix(t *testing.T) {
	source := []byte("return@loop x")
	root := &fakeNode{kind: "source_file", named: true, start: 0, end: len(source)}
	jump := &fakeNode{kind: "jump_expression", named: true, start: 0, end: 11, text: "return@loop"}
	addChild(root, jump)

	tree := &fakeTree{root: root, source: source}
	op := findOp(t, operator.NameRemoveLabel)
	muts := op.FindMutations(tree, "Foo.kt")

	if len(muts) != 1 {
		t.Fatalf("got %d mutants, want 1", len(muts))
	}
	if muts[0].NewText() != "return" {
		t.Fatalf("new_text = %q, want %q", muts[0].NewText(), "return")
	}
}

// TestRemoveLabel_noLabelEmitsNothing covers the no-`@` edge case.
func TestRemoveLabel_noLabelEmitsNothing(t *testing.T) {
	source := []byte("return x")
	root := &fakeNode{kind: "source_file", named: true, start: 0, end: len(source)}
	jump := &fakeNode{kind: "jump_expression", named: true, start: 0, end: 6, text: "return"}
	addChild(root, jump)

	tree := &fakeTree{root: root, source: source}
	op := findOp(t, operator.NameRemoveLabel)
	muts := op.FindMutations(tree, "Foo.kt")

	if len(muts) != 0 {
		t.Fatalf("got %d mutants, want 0", len(muts))
	}
}

// TestWhenRemoveBranch_singleArmEmitsNothing covers the boundary
// behavior: a `when` with one arm never produces a mutant.
func TestWhenRemoveBranch_singleArmEmitsNothing(t *testing.T) {
	source := []byte("when (x) { 1 -> a }")
	root := &fakeNode{kind: "source_file", named: true, start: 0, end: len(source)}
	when := &fakeNode{kind: "when_expression", named: true, start: 0, end: len(source)}
	addChild(root, when)
	entry := &fakeNode{kind: "when_entry", named: true, start: 11, end: 17, text: "1 -> a"}
	addChild(when, entry)

	tree := &fakeTree{root: root, source: source}
	op := findOp(t, operator.NameWhenRemoveBranch)
	muts := op.FindMutations(tree, "Foo.kt")

	if len(muts) != 0 {
		t.Fatalf("got %d mutants, want 0", len(muts))
	}
}

// TestLiteralChange_plainIntegerLiteral covers a direct literal match:
// one mutant rewriting the integer to a distinct value.
func TestLiteralChange_plainIntegerLiteral(t *testing.T) {
	source := []byte("val a = 5")
	root := &fakeNode{kind: "source_file", named: true, start: 0, end: len(source)}
	lit := &fakeNode{kind: "integer_literal", named: true, start: 8, end: 9}
	addChild(root, lit)

	tree := &fakeTree{root: root, source: source}
	op := findOp(t, operator.NameLiteralChange)
	muts := op.FindMutations(tree, "Foo.kt")

	if len(muts) != 1 {
		t.Fatalf("got %d mutants, want 1", len(muts))
	}
	if muts[0].NewText() == "5" {
		t.Fatalf("new_text = %q, want a value distinct from the original", muts[0].NewText())
	}
}

// TestLiteralChange_negatedLiteralEmitsExactlyOne covers the `-5` edge
// case: the walk must match the integer_literal child once, not also
// the enclosing prefix_expression, or the mutant would be duplicated
// over the same byte span.
func TestLiteralChange_negatedLiteralEmitsExactlyOne(t *testing.T) {
	source := []byte("val a = -5")
	root := &fakeNode{kind: "source_file", named: true, start: 0, end: len(source)}
	prefix := &fakeNode{kind: "prefix_expression", named: true, start: 8, end: 10}
	addChild(root, prefix)
	minus := &fakeNode{kind: "-", named: false, start: 8, end: 9}
	addChild(prefix, minus)
	lit := &fakeNode{kind: "integer_literal", named: true, start: 9, end: 10}
	addChild(prefix, lit)

	tree := &fakeTree{root: root, source: source}
	op := findOp(t, operator.NameLiteralChange)
	muts := op.FindMutations(tree, "Foo.kt")

	if len(muts) != 1 {
		t.Fatalf("got %d mutants, want 1, not a duplicate over the same span", len(muts))
	}
	if muts[0].StartByte() != 9 || muts[0].EndByte() != 10 {
		t.Fatalf("span = [%d,%d), want [9,10) (the literal, not the prefix)", muts[0].StartByte(), muts[0].EndByte())
	}
}

// TestElvisLiteralChange_rewritesRightHandLiteral covers scenario 4:
// `val b = a ?: 1` produces one mutant rewriting the `1`.
func TestElvisLiteralChange_rewritesRightHandLiteral(t *testing.T) {
	source := []byte("val b = a ?: 1")
	root := &fakeNode{kind: "source_file", named: true, start: 0, end: len(source)}
	elvis := &fakeNode{kind: "elvis_expression", named: true, start: 8, end: 14}
	addChild(root, elvis)
	op1 := &fakeNode{kind: "?:", named: false, start: 10, end: 12}
	addChild(elvis, op1)
	lit := &fakeNode{kind: "integer_literal", named: true, start: 13, end: 14}
	addChild(elvis, lit)

	tree := &fakeTree{root: root, source: source}
	op := findOp(t, operator.NameElvisLiteralChange)
	muts := op.FindMutations(tree, "Foo.kt")

	if len(muts) != 1 {
		t.Fatalf("got %d mutants, want 1", len(muts))
	}
	if muts[0].StartByte() != 13 || muts[0].EndByte() != 14 {
		t.Fatalf("span = [%d,%d), want [13,14)", muts[0].StartByte(), muts[0].EndByte())
	}
	if muts[0].NewText() == "1" {
		t.Fatalf("new_text = %q, want a value distinct from the original", muts[0].NewText())
	}
}

// TestUnaryRemoval_singleDeletionMutant checks UnaryRemoval emits
// exactly one mutant per match, a deletion.
func TestUnaryRemoval_singleDeletionMutant(t *testing.T) {
	source := []byte("val y = -x")
	root := &fakeNode{kind: "source_file", named: true, start: 0, end: len(source)}
	prefix := &fakeNode{kind: "prefix_expression", named: true, start: 8, end: 10}
	addChild(root, prefix)
	minus := &fakeNode{kind: "-", named: false, start: 8, end: 9}
	addChild(prefix, minus)

	tree := &fakeTree{root: root, source: source}
	op := findOp(t, operator.NameUnaryRemoval)
	muts := op.FindMutations(tree, "Foo.kt")

	if len(muts) != 1 {
		t.Fatalf("got %d mutants, want 1", len(muts))
	}
	if muts[0].NewText() != "" {
		t.Fatalf("new_text = %q, want empty", muts[0].NewText())
	}
}
