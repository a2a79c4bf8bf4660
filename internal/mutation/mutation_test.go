package mutation_test

import (
	"testing"

	"github.com/kraken-mutate/mutantkraken/internal/mutation"
)

func TestNew_rejectsInvertedSpan(t *testing.T) {
	_, err := mutation.New("Foo.kt", 10, 5, "a", "b", 1, "ArithmeticReplacement")
	if err == nil {
		t.Fatal("expected an error for an inverted byte span")
	}
}

func TestNew_rejectsNegativeStart(t *testing.T) {
	_, err := mutation.New("Foo.kt", -1, 5, "a", "b", 1, "ArithmeticReplacement")
	if err == nil {
		t.Fatal("expected an error for a negative start byte")
	}
}

func TestNew_rejectsNoOpChange(t *testing.T) {
	_, err := mutation.New("Foo.kt", 0, 1, "+", "+", 1, "ArithmeticReplacement")
	if err == nil {
		t.Fatal("expected an error when new text equals old text")
	}
}

func TestNew_startsInProgress(t *testing.T) {
	m, err := mutation.New("Foo.kt", 0, 1, "+", "-", 1, "ArithmeticReplacement")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Result() != mutation.InProgress {
		t.Fatalf("got %v, want InProgress", m.Result())
	}
}

func TestNew_assignsUniqueIDs(t *testing.T) {
	a, _ := mutation.New("Foo.kt", 0, 1, "+", "-", 1, "ArithmeticReplacement")
	b, _ := mutation.New("Foo.kt", 0, 1, "+", "-", 1, "ArithmeticReplacement")
	if a.ID() == b.ID() {
		t.Fatal("expected distinct mutations to receive distinct IDs")
	}
}

func TestSetResult_transitionsOnce(t *testing.T) {
	m, _ := mutation.New("Foo.kt", 0, 1, "+", "-", 1, "ArithmeticReplacement")
	m.SetResult(mutation.Killed)
	if m.Result() != mutation.Killed {
		t.Fatalf("got %v, want Killed", m.Result())
	}
}

func TestSetResult_panicsOnSecondCall(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on a second SetResult call")
		}
	}()

	m, _ := mutation.New("Foo.kt", 0, 1, "+", "-", 1, "ArithmeticReplacement")
	m.SetResult(mutation.Killed)
	m.SetResult(mutation.Survived)
}
