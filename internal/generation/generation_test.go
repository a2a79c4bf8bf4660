package generation_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kraken-mutate/mutantkraken/internal/generation"
	"github.com/kraken-mutate/mutantkraken/internal/mutation"
)

func TestGenerate_writesSplicedMutantFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "Foo.kt"), []byte("val c = a + b"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := mutation.New("Foo.kt", 10, 11, "+", "-", 1, "ArithmeticReplacement")
	if err != nil {
		t.Fatalf("unexpected error building mutation: %v", err)
	}
	fm := &mutation.FileMutations{FilePath: "Foo.kt", Mutations: []*mutation.Mutation{m}}

	outDir := filepath.Join(root, "mutations")
	files, err := generation.Generate([]*mutation.FileMutations{fm}, generation.Options{
		ProjectRoot:  root,
		MutationsDir: outDir,
		Concurrency:  2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}

	content, err := os.ReadFile(files[0].Path)
	if err != nil {
		t.Fatalf("reading generated file: %v", err)
	}
	if string(content) != "val c = a - b" {
		t.Fatalf("got %q, want %q", content, "val c = a - b")
	}
	if !strings.HasPrefix(filepath.Base(files[0].Path), m.ID().String()+"_") {
		t.Fatalf("filename %q does not start with mutation id", filepath.Base(files[0].Path))
	}
}

func TestGenerate_annotatesBeforeMutatedLine(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "Foo.kt"), []byte("val a = 1\nval c = a + b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := mutation.New("Foo.kt", 20, 21, "+", "-", 2, "ArithmeticReplacement")
	if err != nil {
		t.Fatalf("unexpected error building mutation: %v", err)
	}
	fm := &mutation.FileMutations{FilePath: "Foo.kt", Mutations: []*mutation.Mutation{m}}

	outDir := filepath.Join(root, "mutations")
	files, err := generation.Generate([]*mutation.FileMutations{fm}, generation.Options{
		ProjectRoot:  root,
		MutationsDir: outDir,
		Annotate:     true,
		Concurrency:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(files[0].Path)
	if err != nil {
		t.Fatalf("reading generated file: %v", err)
	}
	lines := strings.Split(string(content), "\n")
	if !strings.Contains(lines[1], "ArithmeticReplacement") {
		t.Fatalf("expected annotation comment before mutated line, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "val c = a - b") {
		t.Fatalf("expected mutated line after annotation, got %q", lines[2])
	}
}
