package discovery_test

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"testing"

	"github.com/kraken-mutate/mutantkraken/internal/discovery"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("// placeholder\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_findsKotlinFilesRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Main.kt"))
	writeFile(t, filepath.Join(root, "sub", "Nested.kt"))
	writeFile(t, filepath.Join(root, "README.md"))

	files, err := discovery.Discover(root, discovery.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Strings(files)
	want := []string{filepath.Join("sub", "Nested.kt"), "Main.kt"}
	sort.Strings(want)
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
}

func TestDiscover_skipsIgnoredDirectoriesAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "build", "Generated.kt"))
	writeFile(t, filepath.Join(root, "sub", "build", "AlsoGenerated.kt"))
	writeFile(t, filepath.Join(root, "Main.kt"))

	files, err := discovery.Discover(root, discovery.Options{IgnoreDirectories: []string{"build"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0] != "Main.kt" {
		t.Fatalf("got %v, want only Main.kt", files)
	}
}

func TestDiscover_skipsOwnOutputDirUnconditionally(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, discovery.OutputDirName, "Copy.kt"))
	writeFile(t, filepath.Join(root, "Main.kt"))

	files, err := discovery.Discover(root, discovery.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0] != "Main.kt" {
		t.Fatalf("got %v, want only Main.kt", files)
	}
}

func TestDiscover_excludesFilesMatchingIgnoreRegex(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "FooTest.kt"))
	writeFile(t, filepath.Join(root, "Foo.kt"))

	files, err := discovery.Discover(root, discovery.Options{
		IgnoreFileRegexes: []*regexp.Regexp{regexp.MustCompile(`^.*Test\.[^.]*$`)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0] != "Foo.kt" {
		t.Fatalf("got %v, want only Foo.kt", files)
	}
}

func TestDiscover_closedUnderSubdirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b", "X.kt"))

	fromRoot, err := discovery.Discover(root, discovery.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromA, err := discovery.Discover(filepath.Join(root, "a"), discovery.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fromRoot) != 1 || len(fromA) != 1 {
		t.Fatalf("expected the file discoverable from both root and an ancestor subdirectory")
	}
}
