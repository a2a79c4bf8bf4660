package gradleproject_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kraken-mutate/mutantkraken/internal/gradleproject"
)

func TestFind_locatesRootFromNestedDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "settings.gradle"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "app", "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	p, err := gradleproject.Find(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Root != root {
		t.Fatalf("got root %q, want %q", p.Root, root)
	}
	if p.CallingDir != filepath.Join("app", "src") {
		t.Fatalf("got calling dir %q, want %q", p.CallingDir, filepath.Join("app", "src"))
	}
}

func TestFind_errorsWhenNoMarkerFound(t *testing.T) {
	dir := t.TempDir()
	if _, err := gradleproject.Find(dir); err == nil {
		t.Fatal("expected an error when no Gradle project marker exists")
	}
}
