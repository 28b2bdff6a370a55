package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindWorkspaceRootFromChild(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "For Script"), 0o755); err != nil {
		t.Fatal(err)
	}
	auto := filepath.Join(root, "Automate")
	if err := os.MkdirAll(auto, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, start := range []string{root, auto} {
		got, err := FindWorkspaceRoot(start, "For Script")
		if err != nil {
			t.Fatalf("FindWorkspaceRoot(%s): %v", start, err)
		}
		want, _ := filepath.Abs(root)
		if got != want {
			t.Fatalf("root = %s, want %s", got, want)
		}
	}
}

func TestFindWorkspaceRootStopsAfterParent(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "For Script"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := FindWorkspaceRoot(deep, "For Script"); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("err = %v, want ErrWorkspaceNotFound", err)
	}
}

func TestSafeWriteFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.txt")
	if err := SafeWriteFile(p, []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := SafeWriteFile(p, []byte("b")); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "b" {
		t.Fatalf("content = %q", b)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}
