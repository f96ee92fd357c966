package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := SafeWriteFile(path, []byte("hello")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "hello" {
		t.Errorf("unexpected content: %q", string(b))
	}
	// Overwrite should replace, not append
	if err := SafeWriteFile(path, []byte("x")); err != nil {
		t.Fatalf("SafeWriteFile overwrite: %v", err)
	}
	b, _ = os.ReadFile(path)
	if string(b) != "x" {
		t.Errorf("overwrite failed: %q", string(b))
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"n": 1})
	if err != nil {
		t.Fatalf("PrettyJSON: %v", err)
	}
	if !strings.Contains(string(b), "\"n\": 1") {
		t.Errorf("unexpected output: %s", b)
	}
}
