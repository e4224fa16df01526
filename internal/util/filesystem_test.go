package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileToDir(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "nested", "dest")

	srcPath := filepath.Join(srcDir, "sample.mp4")
	content := []byte("not really a video")
	if err := os.WriteFile(srcPath, content, 0o644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	destPath, err := CopyFileToDir(srcPath, destDir)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	if filepath.Base(destPath) != "sample.mp4" {
		t.Errorf("expected base name preserved, got %s", destPath)
	}

	got, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("destination content mismatch: got %q", got)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	_, err := CopyFileToDir(filepath.Join(t.TempDir(), "nope.mp4"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("first EnsureDir failed: %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("second EnsureDir failed: %v", err)
	}
}
