package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// defaultCopyBuffer is the buffer size used for file copies
const defaultCopyBuffer = 128 * 1024

// EnsureDir creates a directory (and parents) if it does not exist
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// CopyFileToDir copies a file into a directory, keeping its base name.
// Returns the destination path.
func CopyFileToDir(srcPath, destDir string) (string, error) {
	if err := EnsureDir(destDir); err != nil {
		return "", err
	}
	destPath := filepath.Join(destDir, filepath.Base(srcPath))
	if err := CopyFile(srcPath, destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

// CopyFile copies src to dst with a fixed-size buffer. Partial writes are
// reported as errors, never silently accepted.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create destination %s: %w", dst, err)
	}

	buf := make([]byte, defaultCopyBuffer)
	written, err := io.CopyBuffer(out, in, buf)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy to %s: %w", dst, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to finalize %s: %w", dst, err)
	}

	if written != info.Size() {
		os.Remove(dst)
		return fmt.Errorf("short copy to %s: wrote %d of %d bytes", dst, written, info.Size())
	}

	return nil
}

// RemoveTree removes a directory and everything beneath it
func RemoveTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
