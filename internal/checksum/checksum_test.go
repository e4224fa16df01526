package checksum

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ktaka/mediavault/internal/util"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.bin")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestSumKnownDigest(t *testing.T) {
	// sha256("abc")
	path := writeTemp(t, []byte("abc"))

	digest, err := Sum(path)
	if err != nil {
		t.Fatalf("Sum failed: %v", err)
	}

	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if digest != want {
		t.Errorf("expected %s, got %s", want, digest)
	}
}

func TestSumLargerThanChunk(t *testing.T) {
	// Spans multiple 8 KiB chunks
	content := make([]byte, chunkSize*3+17)
	for i := range content {
		content[i] = byte(i % 251)
	}
	path := writeTemp(t, content)

	first, err := Sum(path)
	if err != nil {
		t.Fatalf("Sum failed: %v", err)
	}

	second, err := Sum(path)
	if err != nil {
		t.Fatalf("second Sum failed: %v", err)
	}

	if first != second {
		t.Errorf("digest not stable: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
}

func TestSumMissingFile(t *testing.T) {
	_, err := Sum(filepath.Join(t.TempDir(), "missing.bin"))
	if !errors.Is(err, util.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSumUnknownAlgorithm(t *testing.T) {
	path := writeTemp(t, []byte("abc"))
	_, err := SumWith(path, "crc32")
	if !errors.Is(err, util.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	path := writeTemp(t, []byte("abc"))

	ok, err := Compare(path, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !ok {
		t.Error("expected digests to match")
	}

	ok, err = Compare(path, "deadbeef")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if ok {
		t.Error("expected digests to differ")
	}
}
