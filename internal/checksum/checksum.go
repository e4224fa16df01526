// Package checksum computes content fingerprints used as deduplication keys.
package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/ktaka/mediavault/internal/util"
)

// DefaultAlgorithm is the algorithm recorded with each imported file
const DefaultAlgorithm = "sha256"

// chunkSize is the read size for streamed hashing
const chunkSize = 8192

func newHasher(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case "sha256":
		return sha256.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "md5":
		return md5.New(), nil
	default:
		return nil, fmt.Errorf("%w: unknown hash algorithm %q", util.ErrValidation, algorithm)
	}
}

// Sum computes the lowercase hex digest of a file's content using the
// default algorithm.
func Sum(path string) (string, error) {
	return SumWith(path, DefaultAlgorithm)
}

// SumWith computes the lowercase hex digest of a file's content using the
// given algorithm. The file is read in fixed-size chunks, never loaded
// wholly into memory.
func SumWith(path, algorithm string) (string, error) {
	h, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return "", fmt.Errorf("%w: %s", util.ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// Compare recomputes the file's digest and reports whether it matches
// the expected one.
func Compare(path, expected string) (bool, error) {
	digest, err := Sum(path)
	if err != nil {
		return false, err
	}
	return digest == expected, nil
}
