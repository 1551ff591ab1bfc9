// Package backup copies the store file and verifies the copy by checksum.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/zeebo/xxh3"
)

var ErrChecksumMismatch = errors.New("backup checksum mismatch")

type Result struct {
	Source   string
	Target   string
	Bytes    int
	Checksum uint64
}

// Copy writes the contents of src to dst and re-reads dst to confirm the
// checksum. A missing src is created empty first, as the store would be.
func Copy(src, dst string) (*Result, error) {
	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(src, nil, 0644); err != nil {
			return nil, fmt.Errorf("create %s: %w", src, err)
		}
		data = nil
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}

	sum := xxh3.Hash(data)
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", dst, err)
	}
	if err := Verify(dst, sum); err != nil {
		return nil, err
	}

	return &Result{Source: src, Target: dst, Bytes: len(data), Checksum: sum}, nil
}

// Verify checks that path hashes to want.
func Verify(path string, want uint64) error {
	got, err := Checksum(path)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: %s has %016x, want %016x", ErrChecksumMismatch, path, got, want)
	}
	return nil
}

func Checksum(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return xxh3.Hash(data), nil
}

// Restore copies a backup over the store, with the same verification.
func Restore(backupPath, storePath string) (*Result, error) {
	if _, err := os.Stat(backupPath); err != nil {
		return nil, fmt.Errorf("backup %s: %w", backupPath, err)
	}
	return Copy(backupPath, storePath)
}
