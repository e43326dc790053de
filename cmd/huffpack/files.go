package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/huffpack/errs"
	"github.com/google/uuid"
)

const (
	compressedPrefix   = "compressed_"
	compressedSuffix   = ".bin"
	decompressedPrefix = "decompressed_"
)

// compressedName returns the default output path for compressing path:
// "dir/report.txt" becomes "dir/compressed_report.txt.bin".
func compressedName(path string) string {
	dir, name := filepath.Split(path)

	return filepath.Join(dir, compressedPrefix+name+compressedSuffix)
}

// decompressedName returns the default output path for decompressing path.
// One leading "compressed_" and one trailing ".bin" are stripped before
// "decompressed_" is prepended.
func decompressedName(path string) string {
	dir, name := filepath.Split(path)
	name = strings.TrimPrefix(name, compressedPrefix)
	name = strings.TrimSuffix(name, compressedSuffix)

	return filepath.Join(dir, decompressedPrefix+name)
}

// readInput reads the whole file at path, failing with ErrInputTooLarge
// when it holds more than limit bytes.
func readInput(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", errs.ErrInputTooLarge, path, limit)
	}

	return data, nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partially written output.
func writeAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	tmp := filepath.Join(dir, "."+name+"."+uuid.New().String()+".tmp")

	if err := os.WriteFile(tmp, data, 0o644); err != nil { //nolint: gosec
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	return nil
}
