// Package source reads report and request documents from disk or stdin,
// transparently decompressing gzip and zstd files.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// MaxSize caps how many decompressed bytes are read from one source.
const MaxSize = 64 << 20

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

// Read returns the contents of path and its logical name. Paths ending in
// .gz or .zst are decompressed and the suffix is dropped from the name.
func Read(path string) ([]byte, string, error) {
	if path == Stdin {
		data, err := readLimited(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return data, "stdin", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	data, err := Decode(f, path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return data, LogicalName(path), nil
}

// Decode reads r, decompressing according to the extension of name.
func Decode(r io.Reader, name string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close() //nolint:errcheck
		return readLimited(zr)
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		return readLimited(zr)
	default:
		return readLimited(r)
	}
}

// LogicalName strips a compression suffix from path.
func LogicalName(path string) string {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".gz", ".zst":
		return strings.TrimSuffix(path, ext)
	}
	return path
}

func readLimited(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if n > MaxSize {
		return nil, fmt.Errorf("input exceeds %d bytes", MaxSize)
	}
	return buf.Bytes(), nil
}
