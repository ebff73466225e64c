package catalog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/alnah/go-railway/internal/assemble"
)

// Load reads the catalog at path. Files ending in .gz or .zst/.zstd are
// decompressed on the fly.
func Load(path string) (assemble.Catalog, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided catalog path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return assemble.Catalog{}, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return assemble.Catalog{}, fmt.Errorf("cannot open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	r, closeFn, err := decompress(path, f)
	if err != nil {
		return assemble.Catalog{}, fmt.Errorf("cannot decompress %s: %w", path, err)
	}
	defer closeFn()

	cat, err := Parse(r)
	if err != nil {
		return assemble.Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// decompress wraps r according to the file extension.
func decompress(path string, r io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { _ = zr.Close() }, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	default:
		return r, func() {}, nil
	}
}

// Compressed reports whether Load decompresses path.
func Compressed(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".zst", ".zstd":
		return true
	}
	return false
}
