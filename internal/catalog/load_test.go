package catalog_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/alnah/go-railway/internal/catalog"
)

// writeFile creates name under a fresh temp dir and returns its path.
func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(data)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func zstdBytes(t *testing.T, data string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer func() { _ = enc.Close() }()
	return enc.EncodeAll([]byte(data), nil)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content func(t *testing.T) []byte
	}{
		{"plain text", "rails.txt", func(*testing.T) []byte { return []byte(scenarioA) }},
		{"no extension", "rails", func(*testing.T) []byte { return []byte(scenarioA) }},
		{"gzip", "rails.txt.gz", func(t *testing.T) []byte { return gzipBytes(t, scenarioA) }},
		{"gzip upper-case extension", "RAILS.GZ", func(t *testing.T) []byte { return gzipBytes(t, scenarioA) }},
		{"zstd", "rails.zst", func(t *testing.T) []byte { return zstdBytes(t, scenarioA) }},
		{"zstd long extension", "rails.zstd", func(t *testing.T) []byte { return zstdBytes(t, scenarioA) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, tt.file, tt.content(t))
			got, err := catalog.Load(path)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", path, err)
			}
			if diff := cmp.Diff(scenarioACatalog(), got); diff != "" {
				t.Errorf("Load(%q) mismatch (-want +got):\n%s", path, diff)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := catalog.Load(path)
	if !errors.Is(err, catalog.ErrFileNotFound) {
		t.Errorf("Load(%q) error = %v, want ErrFileNotFound", path, err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "empty.txt", nil)
	_, err := catalog.Load(path)
	if !errors.Is(err, catalog.ErrEmptyInput) {
		t.Errorf("Load(%q) error = %v, want ErrEmptyInput", path, err)
	}
}

func TestLoad_InvalidLineKeepsLineNumber(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "bad.txt", []byte("3\nb\na,b,1,x\n"))
	_, err := catalog.Load(path)

	var lineErr *catalog.InvalidLineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("Load() error = %v, want *InvalidLineError", err)
	}
	if lineErr.Line != 3 {
		t.Errorf("Load() line = %d, want 3", lineErr.Line)
	}
}

func TestLoad_CorruptGzip(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "bad.gz", []byte("definitely not gzip"))
	_, err := catalog.Load(path)
	if err == nil {
		t.Fatal("Load() expected error for corrupt gzip")
	}
	if errors.Is(err, catalog.ErrInvalidInput) || errors.Is(err, catalog.ErrFileNotFound) {
		t.Errorf("Load() error = %v, want a decompression error", err)
	}
}

func TestCompressed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"a.gz", true},
		{"a.txt.GZ", true},
		{"a.zst", true},
		{"a.zstd", true},
		{"a.txt", false},
		{"a", false},
	}
	for _, tt := range tests {
		if got := catalog.Compressed(tt.path); got != tt.want {
			t.Errorf("Compressed(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
