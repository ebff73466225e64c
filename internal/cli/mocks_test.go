package cli

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alnah/go-railway/internal/assemble"
	"github.com/alnah/go-railway/internal/catalog"
	"github.com/alnah/go-railway/internal/config"
	"github.com/alnah/go-railway/internal/logx"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock CatalogLoader
// ---------------------------------------------------------------------------

// mockCatalogLoader delegates to catalog.Load unless LoadFunc is set.
type mockCatalogLoader struct {
	LoadFunc func(path string) (assemble.Catalog, error)

	mu    sync.Mutex
	paths []string
}

func (m *mockCatalogLoader) Load(path string) (assemble.Catalog, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(path)
	}
	return catalog.Load(path)
}

func (m *mockCatalogLoader) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// ---------------------------------------------------------------------------
// Mock LoggerFactory
// ---------------------------------------------------------------------------

// mockLoggerFactory records the options it was asked for and builds a JSON
// logger so tests can decode events.
type mockLoggerFactory struct {
	NewLoggerFunc func(w io.Writer, opts logx.Options) (zerolog.Logger, error)

	mu    sync.Mutex
	calls []logx.Options
}

func (m *mockLoggerFactory) NewLogger(w io.Writer, opts logx.Options) (zerolog.Logger, error) {
	m.mu.Lock()
	m.calls = append(m.calls, opts)
	m.mu.Unlock()

	if m.NewLoggerFunc != nil {
		return m.NewLoggerFunc(w, opts)
	}
	opts.JSON = true
	return logx.New(w, opts)
}

func (m *mockLoggerFactory) Calls() []logx.Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]logx.Options(nil), m.calls...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*mockConfigLoader)(nil)
	_ CatalogLoader = (*mockCatalogLoader)(nil)
	_ LoggerFactory = (*mockLoggerFactory)(nil)
)
