package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-railway/internal/config"
)

// scenarioA costs 6: b,a,1,2 then a,b,2,4.
const scenarioA = "3\nb\na,b,1,5\nb,a,1,2\na,b,2,4\n"

// scenarioB has no segment ending in the terminal.
const scenarioB = "2\nz\na,b,1,1\nb,a,1,1\n"

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

type testMocks struct {
	configLoader  *mockConfigLoader
	catalogLoader *mockCatalogLoader
	loggerFactory *mockLoggerFactory
	stdout        *syncBuffer
	stderr        *syncBuffer
}

// testEnvOption configures testEnv.
type testEnvOption func(*Env, *testMocks)

func withConfig(cfg config.Config) testEnvOption {
	return func(_ *Env, m *testMocks) {
		m.configLoader.LoadFunc = func() (config.Config, error) { return cfg, nil }
	}
}

func withGetenv(vars map[string]string) testEnvOption {
	return func(e *Env, _ *testMocks) {
		e.Getenv = staticEnv(vars)
	}
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env and the mocks for assertions.
func testEnv(opts ...testEnvOption) (*Env, *testMocks) {
	mocks := &testMocks{
		configLoader:  &mockConfigLoader{},
		catalogLoader: &mockCatalogLoader{},
		loggerFactory: &mockLoggerFactory{},
		stdout:        &syncBuffer{},
		stderr:        &syncBuffer{},
	}

	env := &Env{
		Stdout:        mocks.stdout,
		Stderr:        mocks.stderr,
		Getenv:        staticEnv(nil),
		Now:           fixedTime(time.Date(2026, 1, 26, 14, 30, 52, 0, time.UTC)),
		RunID:         func() string { return "test-run" },
		ConfigLoader:  mocks.configLoader,
		CatalogLoader: mocks.catalogLoader,
		LoggerFactory: mocks.loggerFactory,
	}

	for _, opt := range opts {
		opt(env, mocks)
	}

	return env, mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// writeCatalog creates a catalog file under a fresh temp dir.
func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
