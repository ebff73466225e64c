package cli

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alnah/go-railway/internal/assemble"
	"github.com/alnah/go-railway/internal/catalog"
	"github.com/alnah/go-railway/internal/config"
	"github.com/alnah/go-railway/internal/logx"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
//
// Getenv serves the config command's env fallbacks. The default
// ConfigLoader reads RAILWAY_* through envconfig, which looks at the process
// environment and not at Getenv; inject a ConfigLoader to control those
// values in tests.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time
	RunID  func() string

	// Factories for domain objects
	ConfigLoader  ConfigLoader
	CatalogLoader CatalogLoader
	LoggerFactory LoggerFactory
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// CatalogLoader reads a catalog file.
type CatalogLoader interface {
	Load(path string) (assemble.Catalog, error)
}

// LoggerFactory builds the logger for one command invocation.
type LoggerFactory interface {
	NewLogger(w io.Writer, opts logx.Options) (zerolog.Logger, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithRunID sets the run identifier generator.
func WithRunID(fn func() string) EnvOption {
	return func(e *Env) {
		e.RunID = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithCatalogLoader sets the catalog loader.
func WithCatalogLoader(l CatalogLoader) EnvOption {
	return func(e *Env) {
		e.CatalogLoader = l
	}
}

// WithLoggerFactory sets the logger factory.
func WithLoggerFactory(f LoggerFactory) EnvOption {
	return func(e *Env) {
		e.LoggerFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Getenv:        os.Getenv,
		Now:           time.Now,
		RunID:         uuid.NewString,
		ConfigLoader:  &defaultConfigLoader{},
		CatalogLoader: &defaultCatalogLoader{},
		LoggerFactory: &defaultLoggerFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultCatalogLoader implements CatalogLoader using the catalog package.
type defaultCatalogLoader struct{}

func (defaultCatalogLoader) Load(path string) (assemble.Catalog, error) {
	return catalog.Load(path)
}

// defaultLoggerFactory implements LoggerFactory using the logx package.
type defaultLoggerFactory struct{}

func (defaultLoggerFactory) NewLogger(w io.Writer, opts logx.Options) (zerolog.Logger, error) {
	return logx.New(w, opts)
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*defaultConfigLoader)(nil)
	_ CatalogLoader = (*defaultCatalogLoader)(nil)
	_ LoggerFactory = (*defaultLoggerFactory)(nil)
)
