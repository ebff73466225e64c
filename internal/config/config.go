// Package config stores user settings for the railway CLI.
//
// Settings live in $XDG_CONFIG_HOME/go-railway/config (or
// ~/.config/go-railway/config) as a dotenv file. Keys are exposed to users in
// kebab case (output-dir) and stored in upper snake case (OUTPUT_DIR).
// RAILWAY_* environment variables fill in keys the file leaves unset.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config keys.
const (
	KeyOutputDir = "output-dir"
	KeyFormat    = "format"
	KeyParallel  = "parallel"
	KeyLogLevel  = "log-level"
)

// EnvPrefix prefixes environment overrides (RAILWAY_OUTPUT_DIR, ...).
const EnvPrefix = "RAILWAY"

// appName names the directory under the user config root.
const appName = "go-railway"

// Keys lists the keys understood by Load, in display order.
var Keys = []string{KeyOutputDir, KeyFormat, KeyParallel, KeyLogLevel}

// Config holds user configuration. Zero fields mean "not configured".
type Config struct {
	OutputDir string `split_words:"true"`
	Format    string
	Parallel  int
	LogLevel  string `split_words:"true"`
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/go-railway.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then RAILWAY_* environment fallbacks.
// Returns an empty Config if neither provides anything (not an error).
func Load() (Config, error) {
	data, err := List()
	if err != nil {
		return Config{}, err
	}

	cfg, err := fromMap(data)
	if err != nil {
		return Config{}, err
	}

	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	return cfg.merge(env), nil
}

// FromEnv reads RAILWAY_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return cfg, nil
}

// fromMap builds a Config from kebab-case file values.
func fromMap(data map[string]string) (Config, error) {
	cfg := Config{
		OutputDir: data[KeyOutputDir],
		Format:    data[KeyFormat],
		LogLevel:  data[KeyLogLevel],
	}
	if v := data[KeyParallel]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidValue, KeyParallel, v)
		}
		cfg.Parallel = n
	}
	return cfg, nil
}

// merge fills the zero fields of c from fallback.
func (c Config) merge(fallback Config) Config {
	if c.OutputDir == "" {
		c.OutputDir = fallback.OutputDir
	}
	if c.Format == "" {
		c.Format = fallback.Format
	}
	if c.Parallel == 0 {
		c.Parallel = fallback.Parallel
	}
	if c.LogLevel == "" {
		c.LogLevel = fallback.LogLevel
	}
	return c
}

// parseFile reads a dotenv config file and returns its values under
// kebab-case keys.
func parseFile(p string) (map[string]string, error) {
	raw, err := godotenv.Read(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSyntax, p, err)
	}

	data := make(map[string]string, len(raw))
	for k, v := range raw {
		data[userKey(k)] = v
	}
	return data, nil
}

// fileKey maps output-dir to OUTPUT_DIR.
func fileKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// EnvName returns the environment variable overriding key
// (output-dir -> RAILWAY_OUTPUT_DIR).
func EnvName(key string) string {
	return EnvPrefix + "_" + fileKey(key)
}

// userKey maps OUTPUT_DIR to output-dir.
func userKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", "-"))
}

// validKey reports whether key is non-empty lower-case letters, digits and
// dashes.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// Save writes a single key=value to the config file.
// Creates the config directory and file if they don't exist.
// Preserves existing values but discards comments.
func Save(key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, err := parseFile(p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	raw := make(map[string]string, len(existing)+1)
	for k, v := range existing {
		raw[fileKey(k)] = v
	}
	raw[fileKey(key)] = value

	if err := godotenv.Write(raw, p); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key doesn't exist.
func Get(key string) (string, error) {
	data, err := List()
	if err != nil {
		return "", err
	}
	return data[key], nil
}

// List returns all config file values as a map keyed in kebab case.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	return data, nil
}

// ResolveOutputPath resolves the final output path using the following precedence:
//  1. If output is absolute, use it as-is
//  2. If output is relative and outputDir is set, join them
//  3. If output is empty, use defaultName in outputDir (or cwd if no outputDir)
//
// All paths are cleaned using filepath.Clean.
func ResolveOutputPath(output, outputDir, defaultName string) string {
	if output != "" && filepath.IsAbs(output) {
		return filepath.Clean(output)
	}

	if output != "" {
		if outputDir != "" {
			return filepath.Clean(filepath.Join(outputDir, output))
		}
		return filepath.Clean(output)
	}

	if outputDir != "" {
		return filepath.Clean(filepath.Join(outputDir, defaultName))
	}
	return filepath.Clean(defaultName)
}

// EnsureOutputDir checks that d can be used as output-dir, creating it if
// missing. A leading ~ is expanded.
func EnsureOutputDir(d string) error {
	if d == "" {
		return fmt.Errorf("%s cannot be empty", KeyOutputDir)
	}
	d = ExpandPath(d)

	info, err := os.Stat(d)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user output dir
				return fmt.Errorf("cannot create directory: %w", err)
			}
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, d)
	}

	f, err := os.CreateTemp(d, ".go-railway-write-test-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotWritable, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
}

// Dir returns the configuration directory path.
func Dir() (string, error) {
	return dir()
}

// Path returns the configuration file path.
func Path() (string, error) {
	return path()
}
