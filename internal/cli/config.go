package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alnah/go-railway/internal/assemble"
	"github.com/alnah/go-railway/internal/config"
	"github.com/alnah/go-railway/internal/logx"
	"github.com/alnah/go-railway/internal/report"
)

// validConfigKeys lists all supported configuration keys.
var validConfigKeys = config.Keys

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/go-railway/config.
Settings can also be provided via environment variables; the file wins.

Supported settings:
  output-dir    Default directory for output files (env: RAILWAY_OUTPUT_DIR)
  format        Default output format, text or json (env: RAILWAY_FORMAT)
  parallel      Catalogs solved at once (env: RAILWAY_PARALLEL)
  log-level     debug, info, warn, error (env: RAILWAY_LOG_LEVEL)`,
		Example: `  railway config set output-dir ~/railways
  railway config set format json
  railway config get parallel
  railway config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

The value is validated before it is stored. For output-dir the directory
is created if it doesn't exist.`,
		Example: `  railway config set output-dir ~/railways
  railway config set parallel 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value to stdout, or nothing if not set.`,
		Example: `  railway config get output-dir`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Shows both values from the config file and environment variable overrides.`,
		Example: `  railway config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("%w %q (valid keys: %v)", ErrUnknownConfigKey, key, validConfigKeys)
	}

	normalized, err := normalizeConfigValue(key, value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}

	if err := config.Save(key, normalized); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, normalized)
	return nil
}

// normalizeConfigValue validates value for key and returns the form to store.
func normalizeConfigValue(key, value string) (string, error) {
	switch key {
	case config.KeyOutputDir:
		expanded := config.ExpandPath(value)
		if err := config.EnsureOutputDir(expanded); err != nil {
			return "", err
		}
		return expanded, nil
	case config.KeyFormat:
		f, err := report.ParseFormat(value)
		if err != nil {
			return "", err
		}
		return string(f), nil
	case config.KeyParallel:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return "", fmt.Errorf("%w: want a number from 1 to %d, got %q",
				ErrInvalidParallel, assemble.MaxRecommendedParallel, value)
		}
		return strconv.Itoa(clampParallel(n)), nil
	case config.KeyLogLevel:
		lvl, err := logx.ParseLevel(value)
		if err != nil {
			return "", err
		}
		return lvl.String(), nil
	}
	return value, nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("%w %q (valid keys: %v)", ErrUnknownConfigKey, key, validConfigKeys)
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}

	if value == "" {
		value = env.Getenv(config.EnvName(key))
	}

	if value != "" {
		fmt.Fprintln(env.Stdout, value)
	}

	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	for _, key := range validConfigKeys {
		if _, ok := data[key]; ok {
			continue
		}
		if envVal := env.Getenv(config.EnvName(key)); envVal != "" {
			data[key] = envVal + " (from env)"
		}
	}

	if len(data) == 0 {
		fmt.Fprintln(env.Stdout, "No configuration set.")
		fmt.Fprintln(env.Stdout, "\nAvailable settings:")
		for _, key := range validConfigKeys {
			fmt.Fprintf(env.Stdout, "  %s\n", key)
		}
		return nil
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		fmt.Fprintf(env.Stdout, "%s=%s\n", key, data[key])
	}

	return nil
}

// isValidConfigKey checks if a key is a valid configuration key.
func isValidConfigKey(key string) bool {
	return slices.Contains(validConfigKeys, key)
}
