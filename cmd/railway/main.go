package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-railway/internal/assemble"
	"github.com/alnah/go-railway/internal/catalog"
	"github.com/alnah/go-railway/internal/cli"
	"github.com/alnah/go-railway/internal/report"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitGeneral   = 1
	ExitUsage     = 2
	ExitInput     = 3
	ExitOutput    = 4
	ExitInterrupt = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := cli.DefaultEnv()
	rootCmd := newRootCmd(env)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// newRootCmd assembles the command tree.
func newRootCmd(env *cli.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "railway",
		Short:   "Find the cheapest railway that can be assembled from a segment catalog",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(cli.PlanCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	return rootCmd
}

// exitCode maps errors to process exit codes.
// An infeasible railway is a successful run and never reaches here.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Cobra doesn't expose typed errors, so we check for known error message patterns.
	if isCobraUsageError(err) || errors.Is(err, cli.ErrOutputWithManyInputs) ||
		errors.Is(err, cli.ErrInvalidParallel) || errors.Is(err, cli.ErrUnknownConfigKey) {
		return ExitUsage
	}

	if errors.Is(err, catalog.ErrFileNotFound) || errors.Is(err, catalog.ErrEmptyInput) ||
		errors.Is(err, catalog.ErrInvalidInput) || errors.Is(err, assemble.ErrTableTooLarge) {
		return ExitInput
	}

	if errors.Is(err, report.ErrOutputExists) || errors.Is(err, report.ErrUnknownFormat) ||
		errors.Is(err, cli.ErrOutputCollision) {
		return ExitOutput
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// These patterns are stable across Cobra versions (tested with v1.8+).
var cobraUsageErrorPatterns = []string{
	"required flag",
	"unknown flag",
	"unknown shorthand",
	"unknown command",
	"flag needs an argument",
	"invalid argument",
	"if any flags in the group",
	"accepts ",
	"requires at least",
	"requires at most",
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
