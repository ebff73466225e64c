package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alnah/go-railway/internal/assemble"
	"github.com/alnah/go-railway/internal/catalog"
	"github.com/alnah/go-railway/internal/config"
	"github.com/alnah/go-railway/internal/logx"
	"github.com/alnah/go-railway/internal/report"
)

// DefaultOutputName is the output file for a single input without -o.
const DefaultOutputName = "rwp_output.out"

// outputExt replaces the input extension when several inputs are planned.
const outputExt = ".out"

// planFlags holds raw flag values for the plan command.
type planFlags struct {
	output    string
	outputDir string
	format    string
	parallel  int
	withPlan  bool
	force     bool
	stdout    bool
	verbose   bool
	logJSON   bool
}

// planOptions holds validated options for the plan command.
type planOptions struct {
	inputs    []string
	output    string
	outputDir string
	format    report.Format // empty: use config
	parallel  int           // 0: use config
	withPlan  bool
	force     bool
	stdout    bool
	verbose   bool
	logJSON   bool
}

// PlanCmd creates the plan command (solve one or more catalog files).
// The env parameter provides injectable dependencies for testing.
func PlanCmd(env *Env) *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan <input-file>...",
		Short: "Find the cheapest railway for each catalog file",
		Long: `Find the cheapest railway of exactly the target length for each catalog.

A catalog file holds the target length on line 1, the comma-separated
terminal connectors on line 2, and one segment per following line as
start,end,length,price. Files ending in .gz, .zst or .zstd are
decompressed on the fly.

The result is written to rwp_output.out for a single input, or to
<input>.out for each of several inputs, inside output-dir when one is
configured. An impossible railway is reported with price -1. Input
errors are written to the output file in place of a result.`,
		Example: `  railway plan rails.txt
  railway plan rails.txt -o cheapest.out --plan
  railway plan north.txt south.txt.gz --output-dir ~/railways -j 4
  railway plan rails.txt --stdout --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parsePlanOptions(args, flags)
			if err != nil {
				return err
			}
			return runPlan(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: "+DefaultOutputName+")")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Directory for output files (default: config output-dir)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: text, json (default: config format or text)")
	cmd.Flags().IntVarP(&flags.parallel, "parallel", "j", 0, fmt.Sprintf("Catalogs solved at once, max %d (default: number of CPUs)", assemble.MaxRecommendedParallel))
	cmd.Flags().BoolVar(&flags.withPlan, "plan", false, "Also print the segments of one cheapest railway")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing output files")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "Write results to stdout instead of files")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug details to stderr")
	cmd.Flags().BoolVar(&flags.logJSON, "log-json", false, "Log as JSON lines")

	cmd.MarkFlagsMutuallyExclusive("stdout", "output")
	cmd.MarkFlagsMutuallyExclusive("stdout", "output-dir")

	return cmd
}

// parsePlanOptions validates and parses CLI inputs into planOptions.
// All parsing happens at the CLI boundary.
func parsePlanOptions(inputs []string, flags planFlags) (planOptions, error) {
	var format report.Format
	if flags.format != "" {
		f, err := report.ParseFormat(flags.format)
		if err != nil {
			return planOptions{}, err
		}
		format = f
	}

	if flags.parallel < 0 {
		return planOptions{}, fmt.Errorf("%w: %d", ErrInvalidParallel, flags.parallel)
	}

	if flags.output != "" && len(inputs) > 1 {
		return planOptions{}, fmt.Errorf("%w (got %d)", ErrOutputWithManyInputs, len(inputs))
	}

	return planOptions{
		inputs:    inputs,
		output:    flags.output,
		outputDir: flags.outputDir,
		format:    format,
		parallel:  flags.parallel,
		withPlan:  flags.withPlan,
		force:     flags.force,
		stdout:    flags.stdout,
		verbose:   flags.verbose,
		logJSON:   flags.logJSON,
	}, nil
}

// runPlan executes the plan command with validated options.
func runPlan(cmd *cobra.Command, env *Env, opts planOptions) error {
	ctx := cmd.Context()

	// === SETUP ===

	cfg, cfgErr := env.ConfigLoader.Load()

	log, err := newLogger(env, cfg.LogLevel, opts)
	if err != nil {
		return err
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("failed to load config")
	}

	format := opts.format
	if format == "" {
		format, err = report.ParseFormat(cfg.Format)
		if err != nil {
			return fmt.Errorf("config %s: %w", config.KeyFormat, err)
		}
	}

	parallel := resolveParallel(opts.parallel, cfg.Parallel)

	// === VALIDATION (fail-fast) ===

	var outputs []string
	if !opts.stdout {
		outputDir := opts.outputDir
		if outputDir == "" {
			outputDir = cfg.OutputDir
		}
		if outputDir != "" {
			outputDir = config.ExpandPath(outputDir)
			if err := config.EnsureOutputDir(outputDir); err != nil {
				return fmt.Errorf("invalid %s: %w", config.KeyOutputDir, err)
			}
		}

		outputs, err = outputPaths(opts.inputs, opts.output, outputDir)
		if err != nil {
			return err
		}
		if !opts.force {
			for _, out := range outputs {
				if _, err := os.Stat(out); err == nil {
					return fmt.Errorf("%s: %w (use --force to overwrite)", out, report.ErrOutputExists)
				}
			}
		}
	}

	// === LOAD ===

	rendered := make([]string, len(opts.inputs))
	ready := make([]bool, len(opts.inputs))
	var errs []error

	var cats []assemble.Catalog
	var slots []int
	for i, input := range opts.inputs {
		log.Debug().Str("input", input).Bool("compressed", catalog.Compressed(input)).Msg("loading catalog")

		cat, err := env.CatalogLoader.Load(input)
		if err != nil {
			if msg, ok := report.Diagnostic(err); ok {
				rendered[i], ready[i] = msg, true
			}
			errs = append(errs, err)
			continue
		}

		log.Debug().
			Str("input", input).
			Uint64("target", cat.TargetLength).
			Int("terminals", len(cat.Terminals)).
			Int("segments", len(cat.Segments)).
			Msg("catalog loaded")

		cats = append(cats, cat)
		slots = append(slots, i)
	}

	// === SOLVE ===

	start := env.Now()
	plans, solveErrs := solveCatalogs(ctx, cats, parallel, opts.withPlan)
	if err := ctx.Err(); err != nil {
		return errors.Join(append(errs, err)...)
	}
	log.Debug().Int("catalogs", len(cats)).Int("parallel", parallel).Dur("elapsed", env.Now().Sub(start)).Msg("solved")

	for j, plan := range plans {
		i := slots[j]
		if err := solveErrs[j]; err != nil {
			log.Error().Err(err).Str("input", opts.inputs[i]).Msg("cannot solve catalog")
			errs = append(errs, fmt.Errorf("%s: %w", opts.inputs[i], err))
			continue
		}
		content, err := report.Plan(plan, format)
		if err != nil {
			return errors.Join(append(errs, err)...)
		}
		rendered[i], ready[i] = content, true
		log.Info().Str("input", opts.inputs[i]).Str("price", plan.Result.String()).Msg("cheapest railway")
	}

	// === WRITE OUTPUT ===

	for i, content := range rendered {
		if !ready[i] {
			continue
		}
		if opts.stdout {
			if _, err := fmt.Fprintln(env.Stdout, content); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			continue
		}
		if err := report.WriteFile(outputs[i], content, opts.force); err != nil {
			errs = append(errs, err)
			continue
		}
		log.Info().Str("output", outputs[i]).Msg("wrote result")
	}

	return errors.Join(errs...)
}

// newLogger builds the command logger. An unusable configured level falls
// back to the default with a warning; the run field ties events together.
func newLogger(env *Env, level string, opts planOptions) (zerolog.Logger, error) {
	logOpts := logx.Options{
		Level:   level,
		Verbose: opts.verbose,
		JSON:    opts.logJSON,
		NoColor: env.Getenv("NO_COLOR") != "",
	}

	log, err := env.LoggerFactory.NewLogger(env.Stderr, logOpts)
	if errors.Is(err, logx.ErrBadLevel) {
		logOpts.Level = ""
		log, err = env.LoggerFactory.NewLogger(env.Stderr, logOpts)
		if err == nil {
			log.Warn().Str(config.KeyLogLevel, level).Msg("ignoring unknown log level")
		}
	}
	if err != nil {
		return zerolog.Nop(), err
	}

	return log.With().Str("run", env.RunID()).Logger(), nil
}

// solveCatalogs returns one plan and one error per catalog. A failing
// catalog leaves the others untouched. Without withPlan the plans carry
// only their result.
func solveCatalogs(ctx context.Context, cats []assemble.Catalog, parallel int, withPlan bool) ([]assemble.Plan, []error) {
	if withPlan {
		return assemble.SolvePlanEach(ctx, cats, parallel)
	}

	results, errs := assemble.SolveEach(ctx, cats, parallel)
	plans := make([]assemble.Plan, len(results))
	for i, res := range results {
		plans[i] = assemble.Plan{Result: res}
	}
	return plans, errs
}

// resolveParallel picks the flag value, then the config value, then the CPU
// count, clamped to [1, assemble.MaxRecommendedParallel].
func resolveParallel(flag, configured int) int {
	switch {
	case flag > 0:
		return clampParallel(flag)
	case configured > 0:
		return clampParallel(configured)
	default:
		return clampParallel(runtime.NumCPU())
	}
}

// clampParallel constrains the worker count to [1, MaxRecommendedParallel].
func clampParallel(n int) int {
	if n < 1 {
		return 1
	}
	if n > assemble.MaxRecommendedParallel {
		return assemble.MaxRecommendedParallel
	}
	return n
}

// outputPaths resolves one output file per input.
// A single input writes to output (or DefaultOutputName); several inputs
// write to <input-base>.out each. Two inputs sharing a name is an error.
func outputPaths(inputs []string, output, outputDir string) ([]string, error) {
	if len(inputs) == 1 {
		return []string{config.ResolveOutputPath(output, outputDir, DefaultOutputName)}, nil
	}

	paths := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, input := range inputs {
		p := config.ResolveOutputPath("", outputDir, deriveOutputName(input))
		if prev, ok := seen[p]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrOutputCollision, prev, input, p)
		}
		seen[p] = input
		paths[i] = p
	}
	return paths, nil
}

// deriveOutputName converts an input path to its output file name.
// Example: "data/north.txt.gz" -> "north.out"
func deriveOutputName(inputPath string) string {
	name := filepath.Base(inputPath)
	if catalog.Compressed(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" {
		name = strings.TrimPrefix(filepath.Base(inputPath), ".")
	}
	return name + outputExt
}
