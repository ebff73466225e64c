package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrOutputWithManyInputs indicates -o was combined with several inputs.
	ErrOutputWithManyInputs = errors.New("--output needs exactly one input file")

	// ErrOutputCollision indicates two inputs would write the same output file.
	ErrOutputCollision = errors.New("inputs share an output file")

	// ErrInvalidParallel indicates a negative --parallel value.
	ErrInvalidParallel = errors.New("parallel must be zero or positive")

	// ErrUnknownConfigKey indicates a key the config command does not support.
	ErrUnknownConfigKey = errors.New("unknown config key")
)
