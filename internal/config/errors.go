package config

import "errors"

var (
	// ErrInvalidKey indicates a config key that cannot be stored.
	ErrInvalidKey = errors.New("invalid config key")

	// ErrInvalidSyntax indicates a config file that cannot be parsed.
	ErrInvalidSyntax = errors.New("invalid config syntax")

	// ErrInvalidValue indicates a stored or environment value of the wrong type.
	ErrInvalidValue = errors.New("invalid config value")

	// ErrNotDirectory indicates that output-dir points to a file.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrNotWritable indicates that output-dir cannot be written to.
	ErrNotWritable = errors.New("directory is not writable")
)
