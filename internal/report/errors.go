package report

import "errors"

var (
	// ErrUnknownFormat indicates an unsupported output format name.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrOutputExists indicates the output file already exists and
	// overwriting was not requested.
	ErrOutputExists = errors.New("output file already exists")
)
