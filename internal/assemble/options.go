package assemble

import "fmt"

// MemoryMode controls how many table rows a solve keeps.
type MemoryMode int

const (
	// RollingWindow keeps only the rows a recurrence step can reach back to:
	// min(target, longest usable segment)+1 rows. Plans cannot be recovered.
	RollingWindow MemoryMode = iota

	// FullTable keeps all target+1 rows so an optimal plan can be traced back.
	FullTable
)

// String returns the mode name.
func (m MemoryMode) String() string {
	switch m {
	case RollingWindow:
		return "RollingWindow"
	case FullTable:
		return "FullTable"
	default:
		return fmt.Sprintf("MemoryMode(%d)", m)
	}
}

// MaxTableCells bounds rows×columns allocated by a single solve.
const MaxTableCells = 1 << 26

// Options configures a solve.
//
//   - MemoryMode: RollingWindow (default) or FullTable.
//   - OnEvaluate: optional hook called once for every (length, connector)
//     state as it is resolved, in increasing length order.
type Options struct {
	MemoryMode MemoryMode
	OnEvaluate func(length uint64, c Connector)
}

// Option is a functional option for Solve.
type Option func(*Options)

// DefaultOptions returns RollingWindow with no hook.
func DefaultOptions() Options {
	return Options{MemoryMode: RollingWindow}
}

// WithMemoryMode selects the table layout.
func WithMemoryMode(mode MemoryMode) Option {
	return func(o *Options) {
		o.MemoryMode = mode
	}
}

// WithOnEvaluate installs a per-state hook. Tests use it to check that no
// state is resolved twice.
func WithOnEvaluate(fn func(length uint64, c Connector)) Option {
	return func(o *Options) {
		o.OnEvaluate = fn
	}
}

func (o Options) validate() error {
	switch o.MemoryMode {
	case RollingWindow, FullTable:
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrBadMemoryMode, o.MemoryMode)
	}
}
