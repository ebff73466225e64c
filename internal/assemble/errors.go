package assemble

import "errors"

// Sentinel errors. Infeasibility is never one of them; it is a Result.
var (
	// ErrBadMemoryMode indicates an unknown MemoryMode value.
	ErrBadMemoryMode = errors.New("assemble: unknown memory mode")

	// ErrPlanNeedsFullTable indicates SolvePlan was configured with a memory
	// mode that discards the rows needed to backtrack.
	ErrPlanNeedsFullTable = errors.New("assemble: plan recovery requires MemoryMode=FullTable")

	// ErrTableTooLarge indicates the DP table for this catalog would exceed
	// MaxTableCells.
	ErrTableTooLarge = errors.New("assemble: table exceeds cell limit")
)
