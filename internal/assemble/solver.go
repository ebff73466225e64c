package assemble

import (
	"context"
	"fmt"
	"math/bits"
)

// ctxCheckRows is how many rows are filled between context checks.
const ctxCheckRows = 4096

// Solve returns the minimum price of a railway matching cat.
//
// The error is non-nil only for invalid options or a table that would exceed
// MaxTableCells; an impossible railway is Infeasible() with a nil error.
//
// Example:
//
//	res, err := Solve(cat)
//	if p, ok := res.Price(); ok {
//		fmt.Println("cheapest:", p)
//	}
func Solve(cat Catalog, opts ...Option) (Result, error) {
	return SolveContext(context.Background(), cat, opts...)
}

// SolveContext is Solve with cancellation. The context is polled every
// ctxCheckRows rows; on cancellation ctx.Err() is returned.
func SolveContext(ctx context.Context, cat Catalog, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	r, err := newRunner(cat, cfg)
	if err != nil {
		return Infeasible(), err
	}
	if err := r.fill(ctx); err != nil {
		return Infeasible(), err
	}
	res, _ := r.best()
	return res, nil
}

// SolvePlan returns the minimum price together with one railway achieving it.
// It defaults to FullTable; any other memory mode yields ErrPlanNeedsFullTable.
func SolvePlan(ctx context.Context, cat Catalog, opts ...Option) (Plan, error) {
	cfg := DefaultOptions()
	cfg.MemoryMode = FullTable
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return Plan{}, err
	}
	if cfg.MemoryMode != FullTable {
		return Plan{}, ErrPlanNeedsFullTable
	}

	r, err := newRunner(cat, cfg)
	if err != nil {
		return Plan{}, err
	}
	if err := r.fill(ctx); err != nil {
		return Plan{}, err
	}
	return r.plan(), nil
}

// runner holds the table for one solve. Nothing in it outlives the call.
type runner struct {
	c       *compiled
	options Options
	target  uint64
	rows    [][]Result // FullTable: rows[l]; RollingWindow: rows[l%len(rows)]
}

func newRunner(cat Catalog, cfg Options) (*runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := compile(cat)
	k := uint64(len(c.connectors))

	var n uint64
	switch cfg.MemoryMode {
	case FullTable:
		if cat.TargetLength >= MaxTableCells {
			return nil, fmt.Errorf("%w: target length %d", ErrTableTooLarge, cat.TargetLength)
		}
		n = cat.TargetLength + 1
	default:
		// maxLength <= TargetLength after compile, so this is the smaller of the two.
		n = c.maxLength + 1
		if n == 0 || n > MaxTableCells {
			return nil, fmt.Errorf("%w: segment length %d", ErrTableTooLarge, c.maxLength)
		}
	}
	if hi, cells := bits.Mul64(n, k); hi != 0 || cells > MaxTableCells {
		return nil, fmt.Errorf("%w: %d rows x %d connectors", ErrTableTooLarge, n, k)
	}
	rows := make([][]Result, n)
	cells := make([]Result, n*k)
	for i := range rows {
		rows[i], cells = cells[:k:k], cells[k:]
	}

	return &runner{
		c:       c,
		options: cfg,
		target:  cat.TargetLength,
		rows:    rows,
	}, nil
}

// row returns the slot holding length l.
func (r *runner) row(l uint64) []Result {
	if r.options.MemoryMode == FullTable {
		return r.rows[l]
	}
	return r.rows[l%uint64(len(r.rows))]
}

// fill resolves every state from length 0 up to the target.
func (r *runner) fill(ctx context.Context) error {
	last := r.target
	if len(r.c.segments) == 0 {
		// Nothing can make progress; rows above 0 stay infeasible.
		last = 0
	}

	for l := uint64(0); ; l++ {
		if l%ctxCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		r.resolveRow(l)
		if l == last {
			return nil
		}
	}
}

// resolveRow computes cost(l, c) for every column c. Rows l-len for every
// usable segment length are already resolved and still held.
func (r *runner) resolveRow(l uint64) {
	row := r.row(l)
	hook := r.options.OnEvaluate

	for col := range row {
		if hook != nil {
			hook(l, r.c.connectors[col])
		}
		if l == 0 {
			row[col] = Price(0)
			continue
		}

		best := Infeasible()
		for _, e := range r.c.byEnd[col] {
			if e.length > l {
				continue
			}
			if cand, ok := r.candidate(l, e); ok && cand.better(best) {
				best = cand
			}
		}
		row[col] = best
	}
}

// candidate prices e as the last segment of a length-l railway.
// It reports false when the remainder is infeasible or the sum overflows.
func (r *runner) candidate(l uint64, e edge) (Result, bool) {
	rest, ok := r.row(l - e.length)[e.from].Price()
	if !ok {
		return Infeasible(), false
	}
	sum, carry := bits.Add64(rest, e.price, 0)
	if carry != 0 {
		return Infeasible(), false
	}
	return Price(sum), true
}

// best aggregates the target row over the terminal columns.
// The returned column is -1 when the result is infeasible.
func (r *runner) best() (Result, int) {
	if r.target != 0 && len(r.c.segments) == 0 {
		return Infeasible(), -1
	}
	row := r.row(r.target)
	res, at := Infeasible(), -1
	for _, col := range r.c.terminals {
		if row[col].better(res) {
			res, at = row[col], col
		}
	}
	return res, at
}

// plan walks back from the cheapest terminal state, picking at each step the
// first segment in catalog order that reproduces the stored cost.
// Requires FullTable.
func (r *runner) plan() Plan {
	res, col := r.best()
	if !res.Feasible() {
		return Plan{Result: res}
	}

	var segs []Segment
	for l := r.target; l > 0; {
		e, ok := r.step(l, col)
		if !ok {
			// Unreachable for a table this runner filled itself.
			return Plan{Result: res}
		}
		segs = append(segs, r.c.segments[e.seg])
		l -= e.length
		col = e.from
	}

	// Collected terminal-first; report in railway order.
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return Plan{Result: res, Segments: segs}
}

// step finds the segment that produced the stored cost of (l, col).
func (r *runner) step(l uint64, col int) (edge, bool) {
	want := r.rows[l][col]
	for _, e := range r.c.byEnd[col] {
		if e.length > l {
			continue
		}
		if cand, ok := r.candidate(l, e); ok && cand == want {
			return e, true
		}
	}
	return edge{}, false
}
