package assemble

import (
	"strconv"
	"strings"
)

// Connector labels one end of a rail segment. Only equality is meaningful.
type Connector string

// Segment is one reusable rail piece.
type Segment struct {
	Start  Connector
	End    Connector
	Length uint64
	Price  uint64
}

// String renders the segment as it appears in a catalog file.
func (s Segment) String() string {
	var b strings.Builder
	b.WriteString(string(s.Start))
	b.WriteByte(',')
	b.WriteString(string(s.End))
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(s.Length, 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(s.Price, 10))
	return b.String()
}

// Catalog is a validated planning request.
//
// Segments with Length == 0 are accepted but never used. Segment order only
// decides which of several equally cheap plans SolvePlan reports.
type Catalog struct {
	TargetLength uint64
	Terminals    []Connector
	Segments     []Segment
}

// Result is either a concrete price or the infeasible outcome.
// The zero value is Infeasible().
type Result struct {
	price    uint64
	feasible bool
}

// Price returns a feasible result costing p.
func Price(p uint64) Result {
	return Result{price: p, feasible: true}
}

// Infeasible returns the result for a request no segment chain satisfies.
func Infeasible() Result {
	return Result{}
}

// Price returns the price and true, or 0 and false when infeasible.
func (r Result) Price() (uint64, bool) {
	return r.price, r.feasible
}

// Feasible reports whether a valid railway exists.
func (r Result) Feasible() bool {
	return r.feasible
}

// String returns the decimal price, or "infeasible".
func (r Result) String() string {
	if !r.feasible {
		return "infeasible"
	}
	return strconv.FormatUint(r.price, 10)
}

// better reports whether r is strictly cheaper than other.
// Any feasible result beats an infeasible one.
func (r Result) better(other Result) bool {
	if !r.feasible {
		return false
	}
	return !other.feasible || r.price < other.price
}

// Plan is one optimal railway: Segments run from the free start of the
// railway to the segment ending in a terminal connector.
// An infeasible plan has no segments.
type Plan struct {
	Result   Result
	Segments []Segment
}

// Length returns the summed length of the plan's segments.
func (p Plan) Length() uint64 {
	var total uint64
	for _, s := range p.Segments {
		total += s.Length
	}
	return total
}
