// Package assemble computes the cheapest way to build a railway of an exact
// length from an unbounded catalog of typed rail segments.
//
// A segment joins the railway end-to-start: a segment whose Start connector is
// c may only follow a segment whose End connector is c. The last segment must
// end in one of the catalog's terminal connectors, and the segment lengths
// must sum to the target length exactly.
//
// Recurrence:
//
//	cost(0, c) = 0                                          for every c
//	cost(L, c) = min { s.Price + cost(L - s.Length, s.Start) : s.End == c, 0 < s.Length <= L }
//	answer     = min { cost(Target, t) : t in Terminals }
//
// The table is filled bottom-up for L = 0..Target, one column per distinct
// connector, so every (length, connector) state is evaluated exactly once and
// the call stack never grows with the target length.
//
// Memory modes:
//   - RollingWindow (default) keeps only the last maxSegmentLength+1 rows.
//   - FullTable keeps every row and is required by SolvePlan.
//
// Complexity:
//
//	Time   = O(L·(K+S)), with L = target length, K = distinct connectors,
//	         S = usable segments (each row scans every segment once)
//	Memory = O(W·K), W = min(L, maxSegmentLength)+1 (RollingWindow)
//	         or O(L·K) (FullTable)
//
// Infeasibility is a normal outcome, reported as Infeasible() rather than an
// error or a sentinel price. A candidate whose price sum overflows uint64 is
// pruned.
package assemble
