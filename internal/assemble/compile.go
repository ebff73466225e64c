package assemble

// edge is a usable segment seen from its End column.
type edge struct {
	from   int    // column of the segment's Start connector
	length uint64 // always > 0
	price  uint64
	seg    int // index into compiled.segments
}

// compiled is the catalog reshaped for the table fill.
type compiled struct {
	connectors []Connector       // column -> connector
	columns    map[Connector]int // connector -> column
	segments   []Segment         // usable, deduplicated, catalog order
	byEnd      [][]edge          // column -> segments ending there
	terminals  []int             // distinct terminal columns
	maxLength  uint64            // longest usable segment
}

// compile interns connectors and drops segments that can never appear in a
// plan: zero-length pieces, pieces longer than the target, and exact repeats.
func compile(cat Catalog) *compiled {
	c := &compiled{columns: make(map[Connector]int)}

	seen := make(map[Segment]struct{}, len(cat.Segments))
	for _, s := range cat.Segments {
		if s.Length == 0 || s.Length > cat.TargetLength {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		c.column(s.Start)
		c.column(s.End)
		c.segments = append(c.segments, s)
		if s.Length > c.maxLength {
			c.maxLength = s.Length
		}
	}

	isTerminal := make(map[int]bool, len(cat.Terminals))
	for _, t := range cat.Terminals {
		col := c.column(t)
		if isTerminal[col] {
			continue
		}
		isTerminal[col] = true
		c.terminals = append(c.terminals, col)
	}

	c.byEnd = make([][]edge, len(c.connectors))
	for i, s := range c.segments {
		end := c.columns[s.End]
		c.byEnd[end] = append(c.byEnd[end], edge{
			from:   c.columns[s.Start],
			length: s.Length,
			price:  s.Price,
			seg:    i,
		})
	}

	return c
}

// column returns the column for conn, allocating one on first sight.
func (c *compiled) column(conn Connector) int {
	if col, ok := c.columns[conn]; ok {
		return col
	}
	col := len(c.connectors)
	c.columns[conn] = col
	c.connectors = append(c.connectors, conn)
	return col
}
