package assemble_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-railway/internal/assemble"
)

func TestSolvePlan_ScenarioA(t *testing.T) {
	t.Parallel()

	plan, err := assemble.SolvePlan(context.Background(), scenarioA())
	require.NoError(t, err)

	requirePrice(t, plan.Result, 6)
	assert.Equal(t, []assemble.Segment{
		seg("b", "a", 1, 2),
		seg("a", "b", 2, 4),
	}, plan.Segments)
	assert.Equal(t, uint64(3), plan.Length())
}

func TestSolvePlan_Infeasible(t *testing.T) {
	t.Parallel()

	cat := scenarioA()
	cat.Terminals = terms("x")

	plan, err := assemble.SolvePlan(context.Background(), cat)
	require.NoError(t, err)
	assert.False(t, plan.Result.Feasible())
	assert.Empty(t, plan.Segments)
}

func TestSolvePlan_ZeroTarget(t *testing.T) {
	t.Parallel()

	cat := scenarioA()
	cat.TargetLength = 0

	plan, err := assemble.SolvePlan(context.Background(), cat)
	require.NoError(t, err)
	requirePrice(t, plan.Result, 0)
	assert.Empty(t, plan.Segments)
}

func TestSolvePlan_NeedsFullTable(t *testing.T) {
	t.Parallel()

	_, err := assemble.SolvePlan(context.Background(), scenarioA(),
		assemble.WithMemoryMode(assemble.RollingWindow))
	assert.ErrorIs(t, err, assemble.ErrPlanNeedsFullTable)

	_, err = assemble.SolvePlan(context.Background(), scenarioA(),
		assemble.WithMemoryMode(assemble.MemoryMode(-1)))
	assert.ErrorIs(t, err, assemble.ErrBadMemoryMode)
}

// TestSolvePlan_IsAValidRailway checks on random catalogs that the reported
// plan chains by connector, ends in a terminal, covers the target exactly
// and costs exactly the reported price.
func TestSolvePlan_IsAValidRailway(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(9, 10))
	for i := range 300 {
		cat := randomCatalog(rng)

		plan, err := assemble.SolvePlan(context.Background(), cat)
		require.NoError(t, err)

		res, err := assemble.Solve(cat)
		require.NoError(t, err)
		require.Equal(t, res, plan.Result, "catalog #%d", i)

		if !res.Feasible() {
			assert.Empty(t, plan.Segments)
			continue
		}

		assert.Equal(t, cat.TargetLength, plan.Length(), "catalog #%d", i)

		var total uint64
		for j, s := range plan.Segments {
			total += s.Price
			assert.Contains(t, cat.Segments, s, "catalog #%d: plan uses unknown segment", i)
			if j > 0 {
				assert.Equal(t, plan.Segments[j-1].End, s.Start, "catalog #%d: broken chain at %d", i, j)
			}
		}
		want, _ := res.Price()
		assert.Equal(t, want, total, "catalog #%d", i)

		if n := len(plan.Segments); n > 0 {
			assert.Contains(t, cat.Terminals, plan.Segments[n-1].End, "catalog #%d", i)
		}
	}
}
