package solve

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// scratchModel returns a model whose assignment variables serve as plain
// booleans for hand-built constraint sets.
func scratchModel(t *testing.T) *fabric.Model {
	t.Helper()
	r := &model.Roster{Employees: []model.Employee{
		model.NewEmployee(model.TeamClient, "Alice", model.TeamRoles(model.TeamClient)),
	}}
	return fabric.NewModel(r, model.DefaultCalendar())
}

func solveModel(t *testing.T, cfg Config, m *fabric.Model) Result {
	t.Helper()
	res, err := NewSearchEngine(cfg, nil).Solve(context.Background(), m)
	require.NoError(t, err)
	return res
}

func TestSolveSatisfiable(t *testing.T) {
	m := scratchModel(t)
	m.AddEq("one-of-two", fabric.Sum(0, 1), 1)

	res := solveModel(t, Config{}, m)
	require.Equal(t, StatusFeasible, res.Status)
	require.Equal(t, 1, fabric.Sum(0, 1).Eval(res.Values))
}

func TestSolveInfeasible(t *testing.T) {
	m := scratchModel(t)
	m.AddEq("on", fabric.Sum(0), 1)
	m.AddEq("off", fabric.Sum(0), 0)

	res := solveModel(t, Config{}, m)
	require.Equal(t, StatusInfeasible, res.Status)
	require.Nil(t, res.Values)
}

func TestSolveEmptySumBounds(t *testing.T) {
	// A constraint over no variables has a fixed sum of zero. It never
	// appears on a watch list, so it must be rejected at the root.
	m := scratchModel(t)
	m.AddEq("empty-demand", fabric.Sum(), 4)

	res := solveModel(t, Config{}, m)
	require.Equal(t, StatusInfeasible, res.Status)
	require.Nil(t, res.Values)
}

func TestSolveEmptySumGuardForcedOff(t *testing.T) {
	m := scratchModel(t)
	guard := fabric.BoolVar(10)
	m.AddImplies("empty-demand", guard, true, fabric.Sum(), 1, 1)

	res := solveModel(t, Config{}, m)
	require.Equal(t, StatusFeasible, res.Status)
	require.False(t, res.Values.True(guard))
}

func TestSolveContradictoryPins(t *testing.T) {
	m := scratchModel(t)
	m.Fix(0, true)
	m.Fix(0, false)

	res := solveModel(t, Config{}, m)
	require.Equal(t, StatusInfeasible, res.Status)
}

func TestSolveHonorsPins(t *testing.T) {
	m := scratchModel(t)
	m.Fix(0, false)
	m.AddEq("one-of-two", fabric.Sum(0, 1), 1)

	res := solveModel(t, Config{}, m)
	require.Equal(t, StatusFeasible, res.Status)
	require.False(t, res.Values.True(0))
	require.True(t, res.Values.True(1))
}

func TestSolveGuardedConstraints(t *testing.T) {
	m := scratchModel(t)
	guard := fabric.BoolVar(10)
	m.AddImplies("all-three", guard, true, fabric.Sum(0, 1, 2), 3, 3)
	m.AddImplies("none", guard, false, fabric.Sum(0, 1, 2), 0, 0)
	m.AddEq("pick-first", fabric.Sum(0), 1)

	res := solveModel(t, Config{}, m)
	require.Equal(t, StatusFeasible, res.Status)
	require.True(t, res.Values.True(guard))
	require.Equal(t, 3, fabric.Sum(0, 1, 2).Eval(res.Values))
}

func TestSolveGuardBackPropagation(t *testing.T) {
	m := scratchModel(t)
	guard := fabric.BoolVar(10)
	m.AddImplies("all-three", guard, true, fabric.Sum(0, 1, 2), 3, 3)
	m.AddImplies("none", guard, false, fabric.Sum(0, 1, 2), 0, 0)
	m.Fix(0, true)
	m.Fix(1, false)

	// guard=true is impossible with var 1 pinned false, so the inactive
	// branch must win and zero the remaining variable.
	res := solveModel(t, Config{}, m)
	require.Equal(t, StatusInfeasible, res.Status)
}

func TestSolveConflictLimit(t *testing.T) {
	m := scratchModel(t)
	// odd cycle: x0+x1 = x1+x2 = x0+x2 = 1 has no boolean solution
	m.AddEq("a", fabric.Sum(0, 1), 1)
	m.AddEq("b", fabric.Sum(1, 2), 1)
	m.AddEq("c", fabric.Sum(0, 2), 1)

	res := solveModel(t, Config{MaxConflicts: 1}, m)
	require.Equal(t, StatusUnknown, res.Status)

	res = solveModel(t, Config{}, m)
	require.Equal(t, StatusInfeasible, res.Status)
}

func TestSolveCanceledContext(t *testing.T) {
	m := scratchModel(t)
	m.AddEq("one-of-two", fabric.Sum(0, 1), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := NewSearchEngine(Config{}, nil).Solve(ctx, m)
	require.NoError(t, err)
	require.Equal(t, StatusUnknown, res.Status)
}

func TestSolveImprovesSpread(t *testing.T) {
	m := scratchModel(t)
	// two singleton totals that can always be made equal
	m.AddSpreadGroup(fabric.SpreadGroup{
		Name:  "pair",
		Exprs: []fabric.LinearExpr{fabric.Sum(0), fabric.Sum(1)},
	})

	res := solveModel(t, Config{}, m)
	require.Equal(t, StatusOptimal, res.Status)
	require.Zero(t, res.Objective)
}

func TestSolveSkipImprove(t *testing.T) {
	m := scratchModel(t)
	m.AddEq("first-on", fabric.Sum(0), 1)
	m.AddEq("second-off", fabric.Sum(1), 0)
	m.AddSpreadGroup(fabric.SpreadGroup{
		Name:  "pair",
		Exprs: []fabric.LinearExpr{fabric.Sum(0), fabric.Sum(1)},
	})

	res := solveModel(t, Config{SkipImprove: true}, m)
	require.Equal(t, StatusFeasible, res.Status)
	require.Equal(t, 1, res.Objective)
}

func TestSolveStatsPopulated(t *testing.T) {
	m := scratchModel(t)
	m.AddEq("one-of-two", fabric.Sum(0, 1), 1)

	start := time.Now()
	res := solveModel(t, Config{}, m)
	require.Equal(t, StatusFeasible, res.Status)
	require.NotZero(t, res.Stats.Decisions)
	require.LessOrEqual(t, res.Stats.Elapsed, time.Since(start)+time.Second)
}

func TestStatusStrings(t *testing.T) {
	require.Equal(t, "feasible", StatusFeasible.String())
	require.Equal(t, "optimal", StatusOptimal.String())
	require.Equal(t, "infeasible", StatusInfeasible.String())
	require.Equal(t, "unknown", StatusUnknown.String())
	require.True(t, StatusOptimal.Solved())
	require.False(t, StatusUnknown.Solved())
}
