package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
	"github.com/squadplan/squadplan/core/rules"
	"github.com/squadplan/squadplan/core/schedule"
	"github.com/squadplan/squadplan/core/solve"
)

type testLogger struct{}

func (testLogger) Debugf(string, ...any)         {}
func (testLogger) Debugw(string, map[string]any) {}
func (testLogger) Infof(string, ...any)          {}
func (testLogger) Warnf(string, ...any)          {}
func (testLogger) Errorf(string, ...any)         {}

func fullRoster(perTeam int) *model.Roster {
	names := []string{"Alice", "Bob", "Carol", "Dan", "Eve", "Frank"}
	r := &model.Roster{}
	for _, t := range model.Teams() {
		for i := 0; i < perTeam; i++ {
			r.Employees = append(r.Employees, model.NewEmployee(t, names[i], model.TeamRoles(t)))
		}
	}
	return r
}

func newPlanner(rcfg rules.Config, scfg solve.Config) *Planner {
	engine := solve.NewSearchEngine(scfg, testLogger{})
	return New(model.DefaultCalendar(), rcfg, engine, testLogger{}, nil)
}

func TestGenerateUnderstaffed(t *testing.T) {
	var rcfg rules.Config
	rcfg.SetDefaults()
	p := newPlanner(rcfg, solve.Config{TimeBudgetSeconds: 30})

	r := &model.Roster{Employees: []model.Employee{
		model.NewEmployee(model.TeamClient, "Alice", model.TeamRoles(model.TeamClient)),
	}}
	_, err := p.Generate(context.Background(), r)
	require.ErrorIs(t, err, ErrNoSchedule)
}

func TestGenerateEmptyRoster(t *testing.T) {
	// With nobody to assign, every coverage equality is a demand over an
	// empty sum and the build must fail instead of reporting a blank week.
	var rcfg rules.Config
	rcfg.SetDefaults()
	p := newPlanner(rcfg, solve.Config{TimeBudgetSeconds: 30})

	_, err := p.Generate(context.Background(), &model.Roster{})
	require.ErrorIs(t, err, ErrNoSchedule)
}

func TestGenerateFullWeek(t *testing.T) {
	if testing.Short() {
		t.Skip("full-week solve")
	}
	var rcfg rules.Config
	rcfg.SetDefaults()
	p := newPlanner(rcfg, solve.Config{TimeBudgetSeconds: 120, SkipImprove: true})

	roster := fullRoster(5)
	outcome, err := p.Generate(context.Background(), roster)
	require.NoError(t, err)
	require.True(t, outcome.Status.Solved())
	require.NotEmpty(t, outcome.RunID)
	require.Len(t, outcome.Week.Days, 5)

	verifyWeek(t, roster, outcome.Week)
}

func TestGenerateWithoutFairness(t *testing.T) {
	if testing.Short() {
		t.Skip("full-week solve")
	}
	var rcfg rules.Config
	rcfg.SetDefaults()
	rcfg.Toggles = map[string]bool{rules.RuleFairness: false}
	p := newPlanner(rcfg, solve.Config{TimeBudgetSeconds: 120})

	outcome, err := p.Generate(context.Background(), fullRoster(5))
	require.NoError(t, err)

	// without spread groups there is nothing to improve, so a found
	// solution is not reported as optimal
	require.Equal(t, solve.StatusFeasible, outcome.Status)
	require.Zero(t, outcome.Objective)
}

// verifyWeek checks the headline staffing properties on the rendered week:
// phone headcounts per covered slot, one intercom per squad and slot, weekly
// task participation and the weekly phone-free half-day.
func verifyWeek(t *testing.T, roster *model.Roster, week schedule.Week) {
	t.Helper()
	cal := model.DefaultCalendar()

	rowOf := func(d schedule.DayTable, id model.EmployeeID) schedule.Row {
		for _, row := range d.Rows {
			if row.Employee == id {
				return row
			}
		}
		t.Fatalf("no row for %s", id)
		return schedule.Row{}
	}

	for _, day := range week.Days {
		for _, s := range cal.WorkingSlots(day.Day) {
			phones := 0
			intercoms := map[model.Team]int{}
			for _, row := range day.Rows {
				switch row.Symbols[s] {
				case schedule.SymbolPhone:
					phones++
				case schedule.SymbolIntercom:
					team, _, err := model.ParseIdentity(row.Employee)
					require.NoError(t, err)
					intercoms[team]++
				}
			}
			if target, covered := cal.PhoneTarget(day.Day, s); covered {
				require.Equalf(t, target, phones, "%s %s phone headcount", day.Day, s.Label())
			}
			for _, team := range model.Teams() {
				require.Equalf(t, 1, intercoms[team], "%s %s %s intercom", day.Day, s.Label(), team)
			}
		}
	}

	for _, e := range roster.Employees {
		tasks := 0
		freeHalves := 0
		for _, day := range week.Days {
			row := rowOf(day, e.ID)
			for _, sym := range row.Symbols {
				if sym == schedule.SymbolTasks {
					tasks++
				}
			}
			for _, h := range model.Halves() {
				if h == model.AfternoonHalf && !cal.HasAfternoonRest(day.Day) {
					continue
				}
				onPhone := false
				for _, s := range cal.HalfSlots(day.Day, h) {
					if row.Symbols[s] == schedule.SymbolPhone {
						onPhone = true
						break
					}
				}
				if !onPhone {
					freeHalves++
				}
			}
		}
		require.NotZerof(t, tasks, "%s weekly task participation", e.ID)
		require.NotZerof(t, freeHalves, "%s phone-free half-day", e.ID)
	}
}

// TestSolveAssignmentShape drives the compiled model through the engine and
// checks the raw variable assignment, which the rendered week cannot show:
// at most one role per employee and tick, non-phone runs under the sliding
// caps, and phone duty taken in whole blocks.
func TestSolveAssignmentShape(t *testing.T) {
	if testing.Short() {
		t.Skip("full-week solve")
	}
	var rcfg rules.Config
	rcfg.SetDefaults()
	roster := fullRoster(5)
	cal := model.DefaultCalendar()
	m, err := rules.Compile(roster, cal, rcfg, testLogger{})
	require.NoError(t, err)
	engine := solve.NewSearchEngine(solve.Config{TimeBudgetSeconds: 120, SkipImprove: true}, testLogger{})
	res, err := engine.Solve(context.Background(), m)
	require.NoError(t, err)
	require.True(t, res.Status.Solved())

	assigned := func(e model.EmployeeID, r model.RoleID, d model.Day, s model.Slot) bool {
		v, ok := m.Assign(fabric.AssignKey{Employee: e, Role: r, Day: d, Slot: s})
		return ok && res.Values.True(v)
	}

	for _, e := range roster.Employees {
		for _, d := range model.Days() {
			for _, s := range cal.WorkingSlots(d) {
				held := 0
				for _, r := range model.AllRoles() {
					if assigned(e.ID, r, d, s) {
						held++
					}
				}
				require.LessOrEqualf(t, held, 1, "%s %s %s roles held", e.ID, d, s.Label())
			}
			for _, h := range model.Halves() {
				band := cal.ContinuityBand(d, h)
				window, cap := cal.ContinuitySpan(d, h)
				for _, r := range model.AllRoles() {
					if r.Kind == model.RolePhone {
						continue
					}
					for start := 0; start+window <= len(band); start++ {
						run := 0
						for _, s := range band[start : start+window] {
							if assigned(e.ID, r, d, s) {
								run++
							}
						}
						require.LessOrEqualf(t, run, cap, "%s %s %s %s run from %s",
							e.ID, r, d, h, band[start].Label())
					}
				}
				length := cal.BlockLength(d, h)
				for _, w := range []model.Window{model.EarlyWindow, model.LateWindow} {
					ticks := 0
					for _, s := range cal.BlockWindow(d, h, w) {
						if assigned(e.ID, model.PhoneRole(), d, s) {
							ticks++
						}
					}
					require.Containsf(t, []int{0, length}, ticks,
						"%s %s %s %s phone block", e.ID, d, h, w)
				}
			}
		}
	}
}
