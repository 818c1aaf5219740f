package planner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/squadplan/squadplan/core/logger"
	"github.com/squadplan/squadplan/core/metrics"
	"github.com/squadplan/squadplan/core/model"
	"github.com/squadplan/squadplan/core/rules"
	"github.com/squadplan/squadplan/core/schedule"
	"github.com/squadplan/squadplan/core/solve"
)

// ErrNoSchedule is returned when no assignment satisfies the active rules.
// Infeasibility proofs and exhausted searches are reported identically: both
// mean the request ends without a schedule and needs a rule or roster change
// before retrying.
var ErrNoSchedule = errors.New("no schedule satisfies the active rules")

// Outcome is the result of one schedule generation.
type Outcome struct {
	RunID     string
	Week      schedule.Week
	Status    solve.Status
	Objective int
	Stats     solve.Stats
}

// Planner runs one full build-solve-materialize cycle per request. The
// variable fabric and constraint set live only for the duration of a
// Generate call; nothing is shared between requests except the engine
// configuration.
type Planner struct {
	cal    model.Calendar
	rules  rules.Config
	engine solve.Engine
	log    logger.Logger
	sink   metrics.Sink
}

// New wires a planner. A nil sink disables metrics.
func New(cal model.Calendar, cfg rules.Config, engine solve.Engine, log logger.Logger, sink metrics.Sink) *Planner {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{cal: cal, rules: cfg, engine: engine, log: log, sink: sink}
}

// Generate compiles the model for the roster, solves it once and
// materializes the solved values. The roster is read-once: it is not
// validated or written back, and inconsistencies such as an empty permitted
// role list surface as infeasibility rather than as errors.
func (p *Planner) Generate(ctx context.Context, roster *model.Roster) (*Outcome, error) {
	runID := uuid.NewString()
	log := p.log

	m, err := rules.Compile(roster, p.cal, p.rules, log)
	if err != nil {
		return nil, err
	}
	if err := p.sink.RecordBuild(metrics.BuildEvent{
		RunID:       runID,
		Employees:   len(roster.Employees),
		Variables:   m.NumBools(),
		Constraints: len(m.Constraints()),
	}); err != nil {
		log.Warnf("record build: %v", err)
	}
	log.Infof("model compiled: %d employees, %d variables, %d constraints",
		len(roster.Employees), m.NumBools(), len(m.Constraints()))

	res, err := p.engine.Solve(ctx, m)
	if err != nil {
		return nil, err
	}
	if serr := p.sink.RecordSolve(metrics.SolveEvent{
		RunID:     runID,
		Status:    res.Status.String(),
		Objective: res.Objective,
		Decisions: res.Stats.Decisions,
		Conflicts: res.Stats.Conflicts,
		Elapsed:   res.Stats.Elapsed,
	}); serr != nil {
		log.Warnf("record solve: %v", serr)
	}
	log.Infof("solve %s: status=%s objective=%d conflicts=%d elapsed=%s",
		runID, res.Status, res.Objective, res.Stats.Conflicts, res.Stats.Elapsed)

	if !res.Status.Solved() {
		return nil, ErrNoSchedule
	}

	return &Outcome{
		RunID:     runID,
		Week:      schedule.Materialize(m, res.Values),
		Status:    res.Status,
		Objective: res.Objective,
		Stats:     res.Stats,
	}, nil
}
