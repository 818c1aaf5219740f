package metrics

import "time"

// BuildEvent describes one compiled model, recorded before solving.
type BuildEvent struct {
	RunID       string
	Employees   int
	Variables   int
	Constraints int
}

// SolveEvent describes the outcome of one solve run.
type SolveEvent struct {
	RunID     string
	Status    string
	Objective int
	Decisions int64
	Conflicts int64
	Elapsed   time.Duration
}

// Sink records schedule-generation events for observability purposes.
type Sink interface {
	RecordBuild(ev BuildEvent) error
	RecordSolve(ev SolveEvent) error
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) RecordBuild(BuildEvent) error { return nil }
func (NopSink) RecordSolve(SolveEvent) error { return nil }
