package solve

import (
	"context"
	"time"

	"github.com/squadplan/squadplan/core/fabric"
)

// Status classifies the outcome of a solve.
type Status int

const (
	// StatusUnknown means the search ran out of budget before finding a
	// solution or proving there is none.
	StatusUnknown Status = iota
	// StatusFeasible means a solution was found but optimality of the
	// objective was not proven.
	StatusFeasible
	// StatusOptimal means a solution was found and no better objective
	// value exists.
	StatusOptimal
	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusFeasible:
		return "feasible"
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Solved reports whether the status carries a usable assignment.
func (s Status) Solved() bool { return s == StatusFeasible || s == StatusOptimal }

// Stats summarizes the search effort.
type Stats struct {
	Decisions    int64
	Conflicts    int64
	Propagations int64
	Improvements int
	Elapsed      time.Duration
}

// Result is the engine's answer: a status and, when solved, one value per
// variable plus the achieved objective (largest fairness spread; 0 when the
// model has no objective).
type Result struct {
	Status    Status
	Values    fabric.Values
	Objective int
	Stats     Stats
}

// Engine searches for an assignment satisfying a compiled model. The call
// blocks; cancellation and deadlines arrive through the context and the
// engine's own budget. It is invoked exactly once per schedule request.
type Engine interface {
	Solve(ctx context.Context, m *fabric.Model) (Result, error)
}
