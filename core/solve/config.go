package solve

import "fmt"

// Config defines search limits. The zero value is an unbounded search,
// matching the default behavior of a plain satisfaction run.
type Config struct {
	// TimeBudgetSeconds is the wall-clock budget for the whole solve,
	// improvement iterations included. 0 means unbounded.
	TimeBudgetSeconds int `json:"time_budget_seconds"`
	// MaxConflicts aborts a single search after that many conflicts.
	// 0 means unlimited.
	MaxConflicts int64 `json:"max_conflicts"`
	// SkipImprove stops after the first solution instead of tightening the
	// fairness spread.
	SkipImprove bool `json:"skip_improve"`
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.TimeBudgetSeconds < 0 {
		return fmt.Errorf("time_budget_seconds must not be negative")
	}
	if c.MaxConflicts < 0 {
		return fmt.Errorf("max_conflicts must not be negative")
	}
	return nil
}
