package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// TasksParticipation makes every employee hold the shared task/chat duty at
// least once across the week. It reads the memoized weekly totals so the
// same expression backs the fairness groups.
type TasksParticipation struct{}

func (TasksParticipation) Name() string       { return RuleTasksParticipation }
func (TasksParticipation) Requires() []string { return nil }

func (TasksParticipation) Apply(m *fabric.Model, _ Config) error {
	tasks := model.TasksRole()
	for _, e := range m.Roster().Employees {
		total := m.Total(fabric.TotalKey{Employee: e.ID, Role: tasks})
		m.AddGe(fmt.Sprintf("tasks_participation/%s", e.ID), total, 1)
	}
	return nil
}
