package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// SharedDuty bounds the task/chat duty per squad. In cap mode at most one
// member of a squad holds it per working slot; in halfday_min mode a squad
// must instead accumulate a minimum number of tasks-slots per half-day.
type SharedDuty struct{}

func (SharedDuty) Name() string       { return RuleSharedDuty }
func (SharedDuty) Requires() []string { return nil }

func (SharedDuty) Apply(m *fabric.Model, cfg Config) error {
	cal := m.Calendar()
	tasks := model.TasksRole()
	for _, t := range model.Teams() {
		members := m.Roster().TeamMembers(t)
		switch cfg.SharedDuty.Mode {
		case SharedDutyHalfDayMin:
			for _, d := range model.Days() {
				for _, h := range model.Halves() {
					vars := make([]fabric.BoolVar, 0, len(members)*8)
					for _, e := range members {
						for _, s := range cal.HalfSlots(d, h) {
							if v, ok := m.Assign(fabric.AssignKey{Employee: e.ID, Role: tasks, Day: d, Slot: s}); ok {
								vars = append(vars, v)
							}
						}
					}
					name := fmt.Sprintf("shared_duty_min/%s/%s/%s", t, d, h)
					m.AddGe(name, fabric.Sum(vars...), cfg.SharedDuty.HalfDayMin)
				}
			}
		default:
			for _, d := range model.Days() {
				for _, s := range cal.WorkingSlots(d) {
					sum := headcount(m, members, tasks, d, s)
					m.AddLe(fmt.Sprintf("shared_duty_cap/%s/%s/%s", t, d, s.Label()), sum, 1)
				}
			}
		}
	}
	return nil
}
