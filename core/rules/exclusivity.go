package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// SingleRole forbids double-booking: per employee, day and slot, at most one
// role indicator may be true. Idle slots stay legal.
type SingleRole struct{}

func (SingleRole) Name() string       { return RuleSingleRole }
func (SingleRole) Requires() []string { return nil }

func (SingleRole) Apply(m *fabric.Model, _ Config) error {
	for _, e := range m.Roster().Employees {
		for _, d := range model.Days() {
			for _, s := range model.Slots() {
				vars := make([]fabric.BoolVar, 0, len(model.AllRoles()))
				for _, r := range model.AllRoles() {
					if v, ok := m.Assign(fabric.AssignKey{Employee: e.ID, Role: r, Day: d, Slot: s}); ok {
						vars = append(vars, v)
					}
				}
				m.AddLe(fmt.Sprintf("single_role/%s/%s/%s", e.ID, d, s.Label()), fabric.Sum(vars...), 1)
			}
		}
	}
	return nil
}
