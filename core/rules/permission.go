package rules

import (
	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// RolePermission pins every assignment of a role the employee is not
// permitted to hold to false. An employee with an empty role list is not
// rejected here; the pins may simply make the model infeasible.
type RolePermission struct{}

func (RolePermission) Name() string       { return RuleRolePermission }
func (RolePermission) Requires() []string { return nil }

func (RolePermission) Apply(m *fabric.Model, _ Config) error {
	for _, e := range m.Roster().Employees {
		for _, r := range model.AllRoles() {
			if e.Permitted(r) {
				continue
			}
			for _, d := range model.Days() {
				for _, s := range model.Slots() {
					if v, ok := m.Assign(fabric.AssignKey{Employee: e.ID, Role: r, Day: d, Slot: s}); ok {
						m.Fix(v, false)
					}
				}
			}
		}
	}
	return nil
}
