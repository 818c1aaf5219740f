package rules

import (
	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// slotSum builds the sum of one employee's indicators for a role over the
// given slots of a day.
func slotSum(m *fabric.Model, e model.EmployeeID, r model.RoleID, d model.Day, slots []model.Slot) fabric.LinearExpr {
	vars := make([]fabric.BoolVar, 0, len(slots))
	for _, s := range slots {
		if v, ok := m.Assign(fabric.AssignKey{Employee: e, Role: r, Day: d, Slot: s}); ok {
			vars = append(vars, v)
		}
	}
	return fabric.Sum(vars...)
}

// headcount builds the sum of a role's indicators over a set of employees at
// one day/slot.
func headcount(m *fabric.Model, employees []model.Employee, r model.RoleID, d model.Day, s model.Slot) fabric.LinearExpr {
	vars := make([]fabric.BoolVar, 0, len(employees))
	for _, e := range employees {
		if v, ok := m.Assign(fabric.AssignKey{Employee: e.ID, Role: r, Day: d, Slot: s}); ok {
			vars = append(vars, v)
		}
	}
	return fabric.Sum(vars...)
}
