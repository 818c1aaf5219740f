package fabric

import "github.com/squadplan/squadplan/core/model"

// AssignKey identifies the decision "employee performs role at day/slot".
// Variables are created and later looked up through this key; no string
// labels are involved, so collisions and lookup misses cannot happen.
type AssignKey struct {
	Employee model.EmployeeID
	Role     model.RoleID
	Day      model.Day
	Slot     model.Slot
}

// HalfDayKey identifies a per-employee, per-day half-day indicator such as
// "morning without phone".
type HalfDayKey struct {
	Employee model.EmployeeID
	Day      model.Day
	Half     model.Half
}

// BlockKey identifies an early/late phone block indicator.
type BlockKey struct {
	Employee model.EmployeeID
	Day      model.Day
	Half     model.Half
	Window   model.Window
}

// TotalKey identifies a weekly per-employee, per-role slot total.
type TotalKey struct {
	Employee model.EmployeeID
	Role     model.RoleID
}
