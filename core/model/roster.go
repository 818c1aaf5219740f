package model

import (
	"fmt"
	"strings"
)

// EmployeeID is the employee identity: the team name immediately followed by
// the display name, e.g. "ClientAlice".
type EmployeeID string

// Employee is a staff member with a squad and an ordered list of permitted
// roles.
type Employee struct {
	ID    EmployeeID
	Team  Team
	Name  string
	Roles []RoleID
}

// NewEmployee builds an employee with the identity derived from team and
// display name.
func NewEmployee(t Team, name string, roles []RoleID) Employee {
	return Employee{
		ID:    EmployeeID(string(t) + name),
		Team:  t,
		Name:  name,
		Roles: roles,
	}
}

// ParseIdentity splits an identity string into team and display name.
func ParseIdentity(id EmployeeID) (Team, string, error) {
	for _, t := range Teams() {
		if strings.HasPrefix(string(id), string(t)) {
			return t, strings.TrimPrefix(string(id), string(t)), nil
		}
	}
	return "", "", fmt.Errorf("identity %q does not start with a known team", id)
}

// Permitted reports whether the employee may hold the role.
func (e Employee) Permitted(r RoleID) bool {
	for _, have := range e.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Validate checks that the role list is a subset of the team's role set.
// An empty role list is legal: it only pins variables false and may surface
// later as infeasibility.
func (e Employee) Validate() error {
	if !e.Team.Valid() {
		return fmt.Errorf("employee %s: unknown team %q", e.ID, e.Team)
	}
	allowed := TeamRoles(e.Team)
	for _, r := range e.Roles {
		ok := false
		for _, a := range allowed {
			if a == r {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("employee %s: role %s not in team role set", e.ID, r)
		}
	}
	return nil
}

// Roster is the ordered staff list a schedule is built for. It is treated as
// a value: received once at build start, never written back.
type Roster struct {
	Employees []Employee
}

// Find returns the employee with the given identity.
func (r *Roster) Find(id EmployeeID) (Employee, bool) {
	for _, e := range r.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// TeamMembers returns the employees of a squad, keeping roster order.
func (r *Roster) TeamMembers(t Team) []Employee {
	var out []Employee
	for _, e := range r.Employees {
		if e.Team == t {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks every employee.
func (r *Roster) Validate() error {
	seen := make(map[EmployeeID]bool, len(r.Employees))
	for _, e := range r.Employees {
		if seen[e.ID] {
			return fmt.Errorf("duplicate employee %s", e.ID)
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}
