package model

import "fmt"

// Team identifies one of the two customer-service squads.
type Team string

const (
	TeamClient      Team = "Client"
	TeamFacturation Team = "Facturation"
)

// Teams returns the squads in display order.
func Teams() []Team { return []Team{TeamClient, TeamFacturation} }

// Valid reports whether the team is one of the known squads.
func (t Team) Valid() bool { return t == TeamClient || t == TeamFacturation }

// RoleKind defines the duty category of a role.
type RoleKind int

const (
	RolePhone RoleKind = iota
	RoleIntercom
	RoleTasks
)

// String returns a human-readable representation of the role kind.
func (k RoleKind) String() string {
	switch k {
	case RolePhone:
		return "phone"
	case RoleIntercom:
		return "intercom"
	case RoleTasks:
		return "tasks"
	default:
		return "unknown"
	}
}

// RoleID identifies a concrete role. The intercom duty is scoped to a team:
// the Client intercom and the Facturation intercom are distinct roles. Phone
// and tasks are shared across squads and carry an empty Team.
type RoleID struct {
	Kind RoleKind
	Team Team
}

// PhoneRole returns the shared phone duty.
func PhoneRole() RoleID { return RoleID{Kind: RolePhone} }

// IntercomRole returns the dedicated intercom duty of the given team.
func IntercomRole(t Team) RoleID { return RoleID{Kind: RoleIntercom, Team: t} }

// TasksRole returns the shared task/chat duty.
func TasksRole() RoleID { return RoleID{Kind: RoleTasks} }

// AllRoles returns every role in the model, in a fixed order.
func AllRoles() []RoleID {
	return []RoleID{
		PhoneRole(),
		IntercomRole(TeamClient),
		IntercomRole(TeamFacturation),
		TasksRole(),
	}
}

// TeamRoles returns the role set an employee of the given team may hold.
func TeamRoles(t Team) []RoleID {
	return []RoleID{PhoneRole(), IntercomRole(t), TasksRole()}
}

// Name returns the role token used in the roster file. Team scoping of the
// intercom duty is implicit there: the employee's team decides which
// intercom role the token maps to.
func (r RoleID) Name() string { return r.Kind.String() }

// String returns a unique representation, including the team scope.
func (r RoleID) String() string {
	if r.Kind == RoleIntercom {
		return fmt.Sprintf("intercom/%s", r.Team)
	}
	return r.Kind.String()
}

// ParseRoleName maps a roster file token to the concrete role for an
// employee of the given team.
func ParseRoleName(t Team, name string) (RoleID, error) {
	switch name {
	case "phone":
		return PhoneRole(), nil
	case "intercom":
		return IntercomRole(t), nil
	case "tasks":
		return TasksRole(), nil
	default:
		return RoleID{}, fmt.Errorf("unknown role %q", name)
	}
}
