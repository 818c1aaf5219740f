package model

import "testing"

func TestParseIdentity(t *testing.T) {
	team, name, err := ParseIdentity("ClientAlice")
	if err != nil || team != TeamClient || name != "Alice" {
		t.Fatalf("got %s/%s err=%v", team, name, err)
	}
	team, name, err = ParseIdentity("FacturationBob")
	if err != nil || team != TeamFacturation || name != "Bob" {
		t.Fatalf("got %s/%s err=%v", team, name, err)
	}
	if _, _, err := ParseIdentity("SupportEve"); err == nil {
		t.Error("unknown team prefix should be rejected")
	}
}

func TestNewEmployeeIdentity(t *testing.T) {
	e := NewEmployee(TeamClient, "Alice", TeamRoles(TeamClient))
	if e.ID != "ClientAlice" {
		t.Errorf("identity %s, want ClientAlice", e.ID)
	}
	if !e.Permitted(PhoneRole()) || !e.Permitted(IntercomRole(TeamClient)) {
		t.Error("employee should hold the full team role set")
	}
	if e.Permitted(IntercomRole(TeamFacturation)) {
		t.Error("other squad's intercom must not be permitted")
	}
}

func TestEmployeeValidateRejectsForeignIntercom(t *testing.T) {
	e := NewEmployee(TeamClient, "Alice", []RoleID{IntercomRole(TeamFacturation)})
	if err := e.Validate(); err == nil {
		t.Error("foreign intercom role should fail validation")
	}
}

func TestEmployeeValidateAllowsEmptyRoles(t *testing.T) {
	e := NewEmployee(TeamClient, "Idle", nil)
	if err := e.Validate(); err != nil {
		t.Errorf("empty role list should be legal: %v", err)
	}
}

func TestRosterValidateDuplicate(t *testing.T) {
	r := Roster{Employees: []Employee{
		NewEmployee(TeamClient, "Alice", nil),
		NewEmployee(TeamClient, "Alice", nil),
	}}
	if err := r.Validate(); err == nil {
		t.Error("duplicate identity should fail validation")
	}
}

func TestParseRoleName(t *testing.T) {
	r, err := ParseRoleName(TeamFacturation, "intercom")
	if err != nil || r != IntercomRole(TeamFacturation) {
		t.Fatalf("got %v err=%v", r, err)
	}
	if _, err := ParseRoleName(TeamClient, "chat"); err == nil {
		t.Error("unknown token should be rejected")
	}
}
