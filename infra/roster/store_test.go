package roster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/squadplan/squadplan/core/model"
)

func tempStore(t *testing.T, contents string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "employees.json")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write roster: %v", err)
		}
	}
	return NewStore(path)
}

func TestLoad(t *testing.T) {
	s := tempStore(t, `{
  "ClientAlice": ["phone", "intercom", "tasks"],
  "FacturationBob": ["tasks"]
}`)
	r, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(r.Employees) != 2 {
		t.Fatalf("got %d employees", len(r.Employees))
	}
	alice, ok := r.Find("ClientAlice")
	if !ok || alice.Team != model.TeamClient || len(alice.Roles) != 3 {
		t.Errorf("alice: %+v ok=%v", alice, ok)
	}
	bob, _ := r.Find("FacturationBob")
	if !bob.Permitted(model.TasksRole()) || bob.Permitted(model.PhoneRole()) {
		t.Errorf("bob roles: %+v", bob.Roles)
	}
}

func TestLoadSortsByIdentity(t *testing.T) {
	s := tempStore(t, `{"FacturationZoe": [], "ClientAlice": []}`)
	r, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Employees[0].ID != "ClientAlice" || r.Employees[1].ID != "FacturationZoe" {
		t.Errorf("order: %v", r.Employees)
	}
}

func TestLoadMalformed(t *testing.T) {
	s := tempStore(t, `{"ClientAlice": ["phone"`)
	if _, err := s.Load(); !errors.Is(err, ErrMalformed) {
		t.Errorf("want ErrMalformed, got %v", err)
	}
}

func TestLoadUnknownTeam(t *testing.T) {
	s := tempStore(t, `{"SupportEve": ["phone"]}`)
	if _, err := s.Load(); err == nil {
		t.Error("unknown team prefix should fail")
	} else if errors.Is(err, ErrMalformed) {
		t.Error("semantic errors must stay distinct from decode errors")
	}
}

func TestLoadUnknownRole(t *testing.T) {
	s := tempStore(t, `{"ClientAlice": ["chat"]}`)
	if _, err := s.Load(); err == nil {
		t.Error("unknown role token should fail")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := s.Load(); err == nil {
		t.Error("missing file should fail")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s := tempStore(t, "")
	in := &model.Roster{Employees: []model.Employee{
		model.NewEmployee(model.TeamClient, "Alice", model.TeamRoles(model.TeamClient)),
		model.NewEmployee(model.TeamFacturation, "Bob", []model.RoleID{model.TasksRole()}),
	}}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Employees) != 2 {
		t.Fatalf("got %d employees", len(out.Employees))
	}
	for i := range in.Employees {
		if out.Employees[i].ID != in.Employees[i].ID {
			t.Errorf("employee %d: %s != %s", i, out.Employees[i].ID, in.Employees[i].ID)
		}
		if len(out.Employees[i].Roles) != len(in.Employees[i].Roles) {
			t.Errorf("employee %d: role count changed", i)
		}
	}
}

func TestSaveRejectsInvalidRoster(t *testing.T) {
	s := tempStore(t, "")
	bad := &model.Roster{Employees: []model.Employee{
		{ID: "ClientAlice", Team: "Support", Name: "Alice"},
	}}
	if err := s.Save(bad); err == nil {
		t.Error("invalid roster must not be written")
	}
}
