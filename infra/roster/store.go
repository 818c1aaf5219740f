package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/squadplan/squadplan/core/model"
)

// ErrMalformed reports a roster file that cannot be decoded.
var ErrMalformed = errors.New("malformed roster file")

// Store persists a roster as a single JSON document mapping employee
// identities to their permitted role tokens. Writes replace the whole file;
// there is no per-employee update.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads and decodes the roster. Employees come back sorted by identity
// so repeated loads produce the same ordering regardless of file layout.
func (s *Store) Load() (*model.Roster, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", s.path, err)
	}
	var doc map[string][]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, s.path, err)
	}

	identities := make([]string, 0, len(doc))
	for id := range doc {
		identities = append(identities, id)
	}
	sort.Strings(identities)

	r := &model.Roster{Employees: make([]model.Employee, 0, len(identities))}
	for _, identity := range identities {
		team, name, err := model.ParseIdentity(model.EmployeeID(identity))
		if err != nil {
			return nil, fmt.Errorf("roster %s: %w", s.path, err)
		}
		roles := make([]model.RoleID, 0, len(doc[identity]))
		for _, token := range doc[identity] {
			role, err := model.ParseRoleName(team, token)
			if err != nil {
				return nil, fmt.Errorf("roster %s: employee %s: %w", s.path, identity, err)
			}
			roles = append(roles, role)
		}
		r.Employees = append(r.Employees, model.NewEmployee(team, name, roles))
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("roster %s: %w", s.path, err)
	}
	return r, nil
}

// Save writes the whole roster back, replacing the previous file contents.
func (s *Store) Save(r *model.Roster) error {
	if err := r.Validate(); err != nil {
		return err
	}
	doc := make(map[string][]string, len(r.Employees))
	for _, e := range r.Employees {
		tokens := make([]string, 0, len(e.Roles))
		for _, role := range e.Roles {
			tokens = append(tokens, role.Name())
		}
		doc[string(e.ID)] = tokens
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	if err := os.WriteFile(s.path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write roster %s: %w", s.path, err)
	}
	return nil
}
