package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/logger"
	"github.com/squadplan/squadplan/core/model"
)

// Rule names, used as toggle keys.
const (
	RuleCalendarClosure    = "calendar_closure"
	RuleRolePermission     = "role_permission"
	RuleSingleRole         = "single_role"
	RulePhoneCoverage      = "phone_coverage"
	RuleTeamDuty           = "team_duty"
	RuleSharedDuty         = "shared_duty"
	RuleTasksParticipation = "tasks_participation"
	RulePhoneFreeHalfDay   = "phone_free_half_day"
	RuleContinuityCap      = "continuity_cap"
	RulePhoneBlocks        = "phone_blocks"
	RuleRestCapacity       = "rest_capacity"
	RuleFairness           = "fairness"
)

// Rule emits the constraints of one staffing rule over the fabric. Rules are
// independent: each must be correct in isolation, and one that reads
// indicator variables defined by another rule declares that rule in
// Requires.
type Rule interface {
	Name() string
	Requires() []string
	Apply(m *fabric.Model, cfg Config) error
}

// Catalog returns every rule in its fixed compilation order. Order only
// affects variable numbering, never correctness: all constraints coexist in
// one model.
func Catalog() []Rule {
	return []Rule{
		CalendarClosure{},
		RolePermission{},
		SingleRole{},
		PhoneCoverage{},
		TeamDuty{},
		SharedDuty{},
		TasksParticipation{},
		PhoneFreeHalfDay{},
		ContinuityCap{},
		PhoneBlocks{},
		RestCapacity{},
		Fairness{},
	}
}

func knownRule(name string) bool {
	for _, r := range Catalog() {
		if r.Name() == name {
			return true
		}
	}
	return false
}

// Compile builds a fresh model for the roster and applies every enabled
// rule. A rule whose prerequisite is disabled is gated off with a warning
// rather than left to dereference missing variables.
func Compile(roster *model.Roster, cal model.Calendar, cfg Config, log logger.Logger) (*fabric.Model, error) {
	return compile(roster, cal, cfg, log, Catalog())
}

func compile(roster *model.Roster, cal model.Calendar, cfg Config, log logger.Logger, catalog []Rule) (*fabric.Model, error) {
	m := fabric.NewModel(roster, cal)
	enabled := make(map[string]bool, len(catalog))
	for _, r := range catalog {
		enabled[r.Name()] = cfg.Enabled(r.Name())
	}
	for _, r := range catalog {
		if !enabled[r.Name()] {
			continue
		}
		gated := false
		for _, req := range r.Requires() {
			if !enabled[req] {
				log.Warnf("rule %s disabled: prerequisite %s is off", r.Name(), req)
				gated = true
			}
		}
		if gated {
			continue
		}
		if err := r.Apply(m, cfg); err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Name(), err)
		}
	}
	return m, nil
}
