package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// TeamDuty keeps exactly one member of each squad on that squad's intercom
// duty in every working slot.
type TeamDuty struct{}

func (TeamDuty) Name() string       { return RuleTeamDuty }
func (TeamDuty) Requires() []string { return nil }

func (TeamDuty) Apply(m *fabric.Model, _ Config) error {
	cal := m.Calendar()
	for _, t := range model.Teams() {
		members := m.Roster().TeamMembers(t)
		role := model.IntercomRole(t)
		for _, d := range model.Days() {
			for _, s := range cal.WorkingSlots(d) {
				sum := headcount(m, members, role, d, s)
				m.AddEq(fmt.Sprintf("team_duty/%s/%s/%s", t, d, s.Label()), sum, 1)
			}
		}
	}
	return nil
}
