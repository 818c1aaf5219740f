package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// PhoneCoverage forces the phone headcount of every covered working slot to
// its day/band target, and pins explicitly phone-closed slots to zero.
type PhoneCoverage struct{}

func (PhoneCoverage) Name() string       { return RulePhoneCoverage }
func (PhoneCoverage) Requires() []string { return nil }

func (PhoneCoverage) Apply(m *fabric.Model, _ Config) error {
	cal := m.Calendar()
	phone := model.PhoneRole()
	for _, d := range model.Days() {
		for _, s := range cal.WorkingSlots(d) {
			sum := headcount(m, m.Roster().Employees, phone, d, s)
			if cal.PhoneClosedAt(d, s) {
				m.AddEq(fmt.Sprintf("phone_closed/%s/%s", d, s.Label()), sum, 0)
				continue
			}
			if target, covered := cal.PhoneTarget(d, s); covered {
				m.AddEq(fmt.Sprintf("phone_coverage/%s/%s", d, s.Label()), sum, target)
			}
		}
	}
	return nil
}
