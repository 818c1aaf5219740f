package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// PhoneFreeHalfDay gives every employee a weekly phone-free half-day.
//
// Per employee and day a morning-without-phone indicator is linked to the
// morning phone sum in both directions: indicator true forces the sum to
// zero, indicator false forces it to at least one. Afternoons work the same
// except Friday, which has no indicator at all and so can never count as the
// rest half-day. The weekly indicator count is one (or at least one,
// depending on configuration).
type PhoneFreeHalfDay struct{}

func (PhoneFreeHalfDay) Name() string       { return RulePhoneFreeHalfDay }
func (PhoneFreeHalfDay) Requires() []string { return nil }

func (PhoneFreeHalfDay) Apply(m *fabric.Model, cfg Config) error {
	cal := m.Calendar()
	phone := model.PhoneRole()
	for _, e := range m.Roster().Employees {
		var indicators []fabric.BoolVar
		for _, d := range model.Days() {
			ind := m.HalfDay(fabric.HalfDayKey{Employee: e.ID, Day: d, Half: model.MorningHalf})
			sum := slotSum(m, e.ID, phone, d, cal.HalfSlots(d, model.MorningHalf))
			name := fmt.Sprintf("phone_free/%s/%s/morning", e.ID, d)
			m.AddImplies(name, ind, true, sum, 0, 0)
			m.AddImplies(name, ind, false, sum, 1, fabric.NoUpperBound)
			indicators = append(indicators, ind)
		}
		for _, d := range model.Days() {
			if !cal.HasAfternoonRest(d) {
				continue
			}
			ind := m.HalfDay(fabric.HalfDayKey{Employee: e.ID, Day: d, Half: model.AfternoonHalf})
			sum := slotSum(m, e.ID, phone, d, cal.HalfSlots(d, model.AfternoonHalf))
			name := fmt.Sprintf("phone_free/%s/%s/afternoon", e.ID, d)
			m.AddImplies(name, ind, true, sum, 0, 0)
			m.AddImplies(name, ind, false, sum, 1, fabric.NoUpperBound)
			indicators = append(indicators, ind)
		}
		weekly := fabric.Sum(indicators...)
		name := fmt.Sprintf("phone_free_week/%s", e.ID)
		if cfg.PhoneFree.Mode == PhoneFreeAtLeastOne {
			m.AddGe(name, weekly, 1)
		} else {
			m.AddEq(name, weekly, 1)
		}
	}
	return nil
}
