package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// PhoneBlocks organizes phone duty into contiguous blocks. Per employee,
// day and half-day there are two independent indicators, one for the early
// window and one for the late window; a true indicator forces the window's
// phone sum to the full block length, a false one forces it to zero. An
// employee may work both windows, one, or neither; combined with the
// coverage equalities this rules out scattered single phone slots inside the
// bands.
type PhoneBlocks struct{}

func (PhoneBlocks) Name() string       { return RulePhoneBlocks }
func (PhoneBlocks) Requires() []string { return nil }

func (PhoneBlocks) Apply(m *fabric.Model, _ Config) error {
	cal := m.Calendar()
	phone := model.PhoneRole()
	windows := []model.Window{model.EarlyWindow, model.LateWindow}
	for _, e := range m.Roster().Employees {
		for _, d := range model.Days() {
			for _, h := range model.Halves() {
				length := cal.BlockLength(d, h)
				for _, w := range windows {
					ind := m.Block(fabric.BlockKey{Employee: e.ID, Day: d, Half: h, Window: w})
					sum := slotSum(m, e.ID, phone, d, cal.BlockWindow(d, h, w))
					name := fmt.Sprintf("phone_block/%s/%s/%s/%s", e.ID, d, h, w)
					m.AddImplies(name, ind, true, sum, length, length)
					m.AddImplies(name, ind, false, sum, 0, 0)
				}
			}
		}
	}
	return nil
}
