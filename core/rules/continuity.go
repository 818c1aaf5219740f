package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// ContinuityCap limits how long an employee may stay on a non-phone role
// without a break: within every sliding window of consecutive band slots,
// the number of assigned slots stays below the window size. Windows run over
// the fixed band; closed ticks inside it are pinned false and count zero.
// Phone runs are shaped by PhoneBlocks instead.
type ContinuityCap struct{}

func (ContinuityCap) Name() string       { return RuleContinuityCap }
func (ContinuityCap) Requires() []string { return nil }

func (ContinuityCap) Apply(m *fabric.Model, _ Config) error {
	cal := m.Calendar()
	for _, e := range m.Roster().Employees {
		for _, r := range model.AllRoles() {
			if r.Kind == model.RolePhone {
				continue
			}
			for _, d := range model.Days() {
				for _, h := range model.Halves() {
					band := cal.ContinuityBand(d, h)
					window, cap := cal.ContinuitySpan(d, h)
					for start := 0; start+window <= len(band); start++ {
						sum := slotSum(m, e.ID, r, d, band[start:start+window])
						name := fmt.Sprintf("continuity/%s/%s/%s/%s@%s",
							e.ID, r, d, h, band[start].Label())
						m.AddLe(name, sum, cap)
					}
				}
			}
		}
	}
	return nil
}
