package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// Fairness balances weekly workloads inside each squad. Per (team, role)
// the weekly slot totals of the members permitted that role form a group;
// in balance mode the engine minimizes the largest group spread, in cap
// mode the spread is hard-bounded by pairwise difference constraints.
type Fairness struct{}

func (Fairness) Name() string       { return RuleFairness }
func (Fairness) Requires() []string { return nil }

func (Fairness) Apply(m *fabric.Model, cfg Config) error {
	for _, t := range model.Teams() {
		for _, r := range model.TeamRoles(t) {
			var members []model.EmployeeID
			for _, e := range m.Roster().TeamMembers(t) {
				if e.Permitted(r) {
					members = append(members, e.ID)
				}
			}
			if len(members) < 2 {
				continue
			}
			totals := make([]fabric.LinearExpr, len(members))
			for i, id := range members {
				totals[i] = m.Total(fabric.TotalKey{Employee: id, Role: r})
			}
			groupName := fmt.Sprintf("fairness/%s/%s", t, r.Kind)
			if cfg.Fairness.Mode == FairnessCap {
				tol := cfg.Fairness.Tolerance
				for i := 0; i < len(totals); i++ {
					for j := i + 1; j < len(totals); j++ {
						diff := totals[i].Minus(totals[j])
						name := fmt.Sprintf("%s/%s-%s", groupName, members[i], members[j])
						m.Add(fabric.Constraint{Name: name, Expr: diff, Lo: -tol, Hi: tol, Guard: fabric.NoVar})
					}
				}
				continue
			}
			m.AddSpreadGroup(fabric.SpreadGroup{Name: groupName, Exprs: totals})
		}
	}
	return nil
}
