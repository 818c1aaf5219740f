package schedule

import (
	"gonum.org/v1/gonum/stat"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// GroupStat summarizes the weekly slot totals of one (team, role) group:
// the spread the fairness rule works on, plus mean and standard deviation
// for the report.
type GroupStat struct {
	Team   model.Team     `json:"team"`
	Role   model.RoleKind `json:"role"`
	Min    int            `json:"min"`
	Max    int            `json:"max"`
	Spread int            `json:"spread"`
	Mean   float64        `json:"mean"`
	StdDev float64        `json:"std_dev"`
}

// fairnessStats computes per-group statistics over the employees permitted
// each role. Groups with no permitted member are omitted.
func fairnessStats(m *fabric.Model, values fabric.Values) []GroupStat {
	var out []GroupStat
	for _, t := range model.Teams() {
		for _, r := range model.TeamRoles(t) {
			var totals []float64
			for _, e := range m.Roster().TeamMembers(t) {
				if !e.Permitted(r) {
					continue
				}
				total := m.Total(fabric.TotalKey{Employee: e.ID, Role: r}).Eval(values)
				totals = append(totals, float64(total))
			}
			if len(totals) == 0 {
				continue
			}
			lo, hi := totals[0], totals[0]
			for _, v := range totals[1:] {
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			g := GroupStat{
				Team:   t,
				Role:   r.Kind,
				Min:    int(lo),
				Max:    int(hi),
				Spread: int(hi - lo),
				Mean:   stat.Mean(totals, nil),
			}
			if len(totals) > 1 {
				g.StdDev = stat.StdDev(totals, nil)
			}
			out = append(out, g)
		}
	}
	return out
}
