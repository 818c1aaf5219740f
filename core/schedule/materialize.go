package schedule

import (
	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// Symbol is the single displayed glyph of an employee's slot.
type Symbol string

const (
	SymbolPhone    Symbol = "📞"
	SymbolIntercom Symbol = "✉️"
	SymbolTasks    Symbol = "🙋"
	SymbolPresent  Symbol = "✅"
	SymbolBlank    Symbol = ""
)

// Row is one employee's day: one symbol per grid slot.
type Row struct {
	Employee model.EmployeeID `json:"employee"`
	Symbols  []Symbol         `json:"symbols"`
}

// DayTable is the displayed schedule of one day, rows in roster order.
type DayTable struct {
	Day  model.Day `json:"day"`
	Rows []Row     `json:"rows"`
}

// EmployeeCount is the weekly per-symbol tally of one employee. Symbols the
// employee never shows are omitted rather than listed as zero.
type EmployeeCount struct {
	Employee model.EmployeeID `json:"employee"`
	Counts   map[Symbol]int   `json:"counts"`
}

// Week is the materialized schedule: the per-day display tables plus the
// fairness tallies.
type Week struct {
	Days     []DayTable      `json:"days"`
	Counts   []EmployeeCount `json:"counts"`
	Fairness []GroupStat     `json:"fairness"`
}

// Materialize renders the solved variable values into the weekly display
// tables and fairness counts. It is a pure function of the solved
// assignment: re-running it on the same values yields an identical week.
//
// Per slot the displayed symbol follows the fixed precedence
// phone > intercom > tasks > present > blank. Role exclusivity means at most
// one role indicator is true anyway; precedence effectively separates "off
// but within calendar" from "outside calendar".
func Materialize(m *fabric.Model, values fabric.Values) Week {
	roster := m.Roster()
	cal := m.Calendar()
	week := Week{}

	for _, d := range model.Days() {
		table := DayTable{Day: d}
		for _, e := range roster.Employees {
			row := Row{Employee: e.ID, Symbols: make([]Symbol, model.SlotCount)}
			for _, s := range model.Slots() {
				row.Symbols[s] = cellSymbol(m, values, cal, e, d, s)
			}
			table.Rows = append(table.Rows, row)
		}
		week.Days = append(week.Days, table)
	}

	for _, e := range roster.Employees {
		counts := make(map[Symbol]int)
		for _, day := range week.Days {
			for _, row := range day.Rows {
				if row.Employee != e.ID {
					continue
				}
				for _, sym := range row.Symbols {
					if sym != SymbolBlank {
						counts[sym]++
					}
				}
			}
		}
		week.Counts = append(week.Counts, EmployeeCount{Employee: e.ID, Counts: counts})
	}

	week.Fairness = fairnessStats(m, values)
	return week
}

func cellSymbol(m *fabric.Model, values fabric.Values, cal model.Calendar, e model.Employee, d model.Day, s model.Slot) Symbol {
	on := func(r model.RoleID) bool {
		v, ok := m.Assign(fabric.AssignKey{Employee: e.ID, Role: r, Day: d, Slot: s})
		return ok && values.True(v)
	}
	switch {
	case on(model.PhoneRole()):
		return SymbolPhone
	case on(model.IntercomRole(model.TeamClient)) || on(model.IntercomRole(model.TeamFacturation)):
		return SymbolIntercom
	case on(model.TasksRole()):
		return SymbolTasks
	case !cal.Closed(d, s):
		return SymbolPresent
	default:
		return SymbolBlank
	}
}
