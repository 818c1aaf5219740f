package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/squadplan/squadplan/core/model"
	"github.com/squadplan/squadplan/core/schedule"
)

// WriteJSON writes the whole week, counts and fairness included, to w in
// JSON format.
func WriteJSON(w io.Writer, week schedule.Week) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(week)
}

// WriteCSV writes the schedule cells to w in long CSV form, one row per
// non-blank (day, slot, employee) cell.
func WriteCSV(w io.Writer, week schedule.Week) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "slot", "employee", "symbol"}); err != nil {
		return err
	}
	for _, day := range week.Days {
		for _, row := range day.Rows {
			for s, sym := range row.Symbols {
				if sym == schedule.SymbolBlank {
					continue
				}
				rec := []string{
					day.Day.String(),
					model.Slot(s).Label(),
					string(row.Employee),
					string(sym),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCountsCSV writes the weekly per-employee symbol tallies to w.
func WriteCountsCSV(w io.Writer, week schedule.Week) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"employee", "symbol", "count"}); err != nil {
		return err
	}
	order := []schedule.Symbol{
		schedule.SymbolPhone,
		schedule.SymbolIntercom,
		schedule.SymbolTasks,
		schedule.SymbolPresent,
	}
	for _, ec := range week.Counts {
		for _, sym := range order {
			n, ok := ec.Counts[sym]
			if !ok {
				continue
			}
			rec := []string{string(ec.Employee), string(sym), strconv.Itoa(n)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
