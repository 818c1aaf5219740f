package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/squadplan/squadplan/core/model"
	"github.com/squadplan/squadplan/core/planner"
	"github.com/squadplan/squadplan/core/schedule"
)

// renderWeek prints the per-day tables, the weekly tallies and the fairness
// report as aligned text.
func renderWeek(w io.Writer, outcome *planner.Outcome) error {
	for _, day := range outcome.Week.Days {
		if _, err := fmt.Fprintf(w, "%s\n", day.Day); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprint(tw, "employee")
		for _, s := range model.Slots() {
			fmt.Fprintf(tw, "\t%s", s.Label())
		}
		fmt.Fprintln(tw)
		for _, row := range day.Rows {
			fmt.Fprint(tw, row.Employee)
			for _, sym := range row.Symbols {
				fmt.Fprintf(tw, "\t%s", sym)
			}
			fmt.Fprintln(tw)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "Weekly counts"); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "employee\t%s\t%s\t%s\t%s\n",
		schedule.SymbolPhone, schedule.SymbolIntercom, schedule.SymbolTasks, schedule.SymbolPresent)
	for _, ec := range outcome.Week.Counts {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n",
			ec.Employee,
			ec.Counts[schedule.SymbolPhone],
			ec.Counts[schedule.SymbolIntercom],
			ec.Counts[schedule.SymbolTasks],
			ec.Counts[schedule.SymbolPresent])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(outcome.Week.Fairness) > 0 {
		if _, err := fmt.Fprintln(w, "\nFairness"); err != nil {
			return err
		}
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "team\trole\tmin\tmax\tspread\tmean\tstddev")
		for _, g := range outcome.Week.Fairness {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.1f\t%.1f\n",
				g.Team, g.Role, g.Min, g.Max, g.Spread, g.Mean, g.StdDev)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nstatus: %s, largest spread: %d\n", outcome.Status, outcome.Objective)
	return err
}
