package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/squadplan/squadplan/core/model"
	"github.com/squadplan/squadplan/infra/roster"
)

var (
	memberTeam  string
	memberName  string
	memberRoles string
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Inspect and edit the roster file",
}

var rosterLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List roster members and their permitted roles",
	RunE:  runRosterLs,
}

var rosterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a member to the roster",
	RunE:  runRosterAdd,
}

var rosterRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove a member from the roster",
	RunE:  runRosterRm,
}

func init() {
	for _, c := range []*cobra.Command{rosterAddCmd, rosterRmCmd} {
		c.Flags().StringVar(&memberTeam, "team", "", "squad name (Client or Facturation)")
		c.Flags().StringVar(&memberName, "name", "", "display name")
	}
	rosterAddCmd.Flags().StringVar(&memberRoles, "roles", "phone,intercom,tasks", "comma-separated role tokens")
	rosterCmd.PersistentFlags().StringVar(&rosterPath, "roster", "", "roster file (overrides the configured path)")
	rosterCmd.AddCommand(rosterLsCmd, rosterAddCmd, rosterRmCmd)
	rootCmd.AddCommand(rosterCmd)
}

func rosterStore() (*roster.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path := cfg.Roster.Path
	if rosterPath != "" {
		path = rosterPath
	}
	return roster.NewStore(path), nil
}

func memberIdentity() (model.Team, string, error) {
	t := model.Team(memberTeam)
	if !t.Valid() {
		return "", "", fmt.Errorf("unknown team %q", memberTeam)
	}
	if memberName == "" {
		return "", "", fmt.Errorf("--name is required")
	}
	return t, memberName, nil
}

func runRosterLs(cmd *cobra.Command, args []string) error {
	store, err := rosterStore()
	if err != nil {
		return err
	}
	staff, err := store.Load()
	if err != nil {
		return err
	}
	for _, e := range staff.Employees {
		tokens := make([]string, 0, len(e.Roles))
		for _, r := range e.Roles {
			tokens = append(tokens, r.Name())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.ID, strings.Join(tokens, ","))
	}
	return nil
}

func runRosterAdd(cmd *cobra.Command, args []string) error {
	team, name, err := memberIdentity()
	if err != nil {
		return err
	}
	var roles []model.RoleID
	for _, token := range strings.Split(memberRoles, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		r, err := model.ParseRoleName(team, token)
		if err != nil {
			return err
		}
		roles = append(roles, r)
	}

	store, err := rosterStore()
	if err != nil {
		return err
	}
	staff, err := store.Load()
	if err != nil {
		return err
	}
	e := model.NewEmployee(team, name, roles)
	if _, ok := staff.Find(e.ID); ok {
		return fmt.Errorf("employee %s already in roster", e.ID)
	}
	staff.Employees = append(staff.Employees, e)
	if err := store.Save(staff); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", e.ID)
	return nil
}

func runRosterRm(cmd *cobra.Command, args []string) error {
	team, name, err := memberIdentity()
	if err != nil {
		return err
	}
	id := model.EmployeeID(string(team) + name)

	store, err := rosterStore()
	if err != nil {
		return err
	}
	staff, err := store.Load()
	if err != nil {
		return err
	}
	kept := staff.Employees[:0]
	found := false
	for _, e := range staff.Employees {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("employee %s not in roster", id)
	}
	staff.Employees = kept
	if err := store.Save(staff); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
	return nil
}
