package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/etsledger/etsledger/internal/activities"
	"github.com/etsledger/etsledger/internal/auditlog"
	"github.com/etsledger/etsledger/internal/classify"
	"github.com/etsledger/etsledger/internal/model"
	"github.com/etsledger/etsledger/internal/report"
)

func newMovementCommand(a *app) *cobra.Command {
	movementCmd := &cobra.Command{
		Use:     "movement",
		Aliases: []string{"mov"},
		Short:   "Record and list income and expense movements",
	}
	movementCmd.AddCommand(newMovementAddCommand(a), newMovementListCommand(a), newMovementDeleteCommand(a))
	return movementCmd
}

func newMovementAddCommand(a *app) *cobra.Command {
	var year int
	var raw model.RawMovement

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a movement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			acts, err := s.Activities(year)
			if err != nil {
				return err
			}

			m, err := s.Ledger.Add(year, raw, acts)
			if err != nil {
				return err
			}

			s.record(auditlog.ActionMovementAdd, year, m.ID, describeMovement(m))
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s\n", m.ID)
			if m.Unassigned() {
				s.log.Warn().Str("movement_id", m.ID).Str("category", string(m.Category)).
					Msg("movement is not allocated to an activity and is left out of activity totals")
			}
			return nil
		},
	}

	addYearFlag(cmd, &year)
	f := cmd.Flags()
	f.StringVar(&raw.Kind, "kind", "", "ORDINARY (default), PRIOR_YEAR_CASH_SURPLUS or PRIOR_YEAR_BANK_SURPLUS")
	f.StringVar(&raw.Direction, "direction", "", "INCOME or EXPENSE")
	f.StringVar(&raw.Category, "category", "", "movement category")
	f.StringVar(&raw.Amount, "amount", "", "amount, strictly positive (required)")
	f.StringVar(&raw.DescriptionCode, "code", "", "description code (AIG and diverse activities only)")
	f.StringVar(&raw.TargetID, "activity", "", "activity ID to allocate to")
	f.StringVar(&raw.Date, "date", "", "date YYYY-MM-DD")
	f.StringVar(&raw.Account, "account", "", "CASH or BANK")
	f.StringVar(&raw.Description, "description", "", "free text")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func describeMovement(m model.Movement) string {
	if !m.Ordinary() {
		return fmt.Sprintf("%s %s", m.Kind, m.Amount)
	}
	return fmt.Sprintf("%s %s %s", m.Direction, m.Category, m.Amount)
}

func newMovementListCommand(a *app) *cobra.Command {
	var year int
	var unassignedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the movements of a fiscal year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			snap, issues, err := s.Snapshot(year)
			if err != nil {
				return err
			}
			acts := activities.NewService(year, snap.Activities)

			var shown []model.Movement
			for _, m := range snap.Movements {
				if unassignedOnly && !m.Unassigned() {
					continue
				}
				shown = append(shown, m)
			}
			if err := writeMovements(cmd.OutOrStdout(), shown, acts); err != nil {
				return err
			}
			logIssues(s, issues)
			return nil
		},
	}

	addYearFlag(cmd, &year)
	cmd.Flags().BoolVar(&unassignedOnly, "unassigned", false, "only movements that still need an activity")
	return cmd
}

func writeMovements(w io.Writer, movements []model.Movement, acts *activities.Service) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tACCOUNT\tKIND\tCATEGORY\tCODE\tAMOUNT\tACTIVITY\tDESCRIPTION")
	for _, m := range movements {
		date := ""
		if !m.Date.IsZero() {
			date = m.Date.Format(classify.DateFormat)
		}
		kind := string(m.Direction)
		if !m.Ordinary() {
			kind = string(m.Kind)
		}
		code := ""
		if m.Code != 0 {
			code = strconv.Itoa(m.Code)
			if label := classify.CodeLabel(m.Category, m.Direction, m.Code); label != "" {
				code += " " + label
			}
		}
		target := ""
		if m.Unassigned() {
			target = "UNASSIGNED"
		} else if act, ok := acts.Get(m.AllocatedTo); ok {
			target = act.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, date, m.Account, kind, m.Category, code, report.Money(m.Amount), target, m.Description)
	}
	return tw.Flush()
}

func logIssues(s *session, issues classify.ValidationErrors) {
	for _, e := range issues {
		s.log.Warn().Str("movement_id", e.MovementID).Str("field", e.Field).Msg(e.Description)
	}
}

func newMovementDeleteCommand(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "delete <movement-id>",
		Short: "Delete a movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			if _, err := s.Year(year); err != nil {
				return err
			}
			if err := s.Ledger.Delete(year, args[0]); err != nil {
				return err
			}
			s.record(auditlog.ActionMovementDelete, year, args[0], "")
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
	addYearFlag(cmd, &year)
	return cmd
}
