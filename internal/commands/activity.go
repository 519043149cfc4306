package commands

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/etsledger/etsledger/internal/auditlog"
	"github.com/etsledger/etsledger/internal/model"
)

func newActivityCommand(a *app) *cobra.Command {
	activityCmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act"},
		Short:   "Manage activities of general interest, diverse activities and fundraisers",
	}
	activityCmd.AddCommand(
		newActivityCreateCommand(a),
		newActivityListCommand(a),
		newActivityRenameCommand(a),
		newActivityOccasionalCommand(a),
		newActivityDeleteCommand(a),
	)
	return activityCmd
}

func newActivityCreateCommand(a *app) *cobra.Command {
	var year int
	var family, name, description string
	var occasional bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fam, ok := model.ParseFamily(family)
			if !ok {
				return fmt.Errorf("invalid family %q (want %s)", family, familyNames())
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			acts, err := s.Activities(year)
			if err != nil {
				return err
			}
			act, err := acts.Create(fam, name, description, occasional)
			if err != nil {
				return err
			}
			if err := acts.Save(s.Root); err != nil {
				return err
			}

			s.record(auditlog.ActionActivityCreate, year, act.ID, fam.Short()+" "+act.Name)
			fmt.Fprintln(cmd.OutOrStdout(), act.ID)
			return nil
		},
	}

	addYearFlag(cmd, &year)
	cmd.Flags().StringVar(&family, "family", "", "activity family: "+familyNames()+" (required)")
	cmd.Flags().StringVar(&name, "name", "", "activity name (required)")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().BoolVar(&occasional, "occasional", false, "occasional diverse activity")
	_ = cmd.MarkFlagRequired("family")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newActivityListCommand(a *app) *cobra.Command {
	var year int
	var family string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the activities of a fiscal year",
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

			list := acts.All()
			if family != "" {
				fam, ok := model.ParseFamily(family)
				if !ok {
					return fmt.Errorf("invalid family %q (want %s)", family, familyNames())
				}
				list = acts.ByFamily(fam)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFAMILY\tNAME\tOCCASIONAL\tDESCRIPTION")
			for _, act := range list {
				occ := ""
				if act.Family == model.FamilyDiverse {
					occ = strconv.FormatBool(act.Occasional)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", act.ID, act.Family.Short(), act.Name, occ, act.Description)
			}
			return tw.Flush()
		},
	}

	addYearFlag(cmd, &year)
	cmd.Flags().StringVar(&family, "family", "", "only this family: "+familyNames())
	return cmd
}

func newActivityRenameCommand(a *app) *cobra.Command {
	var year int
	var description string

	cmd := &cobra.Command{
		Use:   "rename <activity-id> <name>",
		Short: "Rename an activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			acts, err := s.Activities(year)
			if err != nil {
				return err
			}
			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &description
			}
			if err := acts.Rename(args[0], args[1], desc); err != nil {
				return err
			}
			if err := acts.Save(s.Root); err != nil {
				return err
			}
			s.record(auditlog.ActionActivityRename, year, args[0], args[1])
			return nil
		},
	}

	addYearFlag(cmd, &year)
	cmd.Flags().StringVar(&description, "description", "", "new description")
	return cmd
}

func newActivityOccasionalCommand(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "occasional <activity-id> <true|false>",
		Short: "Mark a diverse activity as occasional or not",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			occasional, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid value %q (want true or false)", args[1])
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			acts, err := s.Activities(year)
			if err != nil {
				return err
			}
			if err := acts.SetOccasional(args[0], occasional); err != nil {
				return err
			}
			if err := acts.Save(s.Root); err != nil {
				return err
			}
			s.record(auditlog.ActionActivityOccasional, year, args[0], strconv.FormatBool(occasional))
			return nil
		},
	}

	addYearFlag(cmd, &year)
	return cmd
}

func newActivityDeleteCommand(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "delete <activity-id>",
		Short: "Delete an activity; its movements become unassigned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			acts, err := s.Activities(year)
			if err != nil {
				return err
			}
			n, err := acts.Delete(args[0], s.Ledger)
			if err != nil {
				return err
			}
			if err := acts.Save(s.Root); err != nil {
				return err
			}
			s.record(auditlog.ActionActivityDelete, year, args[0], fmt.Sprintf("%d movements unassigned", n))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s, %d movements are now unassigned\n", args[0], n)
			return nil
		},
	}

	addYearFlag(cmd, &year)
	return cmd
}

func familyNames() string {
	names := make([]string, 0, len(model.Families()))
	for _, f := range model.Families() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
