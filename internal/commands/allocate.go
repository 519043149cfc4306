package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/etsledger/etsledger/internal/auditlog"
)

func newAllocateCommand(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "allocate <movement-id> <activity-id>",
		Short: "Allocate a movement to an activity of the matching family",
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
			if err := s.Ledger.Allocate(year, args[0], args[1], acts); err != nil {
				return err
			}
			act, _ := acts.Get(args[1])
			s.record(auditlog.ActionAllocate, year, args[0], "-> "+act.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Allocated %s to %s\n", args[0], act.Name)
			return nil
		},
	}

	addYearFlag(cmd, &year)
	return cmd
}

func newUnallocateCommand(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "unallocate <movement-id>",
		Short: "Remove a movement's allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			if _, err := s.Year(year); err != nil {
				return err
			}
			if err := s.Ledger.Unallocate(year, args[0]); err != nil {
				return err
			}
			s.record(auditlog.ActionUnallocate, year, args[0], "")
			fmt.Fprintf(cmd.OutOrStdout(), "Unallocated %s\n", args[0])
			return nil
		},
	}

	addYearFlag(cmd, &year)
	return cmd
}
