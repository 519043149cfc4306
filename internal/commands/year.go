package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/etsledger/etsledger/internal/auditlog"
	"github.com/etsledger/etsledger/internal/config"
	"github.com/etsledger/etsledger/internal/model"
	"github.com/etsledger/etsledger/internal/report"
)

func newYearCommand(a *app) *cobra.Command {
	yearCmd := &cobra.Command{
		Use:   "year",
		Short: "Manage fiscal years",
	}
	yearCmd.AddCommand(newYearAddCommand(a), newYearSetRevenueCommand(a), newYearListCommand(a))
	return yearCmd
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return year, config.ValidateYear(year)
}

func newYearAddCommand(a *app) *cobra.Command {
	var priorRevenue string

	cmd := &cobra.Command{
		Use:   "add <year>",
		Short: "Create a fiscal year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			if config.YearExists(s.Root, year) {
				return fmt.Errorf("fiscal year %d already exists", year)
			}
			rev, err := parseAmount(priorRevenue)
			if err != nil {
				return err
			}
			if err := config.SaveYear(s.Root, model.FiscalYear{Year: year, PriorYearRevenue: rev}); err != nil {
				return err
			}

			s.record(auditlog.ActionYearAdd, year, "", "prior-year revenue "+rev.String())
			fmt.Fprintf(cmd.OutOrStdout(), "Created fiscal year %d\n", year)
			return nil
		},
	}
	cmd.Flags().StringVar(&priorRevenue, "prior-revenue", "0", "prior-year revenue")
	return cmd
}

func newYearSetRevenueCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-revenue <year> <amount>",
		Short: "Set the prior-year revenue used for IRES regime selection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			fy, err := s.Year(year)
			if err != nil {
				return err
			}
			rev, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			fy.PriorYearRevenue = rev
			if err := config.SaveYear(s.Root, fy); err != nil {
				return err
			}

			s.record(auditlog.ActionYearRevenue, year, "", rev.String())
			fmt.Fprintf(cmd.OutOrStdout(), "Prior-year revenue of %d set to %s\n", year, report.Money(rev))
			return nil
		},
	}
}

func newYearListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List fiscal years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			years, err := config.ListYears(s.Root)
			if err != nil {
				return err
			}
			for _, y := range years {
				fy, err := s.Year(y)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\tprior-year revenue %s\n", fy.Year, report.Money(fy.PriorYearRevenue))
			}
			return nil
		},
	}
}
