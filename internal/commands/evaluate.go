package commands

import (
	"github.com/spf13/cobra"

	"github.com/etsledger/etsledger/internal/report"
)

func newEvaluateCommand(a *app) *cobra.Command {
	var year int
	var format string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run the commerciality, secondariness and IRES tests for a fiscal year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}

			r, issues, err := s.Evaluate(year)
			if err != nil {
				return err
			}
			logIssues(s, issues)
			if r.Unassigned.Total > 0 {
				s.log.Warn().Int("count", r.Unassigned.Total).Msg("unassigned movements left out of activity totals")
			}
			s.log.Debug().Int("year", year).Str("entity_verdict", string(r.Entity.Verdict)).
				Str("regime", string(r.Ires.Regime)).Msg("evaluated")

			return report.Write(cmd.OutOrStdout(), r, issues, f)
		},
	}

	addYearFlag(cmd, &year)
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}
