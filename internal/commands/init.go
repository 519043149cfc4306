package commands

import (
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/etsledger/etsledger/internal/auditlog"
	"github.com/etsledger/etsledger/internal/config"
	"github.com/etsledger/etsledger/internal/gitops"
	"github.com/etsledger/etsledger/internal/model"
	"github.com/etsledger/etsledger/internal/workspace"
)

func newInitCommand(a *app) *cobra.Command {
	var name, entityType, taxCode, priorRevenue string
	var year int
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.repoDir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			et, ok := model.ParseEntityType(entityType)
			if !ok {
				return fmt.Errorf("invalid entity type %q (want APS, ODV, ETS or OTHER)", entityType)
			}

			rev, err := parseAmount(priorRevenue)
			if err != nil {
				return err
			}
			if year != 0 {
				if err := config.ValidateYear(year); err != nil {
					return err
				}
			}

			cfg := config.Default(name, string(et))
			cfg.Entity.TaxCode = taxCode
			cfg.ApplyEnv()
			if noGit {
				cfg.Git.AutoCommit = false
			}

			ws, err := workspace.Init(absDir, cfg)
			if err != nil {
				return err
			}
			s := &session{Workspace: ws, log: a.logger(cmd, cfg.Log)}

			if year != 0 {
				if err := config.SaveYear(absDir, model.FiscalYear{Year: year, PriorYearRevenue: rev}); err != nil {
					return err
				}
			}

			if !noGit {
				if !gitops.Available() {
					s.log.Warn().Msg("git not found, history disabled")
				} else if err := ws.Git().Init(); err != nil {
					return err
				}
			}

			s.record(auditlog.ActionInit, 0, "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized workspace for %s (%s) at %s\n", name, et, absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "entity name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "APS", "entity type: APS, ODV, ETS or OTHER")
	cmd.Flags().StringVar(&taxCode, "tax-code", "", "codice fiscale")
	cmd.Flags().IntVar(&year, "year", 0, "also create this fiscal year")
	cmd.Flags().StringVar(&priorRevenue, "prior-revenue", "0", "prior-year revenue of --year")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

// parseAmount parses a non-negative decimal amount.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative, got %s", d)
	}
	return d, nil
}
