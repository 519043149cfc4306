package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/etsledger/etsledger/internal/auditlog"
	"github.com/etsledger/etsledger/internal/buildinfo"
	"github.com/etsledger/etsledger/internal/config"
	"github.com/etsledger/etsledger/internal/logging"
	"github.com/etsledger/etsledger/internal/workspace"
)

// app carries the global flags shared by every subcommand.
type app struct {
	repoDir  string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "etsledger",
		Short:   "Fiscal tests and IRES for Italian non-profit entities",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(a.repoDir)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.repoDir, "repo", ".", "workspace directory")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(a),
		newYearCommand(a),
		newMovementCommand(a),
		newActivityCommand(a),
		newAllocateCommand(a),
		newUnallocateCommand(a),
		newEvaluateCommand(a),
	)

	return rootCmd
}

// logger builds the command logger. --log-level overrides cfg.
func (a *app) logger(cmd *cobra.Command, cfg config.LogConfig) zerolog.Logger {
	if a.logLevel != "" {
		cfg.Level = a.logLevel
	}
	return logging.New(cmd.ErrOrStderr(), logging.Config{Level: cfg.Level, Format: cfg.Format})
}

// session is an opened workspace plus its logger.
type session struct {
	*workspace.Workspace
	log zerolog.Logger
}

func (a *app) open(cmd *cobra.Command) (*session, error) {
	root, err := filepath.Abs(a.repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	ws, err := workspace.Open(root)
	if err != nil {
		return nil, err
	}
	ws.Config.ApplyEnv()
	return &session{Workspace: ws, log: a.logger(cmd, ws.Config.Log)}, nil
}

func (s *session) actor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return s.Config.Git.AuthorName
}

// record writes the audit entry of a completed mutation. Failures are
// logged, not returned.
func (s *session) record(action string, year int, subject, details string) {
	hash, err := s.Record(auditlog.Entry{
		Actor:   s.actor(),
		Action:  action,
		Year:    year,
		Subject: subject,
		Details: details,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("audit trail not updated")
		return
	}
	ev := s.log.Info().Str("action", action).Int("year", year).Str("subject", subject)
	if hash != "" {
		ev = ev.Str("commit", hash)
	}
	ev.Msg(details)
}

func addYearFlag(cmd *cobra.Command, year *int) {
	cmd.Flags().IntVar(year, "year", 0, "fiscal year (required)")
	_ = cmd.MarkFlagRequired("year")
}
