package workspace

import (
	"errors"
	"fmt"
	"time"

	"github.com/etsledger/etsledger/internal/activities"
	"github.com/etsledger/etsledger/internal/auditlog"
	"github.com/etsledger/etsledger/internal/classify"
	"github.com/etsledger/etsledger/internal/config"
	"github.com/etsledger/etsledger/internal/fiscal"
	"github.com/etsledger/etsledger/internal/gitops"
	"github.com/etsledger/etsledger/internal/ledger"
	"github.com/etsledger/etsledger/internal/model"
)

// Workspace is an initialized etsledger directory: etsledger.yaml at the
// root, one directory per fiscal year, and logs/.
type Workspace struct {
	Root   string
	Config *config.Config
	Ledger *ledger.Service
}

// Open loads the workspace config at root.
func Open(root string) (*Workspace, error) {
	cfg, err := config.Load(config.Path(root))
	if err != nil {
		return nil, fmt.Errorf("opening workspace %s: %w", root, err)
	}
	return &Workspace{
		Root:   root,
		Config: cfg,
		Ledger: ledger.NewService(root),
	}, nil
}

// Engine returns a fiscal engine using the configured rules.
func (w *Workspace) Engine() *fiscal.Engine {
	return fiscal.NewEngine(w.Config.Rules.ToRules())
}

// Year loads a fiscal year.
func (w *Workspace) Year(year int) (model.FiscalYear, error) {
	return config.LoadYear(w.Root, year)
}

// Activities loads the activity registry of an existing fiscal year.
func (w *Workspace) Activities(year int) (*activities.Service, error) {
	if _, err := w.Year(year); err != nil {
		return nil, err
	}
	return activities.Load(w.Root, year)
}

// Snapshot assembles the evaluation context of one fiscal year. Stored
// movements that fail classification are left out and returned as issues.
// Allocations to activities missing from the registry are dropped, so the
// movement counts as unassigned, and reported as issues too.
func (w *Workspace) Snapshot(year int) (model.Snapshot, classify.ValidationErrors, error) {
	fy, err := w.Year(year)
	if err != nil {
		return model.Snapshot{}, nil, err
	}
	acts, err := activities.Load(w.Root, year)
	if err != nil {
		return model.Snapshot{}, nil, err
	}
	rows, err := w.Ledger.Read(year)
	if err != nil {
		return model.Snapshot{}, nil, err
	}

	var issues classify.ValidationErrors
	movements := make([]model.Movement, 0, len(rows))
	for _, raw := range rows {
		m, err := classify.Classify(raw)
		if err != nil {
			var verrs classify.ValidationErrors
			if !errors.As(err, &verrs) {
				return model.Snapshot{}, nil, err
			}
			issues = append(issues, verrs...)
			continue
		}
		if alloc, ok := m.Allocation(); ok {
			if fam, found := acts.Family(alloc.ID); !found || fam != alloc.Family {
				issues = append(issues, classify.ValidationError{
					MovementID:  m.ID,
					Field:       "allocation",
					Description: fmt.Sprintf("%s activity %s not found, treated as unassigned", alloc.Family.Short(), alloc.ID),
				})
				m.AllocatedTo = ""
			}
		}
		movements = append(movements, m)
	}

	return model.Snapshot{
		FiscalYear: fy,
		Profile:    w.Config.Profile(),
		Movements:  movements,
		Activities: acts.All(),
	}, issues, nil
}

// Evaluate runs the fiscal engine over a year's snapshot.
func (w *Workspace) Evaluate(year int) (*fiscal.Report, classify.ValidationErrors, error) {
	snap, issues, err := w.Snapshot(year)
	if err != nil {
		return nil, nil, err
	}
	report, err := w.Engine().Evaluate(snap)
	if err != nil {
		return nil, issues, err
	}
	return report, issues, nil
}

// Git returns the workspace repository handle.
func (w *Workspace) Git() gitops.Repo {
	return gitops.Repo{
		Dir:         w.Root,
		AuthorName:  w.Config.Git.AuthorName,
		AuthorEmail: w.Config.Git.AuthorEmail,
	}
}

// Record appends e to the audit log and, when auto-commit is on and the
// workspace is a git repository, commits the change. Returns the commit
// hash, or "" when nothing was committed.
func (w *Workspace) Record(e auditlog.Entry) (string, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if err := auditlog.Append(w.Root, []auditlog.Entry{e}); err != nil {
		return "", fmt.Errorf("writing audit log: %w", err)
	}

	repo := w.Git()
	if !w.Config.Git.AutoCommit || !repo.IsRepo() {
		return "", nil
	}
	hash, err := repo.CommitAll(e.CommitMessage())
	if err != nil {
		return "", fmt.Errorf("committing %s: %w", e.Action, err)
	}
	return hash, nil
}
