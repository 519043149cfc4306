package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/etsledger/etsledger/internal/classify"
	"github.com/etsledger/etsledger/internal/id"
	"github.com/etsledger/etsledger/internal/model"
)

var (
	// ErrNotFound is returned when a movement ID is not in the year's ledger.
	ErrNotFound = errors.New("movement not found")

	// ErrUnknownActivity is returned when an allocation target does not
	// exist in the fiscal year.
	ErrUnknownActivity = errors.New("activity not found")

	// ErrFamilyMismatch is returned when a movement's category cannot be
	// allocated to the target's activity family.
	ErrFamilyMismatch = errors.New("activity family does not match movement category")
)

// ActivityChecker resolves the family of an activity of the fiscal year.
type ActivityChecker interface {
	Family(id string) (model.Family, bool)
}

// Service stores the movements of each fiscal year in
// <repo>/<year>/movements.csv.
type Service struct {
	repoRoot string
}

// NewService creates a ledger Service.
func NewService(repoRoot string) *Service {
	return &Service{repoRoot: repoRoot}
}

// Path returns the movements.csv path for a year.
func (s *Service) Path(year int) string {
	return filepath.Join(s.repoRoot, strconv.Itoa(year), "movements.csv")
}

// Read returns every stored row of a year, unclassified. A missing file
// is an empty ledger.
func (s *Service) Read(year int) ([]model.RawMovement, error) {
	path := s.Path(year)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	movements, err := ReadMovements(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return movements, nil
}

// NextMovementSeq returns the next available sequence number for a year.
func (s *Service) NextMovementSeq(year int) (int, error) {
	rows, err := s.Read(year)
	if err != nil {
		return 0, err
	}
	return id.NextMovementSeq(movementIDs(rows)), nil
}

// Add classifies raw, assigns it the next ID of the year, and appends it.
// Any ID on raw is ignored. A dated movement must fall inside the year and
// an allocation target must be one of the year's activities.
func (s *Service) Add(year int, raw model.RawMovement, acts ActivityChecker) (model.Movement, error) {
	seq, err := s.NextMovementSeq(year)
	if err != nil {
		return model.Movement{}, err
	}
	raw.ID = id.FormatMovementID(year, seq)

	m, err := classify.Classify(raw)
	if err != nil {
		return model.Movement{}, err
	}

	var verrs classify.ValidationErrors
	if !m.Date.IsZero() && m.Date.Year() != year {
		verrs = append(verrs, classify.ValidationError{
			MovementID:  m.ID,
			Field:       "date",
			Description: fmt.Sprintf("date %s is outside fiscal year %d", m.Date.Format(classify.DateFormat), year),
		})
	}
	if alloc, ok := m.Allocation(); ok {
		if fam, found := acts.Family(alloc.ID); !found {
			verrs = append(verrs, classify.ValidationError{
				MovementID:  m.ID,
				Field:       "allocation",
				Description: fmt.Sprintf("activity %s does not exist in %d", alloc.ID, year),
			})
		} else if fam != alloc.Family {
			verrs = append(verrs, classify.ValidationError{
				MovementID:  m.ID,
				Field:       "allocation",
				Description: fmt.Sprintf("activity %s is %s, movement is %s", alloc.ID, fam, m.Category),
			})
		}
	}
	if len(verrs) > 0 {
		return model.Movement{}, verrs
	}

	if err := s.append(year, ToRaw(m)); err != nil {
		return model.Movement{}, err
	}
	return m, nil
}

// Allocate assigns a movement to an activity. The activity's family must
// be the one implied by the movement's category.
func (s *Service) Allocate(year int, movementID, activityID string, acts ActivityChecker) error {
	fam, ok := acts.Family(activityID)
	if !ok {
		return fmt.Errorf("allocating %s to %s: %w", movementID, activityID, ErrUnknownActivity)
	}
	return s.update(year, movementID, func(m *model.Movement) error {
		want, ok := m.Category.Family()
		if !m.Ordinary() || !ok || want != fam {
			return fmt.Errorf("allocating %s (%s) to %s activity %s: %w",
				movementID, m.Category, fam.Short(), activityID, ErrFamilyMismatch)
		}
		m.AllocatedTo = activityID
		return nil
	})
}

// Unallocate clears a movement's allocation. It is a no-op on a movement
// that has none.
func (s *Service) Unallocate(year int, movementID string) error {
	return s.update(year, movementID, func(m *model.Movement) error {
		m.AllocatedTo = ""
		return nil
	})
}

// ClearAllocations unassigns every movement of the year allocated to
// activityID and returns how many were changed. Movements are never
// deleted.
func (s *Service) ClearAllocations(year int, activityID string) (int, error) {
	rows, err := s.Read(year)
	if err != nil {
		return 0, err
	}

	cleared := 0
	for i, raw := range rows {
		if raw.TargetID != activityID {
			continue
		}
		rows[i].TargetType = ""
		rows[i].TargetID = ""
		cleared++
	}
	if cleared == 0 {
		return 0, nil
	}
	if err := s.write(year, rows); err != nil {
		return 0, err
	}
	return cleared, nil
}

// Delete removes a movement from the year's ledger.
func (s *Service) Delete(year int, movementID string) error {
	rows, err := s.Read(year)
	if err != nil {
		return err
	}

	kept := rows[:0]
	found := false
	for _, raw := range rows {
		if raw.ID == movementID {
			found = true
			continue
		}
		kept = append(kept, raw)
	}
	if !found {
		return fmt.Errorf("deleting %s: %w", movementID, ErrNotFound)
	}
	return s.write(year, kept)
}

// update classifies one stored movement, applies fn, and rewrites the
// ledger with the movement in canonical form.
func (s *Service) update(year int, movementID string, fn func(*model.Movement) error) error {
	rows, err := s.Read(year)
	if err != nil {
		return err
	}

	for i, raw := range rows {
		if raw.ID != movementID {
			continue
		}
		m, err := classify.Classify(raw)
		if err != nil {
			return fmt.Errorf("movement %s: %w", movementID, err)
		}
		if err := fn(&m); err != nil {
			return err
		}
		rows[i] = ToRaw(m)
		return s.write(year, rows)
	}
	return fmt.Errorf("movement %s: %w", movementID, ErrNotFound)
}

func (s *Service) append(year int, raw model.RawMovement) error {
	path := s.Path(year)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating year dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendMovements(f, []model.RawMovement{raw}); err != nil {
		return fmt.Errorf("appending movement: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w", err)
	}
	return nil
}

// write replaces the year's ledger via a temp file and rename.
func (s *Service) write(year int, rows []model.RawMovement) error {
	path := s.Path(year)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating year dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".movements-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteMovements(tmp, rows); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

func movementIDs(rows []model.RawMovement) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}
