package activities

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/etsledger/etsledger/internal/id"
	"github.com/etsledger/etsledger/internal/model"
)

var (
	// ErrNotFound is returned for an activity ID not in the registry.
	ErrNotFound = errors.New("activity not found")

	// ErrNotDiverse is returned when marking a non-diverse activity occasional.
	ErrNotDiverse = errors.New("only diverse activities can be occasional")
)

// AllocationClearer unassigns the movements allocated to an activity.
type AllocationClearer interface {
	ClearAllocations(year int, activityID string) (int, error)
}

// Service is the in-memory activity registry of one fiscal year.
type Service struct {
	year       int
	activities []model.Activity
	byID       map[string]int
}

// NewService creates a Service from a slice of activities.
func NewService(year int, activities []model.Activity) *Service {
	s := &Service{year: year}
	for _, a := range activities {
		s.add(a)
	}
	return s
}

// Path returns the activities.csv path of a year.
func Path(repoRoot string, year int) string {
	return filepath.Join(repoRoot, strconv.Itoa(year), "activities.csv")
}

// Load reads <year>/activities.csv from a repo root. A missing file is an
// empty registry.
func Load(repoRoot string, year int) (*Service, error) {
	path := Path(repoRoot, year)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewService(year, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activities: %w", err)
	}
	defer f.Close()

	acts, err := ReadActivities(f)
	if err != nil {
		return nil, fmt.Errorf("reading activities: %w", err)
	}
	return NewService(year, acts), nil
}

// Year returns the fiscal year of the registry.
func (s *Service) Year() int {
	return s.year
}

// All returns all activities in creation order.
func (s *Service) All() []model.Activity {
	return s.activities
}

// Get returns an activity by ID.
func (s *Service) Get(id string) (model.Activity, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.Activity{}, false
	}
	return s.activities[i], true
}

// Family returns the family of an activity.
func (s *Service) Family(id string) (model.Family, bool) {
	a, ok := s.Get(id)
	return a.Family, ok
}

// ByFamily returns the activities of one family.
func (s *Service) ByFamily(family model.Family) []model.Activity {
	var result []model.Activity
	for _, a := range s.activities {
		if a.Family == family {
			result = append(result, a)
		}
	}
	return result
}

// Create registers a new activity with a fresh ID.
func (s *Service) Create(family model.Family, name, description string, occasional bool) (model.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Activity{}, fmt.Errorf("activity name is required")
	}
	if occasional && family != model.FamilyDiverse {
		return model.Activity{}, ErrNotDiverse
	}

	a := model.Activity{
		ID:          id.NewActivityID(),
		Family:      family,
		Name:        name,
		Description: strings.TrimSpace(description),
		Occasional:  occasional,
	}
	s.add(a)
	return a, nil
}

// Rename changes an activity's name and, when description is non-nil, its
// description.
func (s *Service) Rename(id, name string, description *string) error {
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("renaming %s: %w", id, ErrNotFound)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("activity name is required")
	}
	s.activities[i].Name = name
	if description != nil {
		s.activities[i].Description = strings.TrimSpace(*description)
	}
	return nil
}

// SetOccasional flags a diverse activity as occasional or not.
func (s *Service) SetOccasional(id string, occasional bool) error {
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("updating %s: %w", id, ErrNotFound)
	}
	if s.activities[i].Family != model.FamilyDiverse {
		return fmt.Errorf("updating %s: %w", id, ErrNotDiverse)
	}
	s.activities[i].Occasional = occasional
	return nil
}

// Delete clears every allocation to the activity, then removes it from the
// registry. Its movements stay in the ledger as unassigned. Returns the
// number of movements unassigned.
func (s *Service) Delete(id string, ledger AllocationClearer) (int, error) {
	i, ok := s.byID[id]
	if !ok {
		return 0, fmt.Errorf("deleting %s: %w", id, ErrNotFound)
	}

	n, err := ledger.ClearAllocations(s.year, id)
	if err != nil {
		return 0, fmt.Errorf("clearing allocations of %s: %w", id, err)
	}

	s.activities = append(s.activities[:i], s.activities[i+1:]...)
	s.reindex()
	return n, nil
}

// Save replaces <year>/activities.csv via a temp file and rename.
func (s *Service) Save(repoRoot string) error {
	path := Path(repoRoot, s.year)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating year dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".activities-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp activities file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteActivities(tmp, s.activities); err != nil {
		tmp.Close()
		return fmt.Errorf("writing activities: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp activities file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing activities file: %w", err)
	}
	return nil
}

func (s *Service) add(a model.Activity) {
	if s.byID == nil {
		s.byID = make(map[string]int)
	}
	s.byID[a.ID] = len(s.activities)
	s.activities = append(s.activities, a)
}

func (s *Service) reindex() {
	s.byID = make(map[string]int, len(s.activities))
	for i, a := range s.activities {
		s.byID[a.ID] = i
	}
}
