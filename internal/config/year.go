package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/etsledger/etsledger/internal/model"
)

// YearFileName is the per-year settings file inside each year directory.
const YearFileName = "fiscal-year.yaml"

const (
	MinYear = 1900
	MaxYear = 2100
)

// ErrYearNotFound is returned when a fiscal year has not been created.
var ErrYearNotFound = errors.New("fiscal year not found")

// YearFile is the on-disk form of a fiscal year.
type YearFile struct {
	Year             int             `yaml:"year"`
	PriorYearRevenue decimal.Decimal `yaml:"prior_year_revenue"`
}

// ValidateYear checks that year is in the accepted range.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year %d out of range %d-%d", year, MinYear, MaxYear)
	}
	return nil
}

// YearPath returns the fiscal-year.yaml path of a year.
func YearPath(repoRoot string, year int) string {
	return filepath.Join(repoRoot, strconv.Itoa(year), YearFileName)
}

// LoadYear reads <year>/fiscal-year.yaml.
func LoadYear(repoRoot string, year int) (model.FiscalYear, error) {
	if err := ValidateYear(year); err != nil {
		return model.FiscalYear{}, err
	}
	data, err := os.ReadFile(YearPath(repoRoot, year))
	if errors.Is(err, fs.ErrNotExist) {
		return model.FiscalYear{}, fmt.Errorf("year %d: %w", year, ErrYearNotFound)
	}
	if err != nil {
		return model.FiscalYear{}, fmt.Errorf("reading fiscal year: %w", err)
	}

	var yf YearFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return model.FiscalYear{}, fmt.Errorf("parsing fiscal year %d: %w", year, err)
	}
	if yf.Year != year {
		return model.FiscalYear{}, fmt.Errorf("%s declares year %d", YearPath(repoRoot, year), yf.Year)
	}
	if yf.PriorYearRevenue.IsNegative() {
		return model.FiscalYear{}, fmt.Errorf("year %d: prior_year_revenue must not be negative", year)
	}
	return model.FiscalYear{Year: yf.Year, PriorYearRevenue: yf.PriorYearRevenue}, nil
}

// SaveYear writes <year>/fiscal-year.yaml, creating the year directory.
func SaveYear(repoRoot string, fy model.FiscalYear) error {
	if err := ValidateYear(fy.Year); err != nil {
		return err
	}
	if fy.PriorYearRevenue.IsNegative() {
		return fmt.Errorf("prior-year revenue must not be negative, got %s", fy.PriorYearRevenue)
	}

	path := YearPath(repoRoot, fy.Year)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating year dir: %w", err)
	}
	data, err := yaml.Marshal(YearFile{Year: fy.Year, PriorYearRevenue: fy.PriorYearRevenue})
	if err != nil {
		return fmt.Errorf("marshaling fiscal year: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing fiscal year: %w", err)
	}
	return nil
}

// YearExists reports whether the fiscal year has been created.
func YearExists(repoRoot string, year int) bool {
	_, err := os.Stat(YearPath(repoRoot, year))
	return err == nil
}

// ListYears returns the created fiscal years in ascending order.
func ListYears(repoRoot string) ([]int, error) {
	entries, err := os.ReadDir(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("listing workspace: %w", err)
	}

	var years []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		year, err := strconv.Atoi(e.Name())
		if err != nil || ValidateYear(year) != nil {
			continue
		}
		if YearExists(repoRoot, year) {
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years, nil
}
