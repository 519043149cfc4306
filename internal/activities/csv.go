package activities

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/etsledger/etsledger/internal/id"
	"github.com/etsledger/etsledger/internal/model"
)

const (
	numFields     = 5
	colID         = 0
	colFamily     = 1
	colName       = 2
	colDesc       = 3
	colOccasional = 4
)

// ReadActivities reads activities.csv.
func ReadActivities(r io.Reader) ([]model.Activity, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activities CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var activities []model.Activity
	for i, rec := range records[1:] {
		a, err := UnmarshalActivity(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		activities = append(activities, a)
	}
	return activities, nil
}

// WriteActivities writes activities.csv.
func WriteActivities(w io.Writer, activities []model.Activity) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"activity_id", "family", "name", "description", "occasional"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, a := range activities {
		if err := cw.Write(MarshalActivity(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalActivity converts an Activity to a CSV row.
func MarshalActivity(a model.Activity) []string {
	row := make([]string, numFields)
	row[colID] = a.ID
	row[colFamily] = string(a.Family)
	row[colName] = a.Name
	row[colDesc] = a.Description
	if a.Occasional {
		row[colOccasional] = "true"
	}
	return row
}

// UnmarshalActivity converts a CSV row to an Activity.
func UnmarshalActivity(record []string) (model.Activity, error) {
	if len(record) != numFields {
		return model.Activity{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colID] == "" {
		return model.Activity{}, fmt.Errorf("missing activity_id")
	}
	if !id.ValidActivityID(record[colID]) {
		return model.Activity{}, fmt.Errorf("malformed activity_id %q", record[colID])
	}

	family, ok := model.ParseFamily(record[colFamily])
	if !ok {
		return model.Activity{}, fmt.Errorf("unknown family %q", record[colFamily])
	}

	var occasional bool
	if record[colOccasional] != "" {
		var err error
		occasional, err = strconv.ParseBool(record[colOccasional])
		if err != nil {
			return model.Activity{}, fmt.Errorf("parsing occasional %q: %w", record[colOccasional], err)
		}
	}

	return model.Activity{
		ID:          record[colID],
		Family:      family,
		Name:        record[colName],
		Description: record[colDesc],
		Occasional:  occasional,
	}, nil
}
