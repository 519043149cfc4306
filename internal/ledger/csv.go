package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etsledger/etsledger/internal/classify"
	"github.com/etsledger/etsledger/internal/model"
)

// Header is the CSV header for movements.csv.
const Header = "movement_id,date,kind,direction,category,description_code,description,amount,account,target_type,target_id"

const (
	numFields     = 11
	colID         = 0
	colDate       = 1
	colKind       = 2
	colDirection  = 3
	colCategory   = 4
	colCode       = 5
	colDesc       = 6
	colAmount     = 7
	colAccount    = 8
	colTargetType = 9
	colTargetID   = 10
)

// ReadMovements reads all rows from a movements.csv reader. Rows are
// returned unclassified.
func ReadMovements(r io.Reader) ([]model.RawMovement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading movements CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var movements []model.RawMovement
	for i, rec := range records[1:] {
		m, err := UnmarshalMovement(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		movements = append(movements, m)
	}
	return movements, nil
}

// WriteMovements writes movements to a movements.csv writer (including header).
func WriteMovements(w io.Writer, movements []model.RawMovement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, m := range movements {
		if err := cw.Write(MarshalMovement(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendMovements appends rows to an existing movements.csv writer (no header).
func AppendMovements(w io.Writer, movements []model.RawMovement) error {
	cw := csv.NewWriter(w)

	for i, m := range movements {
		if err := cw.Write(MarshalMovement(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalMovement converts a RawMovement to a CSV row.
func MarshalMovement(m model.RawMovement) []string {
	row := make([]string, numFields)
	row[colID] = m.ID
	row[colDate] = m.Date
	row[colKind] = m.Kind
	row[colDirection] = m.Direction
	row[colCategory] = m.Category
	row[colCode] = m.DescriptionCode
	row[colDesc] = m.Description
	row[colAmount] = m.Amount
	row[colAccount] = m.Account
	row[colTargetType] = m.TargetType
	row[colTargetID] = m.TargetID
	return row
}

// UnmarshalMovement converts a CSV row to a RawMovement.
func UnmarshalMovement(record []string) (model.RawMovement, error) {
	if len(record) != numFields {
		return model.RawMovement{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colID] == "" {
		return model.RawMovement{}, fmt.Errorf("missing movement_id")
	}

	return model.RawMovement{
		ID:              record[colID],
		Date:            record[colDate],
		Kind:            record[colKind],
		Direction:       record[colDirection],
		Category:        record[colCategory],
		DescriptionCode: record[colCode],
		Description:     record[colDesc],
		Amount:          record[colAmount],
		Account:         record[colAccount],
		TargetType:      record[colTargetType],
		TargetID:        record[colTargetID],
	}, nil
}

// ToRaw converts a classified movement back to its canonical stored form.
// Legacy names accepted on input are written out under their current names.
func ToRaw(m model.Movement) model.RawMovement {
	raw := model.RawMovement{
		ID:          m.ID,
		Kind:        string(m.Kind),
		Direction:   string(m.Direction),
		Category:    string(m.Category),
		Description: m.Description,
		Amount:      m.Amount.String(),
		Account:     string(m.Account),
	}
	if !m.Date.IsZero() {
		raw.Date = m.Date.Format(classify.DateFormat)
	}
	if m.Code != 0 {
		raw.DescriptionCode = strconv.Itoa(m.Code)
	}
	if alloc, ok := m.Allocation(); ok {
		raw.TargetType = string(alloc.Family)
		raw.TargetID = alloc.ID
	}
	return raw
}
