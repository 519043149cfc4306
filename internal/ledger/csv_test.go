package ledger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etsledger/etsledger/internal/model"
)

func TestReadMovements(t *testing.T) {
	input := Header + "\n" +
		"2025-M0001,2025-03-01,ORDINARY,INCOME,ACTIVITY_OF_GENERAL_INTEREST,3,Corso yoga,1200.00,BANK,ACTIVITY_OF_GENERAL_INTEREST,a1\n" +
		"2025-M0002,,PRIOR_YEAR_CASH_SURPLUS,INCOME,,,,\"1,5\",CASH,,\n"

	rows, err := ReadMovements(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2025-M0001", rows[0].ID)
	assert.Equal(t, "3", rows[0].DescriptionCode)
	assert.Equal(t, "a1", rows[0].TargetID)
	assert.Equal(t, "1,5", rows[1].Amount, "amounts are kept as written until classification")
}

func TestReadMovements_Empty(t *testing.T) {
	rows, err := ReadMovements(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadMovements_WrongFieldCount(t *testing.T) {
	_, err := ReadMovements(strings.NewReader(Header + "\n2025-M0001,2025-03-01\n"))
	require.Error(t, err)
}

func TestReadMovements_MissingID(t *testing.T) {
	_, err := ReadMovements(strings.NewReader(Header + "\n,2025-03-01,,INCOME,DONATIONS,,,10,BANK,,\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestWriteMovements_RoundTrip(t *testing.T) {
	rows := []model.RawMovement{
		{ID: "2025-M0001", Date: "2025-01-10", Kind: "ORDINARY", Direction: "EXPENSE", Category: "GENERAL_COSTS", Description: "Affitto, gennaio", Amount: "500", Account: "BANK"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMovements(&buf, rows))
	assert.True(t, strings.HasPrefix(buf.String(), Header+"\n"))

	got, err := ReadMovements(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestToRaw(t *testing.T) {
	m := model.Movement{
		ID:          "2025-M0003",
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Kind:        model.KindOrdinary,
		Direction:   model.DirectionIncome,
		Category:    model.CategoryDiverse,
		Code:        6,
		Amount:      decimal.RequireFromString("2500.50"),
		Account:     model.AccountBank,
		AllocatedTo: "d1",
	}

	raw := ToRaw(m)
	assert.Equal(t, "2025-06-01", raw.Date)
	assert.Equal(t, "6", raw.DescriptionCode)
	assert.Equal(t, "2500.5", raw.Amount)
	assert.Equal(t, string(model.FamilyDiverse), raw.TargetType)
	assert.Equal(t, "d1", raw.TargetID)

	surplus := ToRaw(model.Movement{ID: "2025-M0004", Kind: model.KindPriorBankSurplus, Direction: model.DirectionIncome, Amount: decimal.NewFromInt(10), Account: model.AccountBank})
	assert.Empty(t, surplus.Date)
	assert.Empty(t, surplus.DescriptionCode)
	assert.Empty(t, surplus.TargetType)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteMovements_ReportsWriteFailure(t *testing.T) {
	rows := []model.RawMovement{
		{ID: "2025-M0001", Date: "2025-01-10", Kind: "ORDINARY", Direction: "INCOME", Category: "DONATIONS", Amount: "10", Account: "BANK"},
	}

	assert.ErrorContains(t, WriteMovements(failWriter{}, rows), "disk full")
	assert.ErrorContains(t, AppendMovements(failWriter{}, rows), "disk full")
}
