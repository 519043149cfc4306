package classify

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etsledger/etsledger/internal/model"
)

func raw(direction, category, amount string) model.RawMovement {
	return model.RawMovement{
		ID:        "2025-M0001",
		Date:      "2025-03-14",
		Direction: direction,
		Category:  category,
		Amount:    amount,
		Account:   "BANK",
	}
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %T", err)
	fields := make([]string, len(verrs))
	for i, v := range verrs {
		fields[i] = v.Field
	}
	assert.Contains(t, fields, field)
}

func TestClassify_Ordinary(t *testing.T) {
	r := raw("INCOME", "ACTIVITY_OF_GENERAL_INTEREST", "1500.50")
	r.DescriptionCode = "3"
	r.TargetType = "ACTIVITY_OF_GENERAL_INTEREST"
	r.TargetID = "act-1"
	r.Description = "  Corso di formazione  "

	m, err := Classify(r)
	require.NoError(t, err)
	assert.Equal(t, "2025-M0001", m.ID)
	assert.Equal(t, model.KindOrdinary, m.Kind)
	assert.Equal(t, model.DirectionIncome, m.Direction)
	assert.Equal(t, model.CategoryGeneralInterest, m.Category)
	assert.Equal(t, 3, m.Code)
	assert.True(t, m.Amount.Equal(decimal.RequireFromString("1500.50")))
	assert.Equal(t, model.AccountBank, m.Account)
	assert.Equal(t, "act-1", m.AllocatedTo)
	assert.Equal(t, "Corso di formazione", m.Description)
	assert.Equal(t, 2025, m.Date.Year())
}

func TestClassify_LegacyNames(t *testing.T) {
	r := raw("ENTRATA", "ATTIVITA_DIVERSE", "10")
	r.Account = "CASSA"
	r.TargetType = "ATTIVITA_DIVERSE"
	r.TargetID = "d-1"

	m, err := Classify(r)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryDiverse, m.Category)
	assert.Equal(t, model.AccountCash, m.Account)
	alloc, ok := m.Allocation()
	require.True(t, ok)
	assert.Equal(t, model.FamilyDiverse, alloc.Family)
}

func TestClassify_TargetTypeOptional(t *testing.T) {
	r := raw("EXPENSE", "FUNDRAISER", "40")
	r.TargetID = "f-1"
	m, err := Classify(r)
	require.NoError(t, err)
	assert.Equal(t, "f-1", m.AllocatedTo)
}

func TestClassify_AmountErrors(t *testing.T) {
	for _, amount := range []string{"", "0", "-5", "abc", "NaN", "Inf"} {
		_, err := Classify(raw("INCOME", "DONATIONS", amount))
		requireValidation(t, err, "amount")
	}
}

func TestClassify_AmountPrecision(t *testing.T) {
	for _, amount := range []string{"0.001", "10.005", "1e-50000000"} {
		_, err := Classify(raw("INCOME", "DONATIONS", amount))
		requireValidation(t, err, "amount")
	}

	m, err := Classify(raw("INCOME", "DONATIONS", "10.500"))
	require.NoError(t, err)
	assert.Equal(t, "10.5", m.Amount.String())
}

func TestClassify_AmountMagnitude(t *testing.T) {
	for _, amount := range []string{"1e50000000", "1000000000000", "1e12"} {
		_, err := Classify(raw("INCOME", "DONATIONS", amount))
		requireValidation(t, err, "amount")
	}

	m, err := Classify(raw("INCOME", "DONATIONS", "999999999999.99"))
	require.NoError(t, err)
	assert.Equal(t, "999999999999.99", m.Amount.String())
}

func TestClassify_DateRequiredForOrdinary(t *testing.T) {
	r := raw("INCOME", "DONATIONS", "10")
	r.Date = ""
	_, err := Classify(r)
	requireValidation(t, err, "date")

	r.Date = "   "
	_, err = Classify(r)
	requireValidation(t, err, "date")
}

func TestClassify_MissingCategory(t *testing.T) {
	_, err := Classify(raw("INCOME", "", "10"))
	requireValidation(t, err, "category")
}

func TestClassify_UnknownDirection(t *testing.T) {
	_, err := Classify(raw("TRANSFER", "DONATIONS", "10"))
	requireValidation(t, err, "direction")

	_, err = Classify(raw("", "DONATIONS", "10"))
	requireValidation(t, err, "direction")
}

func TestClassify_CategoryDirection(t *testing.T) {
	_, err := Classify(raw("INCOME", "GENERAL_COSTS", "10"))
	requireValidation(t, err, "category")

	_, err = Classify(raw("EXPENSE", "MEMBERSHIP_FEES", "10"))
	requireValidation(t, err, "category")
}

func TestClassify_CodeOutsideCategory(t *testing.T) {
	r := raw("INCOME", "DONATIONS", "10")
	r.DescriptionCode = "1"
	_, err := Classify(r)
	requireValidation(t, err, "description_code")
}

func TestClassify_CodeNotInCatalog(t *testing.T) {
	r := raw("EXPENSE", "DIVERSE_ACTIVITY", "10")
	r.DescriptionCode = "9"
	_, err := Classify(r)
	requireValidation(t, err, "description_code")

	r.DescriptionCode = "x"
	_, err = Classify(r)
	requireValidation(t, err, "description_code")
}

func TestClassify_AllocationMismatch(t *testing.T) {
	r := raw("INCOME", "ACTIVITY_OF_GENERAL_INTEREST", "10")
	r.TargetType = "FUNDRAISER"
	r.TargetID = "f-1"
	_, err := Classify(r)
	requireValidation(t, err, "allocation")
}

func TestClassify_GeneralCostsNeverAllocated(t *testing.T) {
	r := raw("EXPENSE", "GENERAL_COSTS", "10")
	r.TargetID = "a-1"
	_, err := Classify(r)
	requireValidation(t, err, "allocation")
}

func TestClassify_Surplus(t *testing.T) {
	m, err := Classify(model.RawMovement{ID: "2025-M0002", Kind: "AVANZO_BANCA_T_1", Amount: "2500"})
	require.NoError(t, err)
	assert.Equal(t, model.KindPriorBankSurplus, m.Kind)
	assert.Equal(t, model.AccountBank, m.Account)
	assert.Equal(t, model.DirectionIncome, m.Direction)
	assert.Empty(t, m.Category)
	assert.True(t, m.Date.IsZero())
	assert.False(t, m.IsIncome(), "surplus rows are not ordinary income")
}

func TestClassify_SurplusRejectsCategoryAndAccount(t *testing.T) {
	_, err := Classify(model.RawMovement{Kind: "PRIOR_YEAR_CASH_SURPLUS", Amount: "5", Category: "DONATIONS"})
	requireValidation(t, err, "category")

	_, err = Classify(model.RawMovement{Kind: "PRIOR_YEAR_CASH_SURPLUS", Amount: "5", Account: "BANK"})
	requireValidation(t, err, "account")

	_, err = Classify(model.RawMovement{Kind: "PRIOR_YEAR_CASH_SURPLUS", Amount: "5", Direction: "EXPENSE"})
	requireValidation(t, err, "direction")
}

func TestClassify_CollectsAllErrors(t *testing.T) {
	r := raw("INCOME", "DONATIONS", "-1")
	r.Date = "14/03/2025"
	r.Account = "POCKET"
	_, err := Classify(r)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "[2025-M0001]")
}

func TestCodes(t *testing.T) {
	assert.Len(t, Codes(model.CategoryGeneralInterest, model.DirectionIncome), 8)
	assert.Len(t, Codes(model.CategoryDiverse, model.DirectionIncome), 7)
	assert.Len(t, Codes(model.CategoryGeneralInterest, model.DirectionExpense), 10)
	assert.Len(t, Codes(model.CategoryDiverse, model.DirectionExpense), 5)
	assert.Nil(t, Codes(model.CategoryFundraiser, model.DirectionIncome))
	assert.Equal(t, "Sponsorizzazioni", CodeLabel(model.CategoryDiverse, model.DirectionIncome, CodeDiverseSponsoring))
}

func TestIncomeMarkers(t *testing.T) {
	member := model.Movement{Direction: model.DirectionIncome, Category: model.CategoryGeneralInterest, Code: 2}
	assert.True(t, IsMemberIncome(member))
	member.Code = 3
	assert.False(t, IsMemberIncome(member))

	spons := model.Movement{Direction: model.DirectionIncome, Category: model.CategoryDiverse, Code: 6}
	assert.True(t, IsSponsorship(spons))
	spons.Category = model.CategoryGeneralInterest
	assert.False(t, IsSponsorship(spons))
}
