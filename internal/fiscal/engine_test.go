package fiscal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etsledger/etsledger/internal/model"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		FiscalYear: model.FiscalYear{Year: 2025, PriorYearRevenue: dec("40000")},
		Profile:    &model.EntityProfile{Name: "Circolo Aurora APS", EntityType: model.EntityAPS},
		Activities: []model.Activity{
			aig("a1"),
			diverse("d1", false),
			{ID: "f1", Family: model.FamilyFundraiser, Name: "Lotteria"},
		},
		Movements: []model.Movement{
			mov(model.DirectionIncome, model.CategoryGeneralInterest, "50000", "a1", 4),
			out(model.CategoryGeneralInterest, "48000", "a1"),
			out(model.CategoryGeneralCosts, "2000", ""),
			in(model.CategoryDiverse, "5000", "d1"),
			in(model.CategoryDonations, "2000", ""),
			in(model.CategoryFundraiser, "800", "f1"),
			in(model.CategoryFundraiser, "100", ""),
			{ID: "s1", Kind: model.KindPriorBankSurplus, Direction: model.DirectionIncome, Account: model.AccountBank, Amount: dec("3000")},
		},
	}
}

func TestEvaluate_FullYear(t *testing.T) {
	report, err := engine().Evaluate(sampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 2025, report.FiscalYear)
	assert.Equal(t, model.EntityAPS, report.EntityType)
	assertDec(t, "2000", report.GeneralCostPool)

	require.Len(t, report.GeneralInterest, 1)
	a1 := report.GeneralInterest[0]
	assertDec(t, "2000", a1.CG)
	assertDec(t, "50000", a1.TUEff)
	assertDec(t, "53000", a1.Threshold)
	assert.Equal(t, NonCommercial, a1.Verdict)

	require.Len(t, report.Diverse, 1)
	assertDec(t, "2000", report.Diverse[0].CG)
	assertDec(t, "3000", report.Diverse[0].Result)
	require.Len(t, report.Fundraisers, 1)
	assertDec(t, "800", report.Fundraisers[0].TE)

	assertDec(t, "5000", report.Entity.B)
	assertDec(t, "50000", report.Entity.C)
	assertDec(t, "2000", report.Entity.D)
	assert.Equal(t, NonCommercial, report.Entity.Verdict)

	assert.Equal(t, RegimeForfetario, report.Ires.Regime)
	assertDec(t, "36", report.Ires.Tax)

	assert.Equal(t, 1, report.Unassigned.Fundraiser)
	assert.Equal(t, 1, report.Unassigned.Total)

	assertDec(t, "3000", report.Cash.BankSurplus)
	assertDec(t, "57900", report.Secondary.TotalEntityIncome)
	assertDec(t, "50000", report.Secondary.TotalEntityExpense)
	assertDec(t, "7900", report.Cash.OperatingResult)
	assertDec(t, "10900", report.Cash.BankAvailable)
}

func TestEvaluate_Deterministic(t *testing.T) {
	snap := sampleSnapshot()
	first, err := engine().Evaluate(snap)
	require.NoError(t, err)
	second, err := engine().Evaluate(snap)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluate_ConfigurationErrors(t *testing.T) {
	snap := sampleSnapshot()
	snap.Profile = nil
	_, err := engine().Evaluate(snap)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Reason, "profile")

	snap = sampleSnapshot()
	snap.Profile = &model.EntityProfile{EntityType: ""}
	_, err = engine().Evaluate(snap)
	require.True(t, errors.As(err, &cfgErr))

	snap = sampleSnapshot()
	snap.FiscalYear.Year = 0
	report, err := engine().Evaluate(snap)
	require.True(t, errors.As(err, &cfgErr))
	assert.Nil(t, report)
}

func TestEvaluate_UnassignedNeverCounted(t *testing.T) {
	snap := sampleSnapshot()
	base, err := engine().Evaluate(snap)
	require.NoError(t, err)

	snap.Movements = append(snap.Movements,
		in(model.CategoryGeneralInterest, "999999", ""),
		out(model.CategoryGeneralInterest, "999999", ""),
	)
	withUnassigned, err := engine().Evaluate(snap)
	require.NoError(t, err)

	assert.Equal(t, base.GeneralInterest, withUnassigned.GeneralInterest)
	assert.Equal(t, base.Entity, withUnassigned.Entity)
	assert.Equal(t, 2, withUnassigned.Unassigned.GeneralInterest)
}

func TestEvaluate_NoActivities(t *testing.T) {
	snap := model.Snapshot{
		FiscalYear: model.FiscalYear{Year: 2024},
		Profile:    &model.EntityProfile{EntityType: model.EntityETS},
	}
	report, err := engine().Evaluate(snap)
	require.NoError(t, err)
	assert.Empty(t, report.GeneralInterest)
	assert.Equal(t, NonCommercial, report.Entity.Verdict)
	assert.Equal(t, RegimeOrdinario, report.Ires.Regime)
	assert.True(t, report.Ires.Tax.IsZero())
}

func TestCountUnassigned(t *testing.T) {
	movements := []model.Movement{
		in(model.CategoryGeneralInterest, "1", ""),
		in(model.CategoryDiverse, "1", ""),
		out(model.CategoryDiverse, "1", ""),
		in(model.CategoryFundraiser, "1", "f1"),
		out(model.CategoryGeneralCosts, "1", ""),
		in(model.CategoryDonations, "1", ""),
	}
	u := CountUnassigned(movements)
	assert.Equal(t, 1, u.GeneralInterest)
	assert.Equal(t, 2, u.Diverse)
	assert.Equal(t, 0, u.Fundraiser)
	assert.Equal(t, 3, u.Total)
	assert.Len(t, u.MovementIDs, 3)
}

func TestComputeCashPosition(t *testing.T) {
	cashIn := in(model.CategoryDonations, "200", "")
	cashIn.Account = model.AccountCash
	cashOut := out(model.CategoryGeneralCosts, "50", "")
	cashOut.Account = model.AccountCash
	noAccount := in(model.CategoryMembershipFees, "10", "")
	noAccount.Account = ""

	movements := []model.Movement{
		{Kind: model.KindPriorCashSurplus, Direction: model.DirectionIncome, Account: model.AccountCash, Amount: dec("100")},
		{Kind: model.KindPriorBankSurplus, Direction: model.DirectionIncome, Account: model.AccountBank, Amount: dec("1000")},
		cashIn,
		cashOut,
		noAccount,
		in(model.CategoryDonations, "500", ""),
		out(model.CategoryGeneralCosts, "300", ""),
	}

	p := ComputeCashPosition(movements)
	assertDec(t, "250", p.CashAvailable)
	assertDec(t, "1200", p.BankAvailable)
	assertDec(t, "360", p.OperatingResult)
}
