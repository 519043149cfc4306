package fiscal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/etsledger/etsledger/internal/model"
)

func TestEvaluateSecondary_BothFail(t *testing.T) {
	movements := []model.Movement{
		in(model.CategoryDiverse, "40000", "d1"),
		in(model.CategoryDonations, "60000", ""),
		out(model.CategoryGeneralCosts, "50000", ""),
	}

	r := engine().EvaluateSecondary(movements)
	assertDec(t, "40000", r.TotalDiverseIncome)
	assertDec(t, "100000", r.TotalEntityIncome)
	assertDec(t, "50000", r.TotalEntityExpense)
	assertDec(t, "30000", r.Threshold30)
	assertDec(t, "33000", r.Threshold66)
	assert.False(t, r.Pass30)
	assert.False(t, r.Pass66)
}

func TestEvaluateSecondary_IndependentChecks(t *testing.T) {
	movements := []model.Movement{
		in(model.CategoryDiverse, "30", "d1"),
		in(model.CategoryDonations, "70", ""),
		out(model.CategoryGeneralCosts, "10", ""),
	}

	r := engine().EvaluateSecondary(movements)
	assert.True(t, r.Pass30, "30 <= 30 passes")
	assert.False(t, r.Pass66, "30 > 6.6 fails")
}

func TestEvaluateSecondary_CountsEveryDiverseIncome(t *testing.T) {
	movements := []model.Movement{
		in(model.CategoryDiverse, "10", ""),
		in(model.CategoryDiverse, "20", "occ"),
		mov(model.DirectionIncome, model.CategoryDiverse, "30", "d1", 6),
		{Kind: model.KindPriorCashSurplus, Direction: model.DirectionIncome, Account: model.AccountCash, Amount: dec("1000")},
	}

	r := engine().EvaluateSecondary(movements)
	assertDec(t, "60", r.TotalDiverseIncome)
	assertDec(t, "60", r.TotalEntityIncome)
}

func TestEvaluateSecondary_Empty(t *testing.T) {
	r := engine().EvaluateSecondary(nil)
	assert.True(t, r.Pass30)
	assert.True(t, r.Pass66)
}
