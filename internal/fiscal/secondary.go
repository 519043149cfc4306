package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/etsledger/etsledger/internal/model"
)

// SecondaryResult reports the two secondariness checks of diverse
// activities. Each check is kept separate; the law deems diverse
// activities secondary when at least one passes, and that reading is left
// to the operator.
type SecondaryResult struct {
	TotalDiverseIncome decimal.Decimal `json:"total_diverse_income" yaml:"total_diverse_income"`
	TotalEntityIncome  decimal.Decimal `json:"total_entity_income" yaml:"total_entity_income"`
	TotalEntityExpense decimal.Decimal `json:"total_entity_expense" yaml:"total_entity_expense"`
	Threshold30        decimal.Decimal `json:"threshold_30" yaml:"threshold_30"`
	Threshold66        decimal.Decimal `json:"threshold_66" yaml:"threshold_66"`
	Pass30             bool            `json:"pass_30" yaml:"pass_30"`
	Pass66             bool            `json:"pass_66" yaml:"pass_66"`
}

// DiverseIncome sums all diverse-activity income, whether allocated or
// not and whether occasional or not.
func DiverseIncome(movements []model.Movement) decimal.Decimal {
	return sumWhere(movements, func(m model.Movement) bool {
		return m.IsIncome() && m.Category == model.CategoryDiverse
	})
}

// EvaluateSecondary runs the income-share and cost-share checks.
func (e *Engine) EvaluateSecondary(movements []model.Movement) SecondaryResult {
	diverse := DiverseIncome(movements)
	income := TotalIncome(movements)
	expense := TotalExpense(movements)

	t30 := income.Mul(e.rules.SecondaryIncomeShare)
	t66 := expense.Mul(e.rules.SecondaryCostShare)

	return SecondaryResult{
		TotalDiverseIncome: diverse,
		TotalEntityIncome:  income,
		TotalEntityExpense: expense,
		Threshold30:        t30,
		Threshold66:        t66,
		Pass30:             diverse.LessThanOrEqual(t30),
		Pass66:             diverse.LessThanOrEqual(t66),
	}
}
