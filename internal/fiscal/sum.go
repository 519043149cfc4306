package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/etsledger/etsledger/internal/model"
)

func sumWhere(movements []model.Movement, keep func(model.Movement) bool) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if keep(m) {
			total = total.Add(m.Amount)
		}
	}
	return total
}

func allocatedTo(m model.Movement, family model.Family, activityID string) bool {
	alloc, ok := m.Allocation()
	return ok && alloc.Family == family && alloc.ID == activityID
}

// TotalIncome sums ordinary income movements.
func TotalIncome(movements []model.Movement) decimal.Decimal {
	return sumWhere(movements, model.Movement.IsIncome)
}

// TotalExpense sums ordinary expense movements.
func TotalExpense(movements []model.Movement) decimal.Decimal {
	return sumWhere(movements, model.Movement.IsExpense)
}
