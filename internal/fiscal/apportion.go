package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/etsledger/etsledger/internal/model"
)

// GeneralCostPool sums the unallocated shared overhead of the year.
func GeneralCostPool(movements []model.Movement) decimal.Decimal {
	return sumWhere(movements, func(m model.Movement) bool {
		return m.IsExpense() && m.Category == model.CategoryGeneralCosts
	})
}

// AllocatedIncome sums ordinary income allocated to one activity.
func AllocatedIncome(movements []model.Movement, family model.Family, activityID string) decimal.Decimal {
	return sumWhere(movements, func(m model.Movement) bool {
		return m.IsIncome() && allocatedTo(m, family, activityID)
	})
}

// ApportionGeneralCosts splits the general cost pool across the given
// activities of one family, proportionally to each activity's allocated
// income. Every target gets an entry. When the family has no allocated
// income at all, every share is zero.
//
// Shares are not rounded; they sum to the pool up to decimal division
// precision.
func ApportionGeneralCosts(movements []model.Movement, family model.Family, targets []string) map[string]decimal.Decimal {
	pool := GeneralCostPool(movements)

	income := make(map[string]decimal.Decimal, len(targets))
	total := decimal.Zero
	for _, t := range targets {
		if _, seen := income[t]; seen {
			continue
		}
		inc := AllocatedIncome(movements, family, t)
		income[t] = inc
		total = total.Add(inc)
	}

	shares := make(map[string]decimal.Decimal, len(income))
	for t, inc := range income {
		if total.IsZero() {
			shares[t] = decimal.Zero
			continue
		}
		shares[t] = pool.Mul(inc).Div(total)
	}
	return shares
}

func activityIDs(activities []model.Activity) []string {
	ids := make([]string, len(activities))
	for i, a := range activities {
		ids[i] = a.ID
	}
	return ids
}
