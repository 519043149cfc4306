package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/etsledger/etsledger/internal/classify"
	"github.com/etsledger/etsledger/internal/model"
)

// EntityResult is the entity-wide commerciality test.
//
//	A: relevant income of commercial activities of general interest
//	B: income of non-occasional diverse activities, sponsorships excluded
//	C: relevant income of non-commercial activities of general interest
//	D: other non-commercial income (fees, donations, 5x1000, public grants)
type EntityResult struct {
	A       decimal.Decimal `json:"a" yaml:"a"`
	B       decimal.Decimal `json:"b" yaml:"b"`
	C       decimal.Decimal `json:"c" yaml:"c"`
	D       decimal.Decimal `json:"d" yaml:"d"`
	Verdict Verdict         `json:"verdict" yaml:"verdict"`
}

// EvaluateEntity aggregates activity verdicts and other income into the
// entity verdict: commercial only when A+B strictly exceeds C+D.
func EvaluateEntity(results []ActivityResult, movements []model.Movement, diverse []model.Activity) EntityResult {
	a, c := decimal.Zero, decimal.Zero
	for _, r := range results {
		if r.Verdict == Commercial {
			a = a.Add(r.TER)
		} else {
			c = c.Add(r.TER)
		}
	}

	counted := make(map[string]bool, len(diverse))
	for _, act := range diverse {
		if act.CountsAsDiverse() {
			counted[act.ID] = true
		}
	}
	b := sumWhere(movements, func(m model.Movement) bool {
		if !m.IsIncome() || classify.IsSponsorship(m) {
			return false
		}
		alloc, ok := m.Allocation()
		return ok && alloc.Family == model.FamilyDiverse && counted[alloc.ID]
	})

	d := sumWhere(movements, func(m model.Movement) bool {
		return m.IsIncome() && m.Category.NonCommercialIncome()
	})

	verdict := NonCommercial
	if a.Add(b).GreaterThan(c.Add(d)) {
		verdict = Commercial
	}
	return EntityResult{A: a, B: b, C: c, D: d, Verdict: verdict}
}
