package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/etsledger/etsledger/internal/classify"
	"github.com/etsledger/etsledger/internal/model"
)

// Verdict is the outcome of a commerciality test.
type Verdict string

const (
	Commercial    Verdict = "COMMERCIAL"
	NonCommercial Verdict = "NON_COMMERCIAL"
)

// ActivityResult is the 6% test outcome of one activity of general interest.
type ActivityResult struct {
	ActivityID string          `json:"activity_id" yaml:"activity_id"`
	Name       string          `json:"name" yaml:"name"`
	TE         decimal.Decimal `json:"te" yaml:"te"`
	TU         decimal.Decimal `json:"tu" yaml:"tu"`
	CG         decimal.Decimal `json:"cg" yaml:"cg"`
	TUEff      decimal.Decimal `json:"tu_eff" yaml:"tu_eff"`
	TER        decimal.Decimal `json:"ter" yaml:"ter"`
	Threshold  decimal.Decimal `json:"threshold" yaml:"threshold"`
	Verdict    Verdict         `json:"verdict" yaml:"verdict"`
}

// EvaluateActivity runs the commerciality test on one activity of general
// interest. The activity is commercial only when relevant income strictly
// exceeds effective costs plus the margin.
func (e *Engine) EvaluateActivity(a model.Activity, movements []model.Movement, imputed decimal.Decimal, entityType model.EntityType) ActivityResult {
	fam := model.FamilyGeneralInterest
	te := AllocatedIncome(movements, fam, a.ID)
	tu := sumWhere(movements, func(m model.Movement) bool {
		return m.IsExpense() && allocatedTo(m, fam, a.ID)
	})

	ter := te
	if entityType == model.EntityAPS {
		ter = sumWhere(movements, func(m model.Movement) bool {
			return m.IsIncome() && allocatedTo(m, fam, a.ID) && !classify.IsMemberIncome(m)
		})
	}

	tuEff := tu.Add(imputed)
	threshold := tuEff.Mul(decimal.NewFromInt(1).Add(e.rules.CommercialMargin))

	verdict := NonCommercial
	if ter.GreaterThan(threshold) {
		verdict = Commercial
	}

	return ActivityResult{
		ActivityID: a.ID,
		Name:       a.Name,
		TE:         te,
		TU:         tu,
		CG:         imputed,
		TUEff:      tuEff,
		TER:        ter,
		Threshold:  threshold,
		Verdict:    verdict,
	}
}

// ActivitySummary is the income/cost picture of a diverse activity or a
// fundraiser, including its share of general costs.
type ActivitySummary struct {
	ActivityID string          `json:"activity_id" yaml:"activity_id"`
	Name       string          `json:"name" yaml:"name"`
	Occasional bool            `json:"occasional,omitempty" yaml:"occasional,omitempty"`
	TE         decimal.Decimal `json:"te" yaml:"te"`
	TU         decimal.Decimal `json:"tu" yaml:"tu"`
	CG         decimal.Decimal `json:"cg" yaml:"cg"`
	TUEff      decimal.Decimal `json:"tu_eff" yaml:"tu_eff"`
	Result     decimal.Decimal `json:"result" yaml:"result"`
}

// SummarizeActivity totals the movements allocated to a.
func SummarizeActivity(a model.Activity, movements []model.Movement, imputed decimal.Decimal) ActivitySummary {
	te := AllocatedIncome(movements, a.Family, a.ID)
	tu := sumWhere(movements, func(m model.Movement) bool {
		return m.IsExpense() && allocatedTo(m, a.Family, a.ID)
	})
	tuEff := tu.Add(imputed)
	return ActivitySummary{
		ActivityID: a.ID,
		Name:       a.Name,
		Occasional: a.Occasional,
		TE:         te,
		TU:         tu,
		CG:         imputed,
		TUEff:      tuEff,
		Result:     te.Sub(tuEff),
	}
}
