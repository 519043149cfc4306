package fiscal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/etsledger/etsledger/internal/model"
)

// ConfigurationError means the snapshot lacks what a computation needs.
// No partial report is produced.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// Report is the full evaluation of one fiscal year.
type Report struct {
	FiscalYear       int              `json:"fiscal_year" yaml:"fiscal_year"`
	EntityName       string           `json:"entity_name,omitempty" yaml:"entity_name,omitempty"`
	EntityType       model.EntityType `json:"entity_type" yaml:"entity_type"`
	PriorYearRevenue decimal.Decimal  `json:"prior_year_revenue" yaml:"prior_year_revenue"`
	GeneralCostPool  decimal.Decimal  `json:"general_cost_pool" yaml:"general_cost_pool"`

	GeneralInterest []ActivityResult  `json:"general_interest" yaml:"general_interest"`
	Diverse         []ActivitySummary `json:"diverse" yaml:"diverse"`
	Fundraisers     []ActivitySummary `json:"fundraisers" yaml:"fundraisers"`

	Entity     EntityResult     `json:"entity" yaml:"entity"`
	Secondary  SecondaryResult  `json:"secondary" yaml:"secondary"`
	Ires       IresResult       `json:"ires" yaml:"ires"`
	Unassigned UnassignedCounts `json:"unassigned" yaml:"unassigned"`
	Cash       CashPosition     `json:"cash" yaml:"cash"`
}

// Evaluate runs every test over a snapshot, in dependency order: cost
// apportionment, activity tests, entity test, secondariness, then IRES.
func (e *Engine) Evaluate(snap model.Snapshot) (*Report, error) {
	if snap.Profile == nil {
		return nil, &ConfigurationError{Reason: "entity profile missing"}
	}
	entityType, ok := model.ParseEntityType(string(snap.Profile.EntityType))
	if !ok {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("entity profile has invalid entity type %q", snap.Profile.EntityType)}
	}
	if snap.FiscalYear.Year == 0 {
		return nil, &ConfigurationError{Reason: "fiscal year not set"}
	}

	movements := snap.Movements
	report := &Report{
		FiscalYear:       snap.FiscalYear.Year,
		EntityName:       snap.Profile.Name,
		EntityType:       entityType,
		PriorYearRevenue: snap.FiscalYear.PriorYearRevenue,
		GeneralCostPool:  GeneralCostPool(movements),
	}

	aigs := snap.ActivitiesOf(model.FamilyGeneralInterest)
	imputed := ApportionGeneralCosts(movements, model.FamilyGeneralInterest, activityIDs(aigs))
	report.GeneralInterest = make([]ActivityResult, 0, len(aigs))
	for _, a := range aigs {
		report.GeneralInterest = append(report.GeneralInterest,
			e.EvaluateActivity(a, movements, imputed[a.ID], entityType))
	}

	diverse := snap.ActivitiesOf(model.FamilyDiverse)
	report.Diverse = summarize(diverse, movements, model.FamilyDiverse)
	report.Fundraisers = summarize(snap.ActivitiesOf(model.FamilyFundraiser), movements, model.FamilyFundraiser)

	report.Entity = EvaluateEntity(report.GeneralInterest, movements, diverse)
	report.Secondary = e.EvaluateSecondary(movements)
	report.Ires = e.SelectRegimeAndComputeIres(IresInput{
		EntityVerdict:       report.Entity.Verdict,
		EntityType:          entityType,
		PriorYearRevenue:    snap.FiscalYear.PriorYearRevenue,
		CommercialAIGIncome: report.Entity.A,
		DiverseIncome:       report.Secondary.TotalDiverseIncome,
		Income:              report.Secondary.TotalEntityIncome,
		Expense:             report.Secondary.TotalEntityExpense,
	})
	report.Unassigned = CountUnassigned(movements)
	report.Cash = ComputeCashPosition(movements)

	return report, nil
}

func summarize(activities []model.Activity, movements []model.Movement, family model.Family) []ActivitySummary {
	imputed := ApportionGeneralCosts(movements, family, activityIDs(activities))
	out := make([]ActivitySummary, 0, len(activities))
	for _, a := range activities {
		out = append(out, SummarizeActivity(a, movements, imputed[a.ID]))
	}
	return out
}
