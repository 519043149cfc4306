package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/etsledger/etsledger/internal/model"
)

// Regime is the IRES computation regime.
type Regime string

const (
	RegimeForfetario Regime = "FORFETARIO"
	RegimeOrdinario  Regime = "ORDINARIO"
)

// IresInput carries the already computed totals the tax depends on.
type IresInput struct {
	EntityVerdict    Verdict
	EntityType       model.EntityType
	PriorYearRevenue decimal.Decimal

	// CommercialAIGIncome is the relevant income of commercial activities
	// of general interest.
	CommercialAIGIncome decimal.Decimal

	// DiverseIncome is all diverse-activity income, unfiltered.
	DiverseIncome decimal.Decimal

	Income  decimal.Decimal
	Expense decimal.Decimal
}

// IresBreakdown shows both computations so the operator can compare them.
type IresBreakdown struct {
	ForfetarioBase decimal.Decimal `json:"forfetario_base" yaml:"forfetario_base"`
	Coefficient    decimal.Decimal `json:"coefficient" yaml:"coefficient"`
	ForfetarioTax  decimal.Decimal `json:"forfetario_tax" yaml:"forfetario_tax"`
	Profit         decimal.Decimal `json:"profit" yaml:"profit"`
	Rate           decimal.Decimal `json:"rate" yaml:"rate"`
	OrdinarioTax   decimal.Decimal `json:"ordinario_tax" yaml:"ordinario_tax"`
}

// IresResult is the selected regime and the tax due under it.
type IresResult struct {
	Regime    Regime          `json:"regime" yaml:"regime"`
	Tax       decimal.Decimal `json:"tax" yaml:"tax"`
	Breakdown IresBreakdown   `json:"breakdown" yaml:"breakdown"`
}

// SelectRegime picks the flat regime for non-ETS, non-commercial entities
// whose prior-year revenue is within the cap.
func (e *Engine) SelectRegime(verdict Verdict, entityType model.EntityType, priorYearRevenue decimal.Decimal) Regime {
	if entityType != model.EntityETS &&
		verdict == NonCommercial &&
		priorYearRevenue.LessThanOrEqual(e.rules.ForfettarioRevenueCap) {
		return RegimeForfetario
	}
	return RegimeOrdinario
}

// SelectRegimeAndComputeIres selects the regime and computes the tax.
func (e *Engine) SelectRegimeAndComputeIres(in IresInput) IresResult {
	regime := e.SelectRegime(in.EntityVerdict, in.EntityType, in.PriorYearRevenue)

	coeff := e.rules.ForfettarioCoefficientDefault
	if in.EntityType == model.EntityAPS {
		coeff = e.rules.ForfettarioCoefficientAPS
	}
	base := in.CommercialAIGIncome.Add(in.DiverseIncome)
	flatTax := base.Mul(coeff)

	profit := in.Income.Sub(in.Expense)
	ordTax := decimal.Max(decimal.Zero, profit).Mul(e.rules.IresRate)

	tax := ordTax
	if regime == RegimeForfetario {
		tax = flatTax
	}

	return IresResult{
		Regime: regime,
		Tax:    tax,
		Breakdown: IresBreakdown{
			ForfetarioBase: base,
			Coefficient:    coeff,
			ForfetarioTax:  flatTax,
			Profit:         profit,
			Rate:           e.rules.IresRate,
			OrdinarioTax:   ordTax,
		},
	}
}
