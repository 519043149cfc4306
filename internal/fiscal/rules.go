package fiscal

import "github.com/shopspring/decimal"

// Rules holds the statutory thresholds and coefficients used by the tests.
type Rules struct {
	// CommercialMargin is the tolerance over effective costs before an
	// activity of general interest turns commercial (0.06 = 6%).
	CommercialMargin decimal.Decimal

	// SecondaryIncomeShare caps diverse income as a share of entity income.
	SecondaryIncomeShare decimal.Decimal

	// SecondaryCostShare caps diverse income as a share of entity costs.
	SecondaryCostShare decimal.Decimal

	// ForfettarioRevenueCap is the highest prior-year revenue still eligible
	// for the flat regime.
	ForfettarioRevenueCap decimal.Decimal

	ForfettarioCoefficientAPS     decimal.Decimal
	ForfettarioCoefficientDefault decimal.Decimal
	IresRate                      decimal.Decimal
}

// DefaultRules returns the statutory values.
func DefaultRules() Rules {
	return Rules{
		CommercialMargin:              decimal.RequireFromString("0.06"),
		SecondaryIncomeShare:          decimal.RequireFromString("0.30"),
		SecondaryCostShare:            decimal.RequireFromString("0.66"),
		ForfettarioRevenueCap:         decimal.NewFromInt(85000),
		ForfettarioCoefficientAPS:     decimal.RequireFromString("0.0072"),
		ForfettarioCoefficientDefault: decimal.RequireFromString("0.0024"),
		IresRate:                      decimal.RequireFromString("0.24"),
	}
}

// Engine evaluates fiscal tests under a fixed set of rules. It holds no
// other state; every call is a pure function of its arguments.
type Engine struct {
	rules Rules
}

// NewEngine creates an Engine.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}
