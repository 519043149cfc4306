package fiscal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/etsledger/etsledger/internal/model"
)

func TestSelectRegime(t *testing.T) {
	tests := []struct {
		name       string
		verdict    Verdict
		entityType model.EntityType
		prior      string
		want       Regime
	}{
		{"aps non-commercial small", NonCommercial, model.EntityAPS, "40000", RegimeForfetario},
		{"odv at cap", NonCommercial, model.EntityODV, "85000", RegimeForfetario},
		{"over cap", NonCommercial, model.EntityAPS, "85000.01", RegimeOrdinario},
		{"ets always ordinary", NonCommercial, model.EntityETS, "1000", RegimeOrdinario},
		{"commercial entity", Commercial, model.EntityOther, "1000", RegimeOrdinario},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine().SelectRegime(tt.verdict, tt.entityType, dec(tt.prior))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeIres_ForfetarioAPS(t *testing.T) {
	r := engine().SelectRegimeAndComputeIres(IresInput{
		EntityVerdict:       NonCommercial,
		EntityType:          model.EntityAPS,
		PriorYearRevenue:    dec("40000"),
		CommercialAIGIncome: dec("10000"),
		DiverseIncome:       dec("5000"),
		Income:              dec("100000"),
		Expense:             dec("20000"),
	})
	assert.Equal(t, RegimeForfetario, r.Regime)
	assertDec(t, "15000", r.Breakdown.ForfetarioBase)
	assertDec(t, "0.0072", r.Breakdown.Coefficient)
	assertDec(t, "108", r.Tax)
	assertDec(t, "19200", r.Breakdown.OrdinarioTax)
}

func TestComputeIres_ForfetarioDefaultCoefficient(t *testing.T) {
	r := engine().SelectRegimeAndComputeIres(IresInput{
		EntityVerdict:    NonCommercial,
		EntityType:       model.EntityODV,
		PriorYearRevenue: dec("0"),
		DiverseIncome:    dec("10000"),
	})
	assert.Equal(t, RegimeForfetario, r.Regime)
	assertDec(t, "24", r.Tax)
}

func TestComputeIres_Ordinario(t *testing.T) {
	r := engine().SelectRegimeAndComputeIres(IresInput{
		EntityVerdict:    Commercial,
		EntityType:       model.EntityETS,
		PriorYearRevenue: dec("200000"),
		Income:           dec("120000"),
		Expense:          dec("100000"),
	})
	assert.Equal(t, RegimeOrdinario, r.Regime)
	assertDec(t, "20000", r.Breakdown.Profit)
	assertDec(t, "4800", r.Tax)
}

func TestComputeIres_OrdinarioLoss(t *testing.T) {
	r := engine().SelectRegimeAndComputeIres(IresInput{
		EntityVerdict: Commercial,
		EntityType:    model.EntityETS,
		Income:        dec("100"),
		Expense:       dec("150"),
	})
	assertDec(t, "-50", r.Breakdown.Profit)
	assertDec(t, "0", r.Tax)
}
