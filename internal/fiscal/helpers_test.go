package fiscal

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/etsledger/etsledger/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "want %s, got %s", want, got)
}

var seq int

func mov(d model.Direction, c model.Category, amount, target string, code int) model.Movement {
	seq++
	return model.Movement{
		ID:          fmt.Sprintf("m%d", seq),
		Kind:        model.KindOrdinary,
		Direction:   d,
		Category:    c,
		Code:        code,
		Amount:      dec(amount),
		Account:     model.AccountBank,
		AllocatedTo: target,
	}
}

func in(c model.Category, amount, target string) model.Movement {
	return mov(model.DirectionIncome, c, amount, target, 0)
}

func out(c model.Category, amount, target string) model.Movement {
	return mov(model.DirectionExpense, c, amount, target, 0)
}

func aig(id string) model.Activity {
	return model.Activity{ID: id, Family: model.FamilyGeneralInterest, Name: "AIG " + id}
}

func diverse(id string, occasional bool) model.Activity {
	return model.Activity{ID: id, Family: model.FamilyDiverse, Name: "AD " + id, Occasional: occasional}
}

func engine() *Engine {
	return NewEngine(DefaultRules())
}
