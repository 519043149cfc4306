package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/etsledger/etsledger/internal/model"
)

// CashPosition is the year's liquidity per account and the operating
// result.
type CashPosition struct {
	BankSurplus     decimal.Decimal `json:"bank_surplus" yaml:"bank_surplus"`
	CashSurplus     decimal.Decimal `json:"cash_surplus" yaml:"cash_surplus"`
	BankIncome      decimal.Decimal `json:"bank_income" yaml:"bank_income"`
	BankExpense     decimal.Decimal `json:"bank_expense" yaml:"bank_expense"`
	CashIncome      decimal.Decimal `json:"cash_income" yaml:"cash_income"`
	CashExpense     decimal.Decimal `json:"cash_expense" yaml:"cash_expense"`
	BankAvailable   decimal.Decimal `json:"bank_available" yaml:"bank_available"`
	CashAvailable   decimal.Decimal `json:"cash_available" yaml:"cash_available"`
	OperatingResult decimal.Decimal `json:"operating_result" yaml:"operating_result"`
}

// ComputeCashPosition derives availability as carried surplus plus income
// minus expense, per account. Ordinary movements with no account count
// only towards the operating result.
func ComputeCashPosition(movements []model.Movement) CashPosition {
	on := func(acct model.Account, keep func(model.Movement) bool) decimal.Decimal {
		return sumWhere(movements, func(m model.Movement) bool {
			return m.Account == acct && keep(m)
		})
	}
	kind := func(k model.Kind) func(model.Movement) bool {
		return func(m model.Movement) bool { return m.Kind == k }
	}

	p := CashPosition{
		BankSurplus: on(model.AccountBank, kind(model.KindPriorBankSurplus)),
		CashSurplus: on(model.AccountCash, kind(model.KindPriorCashSurplus)),
		BankIncome:  on(model.AccountBank, model.Movement.IsIncome),
		BankExpense: on(model.AccountBank, model.Movement.IsExpense),
		CashIncome:  on(model.AccountCash, model.Movement.IsIncome),
		CashExpense: on(model.AccountCash, model.Movement.IsExpense),
	}
	p.BankAvailable = p.BankSurplus.Add(p.BankIncome).Sub(p.BankExpense)
	p.CashAvailable = p.CashSurplus.Add(p.CashIncome).Sub(p.CashExpense)
	p.OperatingResult = TotalIncome(movements).Sub(TotalExpense(movements))
	return p
}
