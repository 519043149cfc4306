package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the money flow of a movement.
type Direction string

const (
	DirectionIncome  Direction = "INCOME"
	DirectionExpense Direction = "EXPENSE"
)

// ParseDirection accepts canonical and legacy (ENTRATA/USCITA) names.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INCOME", "ENTRATA":
		return DirectionIncome, true
	case "EXPENSE", "USCITA":
		return DirectionExpense, true
	}
	return "", false
}

// Kind separates ordinary movements from carried prior-year balances.
type Kind string

const (
	KindOrdinary         Kind = "ORDINARY"
	KindPriorCashSurplus Kind = "PRIOR_YEAR_CASH_SURPLUS"
	KindPriorBankSurplus Kind = "PRIOR_YEAR_BANK_SURPLUS"
)

// ParseKind accepts canonical and legacy (AVANZO_*_T_1) names. Empty means ordinary.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ORDINARY":
		return KindOrdinary, true
	case "PRIOR_YEAR_CASH_SURPLUS", "AVANZO_CASSA_T_1":
		return KindPriorCashSurplus, true
	case "PRIOR_YEAR_BANK_SURPLUS", "AVANZO_BANCA_T_1":
		return KindPriorBankSurplus, true
	}
	return "", false
}

// Account is where the money moved.
type Account string

const (
	AccountCash Account = "CASH"
	AccountBank Account = "BANK"
)

// ParseAccount accepts canonical and legacy (CASSA/BANCA) names. Empty is allowed.
func ParseAccount(s string) (Account, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "CASH", "CASSA":
		return AccountCash, true
	case "BANK", "BANCA":
		return AccountBank, true
	}
	return "", false
}

// Category is the statutory bucket a movement is recorded under.
type Category string

const (
	CategoryGeneralInterest     Category = "ACTIVITY_OF_GENERAL_INTEREST"
	CategoryDiverse             Category = "DIVERSE_ACTIVITY"
	CategoryFundraiser          Category = "FUNDRAISER"
	CategoryMembershipFees      Category = "MEMBERSHIP_FEES"
	CategoryDonations           Category = "DONATIONS"
	CategoryFivePerMille        Category = "FIVE_PER_MILLE"
	CategoryPublicContributions Category = "PUBLIC_CONTRIBUTIONS_NO_CONSIDERATION"
	CategoryOtherNonCommercial  Category = "OTHER_NONCOMMERCIAL_INCOME"
	CategoryGeneralCosts        Category = "GENERAL_COSTS"
)

var legacyCategories = map[string]Category{
	"AIG":                               CategoryGeneralInterest,
	"ATTIVITA_DIVERSE":                  CategoryDiverse,
	"RACCOLTE_FONDI":                    CategoryFundraiser,
	"QUOTE_ASSOCIATIVE":                 CategoryMembershipFees,
	"EROGAZIONI_LIBERALI":               CategoryDonations,
	"PROVENTI_5X1000":                   CategoryFivePerMille,
	"CONTRIBUTI_PA_SENZA_CORRISPETTIVO": CategoryPublicContributions,
	"ALTRI_PROVENTI_NON_COMMERCIALI":    CategoryOtherNonCommercial,
	"COSTI_GENERALI":                    CategoryGeneralCosts,
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryGeneralInterest,
		CategoryDiverse,
		CategoryFundraiser,
		CategoryMembershipFees,
		CategoryDonations,
		CategoryFivePerMille,
		CategoryPublicContributions,
		CategoryOtherNonCommercial,
		CategoryGeneralCosts,
	}
}

// ParseCategory accepts canonical and legacy Italian names.
func ParseCategory(s string) (Category, bool) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if c, ok := legacyCategories[key]; ok {
		return c, true
	}
	for _, c := range Categories() {
		if string(c) == key {
			return c, true
		}
	}
	return "", false
}

// Family returns the activity family that movements of this category are
// allocated to. ok is false for categories that never carry an allocation.
func (c Category) Family() (Family, bool) {
	switch c {
	case CategoryGeneralInterest:
		return FamilyGeneralInterest, true
	case CategoryDiverse:
		return FamilyDiverse, true
	case CategoryFundraiser:
		return FamilyFundraiser, true
	}
	return "", false
}

// NonCommercialIncome reports whether the category counts towards the
// "other non-commercial income" aggregate of the entity test.
func (c Category) NonCommercialIncome() bool {
	switch c {
	case CategoryMembershipFees, CategoryDonations, CategoryFivePerMille,
		CategoryPublicContributions, CategoryOtherNonCommercial:
		return true
	}
	return false
}

// AllowsDirection reports whether the category may be recorded with d.
func (c Category) AllowsDirection(d Direction) bool {
	switch {
	case c == CategoryGeneralCosts:
		return d == DirectionExpense
	case c.NonCommercialIncome():
		return d == DirectionIncome
	}
	return true
}

// Movement is a classified income or expense record of one fiscal year.
// The allocation target family is implied by Category, so a mismatched
// target cannot be expressed.
type Movement struct {
	ID          string
	Date        time.Time // zero for prior-year surplus rows
	Kind        Kind
	Direction   Direction
	Category    Category // empty for surplus kinds
	Code        int      // description code, 0 = none
	Description string
	Amount      decimal.Decimal
	Account     Account
	AllocatedTo string // activity id, empty = unassigned
}

// Allocation is the resolved target of an allocated movement.
type Allocation struct {
	Family Family
	ID     string
}

// Allocation returns the movement's target, if any.
func (m Movement) Allocation() (Allocation, bool) {
	fam, ok := m.Category.Family()
	if !ok || m.AllocatedTo == "" {
		return Allocation{}, false
	}
	return Allocation{Family: fam, ID: m.AllocatedTo}, true
}

// Ordinary reports whether the movement takes part in the fiscal tests.
func (m Movement) Ordinary() bool { return m.Kind == KindOrdinary }

// IsIncome reports an ordinary income movement.
func (m Movement) IsIncome() bool { return m.Ordinary() && m.Direction == DirectionIncome }

// IsExpense reports an ordinary expense movement.
func (m Movement) IsExpense() bool { return m.Ordinary() && m.Direction == DirectionExpense }

// RequiresAllocation reports whether the movement belongs to an activity
// family and should therefore be assigned to a specific activity.
func (m Movement) RequiresAllocation() bool {
	_, ok := m.Category.Family()
	return m.Ordinary() && ok
}

// Unassigned reports a movement that requires allocation but has none.
func (m Movement) Unassigned() bool {
	return m.RequiresAllocation() && m.AllocatedTo == ""
}

// RawMovement is a movement as stored or typed by the operator, before
// classification. All fields are unparsed text.
type RawMovement struct {
	ID              string
	Date            string
	Kind            string
	Direction       string
	Category        string
	DescriptionCode string
	Description     string
	Amount          string
	Account         string
	TargetType      string
	TargetID        string
}
