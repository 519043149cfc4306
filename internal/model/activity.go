package model

import "strings"

// Family is one of the three activity families that receive allocations.
type Family string

const (
	FamilyGeneralInterest Family = "ACTIVITY_OF_GENERAL_INTEREST"
	FamilyDiverse         Family = "DIVERSE_ACTIVITY"
	FamilyFundraiser      Family = "FUNDRAISER"
)

// Families lists the activity families in display order.
func Families() []Family {
	return []Family{FamilyGeneralInterest, FamilyDiverse, FamilyFundraiser}
}

// ParseFamily accepts canonical and legacy (AIG, ATTIVITA_DIVERSE, RACCOLTE_FONDI) names.
func ParseFamily(s string) (Family, bool) {
	c, ok := ParseCategory(s)
	if !ok {
		return "", false
	}
	return c.Family()
}

// Category returns the movement category whose movements are allocated to the family.
func (f Family) Category() Category {
	return Category(f)
}

// Short returns a compact label used in listings.
func (f Family) Short() string {
	switch f {
	case FamilyGeneralInterest:
		return "AIG"
	case FamilyDiverse:
		return "DIVERSE"
	case FamilyFundraiser:
		return "FUNDRAISER"
	}
	return strings.ToLower(string(f))
}

// Activity is an operator-defined target for allocated movements.
type Activity struct {
	ID          string
	Family      Family
	Name        string
	Description string
	Occasional  bool // diverse activities only
}

// CountsAsDiverse reports a diverse activity that takes part in the entity
// test aggregate.
func (a Activity) CountsAsDiverse() bool {
	return a.Family == FamilyDiverse && !a.Occasional
}
