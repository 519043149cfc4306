package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EntityType selects test variants and IRES coefficients.
type EntityType string

const (
	EntityAPS   EntityType = "APS"
	EntityODV   EntityType = "ODV"
	EntityETS   EntityType = "ETS"
	EntityOther EntityType = "OTHER"
)

// ParseEntityType normalizes an entity type name.
func ParseEntityType(s string) (EntityType, bool) {
	switch t := EntityType(strings.ToUpper(strings.TrimSpace(s))); t {
	case EntityAPS, EntityODV, EntityETS, EntityOther:
		return t, true
	}
	return "", false
}

// EntityProfile describes the operator's organization.
type EntityProfile struct {
	Name       string
	EntityType EntityType
	TaxCode    string
}

// FiscalYear scopes movements and activities to one reporting period.
type FiscalYear struct {
	Year             int
	PriorYearRevenue decimal.Decimal
}

// Snapshot is an immutable view of one fiscal year, passed explicitly to
// every evaluation.
type Snapshot struct {
	FiscalYear FiscalYear
	Profile    *EntityProfile
	Movements  []Movement
	Activities []Activity
}

// ActivitiesOf returns the activities of one family, in snapshot order.
func (s Snapshot) ActivitiesOf(f Family) []Activity {
	var out []Activity
	for _, a := range s.Activities {
		if a.Family == f {
			out = append(out, a)
		}
	}
	return out
}
