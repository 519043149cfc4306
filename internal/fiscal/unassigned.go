package fiscal

import "github.com/etsledger/etsledger/internal/model"

// UnassignedCounts reports ordinary movements of an activity family that
// have no target activity. They are left out of every per-activity and
// entity total.
type UnassignedCounts struct {
	GeneralInterest int      `json:"general_interest" yaml:"general_interest"`
	Diverse         int      `json:"diverse" yaml:"diverse"`
	Fundraiser      int      `json:"fundraiser" yaml:"fundraiser"`
	Total           int      `json:"total" yaml:"total"`
	MovementIDs     []string `json:"movement_ids,omitempty" yaml:"movement_ids,omitempty"`
}

// CountUnassigned counts unassigned movements per family.
func CountUnassigned(movements []model.Movement) UnassignedCounts {
	var u UnassignedCounts
	for _, m := range movements {
		if !m.Unassigned() {
			continue
		}
		switch m.Category {
		case model.CategoryGeneralInterest:
			u.GeneralInterest++
		case model.CategoryDiverse:
			u.Diverse++
		case model.CategoryFundraiser:
			u.Fundraiser++
		}
		u.Total++
		u.MovementIDs = append(u.MovementIDs, m.ID)
	}
	return u
}
