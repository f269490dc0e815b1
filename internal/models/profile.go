package models

import (
	"github.com/google/uuid"
)

// Profile stores a user's goal profile. Goals may be null: a user without
// goals gets no deltas or progress in the daily analysis.
type Profile struct {
	UserID uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	Goals  *GoalSet  `gorm:"type:jsonb" json:"goals"`
}

// TableName keeps the table name the store schema uses.
func (Profile) TableName() string {
	return "profiles"
}
