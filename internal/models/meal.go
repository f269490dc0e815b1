package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal is a logged meal entry. Rows are immutable after insert: the tool
// surface has no update or delete operation, and concurrent inserts for the
// same user and day are independent rows.
type Meal struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	EatenAt        time.Time    `gorm:"not null;index" json:"eaten_at"`
	ExternalFoodID string       `gorm:"size:255;not null;default:'natural'" json:"external_food_id"`
	Qty            float64      `gorm:"not null;default:1" json:"qty"`
	FoodName       string       `gorm:"size:255;not null" json:"food_name"`
	Macros         MacroProfile `gorm:"type:jsonb;not null" json:"macros"`
	RawData        RawData      `gorm:"type:jsonb" json:"raw_data,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// BeforeCreate assigns the primary key so inserts behave the same on
// Postgres and on the sqlite test store.
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
