package models

import (
	"database/sql/driver"
	"encoding/json"
)

// MacroProfile holds the macronutrient quantities for a food or meal.
// Units are fixed: kcal, grams, milligrams. A field absent from upstream
// data is zero, and every aggregation treats zero and absent identically.
type MacroProfile struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SugarG   float64 `json:"sugar_g"`
	SodiumMg float64 `json:"sodium_mg"`
}

// Value implements the driver.Valuer interface for JSONB storage.
func (m MacroProfile) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface.
func (m *MacroProfile) Scan(value interface{}) error {
	if value == nil {
		*m = MacroProfile{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// GoalSet holds a user's target daily macro values. Any field left at zero
// behaves exactly as an unset goal in delta and progress arithmetic.
type GoalSet struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Value implements the driver.Valuer interface for JSONB storage.
func (g GoalSet) Value() (driver.Value, error) {
	return json.Marshal(g)
}

// Scan implements the sql.Scanner interface.
func (g *GoalSet) Scan(value interface{}) error {
	if value == nil {
		*g = GoalSet{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, g)
}

// RawData is an opaque JSONB blob kept for debugging: the provider response
// that produced a logged meal. Never interpreted after insert.
type RawData json.RawMessage

// Value implements the driver.Valuer interface.
func (r RawData) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	return []byte(r), nil
}

// Scan implements the sql.Scanner interface.
func (r *RawData) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*r = append((*r)[:0], v...)
	case string:
		*r = RawData(v)
	}
	return nil
}

// MarshalJSON returns the raw bytes unchanged, or null when empty.
func (r RawData) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores the raw bytes unchanged.
func (r *RawData) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}
