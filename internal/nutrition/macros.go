// Package nutrition implements the pure aggregation logic behind the meal
// tools: scaling and summing macro profiles, goal deltas and progress, and
// the daily recommendation rules. Nothing in this package performs I/O.
package nutrition

import (
	"math"

	"github.com/mealai/nutritionix-mcp/internal/models"
)

// Scale multiplies every field of a macro profile by qty.
func Scale(m models.MacroProfile, qty float64) models.MacroProfile {
	return models.MacroProfile{
		Kcal:     m.Kcal * qty,
		ProteinG: m.ProteinG * qty,
		CarbsG:   m.CarbsG * qty,
		FatG:     m.FatG * qty,
		FiberG:   m.FiberG * qty,
		SugarG:   m.SugarG * qty,
		SodiumMg: m.SodiumMg * qty,
	}
}

// Sum adds macro profiles field by field. Summation is associative and
// commutative, so callers may present profiles in any order.
func Sum(profiles []models.MacroProfile) models.MacroProfile {
	var total models.MacroProfile
	for _, m := range profiles {
		total.Kcal += m.Kcal
		total.ProteinG += m.ProteinG
		total.CarbsG += m.CarbsG
		total.FatG += m.FatG
		total.FiberG += m.FiberG
		total.SugarG += m.SugarG
		total.SodiumMg += m.SodiumMg
	}
	return total
}

// Deltas holds the difference between daily totals and the goal values for
// the four goal-tracked fields.
type Deltas struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Progress holds per-field goal completion as whole percentages. A zero goal
// field reports zero progress rather than dividing by zero.
type Progress struct {
	Kcal     int `json:"kcal"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// GoalDeltas computes totals minus goals for the goal-tracked fields.
func GoalDeltas(totals models.MacroProfile, goals models.GoalSet) Deltas {
	return Deltas{
		Kcal:     totals.Kcal - goals.Calories,
		ProteinG: totals.ProteinG - goals.ProteinG,
		CarbsG:   totals.CarbsG - goals.CarbsG,
		FatG:     totals.FatG - goals.FatG,
	}
}

// GoalProgress computes rounded goal completion percentages.
func GoalProgress(totals models.MacroProfile, goals models.GoalSet) Progress {
	return Progress{
		Kcal:     percent(totals.Kcal, goals.Calories),
		ProteinG: percent(totals.ProteinG, goals.ProteinG),
		CarbsG:   percent(totals.CarbsG, goals.CarbsG),
		FatG:     percent(totals.FatG, goals.FatG),
	}
}

func percent(value, goal float64) int {
	if goal == 0 {
		return 0
	}
	return int(math.Round(value / goal * 100))
}
