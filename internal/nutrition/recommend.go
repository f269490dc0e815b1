package nutrition

import "github.com/mealai/nutritionix-mcp/internal/models"

// Fixed daily thresholds, independent of user goals.
const (
	fiberFloorG    = 25
	sodiumCeilingMg = 2300
)

const (
	msgNoGoals      = "Set up your nutritional goals in your profile to get personalized recommendations."
	msgUnderCalorie = "You're significantly under your calorie goal. Consider adding nutrient-dense foods."
	msgOverCalorie  = "You've exceeded your calorie goal. Consider lighter options for remaining meals."
	msgLowProtein   = "Low protein intake. Consider adding lean meats, fish, eggs, or plant-based proteins."
	msgLowFiber     = "Increase fiber intake with fruits, vegetables, and whole grains."
	msgHighSodium   = "High sodium intake. Try to reduce processed foods and add fresh herbs for flavor."
	msgBalanced     = "Great job! Your nutrition looks well-balanced today."
)

// Recommend derives daily guidance from totals versus goals. The rules fire
// independently except the two calorie bands, which are mutually exclusive.
// A nil goal set yields exactly one message asking the user to set goals,
// and a quiet day with goals yields exactly one well-balanced message.
func Recommend(totals models.MacroProfile, goals *models.GoalSet) []string {
	if goals == nil {
		return []string{msgNoGoals}
	}

	var recs []string

	if totals.Kcal < goals.Calories*0.8 {
		recs = append(recs, msgUnderCalorie)
	} else if totals.Kcal > goals.Calories*1.2 {
		recs = append(recs, msgOverCalorie)
	}

	if totals.ProteinG < goals.ProteinG*0.8 {
		recs = append(recs, msgLowProtein)
	}

	if totals.FiberG < fiberFloorG {
		recs = append(recs, msgLowFiber)
	}

	if totals.SodiumMg > sodiumCeilingMg {
		recs = append(recs, msgHighSodium)
	}

	if len(recs) == 0 {
		recs = append(recs, msgBalanced)
	}

	return recs
}
