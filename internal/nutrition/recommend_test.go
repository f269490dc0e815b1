package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealai/nutritionix-mcp/internal/models"
)

func TestRecommendWithoutGoals(t *testing.T) {
	recs := Recommend(models.MacroProfile{Kcal: 5000, SodiumMg: 9000}, nil)

	require.Len(t, recs, 1)
	assert.Equal(t, msgNoGoals, recs[0])
}

func TestRecommendCalorieBandsAreExclusive(t *testing.T) {
	goals := &models.GoalSet{Calories: 2000, ProteinG: 1}

	under := Recommend(models.MacroProfile{Kcal: 1000, ProteinG: 5, FiberG: 30}, goals)
	assert.Contains(t, under, msgUnderCalorie)
	assert.NotContains(t, under, msgOverCalorie)

	over := Recommend(models.MacroProfile{Kcal: 3000, ProteinG: 5, FiberG: 30}, goals)
	assert.Contains(t, over, msgOverCalorie)
	assert.NotContains(t, over, msgUnderCalorie)
}

func TestRecommendCalorieBoundariesAreStrict(t *testing.T) {
	goals := &models.GoalSet{Calories: 2000}

	// Exactly 0.8x is not under, exactly 1.2x is not over.
	atFloor := Recommend(models.MacroProfile{Kcal: 1600, FiberG: 30}, goals)
	assert.NotContains(t, atFloor, msgUnderCalorie)

	atCeiling := Recommend(models.MacroProfile{Kcal: 2400, FiberG: 30}, goals)
	assert.NotContains(t, atCeiling, msgOverCalorie)
}

func TestRecommendFiberAndSodiumFireIndependently(t *testing.T) {
	goals := &models.GoalSet{Calories: 2000, ProteinG: 50}
	totals := models.MacroProfile{Kcal: 2000, ProteinG: 50, FiberG: 10, SodiumMg: 3000}

	recs := Recommend(totals, goals)

	require.Len(t, recs, 2)
	assert.Equal(t, msgLowFiber, recs[0])
	assert.Equal(t, msgHighSodium, recs[1])
}

func TestRecommendWellBalanced(t *testing.T) {
	goals := &models.GoalSet{Calories: 2000, ProteinG: 100}
	totals := models.MacroProfile{Kcal: 2000, ProteinG: 100, FiberG: 30, SodiumMg: 1500}

	recs := Recommend(totals, goals)

	require.Len(t, recs, 1)
	assert.Equal(t, msgBalanced, recs[0])
}

func TestRecommendZeroGoalFieldsFollowPlainArithmetic(t *testing.T) {
	// A zero calorie goal makes the under-band check "kcal < 0", which never
	// fires, and the over-band check "kcal > 0", which fires for any intake.
	goals := &models.GoalSet{}
	recs := Recommend(models.MacroProfile{Kcal: 100, FiberG: 30}, goals)

	assert.Contains(t, recs, msgOverCalorie)
	assert.NotContains(t, recs, msgUnderCalorie)
}
