//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealai/nutritionix-mcp/internal/models"
	"github.com/mealai/nutritionix-mcp/internal/service"
	"github.com/mealai/nutritionix-mcp/internal/testdb"
)

// Verifies the store contract against real Postgres: jsonb round-trip,
// DATE(eaten_at) truncation in UTC, and ascending ordering.
func TestMealStoreAgainstPostgres(t *testing.T) {
	td := testdb.Setup(t)
	svc := service.NewMealService(td.DB)
	ctx := context.Background()
	userID := uuid.New()

	eatenAt := func(value string) time.Time {
		ts, err := time.Parse(time.RFC3339, value)
		require.NoError(t, err)
		return ts
	}

	require.NoError(t, svc.LogMeal(ctx, &models.Meal{
		UserID:   userID,
		EatenAt:  eatenAt("2024-01-15T19:30:00Z"),
		FoodName: "Dinner",
		Qty:      1,
		Macros:   models.MacroProfile{Kcal: 600, ProteinG: 40, CarbsG: 50, FatG: 20},
	}))
	require.NoError(t, svc.LogMeal(ctx, &models.Meal{
		UserID:   userID,
		EatenAt:  eatenAt("2024-01-15T08:00:00Z"),
		FoodName: "Oatmeal",
		Qty:      1,
		Macros:   models.MacroProfile{Kcal: 150, ProteinG: 5, CarbsG: 27, FatG: 3, FiberG: 4},
		RawData:  models.RawData(`{"source":"natural"}`),
	}))
	require.NoError(t, svc.LogMeal(ctx, &models.Meal{
		UserID:   userID,
		EatenAt:  eatenAt("2024-01-16T08:00:00Z"),
		FoodName: "Next day breakfast",
		Qty:      1,
		Macros:   models.MacroProfile{Kcal: 300, ProteinG: 10, CarbsG: 40, FatG: 8},
	}))

	meals, err := svc.MealsForDay(ctx, userID, "2024-01-15")
	require.NoError(t, err)

	require.Len(t, meals, 2)
	assert.Equal(t, "Oatmeal", meals[0].FoodName)
	assert.Equal(t, "Dinner", meals[1].FoodName)
	assert.Equal(t, 150.0, meals[0].Macros.Kcal)
	assert.Equal(t, 4.0, meals[0].Macros.FiberG)
	assert.JSONEq(t, `{"source":"natural"}`, string(meals[0].RawData))

	goals, err := svc.GoalsForUser(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, goals)

	require.NoError(t, td.DB.Create(&models.Profile{
		UserID: userID,
		Goals:  &models.GoalSet{Calories: 2000, ProteinG: 120},
	}).Error)

	goals, err = svc.GoalsForUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, goals)
	assert.Equal(t, 2000.0, goals.Calories)
}
