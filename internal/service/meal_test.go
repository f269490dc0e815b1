package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealai/nutritionix-mcp/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Meal{}, &models.Profile{}))
	return db
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestLogMealAssignsIDAndCreatedAt(t *testing.T) {
	svc := NewMealService(setupDB(t))

	meal := &models.Meal{
		UserID:         uuid.New(),
		EatenAt:        mustTime(t, "2024-01-15T08:00:00Z"),
		ExternalFoodID: "natural",
		Qty:            1,
		FoodName:       "Oatmeal",
		Macros:         models.MacroProfile{Kcal: 150, ProteinG: 5, CarbsG: 27, FatG: 3},
	}

	require.NoError(t, svc.LogMeal(context.Background(), meal))

	assert.NotEqual(t, uuid.Nil, meal.ID)
	assert.False(t, meal.CreatedAt.IsZero())
}

// Day membership is by calendar date in UTC: meals at different times of the
// same day are included, the next day is not.
func TestMealsForDayTruncatesToCalendarDate(t *testing.T) {
	svc := NewMealService(setupDB(t))
	ctx := context.Background()
	userID := uuid.New()

	for _, entry := range []struct {
		name string
		at   string
	}{
		{"Dinner", "2024-01-15T19:30:00Z"},
		{"Breakfast", "2024-01-15T08:00:00Z"},
		{"Next day", "2024-01-16T00:30:00Z"},
	} {
		require.NoError(t, svc.LogMeal(ctx, &models.Meal{
			UserID:   userID,
			EatenAt:  mustTime(t, entry.at),
			FoodName: entry.name,
			Qty:      1,
			Macros:   models.MacroProfile{Kcal: 100},
		}))
	}

	meals, err := svc.MealsForDay(ctx, userID, "2024-01-15")
	require.NoError(t, err)

	require.Len(t, meals, 2)
	// Ordered ascending by eaten_at, not insertion order.
	assert.Equal(t, "Breakfast", meals[0].FoodName)
	assert.Equal(t, "Dinner", meals[1].FoodName)
}

func TestMealsForDayScopedToUser(t *testing.T) {
	svc := NewMealService(setupDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.LogMeal(ctx, &models.Meal{
		UserID:   uuid.New(),
		EatenAt:  mustTime(t, "2024-01-15T12:00:00Z"),
		FoodName: "Someone else's lunch",
		Qty:      1,
	}))

	meals, err := svc.MealsForDay(ctx, userID, "2024-01-15")
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestMealMacrosSurviveRoundTrip(t *testing.T) {
	svc := NewMealService(setupDB(t))
	ctx := context.Background()
	userID := uuid.New()

	macros := models.MacroProfile{Kcal: 150.5, ProteinG: 5.2, CarbsG: 27, FatG: 3, FiberG: 4, SugarG: 1, SodiumMg: 140}
	require.NoError(t, svc.LogMeal(ctx, &models.Meal{
		UserID:   userID,
		EatenAt:  mustTime(t, "2024-01-15T08:00:00Z"),
		FoodName: "Oatmeal",
		Qty:      1,
		Macros:   macros,
		RawData:  models.RawData(`{"source":"natural"}`),
	}))

	meals, err := svc.MealsForDay(ctx, userID, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, macros, meals[0].Macros)
	assert.JSONEq(t, `{"source":"natural"}`, string(meals[0].RawData))
}

func TestGoalsForUserWithoutProfile(t *testing.T) {
	svc := NewMealService(setupDB(t))

	goals, err := svc.GoalsForUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, goals)
}

func TestGoalsForUser(t *testing.T) {
	db := setupDB(t)
	svc := NewMealService(db)
	userID := uuid.New()

	require.NoError(t, db.Create(&models.Profile{
		UserID: userID,
		Goals:  &models.GoalSet{Calories: 2000, ProteinG: 120, CarbsG: 250, FatG: 70},
	}).Error)

	goals, err := svc.GoalsForUser(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, goals)
	assert.Equal(t, 2000.0, goals.Calories)
	assert.Equal(t, 120.0, goals.ProteinG)
}

func TestGoalsForUserWithNullGoals(t *testing.T) {
	db := setupDB(t)
	svc := NewMealService(db)
	userID := uuid.New()

	require.NoError(t, db.Create(&models.Profile{UserID: userID}).Error)

	goals, err := svc.GoalsForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, goals)
}
