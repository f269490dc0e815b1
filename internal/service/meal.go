package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealai/nutritionix-mcp/internal/models"
)

// MealService handles meal persistence and daily retrieval. All timestamps
// are stored and compared in UTC; day membership is calendar-date truncation
// of eaten_at.
type MealService struct {
	db *gorm.DB
}

// NewMealService creates a new MealService instance.
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// LogMeal inserts a single meal row. The insert is unconditional: no user
// existence check is made, the store's own constraints decide.
func (s *MealService) LogMeal(ctx context.Context, meal *models.Meal) error {
	meal.EatenAt = meal.EatenAt.UTC()
	return s.db.WithContext(ctx).Create(meal).Error
}

// MealsForDay returns the user's meals whose eaten_at falls on the given
// calendar day, ascending by eaten_at. day must be a YYYY-MM-DD string.
func (s *MealService) MealsForDay(ctx context.Context, userID uuid.UUID, day string) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND DATE(eaten_at) = DATE(?)", userID, day).
		Order("eaten_at").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}

// GoalsForUser returns the user's goal set, or nil when the user has no
// profile or the profile carries no goals.
func (s *MealService) GoalsForUser(ctx context.Context, userID uuid.UUID) (*models.GoalSet, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile.Goals, nil
}

// Ping verifies store reachability, used by the startup probe.
func (s *MealService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
