package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/mealai/nutritionix-mcp/config"
	"github.com/mealai/nutritionix-mcp/internal/database"
	"github.com/mealai/nutritionix-mcp/internal/models"
)

// Creates or updates the meals and profiles tables.
func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := db.AutoMigrate(&models.Meal{}, &models.Profile{}); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	logger.Info().Msg("migrations completed")
}
