// Package tools registers the nutrition tools on an MCP server and
// implements their handlers. Every handler validates its arguments before
// any I/O and converts every failure into the uniform error envelope; only
// an unknown tool name escapes the envelope path, handled by the MCP
// library's own routing.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/mealai/nutritionix-mcp/internal/nutritionix"
	"github.com/mealai/nutritionix-mcp/internal/service"
)

// Dependencies holds the shared services for tool handlers, passed to
// handler factories via closure capture.
type Dependencies struct {
	Meals       *service.MealService
	Nutritionix *nutritionix.Client
	Logger      zerolog.Logger
}

// Register adds the four nutrition tools to the server.
func Register(srv *server.MCPServer, deps Dependencies) {
	srv.AddTool(
		mcp.NewTool("search_food",
			mcp.WithDescription("Search for foods using Nutritionix autocomplete. Returns both common and branded foods."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Search term for food (e.g., 'chicken breast', 'apple')"),
			),
		),
		handleSearchFood(deps),
	)

	srv.AddTool(
		mcp.NewTool("food_nutrients",
			mcp.WithDescription("Get detailed nutrition information for a food item using either branded lookup or natural language parsing."),
			mcp.WithString("nix_item_id",
				mcp.Description("Nutritionix item ID for branded foods (from search_food results)"),
			),
			mcp.WithString("text",
				mcp.Description("Natural language description of food (e.g., '2 eggs and 1 slice of toast')"),
			),
			mcp.WithNumber("qty",
				mcp.Description("Quantity multiplier (default: 1)"),
				mcp.DefaultNumber(1),
			),
		),
		handleFoodNutrients(deps),
	)

	srv.AddTool(
		mcp.NewTool("log_meal",
			mcp.WithDescription("Log a meal with nutrition information to the database."),
			mcp.WithString("user_id",
				mcp.Required(),
				mcp.Description("UUID of the user logging the meal"),
			),
			mcp.WithString("eaten_at",
				mcp.Required(),
				mcp.Description("ISO timestamp when the meal was eaten"),
			),
			mcp.WithString("external_food_id",
				mcp.Description("Food identifier (nix_item_id or 'natural')"),
				mcp.DefaultString("natural"),
			),
			mcp.WithNumber("qty",
				mcp.Description("Quantity consumed"),
				mcp.DefaultNumber(1),
			),
			mcp.WithString("food_name",
				mcp.Required(),
				mcp.Description("Human-readable name of the food"),
			),
			mcp.WithObject("macros",
				mcp.Required(),
				mcp.Description("Macronutrient information; kcal, protein_g, carbs_g and fat_g are required"),
				mcp.Properties(map[string]any{
					"kcal":      map[string]any{"type": "number"},
					"protein_g": map[string]any{"type": "number"},
					"carbs_g":   map[string]any{"type": "number"},
					"fat_g":     map[string]any{"type": "number"},
					"fiber_g":   map[string]any{"type": "number"},
					"sugar_g":   map[string]any{"type": "number"},
					"sodium_mg": map[string]any{"type": "number"},
				}),
			),
			mcp.WithObject("raw_data",
				mcp.Description("Raw API response for debugging (optional)"),
			),
		),
		handleLogMeal(deps),
	)

	srv.AddTool(
		mcp.NewTool("analyze_day",
			mcp.WithDescription("Analyze daily nutrition totals and compare against user goals."),
			mcp.WithString("user_id",
				mcp.Required(),
				mcp.Description("UUID of the user to analyze"),
			),
			mcp.WithString("day_iso",
				mcp.Required(),
				mcp.Description("Date in YYYY-MM-DD format"),
			),
		),
		handleAnalyzeDay(deps),
	)
}
