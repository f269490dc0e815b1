package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mealai/nutritionix-mcp/internal/models"
	"github.com/mealai/nutritionix-mcp/internal/nutrition"
	"github.com/mealai/nutritionix-mcp/internal/nutritionix"
)

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// eatenAtLayouts are the accepted timestamp formats for log_meal.
var eatenAtLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

const instantResultLimit = 5

type searchItem struct {
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Photo     *string `json:"photo"`
	NixItemID string  `json:"nix_item_id,omitempty"`
	BrandName string  `json:"brand_name,omitempty"`
}

type searchResponse struct {
	Query        string       `json:"query"`
	Items        []searchItem `json:"items"`
	TotalResults struct {
		Common  int `json:"common"`
		Branded int `json:"branded"`
	} `json:"total_results"`
}

func handleSearchFood(deps Dependencies) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := stringArg(req, "query")
		if query == "" {
			return validationError("Query must not be empty")
		}

		res, err := deps.Nutritionix.SearchInstant(ctx, query)
		if err != nil {
			deps.Logger.Warn().Err(err).Str("query", query).Msg("instant search failed")
			return upstreamError("Failed to search foods", err)
		}

		resp := searchResponse{
			Query: query,
			Items: make([]searchItem, 0, 2*instantResultLimit),
		}
		resp.TotalResults.Common = len(res.Common)
		resp.TotalResults.Branded = len(res.Branded)

		for _, c := range truncateCommon(res.Common) {
			resp.Items = append(resp.Items, searchItem{
				Type:  "common",
				Name:  c.FoodName,
				Photo: thumbOrNil(c.Photo),
			})
		}
		for _, b := range truncateBranded(res.Branded) {
			name := b.BrandNameItemName
			if name == "" {
				name = b.FoodName
			}
			resp.Items = append(resp.Items, searchItem{
				Type:      "branded",
				Name:      name,
				Photo:     thumbOrNil(b.Photo),
				NixItemID: b.NixItemID,
				BrandName: b.BrandName,
			})
		}

		return jsonResult(resp)
	}
}

type nutrientsResponse struct {
	FoodName       string              `json:"food_name"`
	Quantity       float64             `json:"quantity"`
	Macros         models.MacroProfile `json:"macros"`
	ExternalFoodID string              `json:"external_food_id"`
	RawResponse    json.RawMessage     `json:"raw_response"`
}

func handleFoodNutrients(deps Dependencies) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nixItemID := stringArg(req, "nix_item_id")
		text := stringArg(req, "text")
		qty := floatArg(req, "qty", 1)

		if nixItemID == "" && text == "" {
			return validationError("Must provide either nix_item_id or text parameter")
		}

		if nixItemID != "" {
			return brandedNutrients(ctx, deps, nixItemID, qty)
		}
		return naturalNutrients(ctx, deps, text, qty)
	}
}

// brandedNutrients looks up a single branded item and scales its per-serving
// macros by qty.
func brandedNutrients(ctx context.Context, deps Dependencies, nixItemID string, qty float64) (*mcp.CallToolResult, error) {
	item, err := deps.Nutritionix.LookupItem(ctx, nixItemID)
	if errors.Is(err, nutritionix.ErrItemNotFound) {
		return jsonResult(ErrorEnvelope{Error: "Food item not found", NixItemID: nixItemID})
	}
	if err != nil {
		deps.Logger.Warn().Err(err).Str("nix_item_id", nixItemID).Msg("item lookup failed")
		return upstreamError("Failed to get food nutrients", err)
	}

	foodName := item.FoodName
	if foodName == "" {
		foodName = "Unknown branded food"
	}

	return jsonResult(nutrientsResponse{
		FoodName:       foodName,
		Quantity:       qty,
		Macros:         nutrition.Scale(item.Macros(), qty),
		ExternalFoodID: nixItemID,
		RawResponse:    item.Raw,
	})
}

// naturalNutrients parses free text, sums macros across every food the
// provider returned, then scales the aggregate by qty. The quantity applies
// to the whole description, not to each food.
func naturalNutrients(ctx context.Context, deps Dependencies, text string, qty float64) (*mcp.CallToolResult, error) {
	foods, err := deps.Nutritionix.ParseNatural(ctx, text)
	if err != nil {
		deps.Logger.Warn().Err(err).Str("text", text).Msg("natural language parse failed")
		return upstreamError("Failed to get food nutrients", err)
	}

	profiles := make([]models.MacroProfile, len(foods))
	raws := make([]json.RawMessage, len(foods))
	for i, f := range foods {
		profiles[i] = f.Macros()
		raws[i] = f.Raw
	}

	raw, err := json.Marshal(raws)
	if err != nil {
		return nil, err
	}

	return jsonResult(nutrientsResponse{
		FoodName:       text,
		Quantity:       qty,
		Macros:         nutrition.Scale(nutrition.Sum(profiles), qty),
		ExternalFoodID: "natural",
		RawResponse:    raw,
	})
}

type logMealResponse struct {
	Success  bool      `json:"success"`
	MealID   uuid.UUID `json:"meal_id"`
	LoggedAt time.Time `json:"logged_at"`
	Message  string    `json:"message"`
}

func handleLogMeal(deps Dependencies) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := uuid.Parse(stringArg(req, "user_id"))
		if err != nil {
			return validationError("Invalid user ID format")
		}

		eatenAt, ok := parseEatenAt(stringArg(req, "eaten_at"))
		if !ok {
			return validationError("eaten_at must be an ISO-8601 timestamp")
		}

		foodName := stringArg(req, "food_name")
		if foodName == "" {
			return validationError("food_name is required")
		}

		macros, err := parseMacros(objectArg(req, "macros"))
		if err != nil {
			return validationError(err.Error())
		}

		externalFoodID := stringArg(req, "external_food_id")
		if externalFoodID == "" {
			externalFoodID = "natural"
		}

		meal := &models.Meal{
			UserID:         userID,
			EatenAt:        eatenAt,
			ExternalFoodID: externalFoodID,
			Qty:            floatArg(req, "qty", 1),
			FoodName:       foodName,
			Macros:         macros,
			RawData:        rawDataArg(req),
		}

		if err := deps.Meals.LogMeal(ctx, meal); err != nil {
			deps.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("meal insert failed")
			return jsonResult(ErrorEnvelope{
				Error:   "Failed to log meal",
				Message: err.Error(),
				Hint:    "Make sure the database is running and user_id exists",
			})
		}

		deps.Logger.Debug().Str("meal_id", meal.ID.String()).Str("user_id", userID.String()).Msg("meal logged")
		return jsonResult(logMealResponse{
			Success:  true,
			MealID:   meal.ID,
			LoggedAt: meal.CreatedAt,
			Message:  fmt.Sprintf("Successfully logged %q for user %s", foodName, userID),
		})
	}
}

type analysisMeal struct {
	ID       uuid.UUID           `json:"id"`
	FoodName string              `json:"food_name"`
	Quantity float64             `json:"quantity"`
	EatenAt  time.Time           `json:"eaten_at"`
	Macros   models.MacroProfile `json:"macros"`
}

type analysisResponse struct {
	Date            string              `json:"date"`
	UserID          uuid.UUID           `json:"user_id"`
	MealsCount      int                 `json:"meals_count"`
	Meals           []analysisMeal      `json:"meals"`
	DailyTotals     models.MacroProfile `json:"daily_totals"`
	Goals           *models.GoalSet     `json:"goals"`
	Deltas          *nutrition.Deltas   `json:"deltas"`
	ProgressPercent *nutrition.Progress `json:"progress_percent"`
	Recommendations []string            `json:"recommendations"`
}

func handleAnalyzeDay(deps Dependencies) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := uuid.Parse(stringArg(req, "user_id"))
		if err != nil {
			return validationError("Invalid user ID format")
		}

		day := stringArg(req, "day_iso")
		if !dayPattern.MatchString(day) {
			return validationError("Date must be in YYYY-MM-DD format")
		}

		meals, err := deps.Meals.MealsForDay(ctx, userID, day)
		if err != nil {
			deps.Logger.Error().Err(err).Str("user_id", userID.String()).Str("day", day).Msg("meal query failed")
			return jsonResult(ErrorEnvelope{Error: "Failed to analyze day", Message: err.Error()})
		}

		goals, err := deps.Meals.GoalsForUser(ctx, userID)
		if err != nil {
			deps.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("goals query failed")
			return jsonResult(ErrorEnvelope{Error: "Failed to analyze day", Message: err.Error()})
		}

		profiles := make([]models.MacroProfile, len(meals))
		entries := make([]analysisMeal, len(meals))
		for i, m := range meals {
			profiles[i] = m.Macros
			entries[i] = analysisMeal{
				ID:       m.ID,
				FoodName: m.FoodName,
				Quantity: m.Qty,
				EatenAt:  m.EatenAt,
				Macros:   m.Macros,
			}
		}
		totals := nutrition.Sum(profiles)

		resp := analysisResponse{
			Date:            day,
			UserID:          userID,
			MealsCount:      len(meals),
			Meals:           entries,
			DailyTotals:     totals,
			Goals:           goals,
			Recommendations: nutrition.Recommend(totals, goals),
		}
		if goals != nil {
			deltas := nutrition.GoalDeltas(totals, *goals)
			progress := nutrition.GoalProgress(totals, *goals)
			resp.Deltas = &deltas
			resp.ProgressPercent = &progress
		}

		return jsonResult(resp)
	}
}

func parseEatenAt(value string) (time.Time, bool) {
	for _, layout := range eatenAtLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseMacros validates the macros object: the four core fields are
// required numbers, the rest default to zero.
func parseMacros(obj map[string]any) (models.MacroProfile, error) {
	if obj == nil {
		return models.MacroProfile{}, errors.New("macros is required")
	}

	required := func(key string) (float64, error) {
		v, ok := obj[key].(float64)
		if !ok {
			return 0, fmt.Errorf("macros.%s must be a number", key)
		}
		return v, nil
	}
	optional := func(key string) float64 {
		v, _ := obj[key].(float64)
		return v
	}

	var m models.MacroProfile
	var err error
	if m.Kcal, err = required("kcal"); err != nil {
		return models.MacroProfile{}, err
	}
	if m.ProteinG, err = required("protein_g"); err != nil {
		return models.MacroProfile{}, err
	}
	if m.CarbsG, err = required("carbs_g"); err != nil {
		return models.MacroProfile{}, err
	}
	if m.FatG, err = required("fat_g"); err != nil {
		return models.MacroProfile{}, err
	}
	m.FiberG = optional("fiber_g")
	m.SugarG = optional("sugar_g")
	m.SodiumMg = optional("sodium_mg")

	return m, nil
}

func rawDataArg(req mcp.CallToolRequest) models.RawData {
	v, ok := req.GetArguments()["raw_data"]
	if !ok || v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return models.RawData(data)
}

func truncateCommon(foods []nutritionix.CommonFood) []nutritionix.CommonFood {
	if len(foods) > instantResultLimit {
		return foods[:instantResultLimit]
	}
	return foods
}

func truncateBranded(foods []nutritionix.BrandedFood) []nutritionix.BrandedFood {
	if len(foods) > instantResultLimit {
		return foods[:instantResultLimit]
	}
	return foods
}

func thumbOrNil(p nutritionix.Photo) *string {
	if p.Thumb == "" {
		return nil
	}
	return &p.Thumb
}
