// Package nutritionix is the client for the Nutritionix track API. Each
// method issues a single outbound call and returns the provider's native
// shapes: no retries, no caching.
package nutritionix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mealai/nutritionix-mcp/internal/models"
)

// ErrItemNotFound is returned by LookupItem when the provider has no food
// record for the requested nix_item_id.
var ErrItemNotFound = errors.New("food item not found")

// APIError is a non-2xx response from the provider, carrying the provider's
// own message when the body contains one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client calls the Nutritionix track API.
type Client struct {
	baseURL string
	appID   string
	appKey  string
	client  *http.Client
}

// New creates a Client for the given endpoint and credential pair.
func New(baseURL, appID, appKey string) *Client {
	return &Client{
		baseURL: baseURL,
		appID:   appID,
		appKey:  appKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Photo holds the provider's thumbnail reference for a food.
type Photo struct {
	Thumb string `json:"thumb"`
}

// CommonFood is one generic food match from instant search.
type CommonFood struct {
	FoodName string `json:"food_name"`
	Photo    Photo  `json:"photo"`
}

// BrandedFood is one packaged-product match from instant search.
type BrandedFood struct {
	FoodName          string `json:"food_name"`
	BrandNameItemName string `json:"brand_name_item_name"`
	BrandName         string `json:"brand_name"`
	NixItemID         string `json:"nix_item_id"`
	Photo             Photo  `json:"photo"`
}

// InstantResponse is the full instant search result, untruncated.
type InstantResponse struct {
	Common  []CommonFood  `json:"common"`
	Branded []BrandedFood `json:"branded"`
}

// Food is a provider food record with per-serving nutrient fields. Raw keeps
// the provider's untrimmed JSON for the record so callers can echo it back.
type Food struct {
	FoodName            string  `json:"food_name"`
	NfCalories          float64 `json:"nf_calories"`
	NfProtein           float64 `json:"nf_protein"`
	NfTotalCarbohydrate float64 `json:"nf_total_carbohydrate"`
	NfTotalFat          float64 `json:"nf_total_fat"`
	NfDietaryFiber      float64 `json:"nf_dietary_fiber"`
	NfSugars            float64 `json:"nf_sugars"`
	NfSodium            float64 `json:"nf_sodium"`

	Raw json.RawMessage `json:"-"`
}

// Macros maps the provider's nf_* fields onto a macro profile. Fields the
// provider omitted decode to zero.
func (f Food) Macros() models.MacroProfile {
	return models.MacroProfile{
		Kcal:     f.NfCalories,
		ProteinG: f.NfProtein,
		CarbsG:   f.NfTotalCarbohydrate,
		FatG:     f.NfTotalFat,
		FiberG:   f.NfDietaryFiber,
		SugarG:   f.NfSugars,
		SodiumMg: f.NfSodium,
	}
}

// SearchInstant calls the autocomplete endpoint and returns both result
// lists as the provider sent them.
func (c *Client) SearchInstant(ctx context.Context, query string) (*InstantResponse, error) {
	u := fmt.Sprintf("%s/search/instant?query=%s", c.baseURL, url.QueryEscape(query))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var res InstantResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to parse instant search response: %w", err)
	}
	return &res, nil
}

// LookupItem fetches the food record for a branded item. Returns
// ErrItemNotFound when the provider's foods list is empty.
func (c *Client) LookupItem(ctx context.Context, nixItemID string) (*Food, error) {
	u := fmt.Sprintf("%s/search/item?nix_item_id=%s", c.baseURL, url.QueryEscape(nixItemID))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	foods, err := decodeFoods(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse item lookup response: %w", err)
	}
	if len(foods) == 0 {
		return nil, ErrItemNotFound
	}
	return &foods[0], nil
}

// ParseNatural submits free text to the natural language endpoint and
// returns every food record the provider parsed out of it.
func (c *Client) ParseNatural(ctx context.Context, text string) ([]Food, error) {
	payload, err := json.Marshal(map[string]string{"query": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal natural language payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/natural/nutrients", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create natural language request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	foods, err := decodeFoods(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse natural language response: %w", err)
	}
	return foods, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("x-app-id", c.appID)
	req.Header.Set("x-app-key", c.appKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    providerMessage(body, resp.StatusCode),
		}
	}

	return body, nil
}

// decodeFoods splits the provider's foods array, keeping the raw JSON of
// each entry alongside the typed fields.
func decodeFoods(body []byte) ([]Food, error) {
	var envelope struct {
		Foods []json.RawMessage `json:"foods"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	foods := make([]Food, 0, len(envelope.Foods))
	for _, raw := range envelope.Foods {
		var f Food
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, err
		}
		f.Raw = raw
		foods = append(foods, f)
	}
	return foods, nil
}

// providerMessage pulls the "message" field out of an error body, falling
// back to the raw body, then to the status code.
func providerMessage(body []byte, statusCode int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if len(body) > 0 {
		return string(body)
	}
	return fmt.Sprintf("unexpected status %d", statusCode)
}
