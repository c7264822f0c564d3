package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Jaykaran24/fitbot/apperrors"
	"github.com/Jaykaran24/fitbot/models"
)

const (
	openFoodFactsBaseURL = "https://world.openfoodfacts.org"
	offUserAgent         = "FitBot/1.0.0 (https://localhost:3000; contact@fitbot.com)"

	offSearchFields = "code,product_name,brands,nutriments,categories,image_url,serving_size,quantity"
	offDetailFields = "product_name,nutrition_grades,nutriments,brands,categories,image_url,serving_size,quantity,ingredients_text,labels"
)

// OpenFoodFactsService talks to the Open Food Facts HTTP API. Transient
// GET failures are retried with exponential backoff before surfacing a
// transport error.
type OpenFoodFactsService struct {
	baseURL    string
	client     *http.Client
	maxRetries uint64
}

func NewOpenFoodFactsService() *OpenFoodFactsService {
	return &OpenFoodFactsService{
		baseURL:    openFoodFactsBaseURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		maxRetries: 2,
	}
}

// NewOpenFoodFactsServiceWithBase overrides the API base URL. Used in tests
// against a fake server.
func NewOpenFoodFactsServiceWithBase(baseURL string, client *http.Client) *OpenFoodFactsService {
	s := NewOpenFoodFactsService()
	s.baseURL = strings.TrimRight(baseURL, "/")
	if client != nil {
		s.client = client
	}
	return s
}

type offProduct struct {
	Code        string         `json:"code"`
	ProductName string         `json:"product_name"`
	Brands      string         `json:"brands"`
	Categories  string         `json:"categories"`
	ImageURL    string         `json:"image_url"`
	ServingSize string         `json:"serving_size"`
	Ingredients string         `json:"ingredients_text"`
	Grades      string         `json:"nutrition_grades"`
	Labels      string         `json:"labels"`
	Nutriments  map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

type offDetailResponse struct {
	// Status arrives as the number 0/1 or the string "0"/"1" depending on
	// the endpoint, so it decodes as any.
	Status  any         `json:"status"`
	Product *offProduct `json:"product"`
}

func offStatusZero(v any) bool {
	f, ok := parseFloatAny(v)
	return ok && f == 0
}

// SearchProducts runs a free-text search and normalizes the raw records
// into catalog items. Absent nutrient keys default to 0.
func (s *OpenFoodFactsService) SearchProducts(ctx context.Context, query string, pageSize int) ([]CatalogItem, error) {
	if pageSize <= 0 {
		pageSize = 10
	}
	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d&fields=%s",
		s.baseURL, url.QueryEscape(strings.TrimSpace(query)), pageSize, offSearchFields)

	body, err := s.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUpstreamFormat, "decode openfoodfacts search response")
	}

	items := make([]CatalogItem, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		items = append(items, normalizeProduct(p))
	}
	return items, nil
}

// GetProduct fetches one product by barcode. A status-0 response is a
// not-found error, distinct from transport failures.
func (s *OpenFoodFactsService) GetProduct(ctx context.Context, code string) (CatalogItem, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s?fields=%s", s.baseURL, url.PathEscape(code), offDetailFields)

	body, err := s.get(ctx, u)
	if err != nil {
		return CatalogItem{}, err
	}

	var parsed offDetailResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return CatalogItem{}, apperrors.Wrap(err, apperrors.KindUpstreamFormat, "decode openfoodfacts product response")
	}
	if offStatusZero(parsed.Status) || parsed.Product == nil {
		return CatalogItem{}, apperrors.Newf(apperrors.KindNotFound, "product %q not found", code)
	}

	item := normalizeProduct(*parsed.Product)
	if item.ID == "" {
		item.ID = code
		item.ref = FoodRef{Source: SourceOpenFoodFacts, Code: code}
	}
	item.Ingredients = parsed.Product.Ingredients
	item.NutritionGrade = parsed.Product.Grades
	item.Labels = parsed.Product.Labels
	return item, nil
}

// get issues a GET with retry on network errors and 5xx responses.
// Non-success statuses wrap the code and body so callers see what the
// upstream said.
func (s *OpenFoodFactsService) get(ctx context.Context, u string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, backoff.Permanent(apperrors.Wrap(err, apperrors.KindTransport, "create openfoodfacts request"))
		}
		req.Header.Set("User-Agent", offUserAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.KindTransport, "call openfoodfacts")
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.KindTransport, "read openfoodfacts response")
		}
		if resp.StatusCode >= 500 {
			return nil, apperrors.Newf(apperrors.KindTransport, "openfoodfacts error %d: %s", resp.StatusCode, string(body))
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(apperrors.Newf(apperrors.KindTransport, "openfoodfacts error %d: %s", resp.StatusCode, string(body)))
		}
		return body, nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.maxRetries), ctx)
	return backoff.RetryWithData(operation, bo)
}

func normalizeProduct(p offProduct) CatalogItem {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		name = "Unknown Product"
	}
	brand := strings.TrimSpace(p.Brands)
	if brand == "" {
		brand = "Unknown Brand"
	}
	return CatalogItem{
		ID:              p.Code,
		Name:            name,
		Brand:           brand,
		Category:        p.Categories,
		ImageURL:        p.ImageURL,
		ServingSizeText: p.ServingSize,
		Source:          SourceOpenFoodFacts,
		Nutrition:       normalizeNutriments(p.Nutriments),
		ref:             FoodRef{Source: SourceOpenFoodFacts, Code: p.Code},
	}
}

// normalizeNutriments maps the suffixed per-100g keys to the unified
// nutrition shape, defaulting absent keys to 0.
func normalizeNutriments(n map[string]any) models.Nutrition {
	energy := nutrientValue(n, "energy-kcal_100g")
	if energy == 0 {
		energy = nutrientValue(n, "energy_100g")
	}
	return models.Nutrition{
		Energy:        energy,
		Protein:       nutrientValue(n, "proteins_100g"),
		Fat:           nutrientValue(n, "fat_100g"),
		Carbohydrates: nutrientValue(n, "carbohydrates_100g"),
		Fiber:         nutrientValue(n, "fiber_100g"),
		Sugar:         nutrientValue(n, "sugars_100g"),
		Sodium:        nutrientValue(n, "sodium_100g"),
		Salt:          nutrientValue(n, "salt_100g"),
		SaturatedFat:  nutrientValue(n, "saturated-fat_100g"),
	}
}

func nutrientValue(n map[string]any, key string) float64 {
	if v, ok := parseFloatAny(n[key]); ok {
		return v
	}
	return 0
}

// parseFloatAny accepts the number-or-string values Open Food Facts emits.
func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
