package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaykaran24/fitbot/apperrors"
)

func TestOpenFoodFactsService_SearchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "peanut butter", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "5", r.URL.Query().Get("page_size"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [
				{
					"code": "737628064502",
					"product_name": "Peanut Butter",
					"brands": "Acme",
					"serving_size": "32 g",
					"nutriments": {
						"energy-kcal_100g": 589,
						"proteins_100g": 25.1,
						"fat_100g": 50,
						"carbohydrates_100g": 19.6,
						"sodium_100g": "0.43"
					}
				},
				{
					"code": "123",
					"product_name": "",
					"brands": "",
					"nutriments": {"energy_100g": 120}
				}
			]
		}`))
	}))
	defer server.Close()

	svc := NewOpenFoodFactsServiceWithBase(server.URL, server.Client())
	items, err := svc.SearchProducts(context.Background(), "peanut butter", 5)
	require.NoError(t, err)
	require.Len(t, items, 2)

	pb := items[0]
	assert.Equal(t, "737628064502", pb.ID)
	assert.Equal(t, "Peanut Butter", pb.Name)
	assert.Equal(t, "Acme", pb.Brand)
	assert.Equal(t, SourceOpenFoodFacts, pb.Source)
	assert.Equal(t, 589.0, pb.Nutrition.Energy)
	assert.Equal(t, 25.1, pb.Nutrition.Protein)
	// string-typed nutriment values still parse
	assert.Equal(t, 0.43, pb.Nutrition.Sodium)
	// absent nutrients are 0, not an error
	assert.Equal(t, 0.0, pb.Nutrition.Fiber)

	// blank names and brands get placeholders, kcal falls back to energy_100g
	assert.Equal(t, "Unknown Product", items[1].Name)
	assert.Equal(t, "Unknown Brand", items[1].Brand)
	assert.Equal(t, 120.0, items[1].Nutrition.Energy)
}

func TestOpenFoodFactsService_GetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/737628064502", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": 1,
			"product": {
				"code": "737628064502",
				"product_name": "Peanut Butter",
				"brands": "Acme",
				"ingredients_text": "peanuts, salt",
				"nutrition_grades": "b",
				"nutriments": {"energy-kcal_100g": 589}
			}
		}`))
	}))
	defer server.Close()

	svc := NewOpenFoodFactsServiceWithBase(server.URL, server.Client())
	item, err := svc.GetProduct(context.Background(), "737628064502")
	require.NoError(t, err)
	assert.Equal(t, "Peanut Butter", item.Name)
	assert.Equal(t, "peanuts, salt", item.Ingredients)
	assert.Equal(t, "b", item.NutritionGrade)
}

func TestOpenFoodFactsService_GetProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	}))
	defer server.Close()

	svc := NewOpenFoodFactsServiceWithBase(server.URL, server.Client())
	_, err := svc.GetProduct(context.Background(), "000000")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestOpenFoodFactsService_GetProduct_NotFoundStringStatus(t *testing.T) {
	// some responses carry status as a string instead of a number
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "0", "status_verbose": "product not found"}`))
	}))
	defer server.Close()

	svc := NewOpenFoodFactsServiceWithBase(server.URL, server.Client())
	_, err := svc.GetProduct(context.Background(), "000000")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestOpenFoodFactsService_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": []}`))
	}))
	defer server.Close()

	svc := NewOpenFoodFactsServiceWithBase(server.URL, server.Client())
	items, err := svc.SearchProducts(context.Background(), "rice", 5)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int32(3), calls.Load())
}

func TestOpenFoodFactsService_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewOpenFoodFactsServiceWithBase(server.URL, server.Client())
	_, err := svc.SearchProducts(context.Background(), "rice", 5)
	assert.True(t, apperrors.IsKind(err, apperrors.KindTransport))
	assert.Equal(t, int32(1), calls.Load())
}
