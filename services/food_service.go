package services

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Jaykaran24/fitbot/apperrors"
	"github.com/Jaykaran24/fitbot/models"
)

// FoodService merges the local in-memory dataset with the remote Open Food
// Facts search into one catalog.
type FoodService struct {
	local *LocalFoodDB
	off   *OpenFoodFactsService
}

func NewFoodService(local *LocalFoodDB, off *OpenFoodFactsService) *FoodService {
	return &FoodService{local: local, off: off}
}

// Search returns up to limit items: local substring matches first (up to
// half the limit), then remote results filling the remainder. The curated
// dataset beats the crowdsourced one for the foods it covers, so local
// results lead.
func (s *FoodService) Search(ctx context.Context, query string, limit int) ([]CatalogItem, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, apperrors.New(apperrors.KindValidation, "search query must be at least 2 characters long")
	}
	if limit <= 0 {
		limit = 10
	}

	localResults := s.local.Search(query, limit/2)

	remaining := limit - len(localResults)
	if remaining <= 0 {
		return localResults, nil
	}

	remoteResults, err := s.off.SearchProducts(ctx, query, remaining)
	if err != nil {
		return nil, err
	}
	return append(localResults, remoteResults...), nil
}

// GetDetails fetches one item, dispatching on the reference's source tag.
func (s *FoodService) GetDetails(ctx context.Context, ref FoodRef) (CatalogItem, error) {
	switch ref.Source {
	case SourceLocal:
		return s.local.Get(ref)
	default:
		return s.off.GetProduct(ctx, ref.Code)
	}
}

// Fixed unit-to-gram conversions. ml is treated 1:1 with grams; unknown
// units pass through as grams.
const (
	gramsPerOunce = 28.35
	gramsPerCup   = 240
)

var (
	servingGramsParenRe = regexp.MustCompile(`\((\d+)g\)`)
	servingGramsBareRe  = regexp.MustCompile(`(\d+)g`)
)

// ScaleServing converts the item's per-100g nutrition to the given serving.
// The gram baseline comes from a "(NNNg)" hint in the item's serving-size
// text, else a bare "NNg", else 100g.
func ScaleServing(item CatalogItem, amount float64, unit string) models.Nutrition {
	gramsAmount := amount
	switch unit {
	case "oz":
		gramsAmount = amount * gramsPerOunce
	case "cup":
		gramsAmount = amount * gramsPerCup
	case "ml":
		gramsAmount = amount
	}

	baseGrams := servingBaseGrams(item.ServingSizeText)
	ratio := gramsAmount / baseGrams

	n := item.Nutrition
	return models.Nutrition{
		Energy:        math.Round(n.Energy * ratio),
		Protein:       round1(n.Protein * ratio),
		Fat:           round1(n.Fat * ratio),
		Carbohydrates: round1(n.Carbohydrates * ratio),
		Fiber:         round1(n.Fiber * ratio),
		Sugar:         round1(n.Sugar * ratio),
		Sodium:        round2(n.Sodium * ratio),
		Salt:          round2(n.Salt * ratio),
		SaturatedFat:  round1(n.SaturatedFat * ratio),
	}
}

func servingBaseGrams(servingText string) float64 {
	if m := servingGramsParenRe.FindStringSubmatch(servingText); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			return v
		}
	}
	if m := servingGramsBareRe.FindStringSubmatch(servingText); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			return v
		}
	}
	return 100
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
