package services

import (
	"strings"

	"github.com/Jaykaran24/fitbot/models"
)

// FoodSource identifies which catalog a food item came from.
type FoodSource string

const (
	SourceLocal         FoodSource = "local"
	SourceOpenFoodFacts FoodSource = "openfoodfacts"
)

// FoodRef is a tagged reference to a catalog item. The source is decided
// once when the reference is created (search result or id parse) and
// carried through explicitly, instead of re-inferring it from string
// prefixes at every call site.
type FoodRef struct {
	Source FoodSource
	Code   string // "local_<n>" for local items, barcode for remote
}

// ParseFoodRef classifies a wire-format food id. Local ids carry the
// "local_" prefix; everything else is treated as an Open Food Facts code.
func ParseFoodRef(id string) FoodRef {
	if strings.HasPrefix(id, "local_") {
		return FoodRef{Source: SourceLocal, Code: id}
	}
	return FoodRef{Source: SourceOpenFoodFacts, Code: id}
}

func (r FoodRef) String() string { return r.Code }

// CatalogItem is the unified shape both food sources normalize into.
// Nutrition is always per 100g; absent nutrients are 0, never null.
type CatalogItem struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Brand           string           `json:"brand"`
	Category        string           `json:"category,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	ServingSizeText string           `json:"servingSize,omitempty"`
	Source          FoodSource       `json:"source"`
	Nutrition       models.Nutrition `json:"nutrition"`

	// Detail-only metadata, populated by detail lookups.
	Ingredients    string `json:"ingredients,omitempty"`
	NutritionGrade string `json:"nutritionGrade,omitempty"`
	Labels         string `json:"labels,omitempty"`

	ref FoodRef
}

// Ref returns the tagged reference for this item, assigned at the point
// of origin.
func (i CatalogItem) Ref() FoodRef { return i.ref }
