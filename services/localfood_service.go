package services

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Jaykaran24/fitbot/apperrors"
	"github.com/Jaykaran24/fitbot/models"
)

// Category-header lines in the CSV that must be skipped along with blanks.
var csvSectionHeaders = []string{"Breakfast & Breads", "Main Dishes", "Snacks & Sides"}

// LocalFoodDB is the in-memory food reference table, parsed once at startup
// and immutable afterwards. No locking needed: nothing writes after load.
type LocalFoodDB struct {
	foods []CatalogItem
}

// NewLocalFoodDB wraps an already-parsed item list. Used directly in tests.
func NewLocalFoodDB(foods []CatalogItem) *LocalFoodDB {
	return &LocalFoodDB{foods: foods}
}

// LoadLocalFoodDB reads and parses the CSV dataset. A missing or unreadable
// file yields an empty dataset plus a warning, not a fatal error; the app
// still works with remote search only.
func LoadLocalFoodDB(path string, log zerolog.Logger) *LocalFoodDB {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("local food database not loaded, continuing with empty dataset")
		return &LocalFoodDB{}
	}
	foods := ParseFoodCSV(string(data))
	log.Info().Int("items", len(foods)).Msg("local food database loaded")
	return &LocalFoodDB{foods: foods}
}

// ParseFoodCSV parses the tabular dataset: a header row, then one food per
// line as name,servingSize,energy,protein,carbohydrates,fat,fiber. Fields
// may be double-quoted (names contain commas). Blank lines and category
// header lines are skipped. Items get synthetic sequential ids local_<n>.
func ParseFoodCSV(data string) []CatalogItem {
	lines := strings.Split(data, "\n")
	foods := make([]CatalogItem, 0, len(lines))

	for i, line := range lines {
		if i == 0 {
			continue // header row
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, ",,,,,,") || isSectionHeader(line) {
			continue
		}

		values := splitCSVLine(line)
		if len(values) < 6 || values[0] == "" {
			continue
		}

		id := "local_" + strconv.Itoa(len(foods)+1)
		foods = append(foods, CatalogItem{
			ID:              id,
			Name:            values[0],
			Brand:           "Local Database",
			Category:        "Indian Food",
			ServingSizeText: values[1],
			Source:          SourceLocal,
			Nutrition: models.Nutrition{
				Energy:        parseFloatOrZero(values[2]),
				Protein:       parseFloatOrZero(values[3]),
				Carbohydrates: parseFloatOrZero(values[4]),
				Fat:           parseFloatOrZero(values[5]),
				Fiber:         floatAt(values, 6),
				// sugar/sodium/salt/saturated fat not in the dataset
			},
			ref: FoodRef{Source: SourceLocal, Code: id},
		})
	}
	return foods
}

// Search returns up to limit items whose name contains the query,
// case-insensitively, in dataset order. No ranking or scoring. Queries
// shorter than 2 characters return nothing.
func (db *LocalFoodDB) Search(query string, limit int) []CatalogItem {
	query = strings.TrimSpace(query)
	if len(query) < 2 || limit <= 0 {
		return nil
	}
	term := strings.ToLower(query)

	var results []CatalogItem
	for _, f := range db.foods {
		if strings.Contains(strings.ToLower(f.Name), term) {
			results = append(results, f)
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

// Get looks up a local item by its reference.
func (db *LocalFoodDB) Get(ref FoodRef) (CatalogItem, error) {
	for _, f := range db.foods {
		if f.ID == ref.Code {
			return f, nil
		}
	}
	return CatalogItem{}, apperrors.Newf(apperrors.KindNotFound, "local food %q not found", ref.Code)
}

// Len reports how many items are loaded.
func (db *LocalFoodDB) Len() int { return len(db.foods) }

func isSectionHeader(line string) bool {
	for _, h := range csvSectionHeaders {
		if strings.Contains(line, h) {
			return true
		}
	}
	return false
}

// splitCSVLine splits a comma-separated line honoring double-quoted fields.
func splitCSVLine(line string) []string {
	var values []string
	var current strings.Builder
	insideQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			insideQuotes = !insideQuotes
		case ch == ',' && !insideQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))
	return values
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func floatAt(values []string, idx int) float64 {
	if idx >= len(values) {
		return 0
	}
	return parseFloatOrZero(values[idx])
}
