package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaykaran24/fitbot/apperrors"
)

const sampleCSV = `name,servingSize,energy,protein,carbohydrates,fat,fiber
Breakfast & Breads,,,,,,
Idli,2 pieces (80g),135,4.4,28.2,0.4,1.6
"Upma, vegetable",1 cup (170g),192,4.5,30.6,5.8,2.4

Main Dishes,,,,,,
Dal Tadka,1 cup (180g),168,9.1,22.4,4.8,4.6
Dal Makhani,1 cup (180g),277,11.2,26.3,14.1,5.2
`

func TestParseFoodCSV(t *testing.T) {
	foods := ParseFoodCSV(sampleCSV)
	require.Len(t, foods, 4)

	idli := foods[0]
	assert.Equal(t, "local_1", idli.ID)
	assert.Equal(t, "Idli", idli.Name)
	assert.Equal(t, "Local Database", idli.Brand)
	assert.Equal(t, "2 pieces (80g)", idli.ServingSizeText)
	assert.Equal(t, SourceLocal, idli.Source)
	assert.Equal(t, 135.0, idli.Nutrition.Energy)
	assert.Equal(t, 1.6, idli.Nutrition.Fiber)

	// quoted names keep their embedded comma
	assert.Equal(t, "Upma, vegetable", foods[1].Name)
	assert.Equal(t, "local_2", foods[1].ID)

	// section headers and blank lines are not items
	for _, f := range foods {
		assert.NotContains(t, f.Name, "Dishes")
		assert.NotContains(t, f.Name, "Breads")
	}
}

func TestLocalFoodDB_Search(t *testing.T) {
	db := NewLocalFoodDB(ParseFoodCSV(sampleCSV))

	results := db.Search("dal", 10)
	require.Len(t, results, 2)
	assert.Equal(t, "Dal Tadka", results[0].Name)
	assert.Equal(t, "Dal Makhani", results[1].Name)

	// case-insensitive
	assert.Len(t, db.Search("DAL", 10), 2)

	// limit caps results in dataset order
	limited := db.Search("dal", 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "Dal Tadka", limited[0].Name)

	// queries shorter than 2 characters match nothing
	assert.Empty(t, db.Search("d", 10))
	assert.Empty(t, db.Search("  ", 10))

	assert.Empty(t, db.Search("pizza", 10))
}

func TestLocalFoodDB_Get(t *testing.T) {
	db := NewLocalFoodDB(ParseFoodCSV(sampleCSV))

	item, err := db.Get(FoodRef{Source: SourceLocal, Code: "local_3"})
	require.NoError(t, err)
	assert.Equal(t, "Dal Tadka", item.Name)

	_, err = db.Get(FoodRef{Source: SourceLocal, Code: "local_99"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestLoadLocalFoodDB_MissingFile(t *testing.T) {
	db := LoadLocalFoodDB("testdata/does-not-exist.csv", testLogger())
	assert.Equal(t, 0, db.Len())
	assert.Empty(t, db.Search("idli", 10))
}
