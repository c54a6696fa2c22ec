package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"character-chat/backend/internal/models"
)

func searchCatalog() []models.Character {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Character{
		{ID: "1", Name: "あかり", Description: "優しい友達", Category: "friend", Tags: []string{"日常", "優しい"}, Popularity: 90, Rating: 4.8, CreatedAt: base},
		{ID: "2", Name: "ソクラテス", Description: "古代の哲学者", Category: "philosopher", Tags: []string{"哲学", "歴史"}, Popularity: 70, Rating: 4.9, CreatedAt: base.Add(time.Hour)},
		{ID: "3", Name: "ケンタ", Description: "気さくな相棒", Category: "friend", Tags: []string{"日常", "スポーツ"}, Popularity: 80, Rating: 4.2, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestApplyEmptyFiltersReturnsCopy(t *testing.T) {
	s := NewSearchService()
	catalog := searchCatalog()

	results := s.Apply(catalog, models.SearchFilters{})

	require.Len(t, results, len(catalog))
	assert.Equal(t, catalog, results)

	results[0].Name = "changed"
	assert.Equal(t, "あかり", catalog[0].Name)
}

func TestApplyQueryMatchesNameDescriptionAndTags(t *testing.T) {
	s := NewSearchService()
	catalog := searchCatalog()

	byName := s.Apply(catalog, models.SearchFilters{Query: "ソクラテス"})
	require.Len(t, byName, 1)
	assert.Equal(t, "2", byName[0].ID)

	byDescription := s.Apply(catalog, models.SearchFilters{Query: "相棒"})
	require.Len(t, byDescription, 1)
	assert.Equal(t, "3", byDescription[0].ID)

	byTag := s.Apply(catalog, models.SearchFilters{Query: "日常"})
	assert.Len(t, byTag, 2)
}

func TestApplyCategoryIsCaseInsensitive(t *testing.T) {
	s := NewSearchService()

	results := s.Apply(searchCatalog(), models.SearchFilters{Category: "Friend"})
	assert.Len(t, results, 2)
}

func TestApplyTagsMatchAny(t *testing.T) {
	s := NewSearchService()

	results := s.Apply(searchCatalog(), models.SearchFilters{Tags: []string{"哲学", "スポーツ"}})
	require.Len(t, results, 2)
	assert.Equal(t, "2", results[0].ID)
	assert.Equal(t, "3", results[1].ID)
}

func TestApplyMinRatingIsInclusive(t *testing.T) {
	s := NewSearchService()

	results := s.Apply(searchCatalog(), models.SearchFilters{MinRating: 4.8})
	require.Len(t, results, 2)
	for _, c := range results {
		assert.GreaterOrEqual(t, c.Rating, 4.8)
	}
}

func TestApplySortOrders(t *testing.T) {
	s := NewSearchService()
	catalog := searchCatalog()

	byPopularity := s.Apply(catalog, models.SearchFilters{SortBy: models.SortPopularity})
	assert.Equal(t, []string{"1", "3", "2"}, ids(byPopularity))

	byRating := s.Apply(catalog, models.SearchFilters{SortBy: models.SortRating})
	assert.Equal(t, []string{"2", "1", "3"}, ids(byRating))

	byNewest := s.Apply(catalog, models.SearchFilters{SortBy: models.SortNewest})
	assert.Equal(t, []string{"3", "2", "1"}, ids(byNewest))
}

func TestApplySortAlphabeticalUsesJapaneseCollation(t *testing.T) {
	s := NewSearchService()

	results := s.Apply(searchCatalog(), models.SearchFilters{SortBy: models.SortAlphabetical})
	assert.Equal(t, []string{"1", "3", "2"}, ids(results))
}

func TestApplyFiltersCombineWithAnd(t *testing.T) {
	s := NewSearchService()

	results := s.Apply(searchCatalog(), models.SearchFilters{
		Category:  "friend",
		Tags:      []string{"日常"},
		MinRating: 4.5,
	})
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)
}

func ids(characters []models.Character) []string {
	out := make([]string, len(characters))
	for i, c := range characters {
		out[i] = c.ID
	}
	return out
}
