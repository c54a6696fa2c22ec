package service

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"character-chat/backend/internal/models"
)

// SearchService filters and orders character catalogs. It is pure: Apply
// never mutates its input slice and always returns a fresh one.
type SearchService struct {
	collator *collate.Collator
}

func NewSearchService() *SearchService {
	return &SearchService{
		collator: collate.New(language.Japanese),
	}
}

// Apply narrows the catalog with every set filter (logical AND), then orders
// the result by the sort key. An empty filter set returns a copy of the
// catalog in its original order.
func (s *SearchService) Apply(catalog []models.Character, filters models.SearchFilters) []models.Character {
	results := make([]models.Character, 0, len(catalog))
	for _, c := range catalog {
		if s.matches(c, filters) {
			results = append(results, c)
		}
	}

	s.sortResults(results, filters.SortBy)
	return results
}

func (s *SearchService) matches(c models.Character, filters models.SearchFilters) bool {
	if q := strings.ToLower(strings.TrimSpace(filters.Query)); q != "" {
		if !strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) &&
			!anyTagContains(c.Tags, q) {
			return false
		}
	}

	if filters.Category != "" && !strings.EqualFold(c.Category, filters.Category) {
		return false
	}

	if len(filters.Tags) > 0 && !anyTagMatches(c.Tags, filters.Tags) {
		return false
	}

	if filters.MinRating > 0 && c.Rating < filters.MinRating {
		return false
	}

	return true
}

func anyTagContains(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// anyTagMatches reports whether the character carries at least one of the
// wanted tags.
func anyTagMatches(tags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range tags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}

// sortResults orders in place. Equal elements keep their catalog order, so
// repeated searches are deterministic.
func (s *SearchService) sortResults(results []models.Character, key models.SortKey) {
	switch key {
	case models.SortPopularity:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Popularity > results[j].Popularity
		})
	case models.SortRating:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Rating > results[j].Rating
		})
	case models.SortNewest:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		})
	case models.SortAlphabetical:
		sort.SliceStable(results, func(i, j int) bool {
			return s.collator.CompareString(results[i].Name, results[j].Name) < 0
		})
	}
}
