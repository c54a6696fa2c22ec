package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"character-chat/backend/internal/models"
	"character-chat/backend/internal/service"
)

// CharacterHandler serves the catalog: listing, lookup, search, creation.
type CharacterHandler struct {
	characters *service.CharacterService
	search     *service.SearchService
}

func NewCharacterHandler(characters *service.CharacterService, search *service.SearchService) *CharacterHandler {
	return &CharacterHandler{characters: characters, search: search}
}

// List handles GET /api/characters.
func (h *CharacterHandler) List(c *gin.Context) {
	catalog, err := h.characters.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"characters": catalog})
}

// Get handles GET /api/characters/:id.
func (h *CharacterHandler) Get(c *gin.Context) {
	character, err := h.characters.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

// Search handles GET /api/characters/search. Filters arrive as query
// parameters; tags may repeat or be comma-separated.
func (h *CharacterHandler) Search(c *gin.Context) {
	filters := models.SearchFilters{
		Query:    c.Query("query"),
		Category: c.Query("category"),
		Tags:     splitTags(c.QueryArray("tags")),
		SortBy:   models.SortKey(c.Query("sortBy")),
	}
	if raw := c.Query("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minRating must be a number"})
			return
		}
		filters.MinRating = minRating
	}
	if filters.SortBy != "" && !filters.SortBy.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sortBy value"})
		return
	}

	catalog, err := h.characters.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	results := h.search.Apply(catalog, filters)
	c.JSON(http.StatusOK, gin.H{"characters": results, "total": len(results)})
}

// Create handles POST /api/characters. Validation failures come back as a
// field-keyed error map so the form can mark every bad field at once.
func (h *CharacterHandler) Create(c *gin.Context) {
	var req models.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	character, err := h.characters.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func splitTags(raw []string) []string {
	var tags []string
	for _, entry := range raw {
		for _, tag := range strings.Split(entry, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
