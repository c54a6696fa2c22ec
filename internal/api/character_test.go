package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"character-chat/backend/internal/models"
	"character-chat/backend/internal/service"
	"character-chat/backend/internal/store"
	"character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/logger"
)

func characterRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.New(logger.DefaultConfig())

	repo, err := store.NewLocalStore(t.TempDir(), log)
	require.NoError(t, err)
	handler := NewCharacterHandler(
		service.NewCharacterService(repo, nil, log),
		service.NewSearchService(),
	)

	r := gin.New()
	r.Use(errors.ErrorHandler())
	r.GET("/api/characters", handler.List)
	r.POST("/api/characters", handler.Create)
	r.GET("/api/characters/search", handler.Search)
	r.GET("/api/characters/:id", handler.Get)
	return r
}

func getPath(r *gin.Engine, path string) *http.Request {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	return req
}

func TestListReturnsSeedCatalog(t *testing.T) {
	r := characterRouter(t)

	w := performRequest(r, getPath(r, "/api/characters"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Characters []models.Character `json:"characters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Characters, len(models.SeedCharacters()))
}

func TestSearchFiltersCatalog(t *testing.T) {
	r := characterRouter(t)

	w := performRequest(r, getPath(r, "/api/characters/search?query=ソクラテス"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Characters []models.Character `json:"characters"`
		Total      int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "ソクラテス", resp.Characters[0].Name)
}

func TestSearchRejectsUnknownSortKey(t *testing.T) {
	r := characterRouter(t)

	w := performRequest(r, getPath(r, "/api/characters/search?sortBy=height"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCharacterValidationErrorsAreFieldKeyed(t *testing.T) {
	r := characterRouter(t)

	w := postJSON(r, "/api/characters", `{"name": "ユキ"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	assert.NotContains(t, resp.Error.Details, "name")
	assert.Equal(t, "説明は必須です", resp.Error.Details["description"])
	assert.Equal(t, "最低1つのタグを追加してください", resp.Error.Details["tags"])
}

func TestCreateThenFetchCharacter(t *testing.T) {
	r := characterRouter(t)

	w := postJSON(r, "/api/characters", `{
		"name": "ユキ",
		"description": "冬が好きな案内人",
		"personality": "物静かで思慮深い",
		"category": "friend",
		"tags": ["冬"],
		"speakingStyle": "polite"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Character
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.IsActive)

	got := performRequest(r, getPath(r, "/api/characters/"+created.ID))
	assert.Equal(t, http.StatusOK, got.Code)
}
