package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"character-chat/backend/internal/models"
	"character-chat/backend/pkg/logger"
)

func newStore(t *testing.T) (*LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewLocalStore(dir, logger.New(logger.DefaultConfig()))
	require.NoError(t, err)
	return s, dir
}

func TestLoadMissingFileReturnsEmptySet(t *testing.T) {
	s, _ := newStore(t)

	characters, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, characters)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	s, _ := newStore(t)

	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	in := []models.Character{{
		ID:            "abc-123",
		Name:          "ユキ",
		Description:   "冬が好きな案内人",
		Personality:   "物静か",
		Category:      "friend",
		Tags:          []string{"冬"},
		Rating:        5.0,
		SpeakingStyle: models.StylePolite,
		CreatedAt:     created,
		UpdatedAt:     created,
		IsActive:      true,
	}}

	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0].ID, out[0].ID)
	assert.Equal(t, in[0].Tags, out[0].Tags)
	assert.True(t, out[0].CreatedAt.Equal(created))
}

func TestLoadCorruptFileYieldsEmptySet(t *testing.T) {
	s, dir := newStore(t)

	path := filepath.Join(dir, UserCreatedKey+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	characters, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, characters)
}

func TestSaveReplacesPreviousContent(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Save([]models.Character{{ID: "one"}, {ID: "two"}}))
	require.NoError(t, s.Save([]models.Character{{ID: "three"}}))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "three", out[0].ID)
}
