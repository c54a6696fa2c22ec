package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"character-chat/backend/internal/models"
	"character-chat/backend/internal/store"
	apperrors "character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/logger"
)

func newCharacterService(t *testing.T) *CharacterService {
	t.Helper()
	log := logger.New(logger.DefaultConfig())
	repo, err := store.NewLocalStore(t.TempDir(), log)
	require.NoError(t, err)
	return NewCharacterService(repo, nil, log)
}

func validDraft() models.CreateCharacterRequest {
	return models.CreateCharacterRequest{
		Name:          "ユキ",
		Description:   "冬が好きな案内人",
		Personality:   "物静かで思慮深い",
		Category:      "friend",
		Tags:          []string{"冬", "案内"},
		SpeakingStyle: "polite",
	}
}

func TestCreateReportsAllInvalidFieldsTogether(t *testing.T) {
	s := newCharacterService(t)

	_, err := s.Create(context.Background(), models.CreateCharacterRequest{})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)

	fields, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "キャラクター名は必須です", fields["name"])
	assert.Equal(t, "説明は必須です", fields["description"])
	assert.Equal(t, "性格は必須です", fields["personality"])
	assert.Equal(t, "カテゴリは必須です", fields["category"])
	assert.Equal(t, "最低1つのタグを追加してください", fields["tags"])
}

func TestCreateRejectsWhitespaceOnlyFields(t *testing.T) {
	s := newCharacterService(t)

	draft := validDraft()
	draft.Name = "   "
	_, err := s.Create(context.Background(), draft)
	require.Error(t, err)

	appErr := err.(*apperrors.AppError)
	fields := appErr.Details.(map[string]string)
	assert.Contains(t, fields, "name")
	assert.NotContains(t, fields, "description")
}

func TestCreateAssignsSystemFields(t *testing.T) {
	s := newCharacterService(t)

	character, err := s.Create(context.Background(), validDraft())
	require.NoError(t, err)

	_, parseErr := uuid.Parse(character.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, 0, character.Popularity)
	assert.Equal(t, 5.0, character.Rating)
	assert.True(t, character.IsActive)
	assert.False(t, character.CreatedAt.IsZero())
	assert.Equal(t, character.CreatedAt, character.UpdatedAt)
}

func TestListMergesSeedsAndCreated(t *testing.T) {
	s := newCharacterService(t)
	ctx := context.Background()

	before, err := s.List(ctx)
	require.NoError(t, err)
	seedCount := len(before)
	assert.Equal(t, len(models.SeedCharacters()), seedCount)

	created, err := s.Create(ctx, validDraft())
	require.NoError(t, err)

	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, seedCount+1)
	assert.Equal(t, created.ID, after[len(after)-1].ID)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ユキ", got.Name)
}

func TestGetUnknownCharacter(t *testing.T) {
	s := newCharacterService(t)

	_, err := s.Get(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Equal(t, 404, err.(*apperrors.AppError).StatusCode)
}
