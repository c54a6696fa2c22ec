package service

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"character-chat/backend/internal/models"
	apperrors "character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/logger"
	"character-chat/backend/shared/redis"
)

const (
	catalogCacheKey = "characters:catalog"
	catalogCacheTTL = 5 * time.Minute

	newCharacterRating = 5.0
)

// CharacterRepository persists the user-created character set as a whole,
// mirroring the single-key storage layout of the web client.
type CharacterRepository interface {
	Load() ([]models.Character, error)
	Save(characters []models.Character) error
}

// CharacterService serves the catalog: the built-in seed characters plus
// everything users have created. Reads go through an optional Redis
// cache-aside layer; writes invalidate it.
type CharacterService struct {
	repo     CharacterRepository
	cache    *redis.Client
	validate *validator.Validate
	log      *logger.Logger
	seeds    []models.Character
	mu       sync.Mutex
}

func NewCharacterService(repo CharacterRepository, cache *redis.Client, log *logger.Logger) *CharacterService {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CharacterService{
		repo:     repo,
		cache:    cache,
		validate: v,
		log:      log,
		seeds:    models.SeedCharacters(),
	}
}

// List returns the full catalog, seeds first, then user-created characters
// in creation order. Cache failures degrade to a direct load.
func (s *CharacterService) List(ctx context.Context) ([]models.Character, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, catalogCacheKey); err == nil {
			var catalog []models.Character
			if err := json.Unmarshal([]byte(raw), &catalog); err == nil {
				return catalog, nil
			}
		}
	}

	created, err := s.repo.Load()
	if err != nil {
		return nil, apperrors.NewInternalServerError("CATALOG_LOAD_FAILED", "Failed to load characters")
	}

	catalog := make([]models.Character, 0, len(s.seeds)+len(created))
	catalog = append(catalog, s.seeds...)
	catalog = append(catalog, created...)

	if s.cache != nil {
		if data, err := json.Marshal(catalog); err == nil {
			if err := s.cache.Set(ctx, catalogCacheKey, string(data), catalogCacheTTL); err != nil {
				s.log.Warn("Failed to cache character catalog", "error", err.Error())
			}
		}
	}

	return catalog, nil
}

// Get returns one character by ID.
func (s *CharacterService) Get(ctx context.Context, id string) (*models.Character, error) {
	catalog, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("CHARACTER_NOT_FOUND", "Character not found")
}

// Create validates the draft and, if every field passes, appends the new
// character to the user-created set. Validation reports all failing fields
// at once, keyed by field name.
func (s *CharacterService) Create(ctx context.Context, req models.CreateCharacterRequest) (*models.Character, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Personality = strings.TrimSpace(req.Personality)
	req.Category = strings.TrimSpace(req.Category)

	if errs := s.validateDraft(req); len(errs) > 0 {
		return nil, apperrors.NewBadRequestError("VALIDATION_FAILED", "入力内容を確認してください").WithDetails(errs)
	}

	now := time.Now()
	character := models.Character{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Description:   req.Description,
		Avatar:        req.Avatar,
		Personality:   req.Personality,
		Category:      req.Category,
		Tags:          req.Tags,
		Popularity:    0,
		Rating:        newCharacterRating,
		SpeakingStyle: models.SpeakingStyle(req.SpeakingStyle),
		CreatedAt:     now,
		UpdatedAt:     now,
		IsActive:      true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.repo.Load()
	if err != nil {
		return nil, apperrors.NewInternalServerError("CATALOG_LOAD_FAILED", "Failed to load characters")
	}
	created = append(created, character)
	if err := s.repo.Save(created); err != nil {
		s.log.Error("Failed to persist created character", "character_id", character.ID, "error", err.Error())
		return nil, apperrors.NewInternalServerError("CATALOG_SAVE_FAILED", "Failed to save character")
	}

	s.invalidateCatalog(ctx)
	s.log.Info("Character created", "character_id", character.ID, "name", character.Name)
	return &character, nil
}

// validateDraft runs every rule and returns the failures together, so the
// client can mark all invalid fields in one pass.
func (s *CharacterService) validateDraft(req models.CreateCharacterRequest) map[string]string {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	errs := make(map[string]string, len(invalid))
	for _, fe := range invalid {
		errs[fe.Field()] = draftFieldMessage(fe.Field())
	}
	return errs
}

func draftFieldMessage(field string) string {
	switch field {
	case "name":
		return "キャラクター名は必須です"
	case "description":
		return "説明は必須です"
	case "personality":
		return "性格は必須です"
	case "category":
		return "カテゴリは必須です"
	case "tags":
		return "最低1つのタグを追加してください"
	default:
		return "入力が正しくありません"
	}
}

func (s *CharacterService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, catalogCacheKey); err != nil {
		s.log.Warn("Failed to invalidate catalog cache", "error", err.Error())
	}
}
