package service

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"character-chat/backend/internal/models"
)

// GormCharacterRepository keeps user-created characters in Postgres. It
// satisfies CharacterRepository with the same whole-set semantics as the
// file store.
type GormCharacterRepository struct {
	db *gorm.DB
}

func NewGormCharacterRepository(db *gorm.DB) *GormCharacterRepository {
	return &GormCharacterRepository{db: db}
}

func (r *GormCharacterRepository) Load() ([]models.Character, error) {
	var characters []models.Character
	if err := r.db.Order("created_at ASC").Find(&characters).Error; err != nil {
		return nil, fmt.Errorf("failed to load characters: %w", err)
	}
	return characters, nil
}

func (r *GormCharacterRepository) Save(characters []models.Character) error {
	if len(characters) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&characters).Error
	if err != nil {
		return fmt.Errorf("failed to save characters: %w", err)
	}
	return nil
}

// MessageRepository archives session transcripts so conversations survive
// session expiry. Optional: the session service works without it.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Append(sessionID string, msg models.ChatMessage) error {
	record := models.Message{
		ExternalID:  msg.ID,
		SessionID:   sessionID,
		CharacterID: msg.CharacterID,
		Sender:      msg.Sender,
		Content:     msg.Content,
		Timestamp:   msg.Timestamp,
	}
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to archive message: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListBySession(sessionID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("session_id = ?", sessionID).Order("timestamp ASC").Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load session transcript: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) DeleteBySession(sessionID string) error {
	if err := r.db.Where("session_id = ?", sessionID).Delete(&models.Message{}).Error; err != nil {
		return fmt.Errorf("failed to delete session transcript: %w", err)
	}
	return nil
}
