package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"character-chat/backend/internal/dialogue"
	"character-chat/backend/internal/models"
	"character-chat/backend/pkg/cache"
	apperrors "character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/i18n"
	"character-chat/backend/pkg/logger"
	"character-chat/backend/shared/observability"
)

// SessionState tracks where a conversation is in its lifecycle.
type SessionState string

const (
	// StateIdle is a created session before the welcome message lands.
	StateIdle SessionState = "idle"
	// StateWelcomed is the resting state: the character spoke last and the
	// session accepts user messages.
	StateWelcomed SessionState = "welcomed"
	// StateAwaitingResponse means a user message is in flight upstream.
	// Further sends are rejected until the reply (or apology) lands.
	StateAwaitingResponse SessionState = "awaiting_response"
)

// ChatSession is one live conversation with a character. All mutation goes
// through SessionService, which serializes it per session.
type ChatSession struct {
	ID          string               `json:"id"`
	CharacterID string               `json:"characterId"`
	State       SessionState         `json:"state"`
	Credits     int                  `json:"credits"`
	Messages    []models.ChatMessage `json:"messages"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func (s *ChatSession) snapshot() *ChatSession {
	out := *s
	out.Messages = make([]models.ChatMessage, len(s.Messages))
	copy(out.Messages, s.Messages)
	return &out
}

// SessionConfig sizes the in-memory session registry.
type SessionConfig struct {
	TTL               time.Duration
	MaxSessions       int
	PurgeWindow       time.Duration
	CreditsPerSession int
}

// SessionService owns the session registry and the per-session state
// machine. Sessions live in a TTL cache and vanish when a conversation goes
// idle past its TTL.
type SessionService struct {
	mu         sync.Mutex
	registry   *cache.Cache
	characters *CharacterService
	chat       *ChatService
	archive    *MessageRepository
	localizer  *i18n.Localizer
	log        *logger.Logger
	credits    int
}

func NewSessionService(
	cfg SessionConfig,
	characters *CharacterService,
	chat *ChatService,
	archive *MessageRepository,
	localizer *i18n.Localizer,
	log *logger.Logger,
) *SessionService {
	registry := cache.New(cache.Options{
		DefaultExpiration: cfg.TTL,
		CleanupInterval:   cfg.PurgeWindow,
		MaxItems:          cfg.MaxSessions,
	})
	registry.SetOnEvicted(func(id string, _ interface{}) {
		log.Info("Chat session expired", "session_id", id)
	})

	return &SessionService{
		registry:   registry,
		characters: characters,
		chat:       chat,
		archive:    archive,
		localizer:  localizer,
		log:        log,
		credits:    cfg.CreditsPerSession,
	}
}

// Start creates a session against the character and seeds it with the
// character's welcome greeting, moving it straight to the welcomed state.
func (s *SessionService) Start(ctx context.Context, characterID string) (*ChatSession, error) {
	character, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &ChatSession{
		ID:          uuid.New().String(),
		CharacterID: character.ID,
		State:       StateIdle,
		Credits:     s.credits,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	welcome := models.ChatMessage{
		ID:          uuid.New().String(),
		Content:     dialogue.WelcomeMessage(character),
		Sender:      models.SenderCharacter,
		Timestamp:   now,
		CharacterID: character.ID,
	}
	session.Messages = append(session.Messages, welcome)
	session.State = StateWelcomed

	s.registry.Set(session.ID, session)
	s.archiveMessage(session.ID, welcome)

	s.log.Info("Chat session started",
		"session_id", session.ID,
		"character_id", character.ID,
		"credits", session.Credits,
	)
	return session.snapshot(), nil
}

// Get returns a copy of the session.
func (s *SessionService) Get(sessionID string) (*ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return session.snapshot(), nil
}

// Messages returns a copy of the session's ordered message log.
func (s *SessionService) Messages(sessionID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]models.ChatMessage, len(session.Messages))
	copy(out, session.Messages)
	return out, nil
}

// Delete removes the session and its archived transcript.
func (s *SessionService) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(sessionID); err != nil {
		return err
	}
	s.registry.Delete(sessionID)
	if s.archive != nil {
		if err := s.archive.DeleteBySession(sessionID); err != nil {
			s.log.Warn("Failed to delete archived transcript", "session_id", sessionID, "error", err.Error())
		}
	}
	return nil
}

// SendMessage runs one turn of the conversation. Order of checks matters:
// a send while a response is pending is rejected without touching the
// session, and a send with zero credits is rejected the same way. An
// accepted send appends the user message, deducts exactly one credit, and
// always produces exactly one character message, the generated reply or the
// apology fallback.
func (s *SessionService) SendMessage(ctx context.Context, sessionID, content string) (*ChatSession, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("EMPTY_MESSAGE", "Message content is required")
	}

	character, transcript, err := s.acceptUserMessage(ctx, sessionID, content)
	if err != nil {
		return nil, err
	}

	// The registry entry stays in the awaiting state while the call is in
	// flight, so concurrent sends bounce off the pending-response check.
	reply, genErr := s.chat.Generate(ctx, character, transcript)
	if genErr != nil {
		reply = s.localizer.Get(i18n.MsgChatError)
	}

	return s.deliverReply(sessionID, character.ID, reply)
}

// acceptUserMessage runs the gate checks and, if they pass, commits the user
// turn: append, deduct one credit, move to awaiting. Rejections leave the
// session untouched.
func (s *SessionService) acceptUserMessage(ctx context.Context, sessionID, content string) (*models.Character, []models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.State == StateAwaitingResponse {
		return nil, nil, apperrors.NewConflictError("RESPONSE_PENDING", s.localizer.Get(i18n.MsgAwaitingResponse))
	}
	if session.Credits <= 0 {
		observability.CreditsRejected.Inc()
		return nil, nil, apperrors.NewPaymentRequiredError("INSUFFICIENT_CREDITS", s.localizer.Get(i18n.MsgInsufficientCredits))
	}

	character, err := s.characters.Get(ctx, session.CharacterID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	userMessage := models.ChatMessage{
		ID:        uuid.New().String(),
		Content:   content,
		Sender:    models.SenderUser,
		Timestamp: now,
		UserID:    "user",
	}
	session.Messages = append(session.Messages, userMessage)
	session.Credits--
	session.State = StateAwaitingResponse
	session.UpdatedAt = now
	s.archiveMessage(session.ID, userMessage)
	observability.MessagesSent.WithLabelValues(character.ID).Inc()

	transcript := make([]models.ChatMessage, len(session.Messages))
	copy(transcript, session.Messages)
	return character, transcript, nil
}

// deliverReply commits the character turn and returns the session to the
// welcomed state.
func (s *SessionService) deliverReply(sessionID, characterID, reply string) (*ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	characterMessage := models.ChatMessage{
		ID:          uuid.New().String(),
		Content:     reply,
		Sender:      models.SenderCharacter,
		Timestamp:   time.Now(),
		CharacterID: characterID,
	}
	session.Messages = append(session.Messages, characterMessage)
	session.State = StateWelcomed
	session.UpdatedAt = characterMessage.Timestamp
	s.archiveMessage(session.ID, characterMessage)
	s.registry.Touch(session.ID)

	return session.snapshot(), nil
}

func (s *SessionService) lookup(sessionID string) (*ChatSession, error) {
	value, found := s.registry.Get(sessionID)
	if !found {
		return nil, apperrors.NewNotFoundError("SESSION_NOT_FOUND", s.localizer.Get(i18n.MsgSessionNotFound))
	}
	session, ok := value.(*ChatSession)
	if !ok {
		return nil, apperrors.NewInternalServerError("SESSION_CORRUPT", "Session registry entry has wrong type")
	}
	return session, nil
}

func (s *SessionService) archiveMessage(sessionID string, msg models.ChatMessage) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Append(sessionID, msg); err != nil {
		s.log.Warn("Failed to archive message", "session_id", sessionID, "error", err.Error())
	}
}
