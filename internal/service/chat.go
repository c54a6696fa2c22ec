package service

import (
	"context"

	"character-chat/backend/ai"
	"character-chat/backend/internal/dialogue"
	"character-chat/backend/internal/models"
	"character-chat/backend/pkg/logger"
	"character-chat/backend/pkg/resilience"
	"character-chat/backend/shared/observability"
)

// ChatService produces one character reply per call. With completion
// credentials it proxies the upstream model behind a circuit breaker;
// without them it draws from the style-keyed dialogue pools, which always
// answer.
type ChatService struct {
	completion *ai.Client
	breaker    *resilience.CircuitBreaker
	selector   *dialogue.Selector
	log        *logger.Logger
}

func NewChatService(completion *ai.Client, log *logger.Logger) *ChatService {
	return &ChatService{
		completion: completion,
		breaker:    resilience.New(resilience.DefaultConfig("completion"), log),
		selector:   dialogue.NewSelector(),
		log:        log,
	}
}

// Generate returns the character's reply to the transcript. The error is
// non-nil only on the completion path; the dialogue pools never fail.
func (s *ChatService) Generate(ctx context.Context, character *models.Character, messages []models.ChatMessage) (string, error) {
	if s.completion != nil && s.completion.Enabled() {
		var reply string
		err := s.breaker.Execute(func() error {
			var genErr error
			reply, genErr = s.completion.GenerateResponse(ctx, character, ai.Transcript(messages))
			return genErr
		})
		if err != nil {
			observability.CompletionFailures.Inc()
			s.log.Error("Completion call failed", "error", err.Error())
			return "", err
		}
		return reply, nil
	}

	style := models.SpeakingStyle("")
	name := "me"
	if character != nil {
		style = character.SpeakingStyle
		name = character.Name
	}
	return s.selector.Response(style, name), nil
}
