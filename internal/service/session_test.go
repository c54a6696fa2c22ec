package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"character-chat/backend/ai"
	"character-chat/backend/internal/models"
	apperrors "character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/i18n"
	"character-chat/backend/pkg/logger"
)

const apologyJA = "申し訳ございません。エラーが発生しました。もう一度お試しください。"

func newSessionService(t *testing.T, credits int, completion *ai.Client) *SessionService {
	t.Helper()
	log := logger.New(logger.DefaultConfig())
	localizer, err := i18n.NewLocalizer("ja")
	require.NoError(t, err)

	return NewSessionService(
		SessionConfig{
			TTL:               time.Hour,
			MaxSessions:       100,
			CreditsPerSession: credits,
		},
		newCharacterService(t),
		NewChatService(completion, log),
		nil,
		localizer,
		log,
	)
}

// offlineClient has no credentials, so replies come from the dialogue pools
// and generation never fails.
func offlineClient() *ai.Client {
	return ai.NewClient("")
}

func TestStartSeedsWelcomeMessage(t *testing.T) {
	s := newSessionService(t, 50, offlineClient())

	session, err := s.Start(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, StateWelcomed, session.State)
	assert.Equal(t, 50, session.Credits)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, models.SenderCharacter, session.Messages[0].Sender)
	assert.Contains(t, session.Messages[0].Content, "あかり")
}

func TestStartUnknownCharacter(t *testing.T) {
	s := newSessionService(t, 50, offlineClient())

	_, err := s.Start(context.Background(), "no-such-character")
	require.Error(t, err)
	assert.Equal(t, 404, err.(*apperrors.AppError).StatusCode)
}

func TestSendMessageDeductsExactlyOneCredit(t *testing.T) {
	s := newSessionService(t, 50, offlineClient())
	ctx := context.Background()

	session, err := s.Start(ctx, "1")
	require.NoError(t, err)

	after, err := s.SendMessage(ctx, session.ID, "こんにちは")
	require.NoError(t, err)

	assert.Equal(t, 49, after.Credits)
	assert.Equal(t, StateWelcomed, after.State)
	require.Len(t, after.Messages, 3)
	assert.Equal(t, models.SenderUser, after.Messages[1].Sender)
	assert.Equal(t, "こんにちは", after.Messages[1].Content)
	assert.Equal(t, models.SenderCharacter, after.Messages[2].Sender)
	assert.NotEmpty(t, after.Messages[2].Content)
}

func TestSendMessageWithZeroCreditsLeavesSessionUntouched(t *testing.T) {
	s := newSessionService(t, 0, offlineClient())
	ctx := context.Background()

	session, err := s.Start(ctx, "1")
	require.NoError(t, err)

	_, err = s.SendMessage(ctx, session.ID, "まだ話せる？")
	require.Error(t, err)
	assert.Equal(t, 402, err.(*apperrors.AppError).StatusCode)

	unchanged, err := s.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unchanged.Credits)
	assert.Len(t, unchanged.Messages, 1)
	assert.Equal(t, StateWelcomed, unchanged.State)
}

func TestSendMessageFallsBackToApologyOnCompletionFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	s := newSessionService(t, 50, ai.NewClientWithBaseURL("test-key", upstream.URL))
	ctx := context.Background()

	session, err := s.Start(ctx, "1")
	require.NoError(t, err)

	after, err := s.SendMessage(ctx, session.ID, "調子はどう？")
	require.NoError(t, err)

	assert.Equal(t, 49, after.Credits)
	assert.Equal(t, StateWelcomed, after.State)
	require.Len(t, after.Messages, 3)
	assert.Equal(t, apologyJA, after.Messages[2].Content)
}

func TestSendMessageRejectedWhileResponsePending(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"やあ！"}}]}`))
	}))
	defer upstream.Close()

	s := newSessionService(t, 50, ai.NewClientWithBaseURL("test-key", upstream.URL))
	ctx := context.Background()

	session, err := s.Start(ctx, "1")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, sendErr := s.SendMessage(ctx, session.ID, "最初のメッセージ")
		done <- sendErr
	}()

	<-started
	_, err = s.SendMessage(ctx, session.ID, "割り込みメッセージ")
	require.Error(t, err)
	assert.Equal(t, 409, err.(*apperrors.AppError).StatusCode)

	close(release)
	require.NoError(t, <-done)

	after, err := s.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 49, after.Credits, "rejected send must not cost a credit")
	assert.Len(t, after.Messages, 3)
	assert.Equal(t, "やあ！", after.Messages[2].Content)
}

func TestSendMessageEmptyContent(t *testing.T) {
	s := newSessionService(t, 50, offlineClient())
	ctx := context.Background()

	session, err := s.Start(ctx, "1")
	require.NoError(t, err)

	_, err = s.SendMessage(ctx, session.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, 400, err.(*apperrors.AppError).StatusCode)
}

func TestSendMessageUnknownSession(t *testing.T) {
	s := newSessionService(t, 50, offlineClient())

	_, err := s.SendMessage(context.Background(), "missing", "こんにちは")
	require.Error(t, err)
	appErr := err.(*apperrors.AppError)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, "チャットセッションが見つかりません。", appErr.Message)
}

func TestDeleteRemovesSession(t *testing.T) {
	s := newSessionService(t, 50, offlineClient())
	ctx := context.Background()

	session, err := s.Start(ctx, "1")
	require.NoError(t, err)

	require.NoError(t, s.Delete(session.ID))

	_, err = s.Get(session.ID)
	require.Error(t, err)
	assert.Equal(t, 404, err.(*apperrors.AppError).StatusCode)
}

func TestMessagesReturnsOrderedLog(t *testing.T) {
	s := newSessionService(t, 50, offlineClient())
	ctx := context.Background()

	session, err := s.Start(ctx, "1")
	require.NoError(t, err)
	_, err = s.SendMessage(ctx, session.ID, "一つ目")
	require.NoError(t, err)
	_, err = s.SendMessage(ctx, session.ID, "二つ目")
	require.NoError(t, err)

	messages, err := s.Messages(session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 5)
	assert.Equal(t, "一つ目", messages[1].Content)
	assert.Equal(t, "二つ目", messages[3].Content)
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].Timestamp.Before(messages[i-1].Timestamp))
	}
}
