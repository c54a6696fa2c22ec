package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"character-chat/backend/ai"
	"character-chat/backend/internal/service"
	"character-chat/backend/pkg/logger"
)

func chatRouter(client *ai.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New(logger.DefaultConfig())
	handler := NewChatHandler(service.NewChatService(client, log))

	r := gin.New()
	r.POST("/api/chat", handler.Generate)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return performRequest(r, req)
}

func performRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatRequiresMessagesArray(t *testing.T) {
	r := chatRouter(ai.NewClient(""))

	for _, body := range []string{`{}`, `{"messages": null}`, `not json`, `{"messages": "hello"}`} {
		w := postJSON(r, "/api/chat", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.JSONEq(t, `{"error": "Messages array is required"}`, w.Body.String())
	}
}

func TestChatGeneratesOfflineReply(t *testing.T) {
	r := chatRouter(ai.NewClient(""))

	w := postJSON(r, "/api/chat", `{
		"messages": [{"role": "user", "content": "こんにちは"}],
		"character": {"id": "7", "name": "モモ", "speakingStyle": "kawaii"}
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["response"])
}

func TestChatProxiesCompletion(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"生成された応答"}}]}`))
	}))
	defer upstream.Close()

	r := chatRouter(ai.NewClientWithBaseURL("test-key", upstream.URL))

	w := postJSON(r, "/api/chat", `{"messages": [{"role": "user", "content": "やあ"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response": "生成された応答"}`, w.Body.String())
}

func TestChatFailureReturns500(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	r := chatRouter(ai.NewClientWithBaseURL("test-key", upstream.URL))

	w := postJSON(r, "/api/chat", `{"messages": [{"role": "user", "content": "やあ"}]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to generate response"}`, w.Body.String())
}

func TestChatEmptyCompletionReturns500(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer upstream.Close()

	r := chatRouter(ai.NewClientWithBaseURL("test-key", upstream.URL))

	w := postJSON(r, "/api/chat", `{"messages": [{"role": "user", "content": "やあ"}]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to generate response"}`, w.Body.String())
}
