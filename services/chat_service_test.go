package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaykaran24/fitbot/apperrors"
	"github.com/Jaykaran24/fitbot/config"
	"github.com/Jaykaran24/fitbot/models"
)

// fakeAIServer mimics the chat-completions endpoint. calls counts requests;
// fail switches it to 500s.
func fakeAIServer(t *testing.T, reply string, fail bool, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` + reply + `"}}]}`))
	}))
}

func externalFor(server *httptest.Server) *OpenRouterService {
	return NewOpenRouterService(config.OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
}

func newChatService(t *testing.T, external *OpenRouterService, mode string) *ChatService {
	t.Helper()
	return NewChatService(openTestDB(t), NewFitBot(), external, mode, testLogger())
}

func TestChatService_EmptyMessage(t *testing.T) {
	svc := newChatService(t, nil, config.ModeFallback)

	_, err := svc.Chat(context.Background(), 1, "   ", true, models.Profile{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestChatService_Fallback_MatchedSkipsExternal(t *testing.T) {
	var calls atomic.Int32
	server := fakeAIServer(t, "external answer", false, &calls)
	defer server.Close()

	svc := newChatService(t, externalFor(server), config.ModeFallback)

	reply, err := svc.Chat(context.Background(), 1, "hello", true, models.Profile{})
	require.NoError(t, err)
	assert.Equal(t, ReplySourceLocal, reply.Source)
	assert.Contains(t, reply.Content, "Fit Bot")
	assert.Equal(t, int32(0), calls.Load())
}

func TestChatService_Fallback_UnmatchedEscalates(t *testing.T) {
	var calls atomic.Int32
	server := fakeAIServer(t, "external answer", false, &calls)
	defer server.Close()

	svc := newChatService(t, externalFor(server), config.ModeFallback)

	reply, err := svc.Chat(context.Background(), 1, "tell me about quantum physics", true, models.Profile{})
	require.NoError(t, err)
	assert.Equal(t, ReplySourceOpenRouter, reply.Source)
	assert.Equal(t, "external answer", reply.Content)
	assert.Equal(t, int32(1), calls.Load())
}

func TestChatService_Fallback_ExternalFailureKeepsDefault(t *testing.T) {
	var calls atomic.Int32
	server := fakeAIServer(t, "", true, &calls)
	defer server.Close()

	svc := newChatService(t, externalFor(server), config.ModeFallback)

	reply, err := svc.Chat(context.Background(), 1, "tell me about quantum physics", true, models.Profile{})
	require.NoError(t, err)
	assert.Equal(t, ReplySourceLocal, reply.Source)
	assert.Equal(t, DefaultResponse, reply.Content)
}

func TestChatService_ExternalFirst(t *testing.T) {
	var calls atomic.Int32
	server := fakeAIServer(t, "external answer", false, &calls)
	defer server.Close()

	svc := newChatService(t, externalFor(server), config.ModeExternalFirst)

	// even messages the rule bot could answer go external in this mode
	reply, err := svc.Chat(context.Background(), 1, "hello", true, models.Profile{})
	require.NoError(t, err)
	assert.Equal(t, ReplySourceOpenRouter, reply.Source)
	assert.Equal(t, "external answer", reply.Content)
}

func TestChatService_ExternalFirst_RequestOptsOut(t *testing.T) {
	var calls atomic.Int32
	server := fakeAIServer(t, "external answer", false, &calls)
	defer server.Close()

	svc := newChatService(t, externalFor(server), config.ModeExternalFirst)

	reply, err := svc.Chat(context.Background(), 1, "hello", false, models.Profile{})
	require.NoError(t, err)
	assert.Equal(t, ReplySourceLocal, reply.Source)
	assert.Equal(t, int32(0), calls.Load())
}

func TestChatService_ExternalFirst_FailureFallsBack(t *testing.T) {
	var calls atomic.Int32
	server := fakeAIServer(t, "", true, &calls)
	defer server.Close()

	svc := newChatService(t, externalFor(server), config.ModeExternalFirst)

	reply, err := svc.Chat(context.Background(), 1, "hello", true, models.Profile{})
	require.NoError(t, err)
	assert.Equal(t, ReplySourceLocal, reply.Source)
	assert.Contains(t, reply.Content, "Fit Bot")
}

func TestChatService_ExternalDisabledWithoutKey(t *testing.T) {
	external := NewOpenRouterService(config.OpenRouterConfig{Model: "test-model"})
	assert.False(t, external.Enabled())

	svc := newChatService(t, external, config.ModeExternalFirst)

	reply, err := svc.Chat(context.Background(), 1, "hello", true, models.Profile{})
	require.NoError(t, err)
	assert.Equal(t, ReplySourceLocal, reply.Source)
}

func TestChatService_PersistsHistory(t *testing.T) {
	svc := newChatService(t, nil, config.ModeFallback)

	_, err := svc.Chat(context.Background(), 1, "hello", false, models.Profile{})
	require.NoError(t, err)
	_, err = svc.Chat(context.Background(), 1, "help", false, models.Profile{})
	require.NoError(t, err)

	messages, err := svc.History(1, 50)
	require.NoError(t, err)
	require.Len(t, messages, 4)

	assert.Equal(t, "user", messages[0].Sender)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "bot", messages[1].Sender)
	assert.Equal(t, "user", messages[2].Sender)
	assert.Equal(t, "help", messages[2].Content)

	// another user sees nothing
	other, err := svc.History(2, 50)
	require.NoError(t, err)
	assert.Empty(t, other)
}
