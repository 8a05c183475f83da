package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

const newMessagePush = `{
  "object": "page",
  "entry": [
    {
      "id": "106197145160389",
      "time": 1640000000000,
      "messaging": [
        {
          "sender": {"id": "4339620206152955"},
          "recipient": {"id": "106197145160389"},
          "timestamp": 1640000000000,
          "message": {"mid": "m_1", "text": "hello"}
        }
      ]
    }
  ]
}`

const echoPush = `{
  "object": "page",
  "entry": [
    {
      "messaging": [
        {
          "sender": {"id": "106197145160389"},
          "recipient": {"id": "4339620206152955"},
          "message": {"mid": "m_2", "text": "Hello! Want to join?", "is_echo": true}
        }
      ]
    }
  ]
}`

type fakeProcessor struct {
	messages []game.PlayerMessage
}

func (f *fakeProcessor) ProcessMessage(_ context.Context, message game.PlayerMessage) error {
	f.messages = append(f.messages, message)
	return nil
}

func newTestRouter(processor MessageProcessor) *gin.Engine {
	// sync=true: обработка завершается до ответа, можно проверять сразу.
	h := NewWebhookHandler(processor, "TOKEN", true, zap.NewNop())
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/webhook", h.Verify)
	router.POST("/api/webhook", h.Events)
	return router
}

func TestVerifyAnswersChallenge(t *testing.T) {
	router := newTestRouter(&fakeProcessor{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/webhook?hub.mode=subscribe&hub.challenge=1492553178&hub.verify_token=TOKEN", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1492553178", w.Body.String())
}

func TestVerifyRejectsWrongToken(t *testing.T) {
	router := newTestRouter(&fakeProcessor{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/webhook?hub.mode=subscribe&hub.challenge=1&hub.verify_token=WRONG", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyRejectsWrongMode(t *testing.T) {
	router := newTestRouter(&fakeProcessor{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/webhook?hub.mode=unsubscribe&hub.challenge=1&hub.verify_token=TOKEN", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEventsProcessesUserMessage(t *testing.T) {
	processor := &fakeProcessor{}
	router := newTestRouter(processor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(newMessagePush))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, processor.messages, 1)
	assert.Equal(t, game.PlayerMessage{
		PlayerID: game.PlayerId{ChannelID: "106197145160389", ID: "4339620206152955"},
		Text:     "hello",
	}, processor.messages[0])
}

func TestEventsIgnoresEchoMessages(t *testing.T) {
	processor := &fakeProcessor{}
	router := newTestRouter(processor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(echoPush))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, processor.messages)
}

func TestEventsIgnoresUnknownObjects(t *testing.T) {
	processor := &fakeProcessor{}
	router := newTestRouter(processor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhook",
		strings.NewReader(`{"object": "user", "entry": []}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, processor.messages)
}

func TestEventsToleratesGarbageBody(t *testing.T) {
	processor := &fakeProcessor{}
	router := newTestRouter(processor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader("{not json"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, processor.messages)
}

func TestExtractMessagesHandlesBatches(t *testing.T) {
	event := &webhookEvent{
		Object: "instagram",
		Entry: []webhookEntry{
			{Messaging: []messagingItem{
				{Sender: participant{ID: "a"}, Recipient: participant{ID: "page"}, Message: &incomingMessage{Text: "первое"}},
				{Sender: participant{ID: "b"}, Recipient: participant{ID: "page"}},
			}},
			{Messaging: []messagingItem{
				{Sender: participant{ID: "c"}, Recipient: participant{ID: "page"}, Message: &incomingMessage{Text: "второе"}},
			}},
		},
	}

	messages := extractMessages(event)
	require.Len(t, messages, 2)
	assert.Equal(t, "первое", messages[0].Text)
	assert.Equal(t, "второе", messages[1].Text)
}
