package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMessengerClientSendText(t *testing.T) {
	var captured struct {
		path  string
		query string
		body  []byte
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		captured.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewMessengerClientWithBaseURL(srv.URL, zap.NewNop())
	err := client.SendText(context.Background(), "page-token", "4339620206152955", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/me/messages", captured.path)
	assert.Equal(t, "access_token=page-token", captured.query)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(captured.body, &payload))
	assert.Equal(t, "RESPONSE", payload["messaging_type"])
	assert.Equal(t, map[string]any{"id": "4339620206152955"}, payload["recipient"])
	assert.Equal(t, map[string]any{"text": "hello"}, payload["message"])
}

func TestMessengerClientSendTextRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid OAuth access token"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewMessengerClientWithBaseURL(srv.URL, zap.NewNop())
	err := client.SendText(context.Background(), "bad-token", "user", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
