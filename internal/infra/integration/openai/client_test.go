package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedayhr/crm-api/internal/usecase"
)

func TestNewClient_NoKey(t *testing.T) {
	assert.Nil(t, NewClient("", "", "", time.Second))
}

func TestComplete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL+"/v1", "", 5*time.Second)
	out, err := c.Complete(context.Background(), usecase.ChatRequest{
		System: "sys", Prompt: "hello", Temperature: 0.5, MaxTokens: 200, JSON: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	assert.Equal(t, DefaultModel, got["model"])
	assert.EqualValues(t, 200, got["max_tokens"])
	assert.Len(t, got["messages"], 2)
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
}

func TestComplete_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("bad", srv.URL+"/v1", "", time.Second).Complete(context.Background(), usecase.ChatRequest{Prompt: "x"})
	assert.Error(t, err)
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", srv.URL+"/v1", "", time.Second).Complete(context.Background(), usecase.ChatRequest{Prompt: "x"})
	assert.ErrorContains(t, err, "no choices")
}
