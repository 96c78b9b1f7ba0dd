package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func chatCompletionResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": text}},
		},
	}
}

func newTestClient(t *testing.T, baseURL string, maxRetries int) *Client {
	client, err := NewClient(&Config{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
	})
	assert.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&Config{})
	assert.Error(t, err)

	_, err = NewClient(&Config{APIKey: "   "})
	assert.Error(t, err)
}

func TestNewClient_AppliesDefaults(t *testing.T) {
	client, err := NewClient(&Config{APIKey: "test-key"})
	assert.NoError(t, err)
	assert.Equal(t, "https://api.groq.com/openai/v1", client.config.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", client.config.Model)
	assert.Equal(t, 150, client.config.MaxTokens)
	assert.Equal(t, 0.9, client.config.Temperature)
}

func TestClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, 1.0, req.TopP)

		json.NewEncoder(w).Encode(chatCompletionResponse("A motivating description. "))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)
	text, err := client.Generate(context.Background(), "describe Medicine")

	assert.NoError(t, err)
	assert.Equal(t, "A motivating description.", text)
}

func TestClient_Generate_RetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(chatCompletionResponse("second try"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 2)
	text, err := client.Generate(context.Background(), "prompt")

	assert.NoError(t, err)
	assert.Equal(t, "second try", text)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_Generate_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)
	_, err := client.Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestClient_Generate_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)
	_, err := client.Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestClient_Generate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(chatCompletionResponse("too late"))
	}))
	defer server.Close()

	client, err := NewClient(&Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 50 * time.Millisecond,
	})
	assert.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrGenerationTimeout)
}
