package enrich

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPServiceValidation(t *testing.T) {
	base := ServiceConfig{APIKey: "key", BaseURL: "https://api.example.com", Model: "sonar"}

	_, err := NewHTTPService(base)
	assert.NoError(t, err)

	missingKey := base
	missingKey.APIKey = ""
	_, err = NewHTTPService(missingKey)
	assert.Error(t, err)

	missingURL := base
	missingURL.BaseURL = ""
	_, err = NewHTTPService(missingURL)
	assert.Error(t, err)

	missingModel := base
	missingModel.Model = ""
	_, err = NewHTTPService(missingModel)
	assert.Error(t, err)
}

func TestNewHTTPServiceDefaultTimeout(t *testing.T) {
	service, err := NewHTTPService(ServiceConfig{APIKey: "key", BaseURL: "https://api.example.com", Model: "sonar"})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, service.Client.Timeout)

	service, err = NewHTTPService(ServiceConfig{APIKey: "key", BaseURL: "https://api.example.com", Model: "sonar", Timeout: 10 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, service.Client.Timeout)
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "the completion text"}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	service, err := NewHTTPService(ServiceConfig{APIKey: "secret", BaseURL: srv.URL, Model: "sonar"})
	require.NoError(t, err)

	content, err := service.Complete(context.Background(), "Tell me about the award")
	require.NoError(t, err)
	assert.Equal(t, "the completion text", content)

	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "sonar", gotBody["model"])
	assert.Equal(t, false, gotBody["stream"])

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "Tell me about the award", msg["content"])
}

func TestCompleteNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	service, err := NewHTTPService(ServiceConfig{APIKey: "secret", BaseURL: srv.URL, Model: "sonar"})
	require.NoError(t, err)

	_, err = service.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	service, err := NewHTTPService(ServiceConfig{APIKey: "secret", BaseURL: srv.URL, Model: "sonar"})
	require.NoError(t, err)

	_, err = service.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty choices")
}

func TestCompleteHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches the connection; with an
		// unread POST body r.Context() is never cancelled on client
		// disconnect and srv.Close deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	service, err := NewHTTPService(ServiceConfig{APIKey: "secret", BaseURL: srv.URL, Model: "sonar"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = service.Complete(ctx, "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
