package llmclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidegrove/analytics-engine/internal/llmclient"
)

func TestHTTPProvider_Complete_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Revenue grew 15% quarter over quarter."}},
			},
		})
	}))
	defer server.Close()

	provider := llmclient.NewHTTPProvider(llmclient.HTTPConfig{BaseURL: server.URL, APIKey: "test-key", Model: "gpt-test"})
	resp, err := provider.Complete(context.Background(), llmclient.CompletionRequest{Prompt: "summarize", MaxTokens: 128, Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "Revenue grew 15% quarter over quarter.", resp.Text)
}

func TestHTTPProvider_Complete_NonOKStatusReturnsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	provider := llmclient.NewHTTPProvider(llmclient.HTTPConfig{BaseURL: server.URL, Model: "gpt-test"})
	_, err := provider.Complete(context.Background(), llmclient.CompletionRequest{Prompt: "x"})
	require.Error(t, err)
}

func TestHTTPProvider_Complete_EmptyChoicesReturnsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	provider := llmclient.NewHTTPProvider(llmclient.HTTPConfig{BaseURL: server.URL, Model: "gpt-test"})
	_, err := provider.Complete(context.Background(), llmclient.CompletionRequest{Prompt: "x"})
	require.Error(t, err)
}

func TestHTTPProvider_Complete_RespectsContextDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	provider := llmclient.NewHTTPProvider(llmclient.HTTPConfig{BaseURL: server.URL, Model: "gpt-test"})
	_, err := provider.Complete(ctx, llmclient.CompletionRequest{Prompt: "x"})
	require.Error(t, err)
}

func TestNopProvider_AlwaysErrors(t *testing.T) {
	t.Parallel()

	_, err := llmclient.NopProvider{}.Complete(context.Background(), llmclient.CompletionRequest{Prompt: "x"})
	require.Error(t, err)
}
