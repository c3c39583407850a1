// Package llmclient defines the outbound-call boundary to the insight
// generator's LLM backend. The Provider interface is the only surface
// internal/insight depends on; no Anthropic/OpenAI SDK is vendored here —
// the concrete implementation speaks the OpenAI-compatible chat-completions
// wire format over plain net/http, mirroring how the teacher's
// strategy_gpt package keeps its "http" BackendType as a narrow, swappable
// concrete client behind a closed BackendType enum rather than pulling in a
// vendor SDK.
package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// CompletionRequest is the provider-agnostic input to a single completion
// call.
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// CompletionResponse is the provider-agnostic output of a completion call.
type CompletionResponse struct {
	Text string
}

// Provider is implemented by any backend the insight generator can call.
// Callers are expected to bound ctx with their own soft/hard timeout; a
// Provider implementation must respect ctx cancellation promptly.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// HTTPConfig configures an HTTPProvider.
type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// HTTPProvider is a Provider backed by an OpenAI-compatible
// /v1/chat/completions endpoint reached over plain net/http.
type HTTPProvider struct {
	cfg    HTTPConfig
	client *http.Client
}

// NewHTTPProvider constructs an HTTPProvider. The caller owns timeout
// enforcement via context; the client itself sets no internal timeout so it
// never races the caller's own deadline.
func NewHTTPProvider(cfg HTTPConfig) *HTTPProvider {
	return &HTTPProvider{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionChoice struct {
	Message chatMessage `json:"message"`
}

type chatCompletionResponse struct {
	Choices []chatCompletionChoice `json:"choices"`
}

// Complete issues one chat-completion call. It returns a non-nil error on
// any transport failure, non-2xx status, context cancellation/deadline, or
// an empty choices array — internal/insight treats every error identically
// (fall back), so no error wrapping beyond context is required here.
func (p *HTTPProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       p.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llmclient: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llmclient: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llmclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llmclient: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return CompletionResponse{}, fmt.Errorf("llmclient: status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return CompletionResponse{}, fmt.Errorf("llmclient: unmarshal response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return CompletionResponse{}, fmt.Errorf("llmclient: empty choices")
	}
	return CompletionResponse{Text: parsed.Choices[0].Message.Content}, nil
}

// NopProvider always fails immediately. It is useful for tests and for
// deployments that intentionally disable the LLM-backed insight path,
// forcing every request down the deterministic fallback.
type NopProvider struct{}

func (NopProvider) Complete(ctx context.Context, _ CompletionRequest) (CompletionResponse, error) {
	select {
	case <-ctx.Done():
		return CompletionResponse{}, ctx.Err()
	default:
	}
	return CompletionResponse{}, fmt.Errorf("llmclient: no provider configured")
}

var _ Provider = (*HTTPProvider)(nil)
var _ Provider = NopProvider{}
