package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Service is the external text-generation collaborator. Exactly one
// attempt is made per record; retry policy is out of scope.
type Service interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ServiceConfig is injected by the caller; the enrichment core never
// reads environment state itself.
type ServiceConfig struct {
	APIKey  string
	BaseURL string        // e.g. https://api.perplexity.ai
	Model   string        // e.g. sonar
	Timeout time.Duration // per-call cap, the only blocking point in the pipeline
}

// HTTPService talks to a Perplexity-style chat-completions endpoint.
type HTTPService struct {
	Client *http.Client
	Config ServiceConfig
}

func NewHTTPService(cfg ServiceConfig) (*HTTPService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("enrich: missing API key")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("enrich: missing base URL")
	}
	if cfg.Model == "" {
		return nil, errors.New("enrich: missing model")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &HTTPService{
		Client: &http.Client{Timeout: timeout},
		Config: cfg,
	}, nil
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	Stream           bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one prompt and returns the raw text completion.
func (s *HTTPService) Complete(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model: s.Config.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature:      0.2,
		TopP:             0.9,
		FrequencyPenalty: 1,
		Stream:           false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("completion: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("completion: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.Config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion: request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("completion: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion: status %d: %s", resp.StatusCode, truncate(string(data), 300))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("completion: decode: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion: empty choices in response")
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
