package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"team-hub.backend/internal/config"
)

// AIUsecase is the thin passthrough to the upstream generative-language
// endpoint. No retries; upstream errors are surfaced verbatim.
type AIUsecase struct {
	client   *resty.Client
	endpoint string
}

// UpstreamError carries the provider's error message and raw body so the
// handler can relay them unmasked.
type UpstreamError struct {
	Message string
	Status  int
	Raw     map[string]interface{}
}

func (e *UpstreamError) Error() string {
	return e.Message
}

type upstreamRequest struct {
	Prompt string `json:"prompt"`
}

type upstreamResponse struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

// NewAIUsecase creates a new AI proxy usecase
func NewAIUsecase(cfg config.AIConfig) *AIUsecase {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	return &AIUsecase{
		client:   client,
		endpoint: cfg.Endpoint,
	}
}

// Complete forwards the prompt and returns the generated text.
func (u *AIUsecase) Complete(ctx context.Context, prompt string) (string, error) {
	if u.endpoint == "" {
		return "", &UpstreamError{Message: "AI endpoint is not configured", Status: 0}
	}

	var out upstreamResponse
	resp, err := u.client.R().
		SetContext(ctx).
		SetBody(upstreamRequest{Prompt: prompt}).
		SetResult(&out).
		Post(u.endpoint)
	if err != nil {
		return "", &UpstreamError{Message: err.Error(), Status: 0}
	}

	if resp.IsError() {
		var raw map[string]interface{}
		_ = json.Unmarshal(resp.Body(), &raw)
		msg := out.Error
		if msg == "" {
			if m, ok := raw["error"].(string); ok && m != "" {
				msg = m
			} else {
				msg = fmt.Sprintf("upstream returned status %d", resp.StatusCode())
			}
		}
		return "", &UpstreamError{Message: msg, Status: resp.StatusCode(), Raw: raw}
	}

	return out.Result, nil
}
