package openai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/forPelevin/ffmpeg-english/internal/types"
)

type Adapter struct {
	key     string
	timeout time.Duration
	client  *openai.Client
}

// New builds a chat completions client. A zero timeout leaves the call
// bounded only by ctx.
func New(apiKey, baseURL string, timeout time.Duration) *Adapter {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = normalizeBaseURL(baseURL)
	return &Adapter{
		key:     apiKey,
		timeout: timeout,
		client:  openai.NewClientWithConfig(cfg),
	}
}

func (a *Adapter) Complete(ctx context.Context, p types.Prompt) (string, error) {
	reqCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	resp, err := a.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: p.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	})
	if err != nil {
		if a.timeout > 0 && errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("openai timeout after %s (model=%s)", a.timeout, p.Model)
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai status %d: %s", apiErr.HTTPStatusCode, truncate(redactSecrets(apiErr.Message, a.key), 400))
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", fmt.Errorf("openai status %d: %s", reqErr.HTTPStatusCode, truncate(redactSecrets(reqErr.Error(), a.key), 400))
		}
		return "", fmt.Errorf("openai: %s", redactSecrets(err.Error(), a.key))
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: response has no choices")
	}
	msg := resp.Choices[0].Message
	if strings.TrimSpace(msg.Content) == "" {
		if msg.Refusal != "" {
			return "", fmt.Errorf("openai: first choice has no content (refusal: %s)", truncate(redactSecrets(msg.Refusal, a.key), 400))
		}
		return "", errors.New("openai: first choice has no content")
	}
	return msg.Content, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
	skKeyRE       = regexp.MustCompile(`\bsk-[A-Za-z0-9_*-]{8,}`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = skKeyRE.ReplaceAllString(out, "[REDACTED]")
	return out
}
