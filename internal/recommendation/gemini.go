package recommendation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-1.5-flash"

var (
	ErrQuotaExceeded = errors.New("advice quota exceeded")
	ErrEmptyAnswer   = errors.New("advice provider returned empty answer")
)

// GeminiOption настройка клиента Gemini
type GeminiOption func(cfg *genai.ClientConfig)

// WithBaseURL направляет запросы на другой адрес API
func WithBaseURL(url string) GeminiOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

func WithHTTPClient(client *http.Client) GeminiOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPClient = client
	}
}

// GeminiProvider консультант поверх Gemini API
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider создаёт клиента по API-ключу
func NewGeminiProvider(ctx context.Context, apiKey, model string, timeout time.Duration, opts ...GeminiOption) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: strings.TrimPrefix(model, "models/"), timeout: timeout}, nil
}

// Generate отправляет один запрос и склеивает текст всех частей первого непустого кандидата
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		if isQuotaError(err) {
			return "", fmt.Errorf("generate content: %w", ErrQuotaExceeded)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range c.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			return text, nil
		}
	}

	return "", ErrEmptyAnswer
}

func isQuotaError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code == http.StatusTooManyRequests
	}
	return false
}
