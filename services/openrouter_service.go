package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker/v2"

	"github.com/Jaykaran24/fitbot/apperrors"
	"github.com/Jaykaran24/fitbot/config"
	"github.com/Jaykaran24/fitbot/models"
)

const (
	openRouterTemperature = 0.7
	openRouterMaxTokens   = 512
)

// OpenRouterService calls the OpenRouter chat-completions API through the
// OpenAI-compatible client. A circuit breaker trips after repeated upstream
// failures so a degraded provider does not hold every chat request on a
// timeout.
type OpenRouterService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[string]
	enabled bool
}

func NewOpenRouterService(cfg config.OpenRouterConfig) *OpenRouterService {
	s := &OpenRouterService{
		model:   cfg.Model,
		timeout: cfg.Timeout,
		enabled: cfg.APIKey != "",
	}
	if s.timeout <= 0 {
		s.timeout = 8 * time.Second
	}
	if s.enabled {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		clientCfg.BaseURL = cfg.BaseURL
		s.client = openai.NewClientWithConfig(clientCfg)
	}
	s.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name: "openrouter",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return s
}

// Enabled reports whether an API key is configured. Callers should skip the
// external path entirely when it is not.
func (s *OpenRouterService) Enabled() bool { return s.enabled }

// Complete sends the user's message with a profile-aware system prompt and
// returns the assistant's reply. Fails fast with a configuration error when
// no API key is set. The call carries its own deadline so a slow provider
// cannot stall the request for its full lifetime.
func (s *OpenRouterService) Complete(ctx context.Context, message string, p models.Profile) (string, error) {
	if !s.enabled {
		return "", apperrors.New(apperrors.KindConfiguration, "openrouter api key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.breaker.Execute(func() (string, error) {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(p)},
				{Role: openai.ChatMessageRoleUser, Content: message},
			},
			Temperature: openRouterTemperature,
			MaxTokens:   openRouterMaxTokens,
		})
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.KindTransport, "call openrouter")
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return "", apperrors.New(apperrors.KindUpstreamFormat, "openrouter returned no completion content")
		}
		return resp.Choices[0].Message.Content, nil
	})
}

// buildSystemPrompt frames the model as a fitness assistant and inlines the
// user's profile, substituting "unknown" for anything not yet provided.
func buildSystemPrompt(p models.Profile) string {
	weight := "unknown"
	if p.Weight > 0 {
		weight = fmt.Sprintf("%g kg", p.Weight)
	}
	height := "unknown"
	if p.Height > 0 {
		height = fmt.Sprintf("%g cm", p.Height)
	}
	age := "unknown"
	if p.Age > 0 {
		age = fmt.Sprintf("%d", p.Age)
	}
	gender := p.Gender
	if gender == "" {
		gender = "unknown"
	}
	activity := p.ActivityLevel
	if activity == "" {
		activity = "unknown"
	}

	return fmt.Sprintf("You are Fit Bot, a helpful nutrition and fitness assistant. "+
		"Give concise, practical advice about nutrition, fitness, and healthy habits. "+
		"User profile: weight %s, height %s, age %s, gender %s, activity level %s. "+
		"Use the profile when relevant. If asked about topics outside nutrition and fitness, "+
		"politely steer the conversation back.",
		weight, height, age, gender, activity)
}
