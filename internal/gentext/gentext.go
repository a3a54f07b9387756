// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package gentext proxies text generation to the Gemini API behind a
// circuit breaker. Repeated upstream failures open the breaker and calls
// fail fast with ErrUnavailable until the upstream recovers.
package gentext

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"github.com/tnslabs/sportsgate/internal/config"
	"github.com/tnslabs/sportsgate/internal/logging"
	"github.com/tnslabs/sportsgate/internal/metrics"
)

// Generation defaults applied when a request leaves a knob unset.
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.7
	DefaultTopK        = 40
	DefaultTopP        = 0.95
	DefaultMaxTokens   = 1024
)

var (
	// ErrBlocked is returned when the upstream refused the prompt on
	// safety grounds. Not an upstream fault, so it does not trip the
	// breaker.
	ErrBlocked = errors.New("prompt blocked by safety filters")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("text generation temporarily unavailable")
)

// Request is one text generation call. Nil numeric knobs take the package
// defaults.
type Request struct {
	Prompt          string
	Model           string
	Temperature     *float32
	TopP            *float32
	TopK            *float32
	MaxOutputTokens int32
}

// Usage is the upstream token accounting for one call.
type Usage struct {
	PromptTokens     int32 `json:"promptTokens"`
	CandidatesTokens int32 `json:"candidatesTokens"`
	TotalTokens      int32 `json:"totalTokens"`
}

// Result is the generated text plus token usage when the upstream reports it.
type Result struct {
	Text  string `json:"text"`
	Usage *Usage `json:"usage,omitempty"`
}

// Generator produces text from prompts.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
	Health(ctx context.Context) error
}

// generateFunc is the raw upstream call, replaceable in tests.
type generateFunc func(ctx context.Context, model string, prompt string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Service implements Generator over the Gemini API.
type Service struct {
	call    generateFunc
	breaker *gobreaker.CircuitBreaker[*Result]
	timeout time.Duration
	model   string
}

// New creates a Service from configuration. The API key resolves from
// config (GOOGLE_API_KEY or GEMINI_API_KEY).
func New(ctx context.Context, cfg config.GenAIConfig) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	call := func(ctx context.Context, model, prompt string, gc *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return client.Models.GenerateContent(ctx, model, genai.Text(prompt), gc)
	}

	return newService(call, cfg), nil
}

func newService(call generateFunc, cfg config.GenAIConfig) *Service {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s := &Service{call: call, timeout: timeout, model: model}
	s.breaker = gobreaker.NewCircuitBreaker[*Result](gobreaker.Settings{
		Name:        "gentext",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			// Safety refusals are upstream working as intended.
			return err == nil || errors.Is(err, ErrBlocked)
		},
	})
	return s
}

// Generate produces text for the request, applying defaults for unset knobs.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	model := req.Model
	if model == "" {
		model = s.model
	}

	result, err := s.breaker.Execute(func() (*Result, error) {
		return s.generate(ctx, model, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.GenAIRequests.WithLabelValues(model, "error").Inc()
			return nil, ErrUnavailable
		}
		if errors.Is(err, ErrBlocked) {
			metrics.GenAIRequests.WithLabelValues(model, "blocked").Inc()
		} else {
			metrics.GenAIRequests.WithLabelValues(model, "error").Inc()
		}
		return nil, err
	}

	metrics.GenAIRequests.WithLabelValues(model, "ok").Inc()
	return result, nil
}

func (s *Service) generate(ctx context.Context, model string, req Request) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	gc := &genai.GenerateContentConfig{
		Temperature:     orDefault(req.Temperature, DefaultTemperature),
		TopK:            orDefault(req.TopK, DefaultTopK),
		TopP:            orDefault(req.TopP, DefaultTopP),
		MaxOutputTokens: req.MaxOutputTokens,
	}
	if gc.MaxOutputTokens <= 0 {
		gc.MaxOutputTokens = DefaultMaxTokens
	}

	start := time.Now()
	resp, err := s.call(ctx, model, req.Prompt, gc)
	if err != nil {
		logging.Error().Err(err).
			Str("model", model).
			Int("prompt_length", len(req.Prompt)).
			Msg("text generation failed")
		return nil, fmt.Errorf("generating text: %w", err)
	}

	if blocked(resp) {
		logging.Warn().
			Str("model", model).
			Int("prompt_length", len(req.Prompt)).
			Msg("prompt blocked by safety filters")
		return nil, ErrBlocked
	}

	text := resp.Text()
	if text == "" {
		text = "No response generated"
	}

	result := &Result{Text: text}
	if um := resp.UsageMetadata; um != nil {
		result.Usage = &Usage{
			PromptTokens:     um.PromptTokenCount,
			CandidatesTokens: um.CandidatesTokenCount,
			TotalTokens:      um.TotalTokenCount,
		}
	}

	logging.Debug().
		Str("model", model).
		Int("response_length", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("text generated")

	return result, nil
}

// Health issues a minimal generation to probe upstream availability.
func (s *Service) Health(ctx context.Context) error {
	_, err := s.Generate(ctx, Request{
		Prompt:          "Reply with the single word: ok",
		MaxOutputTokens: 50,
	})
	if err != nil && !errors.Is(err, ErrBlocked) {
		return err
	}
	return nil
}

func blocked(resp *genai.GenerateContentResponse) bool {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		return true
	}
	for _, c := range resp.Candidates {
		if c.FinishReason == genai.FinishReasonSafety {
			return true
		}
	}
	return false
}

func orDefault(v *float32, d float32) *float32 {
	if v != nil {
		return v
	}
	return genai.Ptr(d)
}
