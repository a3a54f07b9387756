// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package api

import (
	"errors"
	"net/http"

	"github.com/tnslabs/sportsgate/internal/gentext"
	"github.com/tnslabs/sportsgate/internal/logging"
)

// GenerateText proxies a prompt to the generative upstream.
func (h *Handlers) GenerateText(w http.ResponseWriter, r *http.Request) error {
	if err := h.requireGenerator(); err != nil {
		return err
	}

	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	logging.Ctx(r.Context()).Info().
		Int("prompt_length", len(req.Prompt)).
		Str("model", req.Model).
		Msg("generating text")

	result, err := h.generator.Generate(r.Context(), gentext.Request{
		Prompt:          req.Prompt,
		Model:           req.Model,
		Temperature:     req.Temperature,
		TopP:            req.TopP,
		TopK:            req.TopK,
		MaxOutputTokens: req.MaxOutputTokens,
	})
	switch {
	case errors.Is(err, gentext.ErrBlocked):
		return &Error{Kind: KindValidation, Message: "Prompt was blocked by safety filters"}
	case errors.Is(err, gentext.ErrUnavailable):
		return &Error{Kind: KindUnavailable, Message: "Text generation service is unhealthy", Err: err}
	case err != nil:
		return &Error{Kind: KindUpstream, Message: "Failed to generate text", Err: err}
	}

	WriteSuccess(w, "Text generated successfully", result)
	return nil
}

// AIHealth probes the generative upstream; 503 on failure.
func (h *Handlers) AIHealth(w http.ResponseWriter, r *http.Request) error {
	if err := h.requireGenerator(); err != nil {
		return err
	}

	if err := h.generator.Health(r.Context()); err != nil {
		return ErrUnavailable("Text generation service", err)
	}

	WriteSuccess(w, "Text generation service is healthy", map[string]string{"status": "healthy"})
	return nil
}

func (h *Handlers) requireGenerator() error {
	if h.generator == nil {
		return &Error{Kind: KindUnavailable, Message: "Text generation is not configured"}
	}
	return nil
}
