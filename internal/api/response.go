// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package api implements the HTTP surface: the admission pipeline, the
// uniform response envelope, and the route handlers.
package api

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tnslabs/sportsgate/internal/logging"
)

// Envelope is the uniform response body. Success responses carry data and
// never error; failure responses carry error and never data.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Count     *int        `json:"count,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	env.Timestamp = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logging.Error().Err(err).Msg("failed to encode response envelope")
	}
}

// WriteSuccess sends a 200 envelope with message and data.
func WriteSuccess(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// WriteSuccessCount sends a 200 envelope carrying a result count.
func WriteSuccessCount(w http.ResponseWriter, message string, data interface{}, count int) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Count: &count})
}
