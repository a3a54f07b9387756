// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package sanitize rewrites request input before it reaches handlers.
//
// Two independent defenses live here:
//
//   - Clean/Value/Values strip unsafe characters from every string leaf of a
//     parsed payload. Sanitization never fails; it always produces a value.
//   - Guard pattern-matches payloads for SQL-like syntax and reports a match
//     so the request can be rejected outright.
//
// The guard is intentionally conservative: legitimate text containing SQL
// keywords (a player named "Drop", free text mentioning "select") is
// rejected too. That false-positive trade-off is accepted for a gateway
// whose inputs are identifiers, short search terms, and prompts.
package sanitize

import (
	"net/url"
	"strings"
	"unicode"
)

// unsafeChars are stripped from every string leaf.
const unsafeChars = `<>"'`

// Clean strips the characters < > " ' from s and trims surrounding
// whitespace. Cleaning an already-clean string returns it unchanged, so the
// operation is idempotent.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !strings.ContainsRune(unsafeChars, r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimFunc(b.String(), unicode.IsSpace)
}

// Value recursively sanitizes every string leaf of a decoded JSON value.
// Maps and slices are rewritten structurally, preserving shape; non-string
// leaves pass through unchanged.
func Value(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return Clean(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Value(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = Value(item)
		}
		return out
	default:
		return v
	}
}

// Values sanitizes every value of parsed query parameters, returning a new
// url.Values. The input is not modified so callers can keep the raw query
// distinct from the sanitized one.
func Values(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for key, values := range q {
		cleaned := make([]string, len(values))
		for i, v := range values {
			cleaned[i] = Clean(v)
		}
		out[key] = cleaned
	}
	return out
}
