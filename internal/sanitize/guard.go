// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package sanitize

import (
	"net/url"
	"regexp"
)

// sqlPatterns are the fixed set of injection checks applied to every string
// leaf. Order matters only for readability; any match rejects the request.
//
// A bare "script" token is deliberately absent from the keyword list: the
// sanitizer reduces stripped markup like <script> to exactly that token, and
// the neutralized residue must not reject the request.
var sqlPatterns = []*regexp.Regexp{
	// Whole-word SQL keywords, case-insensitive.
	regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC|UNION)\b`),
	// Comment markers, statement terminators, quote characters.
	regexp.MustCompile("(--|/\\*|\\*/|;|'|\"|`)"),
	// Tautologies: boolean operator followed by a repeated equality test.
	regexp.MustCompile(`(?i)(\bOR\b|\bAND\b).*?=.*?=`),
}

// Match reports whether s matches any injection pattern.
func Match(s string) bool {
	for _, pattern := range sqlPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// MatchValue recursively inspects a decoded JSON value and reports whether
// any string leaf matches an injection pattern.
func MatchValue(v interface{}) bool {
	switch val := v.(type) {
	case string:
		return Match(val)
	case []interface{}:
		for _, item := range val {
			if MatchValue(item) {
				return true
			}
		}
		return false
	case map[string]interface{}:
		for _, item := range val {
			if MatchValue(item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// MatchValues reports whether any query parameter value matches an injection
// pattern.
func MatchValues(q url.Values) bool {
	for _, values := range q {
		for _, v := range values {
			if Match(v) {
				return true
			}
		}
	}
	return false
}
