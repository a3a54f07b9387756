// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package validation provides struct validation using go-playground/validator
// v10 behind a thread-safe singleton instance.
//
// Violations are collected per field rather than failing fast, so a client
// sees every problem with its request in one response:
//
//	type SessionQuery struct {
//	    Limit  int `json:"limit" validate:"min=1,max=1000"`
//	    Offset int `json:"offset" validate:"min=0"`
//	}
//
//	if violations := validation.Struct(&q); violations != nil {
//	    // respond 400 with the full violation list
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// resourceIDPattern constrains path identifiers (player IDs, team IDs).
var resourceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

// Violation describes a single failed constraint on a request field.
type Violation struct {
	// Path is the JSON name of the offending field.
	Path string `json:"path"`

	// Message is a human-readable description of the constraint.
	Message string `json:"message"`

	// Received is the Go kind of the value that failed, when informative.
	Received string `json:"received,omitempty"`
}

// Violations is the full list of constraint failures for one request section.
type Violations []Violation

// Error implements the error interface with a combined message.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(vs))
	for i, v := range vs {
		messages[i] = v.Message
	}
	return strings.Join(messages, "; ")
}

// Get returns the singleton validator instance, initializing it on first use
// with the application's custom validators. Thread-safe.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their json tag so violation paths match the
		// wire names clients actually sent.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		// resourceid: path identifiers restricted to [a-zA-Z0-9-_].
		_ = validate.RegisterValidation("resourceid", func(fl validator.FieldLevel) bool {
			return resourceIDPattern.MatchString(fl.Field().String())
		})
	})

	return validate
}

// Struct validates a struct and returns every violation, or nil when the
// value passes all declared constraints.
func Struct(s interface{}) Violations {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Violations{{Path: "request", Message: err.Error()}}
	}

	violations := make(Violations, len(fieldErrs))
	for i, fe := range fieldErrs {
		violations[i] = Violation{
			Path:     fe.Field(),
			Message:  translateError(fe),
			Received: receivedKind(fe),
		}
	}
	return violations
}

// receivedKind reports the offending value's kind for type-shaped failures.
func receivedKind(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return ""
	default:
		return fe.Kind().String()
	}
}

// errorMessageTemplates maps validation tags to message templates without a
// parameter.
var errorMessageTemplates = map[string]string{
	"required":   "%s is required",
	"datetime":   "%s must be a valid date/time in RFC3339 format",
	"resourceid": "%s contains invalid characters",
}

// errorMessageWithParam maps validation tags to templates that include the
// tag parameter.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	return translateMinMax(fe, field, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	isString := fe.Kind() == reflect.String

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
