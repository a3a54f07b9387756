// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package database provides access to the analytical store backing the
// gateway's live endpoints. All query text is built by the query subpackage
// and carries values exclusively as named parameters.
package database

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
)

// Row is a single result row keyed by column name.
type Row map[string]interface{}

// Store executes parameterized analytical queries.
type Store interface {
	// Query runs sql with the given named parameters and returns all rows.
	Query(ctx context.Context, sql string, params map[string]interface{}) ([]Row, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying client.
	Close() error
}

// StringVal extracts a string column, returning "" for NULL or absent values.
func StringVal(row Row, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

// IntVal extracts an integer column. The driver surfaces INT64 columns as
// int64; NULLs and absent columns yield 0.
func IntVal(row Row, key string) int {
	switch v := row[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// FloatVal extracts a floating-point column, accepting integer-typed values.
func FloatVal(row Row, key string) float64 {
	switch v := row[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// TimeVal extracts a timestamp column. DATE and DATETIME columns arrive as
// civil values and are mapped to UTC.
func TimeVal(row Row, key string) time.Time {
	switch v := row[key].(type) {
	case time.Time:
		return v
	case civil.DateTime:
		return v.In(time.UTC)
	case civil.Date:
		return v.In(time.UTC)
	}
	return time.Time{}
}

// CountVal extracts the total from a COUNT(*) query's single row.
func CountVal(rows []Row) int {
	if len(rows) == 0 {
		return 0
	}
	return IntVal(rows[0], "total")
}
