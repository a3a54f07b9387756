// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package query provides SQL construction for the analytical store.
//
// Queries use named placeholders only (@name); request-derived values never
// appear in SQL text. Table identifiers come from trusted configuration and
// are the single exception, quoted via TableRef.
package query

import (
	"fmt"
	"strings"
)

// WhereBuilder constructs WHERE clauses with named bound parameters.
//
// Example:
//
//	wb := query.NewWhereBuilder()
//	wb.AddEquality("player_id", "playerId", id)
//	wb.AddDateRange("start_time", start, end)
//	where, params := wb.Build()
//	// WHERE player_id = @playerId AND start_time >= @startTime ...
type WhereBuilder struct {
	clauses []string
	params  map[string]interface{}
}

// NewWhereBuilder creates an empty WhereBuilder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		params:  map[string]interface{}{},
	}
}

// AddClause adds a raw condition fragment whose placeholders are already
// named, together with their bound values. Useful for conditions not covered
// by helper methods.
func (wb *WhereBuilder) AddClause(clause string, params map[string]interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	for name, value := range params {
		wb.params[name] = value
	}
	return wb
}

// AddEquality adds "column = @name" with the given bound value.
func (wb *WhereBuilder) AddEquality(column, name string, value interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s = @%s", column, name))
	wb.params[name] = value
	return wb
}

// AddFoldedEquality adds "LOWER(column) = LOWER(@name)" for case-insensitive
// matching (role and status filters). Empty values are skipped.
func (wb *WhereBuilder) AddFoldedEquality(column, name, value string) *WhereBuilder {
	if value == "" {
		return wb
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("LOWER(%s) = LOWER(@%s)", column, name))
	wb.params[name] = value
	return wb
}

// AddDateRange adds start and/or end bounds on column. Empty values are
// skipped, allowing open-ended ranges.
func (wb *WhereBuilder) AddDateRange(column, start, end string) *WhereBuilder {
	if start != "" {
		wb.clauses = append(wb.clauses, fmt.Sprintf("%s >= @startTime", column))
		wb.params["startTime"] = start
	}
	if end != "" {
		wb.clauses = append(wb.clauses, fmt.Sprintf("%s <= @endTime", column))
		wb.params["endTime"] = end
	}
	return wb
}

// AddSearch adds a case-insensitive substring match across the given columns
// combined with OR. Numeric columns can be included by passing a CAST
// expression. Empty terms are skipped.
func (wb *WhereBuilder) AddSearch(term string, columns ...string) *WhereBuilder {
	if term == "" || len(columns) == 0 {
		return wb
	}
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE LOWER(@searchQuery)", col)
	}
	wb.clauses = append(wb.clauses, "("+strings.Join(parts, " OR ")+")")
	wb.params["searchQuery"] = "%" + term + "%"
	return wb
}

// Build returns the WHERE clause body (without the "WHERE" keyword) and the
// bound parameter map. Clauses combine with AND. Returns ("1=1", empty map)
// when no clauses were added.
func (wb *WhereBuilder) Build() (string, map[string]interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", map[string]interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.params
}

// IsEmpty reports whether no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

// SelectBuilder assembles a complete parameterized SELECT with optional
// pagination, plus a parallel COUNT query reusing the same WHERE clause so
// pagination metadata stays consistent with the result set.
type SelectBuilder struct {
	table   string
	columns []string
	where   *WhereBuilder
	orderBy string
	limit   bool
}

// NewSelect creates a SelectBuilder over the quoted table reference.
// The table reference must come from trusted configuration (see TableRef);
// request input must never reach it.
func NewSelect(table string, columns ...string) *SelectBuilder {
	return &SelectBuilder{
		table:   table,
		columns: columns,
		where:   NewWhereBuilder(),
	}
}

// Where exposes the builder's WhereBuilder for adding filters.
func (sb *SelectBuilder) Where() *WhereBuilder {
	return sb.where
}

// OrderBy sets the ORDER BY body (trusted literal column expressions only).
func (sb *SelectBuilder) OrderBy(expr string) *SelectBuilder {
	sb.orderBy = expr
	return sb
}

// Paginate appends LIMIT @limit OFFSET @offset to the main query.
// The values are bound when Build is called.
func (sb *SelectBuilder) Paginate() *SelectBuilder {
	sb.limit = true
	return sb
}

// Build returns the SELECT text and its bound parameters. When pagination is
// enabled the limit/offset values are added to the parameter map.
func (sb *SelectBuilder) Build(limit, offset int) (string, map[string]interface{}) {
	where, whereParams := sb.where.Build()

	// Copied so BuildCount on the same builder never sees limit/offset;
	// the store rejects parameters the query text does not reference.
	params := make(map[string]interface{}, len(whereParams)+2)
	for name, value := range whereParams {
		params[name] = value
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(sb.columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(sb.table)
	b.WriteString(" WHERE ")
	b.WriteString(where)
	if sb.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(sb.orderBy)
	}
	if sb.limit {
		b.WriteString(" LIMIT @limit OFFSET @offset")
		params["limit"] = limit
		params["offset"] = offset
	}

	return b.String(), params
}

// BuildCount returns a COUNT(*) query over the same WHERE clause, with
// limit/offset excluded from both text and parameters.
func (sb *SelectBuilder) BuildCount() (string, map[string]interface{}) {
	where, params := sb.where.Build()
	return fmt.Sprintf("SELECT COUNT(*) AS total FROM %s WHERE %s", sb.table, where), params
}
