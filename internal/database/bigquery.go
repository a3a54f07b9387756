// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package database

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/bigquery"
	"golang.org/x/time/rate"
	"google.golang.org/api/iterator"

	"github.com/tnslabs/sportsgate/internal/config"
	"github.com/tnslabs/sportsgate/internal/logging"
	"github.com/tnslabs/sportsgate/internal/metrics"
)

// BigQueryStore executes queries against BigQuery with a per-process QPS
// throttle and a per-query byte-billing ceiling.
type BigQueryStore struct {
	client         *bigquery.Client
	location       string
	maxBytesBilled int64
	queryTimeout   time.Duration
	throttle       *rate.Limiter
}

// NewBigQueryStore creates a store from configuration. Credentials resolve
// through Application Default Credentials.
func NewBigQueryStore(ctx context.Context, cfg config.BigQueryConfig) (*BigQueryStore, error) {
	client, err := bigquery.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client: %w", err)
	}

	qps := cfg.QueriesPerSecond
	if qps <= 0 {
		qps = 10
	}
	burst := int(qps)
	if burst < 1 {
		burst = 1
	}

	return &BigQueryStore{
		client:         client,
		location:       cfg.Location,
		maxBytesBilled: cfg.MaxBytesBilled,
		queryTimeout:   cfg.QueryTimeout,
		throttle:       rate.NewLimiter(rate.Limit(qps), burst),
	}, nil
}

// Query runs sql with named parameters and materializes every row.
// Each call is bounded by the configured query timeout.
func (s *BigQueryStore) Query(ctx context.Context, sql string, params map[string]interface{}) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.throttle.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for query slot: %w", err)
	}

	q := s.client.Query(sql)
	q.Location = s.location
	q.MaxBytesBilled = s.maxBytesBilled
	q.Parameters = namedParameters(params)

	start := time.Now()
	it, err := q.Read(ctx)
	if err != nil {
		metrics.BQQueryErrors.WithLabelValues("read").Inc()
		return nil, fmt.Errorf("executing query: %w", err)
	}

	var rows []Row
	for {
		var values map[string]bigquery.Value
		err := it.Next(&values)
		if err == iterator.Done {
			break
		}
		if err != nil {
			metrics.BQQueryErrors.WithLabelValues("iterate").Inc()
			return nil, fmt.Errorf("reading result row: %w", err)
		}
		row := make(Row, len(values))
		for k, v := range values {
			row[k] = v
		}
		rows = append(rows, row)
	}

	elapsed := time.Since(start)
	metrics.BQQueryDuration.Observe(elapsed.Seconds())
	logging.Debug().
		Int("rows", len(rows)).
		Dur("elapsed", elapsed).
		Msg("BigQuery query completed")

	return rows, nil
}

// Ping issues a trivial query to confirm connectivity and permissions.
func (s *BigQueryStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	q := s.client.Query("SELECT 1")
	q.Location = s.location
	it, err := q.Read(ctx)
	if err != nil {
		return fmt.Errorf("pinging bigquery: %w", err)
	}
	var values []bigquery.Value
	if err := it.Next(&values); err != nil && err != iterator.Done {
		return fmt.Errorf("reading ping result: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *BigQueryStore) Close() error {
	return s.client.Close()
}

// namedParameters converts the builder's parameter map into query parameters
// in deterministic order.
func namedParameters(params map[string]interface{}) []bigquery.QueryParameter {
	if len(params) == 0 {
		return nil
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]bigquery.QueryParameter, 0, len(names))
	for _, name := range names {
		out = append(out, bigquery.QueryParameter{Name: name, Value: params[name]})
	}
	return out
}
