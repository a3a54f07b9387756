// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package metrics provides Prometheus instrumentation for the gateway:
// API endpoint latency and throughput, admission-control rejections,
// analytical query performance, and generative-text upstream calls.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Admission-control metrics
	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "admission_rate_limit_rejections_total",
			Help: "Total number of rate limit rejections",
		},
	)

	OriginRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "admission_origin_rejections_total",
			Help: "Total number of origin allow-list rejections",
		},
	)

	InjectionGuardRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admission_injection_rejections_total",
			Help: "Total number of injection guard rejections",
		},
		[]string{"section"}, // "query" or "body"
	)

	PayloadSizeRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "admission_payload_size_rejections_total",
			Help: "Total number of oversized payload rejections",
		},
	)

	// Analytical store metrics
	BQQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bigquery_query_duration_seconds",
			Help:    "Duration of analytical queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	BQQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigquery_query_errors_total",
			Help: "Total number of analytical query errors",
		},
		[]string{"stage"}, // "read" or "iterate"
	)

	// Generative text upstream metrics
	GenAIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_requests_total",
			Help: "Total number of generative text requests",
		},
		[]string{"model", "outcome"}, // outcome: "ok", "blocked", "error"
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
