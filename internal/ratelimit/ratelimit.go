// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package ratelimit implements fixed-window request rate limiting keyed by
// client identity.
//
// The counter storage is abstracted behind the Store interface so the
// in-memory implementation can be swapped for an external cache in
// multi-instance deployments. The contract that must be preserved is the
// window, the max, and the reset behavior, not the storage choice.
package ratelimit

import (
	"hash/fnv"
	"sync"
	"time"
)

// Store counts admitted requests per client key within a fixed time window.
// Implementations must be safe for concurrent use.
type Store interface {
	// Incr records one admitted request for key and returns the updated
	// count within the key's current window. A key whose window has expired
	// starts a fresh window at now with count 1.
	Incr(key string, now time.Time) int
}

// Result is the outcome of an admission check.
type Result struct {
	// Allowed reports whether the request is admitted.
	Allowed bool

	// RetryAfterMinutes is the ceiling-rounded window length in minutes,
	// reported to rejected clients.
	RetryAfterMinutes int
}

// Limiter admits up to max requests per key per fixed window.
// Requests are counted at admission time, so a request that never completes
// still consumes budget exactly once and a response is never double-counted.
type Limiter struct {
	store  Store
	max    int
	window time.Duration
}

// NewLimiter creates a Limiter over the given counter store.
func NewLimiter(store Store, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, max: max, window: window}
}

// Allow records one request for key and reports whether it is admitted.
func (l *Limiter) Allow(key string) Result {
	count := l.store.Incr(key, time.Now())
	return Result{
		Allowed:           count <= l.max,
		RetryAfterMinutes: l.RetryAfterMinutes(),
	}
}

// RetryAfterMinutes returns the configured window length in minutes,
// ceiling-rounded.
func (l *Limiter) RetryAfterMinutes() int {
	minutes := int(l.window / time.Minute)
	if l.window%time.Minute != 0 {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// numShards spreads keys across independent locks so one client's counter
// never blocks unrelated clients.
const numShards = 64

// entry is a single key's window state.
type entry struct {
	count   int
	resetAt time.Time
}

// shard is one lock domain of the memory store.
type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// MemoryStore is a sharded in-memory Store with per-key window expiry.
// Expired entries are replaced lazily on access and swept periodically in
// the background for keys that stop arriving.
type MemoryStore struct {
	shards [numShards]*shard
	window time.Duration
}

// NewMemoryStore creates a MemoryStore for the given window and starts a
// background sweep goroutine that runs for the store's lifetime.
func NewMemoryStore(window time.Duration) *MemoryStore {
	s := &MemoryStore{window: window}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[string]*entry)}
	}

	go s.sweepLoop()

	return s
}

// Incr implements Store.
func (s *MemoryStore) Incr(key string, now time.Time) int {
	sh := s.shardFor(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[key]
	if !ok || !now.Before(e.resetAt) {
		sh.entries[key] = &entry{count: 1, resetAt: now.Add(s.window)}
		return 1
	}

	e.count++
	return e.count
}

// shardFor picks the shard owning key via FNV-1a hashing.
func (s *MemoryStore) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[h.Sum32()%numShards]
}

// sweepLoop removes expired entries so idle keys do not accumulate.
func (s *MemoryStore) sweepLoop() {
	interval := s.window
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for now := range ticker.C {
		for _, sh := range s.shards {
			sh.mu.Lock()
			for key, e := range sh.entries {
				if !now.Before(e.resetAt) {
					delete(sh.entries, key)
				}
			}
			sh.mu.Unlock()
		}
	}
}
