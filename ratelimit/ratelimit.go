package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
)

// Store is the persistence surface the limiter needs. *database.Database
// satisfies it.
type Store interface {
	CountRecentRequests(clientAddress, endpoint string, windowStart time.Time) (int, error)
	RecordRequest(clientAddress, endpoint string) error
}

// Limiter is a fixed-window counter over rate-limit rows. It permits minor
// burst-at-boundary behavior and a small overshoot under concurrent bursts
// from the same client.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

// NewLimiter creates a limiter admitting limit requests per client address
// per trailing window.
func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

// Allow decides admit/reject for one request and records admitted attempts.
// The record is written before the downstream call so that attempts count
// against the budget even when classification later fails.
//
// A failed lookup fails open: the request is admitted so a storage outage
// does not take the endpoint down with it.
func (l *Limiter) Allow(clientAddress, endpoint string) bool {
	windowStart := time.Now().Add(-l.window)

	total, err := l.store.CountRecentRequests(clientAddress, endpoint, windowStart)
	if err != nil {
		log.WithError(err).Warn("Rate limit lookup failed, admitting request")
		total = 0
	}

	if total >= l.limit {
		return false
	}

	if err := l.store.RecordRequest(clientAddress, endpoint); err != nil {
		log.WithError(err).Warn("Failed to record rate limit attempt")
	}
	return true
}

// ClientAddress resolves the client address for rate limiting: the first
// X-Forwarded-For entry, else X-Real-IP, else a shared "unknown" bucket. All
// unattributable clients sharing one budget is an accepted degradation.
func ClientAddress(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return "unknown"
}
