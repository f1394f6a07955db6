// Package common provides shared utilities for FinBuddy
package common

import "time"

// Freshness TTLs for cached data
const (
	// FreshnessQuotes bounds how long a batch quote snapshot is served
	// before the next request triggers a refresh.
	FreshnessQuotes = 5 * time.Minute
)

// IsFresh reports whether data updated at the given time is still within
// the TTL as of now. A zero update time is never fresh.
func IsFresh(now, updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return now.Sub(updated) < ttl
}
