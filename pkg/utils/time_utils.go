package utils

import "time"

// Timestamps are stored as unix seconds and rendered in UTC.

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds returns the zero time for t <= 0 so callers can decide how to render it.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

// FormatUnixRFC3339 renders t as e.g. 2025-09-24T08:12:00Z, or "" for unset timestamps.
func FormatUnixRFC3339(t int64) string {
	ts := FromUnixSeconds(t)
	if ts.IsZero() {
		return ""
	}
	return ts.Format(time.RFC3339)
}
