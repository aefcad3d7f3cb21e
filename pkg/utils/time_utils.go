package utils

import "time"

// FromUnixMillis converts a stored millisecond timestamp into loc.
// Returns zero time if ms<=0 to let callers decide how to render.
func FromUnixMillis(ms int64, loc *time.Location) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ms).In(loc)
}

// DayKey buckets a millisecond timestamp into a calendar day in loc.
func DayKey(ms int64, loc *time.Location) string {
	t := FromUnixMillis(ms, loc)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
