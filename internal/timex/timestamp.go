package timex

import (
	"fmt"
	"time"
)

// TimestampLayout is how stored timestamps are written: ISO-8601 in UTC with
// microsecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// legacyLayout matches zone-less ISO-8601 strings written by older data
// files. They are read as UTC.
const legacyLayout = "2006-01-02T15:04:05.999999"

// FormatTimestamp renders t in TimestampLayout after converting it to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts TimestampLayout, any RFC 3339 value and the legacy
// zone-less layout.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(legacyLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t, nil
}

// Now returns the current time truncated to what TimestampLayout can carry,
// so that values survive a write/read cycle unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
