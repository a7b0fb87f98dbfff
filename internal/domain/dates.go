package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for every date-only value.
const DateLayout = "2006-01-02"

// Date returns the zone-naive calendar day y-m-d as midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDay drops the clock part of t, keeping its calendar day.
func TruncateDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// localTimestampLayouts are zone-less timestamps accepted by ParseDate.
// Fractional seconds after the seconds field parse with each of them.
var localTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDate accepts YYYY-MM-DD, an RFC 3339 timestamp, or a zone-less
// timestamp with a T or space separator, and returns the calendar day it
// names. Timestamps keep the date as written, ignoring any offset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return TruncateDay(t), nil
	}
	for _, layout := range localTimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TruncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
