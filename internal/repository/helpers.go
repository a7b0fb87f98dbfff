package repository

import "time"

const timestampLayout = time.RFC3339Nano

// formatTimestamp renders t for storage, defaulting to now when t is zero.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp parses a stored timestamp. Returns the zero time if the
// value is empty or fails to parse.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func cloneRecord(rec *StateRecord) *StateRecord {
	c := *rec
	c.Payload = append([]byte(nil), rec.Payload...)
	return &c
}
