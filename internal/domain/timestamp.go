package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// timestampLayouts are tried in order. Values without a zone are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp decodes the date formats the events API is known to send:
// RFC 3339, datetime-local values echoed back as submitted, and SQL-style
// "YYYY-MM-DD HH:MM:SS". Null and unparseable values decode to the zero
// time so one bad record does not fail a whole page.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	t.Time = ParseTimestamp(s)
	return nil
}

// ParseTimestamp parses s with the first matching layout, or returns the
// zero time
func ParseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
