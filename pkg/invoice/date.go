package invoice

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Date is an instant or "unknown".
type Date struct {
	Time  time.Time
	Valid bool
}

// dateLayouts are tried in order when decoding strings.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewDate returns a known date.
func NewDate(t time.Time) Date {
	return Date{Time: t, Valid: !t.IsZero()}
}

// ParseDate parses s with the accepted layouts. Unparseable input yields an
// unknown date.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t)
		}
	}
	return Date{}
}

// UnmarshalJSON accepts a date string or null; any other value decodes to an
// unknown date without error.
func (d *Date) UnmarshalJSON(data []byte) error {
	*d = Date{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	*d = ParseDate(s)
	return nil
}

// MarshalJSON writes RFC 3339 for known dates and null otherwise.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}
