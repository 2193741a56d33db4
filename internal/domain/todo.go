// Package domain contains core business entities and interfaces.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Todo is a single to-do item as the API returns it.
// Fields are ordered to minimize memory padding.
type Todo struct {
	CreatedAt Timestamp `json:"createdAt" yaml:"createdAt"` // Assigned by the server, immutable
	Text      string    `json:"text" yaml:"text"`           // Display text (non-empty)
	ID        int       `json:"id" yaml:"id"`               // Assigned by the server
	Completed bool      `json:"completed" yaml:"completed"` // Defaults to false at creation
}

// TodoPatch holds the fields an update request may change.
// Nil fields are left untouched by the server.
type TodoPatch struct {
	Completed *bool   `json:"completed,omitempty"`
	Text      *string `json:"text,omitempty"`
}

// Apply returns a copy of t with the patch applied.
func (p TodoPatch) Apply(t Todo) Todo {
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Text != nil {
		t.Text = *p.Text
	}
	return t
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Completed == nil && p.Text == nil
}

// TimestampLayout is the wire layout for creation times.
// It matches the zone-less ISO-8601 form produced by Python's isoformat().
const TimestampLayout = "2006-01-02T15:04:05.999999"

// Timestamp is a time.Time with the API's JSON encoding.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// String formats the timestamp in wire layout.
func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

// UnmarshalJSON implements json.Unmarshaler.
// Both the zone-less layout and RFC 3339 are accepted.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

// MarshalYAML renders the timestamp as a plain string.
func (ts Timestamp) MarshalYAML() (interface{}, error) {
	return ts.String(), nil
}

// ParseTimestamp parses s in wire layout or RFC 3339.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(TimestampLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return t, nil
}
