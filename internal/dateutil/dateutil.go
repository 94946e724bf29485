// Package dateutil provides ISO-8601 timestamp parsing and display
// formatting for rendered documents.
package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimestamp indicates a string that is not an ISO-8601 timestamp
// with timezone.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// DisplayFormat is the human-readable layout used in rendered documents.
const DisplayFormat = "2006-01-02 15:04"

// ParseISO parses an ISO-8601 timestamp. The timezone designator is
// mandatory ("Z" or a numeric offset).
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return t, nil
}

// FormatDisplay renders an ISO-8601 timestamp as "YYYY-MM-DD HH:MM".
// Empty or unparseable input yields the empty string; display formatting
// never fails a render.
func FormatDisplay(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := ParseISO(iso)
	if err != nil {
		return ""
	}
	return t.Format(DisplayFormat)
}
