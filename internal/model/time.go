package model

import (
	"fmt"
	"strconv"
	"time"
)

// wireTimeLayout is the timestamp format the tracker API emits: millisecond
// precision with a zone offset and no colon in the offset. Serialized
// output always uses this layout, so cached values never depend on the
// local zone database.
const wireTimeLayout = "2006-01-02T15:04:05.000-0700"

var timeLayouts = []string{
	wireTimeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// Time is a timestamp field on a resource. It accepts the API's native
// layout as well as standard RFC 3339 strings, and always marshals back to
// wireTimeLayout with an explicit offset.
type Time struct {
	time.Time
}

// NewTime wraps a time.Time, truncating below millisecond precision so a
// constructed value is identical to its serialized round-trip.
func NewTime(t time.Time) Time {
	return Time{t.Truncate(time.Millisecond)}
}

// ParseTime parses a timestamp in any of the accepted layouts. Precision
// below a millisecond is dropped on the way in, so a parsed value is always
// identical to its serialized round-trip.
func ParseTime(s string) (Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTime(t), nil
		}
	}
	return Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Format(wireTimeLayout))), nil
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Time{}
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("timestamp is not a string: %s", b)
	}
	if s == "" {
		*t = Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Equal compares instants, ignoring zone representation.
func (t Time) Equal(other Time) bool {
	return t.Time.Equal(other.Time)
}
