package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// timeLayout is the canonical wire and storage format for a time of day.
const timeLayout = "15:04"

// ErrInvalidTimeString is returned when a value cannot be parsed as "HH:MM".
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString represents a time of day as an "HH:MM" string.
// It is the unit in which slots, bookings and schedules express time:
// comparable, printable and storable without timezone ambiguity.
type TimeString string

// NewTimeString creates a TimeString from the clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// minutes converts the value to minutes since midnight.
func (t TimeString) minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Malformed values compare as not-before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
// Malformed values compare as not-after.
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a > b
}

// AddMinutes returns the time m minutes later, wrapping within a single day.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return TimeString(parsed.Add(time.Duration(m) * time.Minute).Format(timeLayout)), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as time.Time
// via lib/pq; text storage arrives as string or []byte ("HH:MM" or "HH:MM:SS").
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		*t = truncateSeconds(v)
		return nil
	case []byte:
		*t = truncateSeconds(string(v))
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, value)
	}
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// truncateSeconds drops the ":SS" suffix of "HH:MM:SS" values.
func truncateSeconds(s string) TimeString {
	if len(s) > len(timeLayout) {
		return TimeString(s[:len(timeLayout)])
	}
	return TimeString(s)
}
