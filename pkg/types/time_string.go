package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const timeLayout = "15:04"

// ErrInvalidTimeString is returned when a value cannot be interpreted as "HH:MM" or "HH:MM:SS".
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString is a wall-clock time of day in "HH:MM" form.
// Values read from Postgres TIME columns ("HH:MM:SS") are truncated to minutes.
type TimeString string

// NewTimeString takes the hour and minute of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses "HH:MM" or "HH:MM:SS". Seconds are dropped, not rounded.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(truncate(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes formats minutes since midnight. Values past 24h wrap to the next day's clock time.
func FromMinutes(m int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", (m/60)%24, m%60))
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks that the value is a valid 24h "HH:MM" time.
func (t TimeString) Validate() error {
	if len(t) != len(timeLayout) {
		return ErrInvalidTimeString
	}
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeString, err)
	}
	return nil
}

// Minutes returns minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	if len(t) < len(timeLayout) || t[2] != ':' {
		return 0, ErrInvalidTimeString
	}
	h, err := strconv.Atoi(string(t[:2]))
	if err != nil {
		return 0, fmt.Errorf("%w: hours: %v", ErrInvalidTimeString, err)
	}
	m, err := strconv.Atoi(string(t[3:5]))
	if err != nil {
		return 0, fmt.Errorf("%w: minutes: %v", ErrInvalidTimeString, err)
	}
	return h*60 + m, nil
}

// AddMinutes returns the time shifted by n minutes, wrapping around midnight.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(m + n), nil
}

// IsBefore compares two valid times. Zero-padded "HH:MM" sorts lexicographically.
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// Scan implements sql.Scanner for TIME and text columns.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = TimeString(truncate(v))
	case []byte:
		*t = TimeString(truncate(string(v)))
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func truncate(s string) string {
	if len(s) > len(timeLayout) {
		return s[:len(timeLayout)]
	}
	return s
}
