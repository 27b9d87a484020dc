// Package availability computes bookable appointment start times from business hours,
// breaks and existing appointments. It performs no I/O and holds no state.
package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// OwnerResourceID is the single synthetic resource of a business without a staff roster.
	OwnerResourceID = "__owner__"

	// DefaultDurationMinutes applies when no service duration is known.
	DefaultDurationMinutes = 30

	// TodayBufferMinutes is the minimum lead time for same-day bookings.
	TodayBufferMinutes = 15

	minutesPerDay = 24 * 60
)

// ErrMalformedTime is returned for values that are not "HH:MM" or "HH:MM:SS".
var ErrMalformedTime = errors.New("availability: malformed time")

// ParseTimeToMinutes converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
// Seconds are truncated. Range is not validated.
func ParseTimeToMinutes(s string) (int, error) {
	if len(s) < 5 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	parts := strings.Split(s[:5], ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	return h*60 + m, nil
}

// MinutesToTime formats minutes as "HH:MM". Values of 24h and more wrap to the next day's clock.
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", (m/60)%24, m%60)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect. Touching ends do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MinStartForDate returns the earliest bookable minute for date: now plus TodayBufferMinutes
// when date falls on the same calendar day as now, otherwise 0.
// Both values are compared by their own year, month and day.
func MinStartForDate(date, now time.Time) int {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return 0
	}
	return now.Hour()*60 + now.Minute() + TodayBufferMinutes
}

// EffectiveDuration returns the requested duration, or DefaultDurationMinutes when the
// selected services sum to zero or nothing is selected.
func EffectiveDuration(sum int) int {
	if sum <= 0 {
		return DefaultDurationMinutes
	}
	return sum
}
