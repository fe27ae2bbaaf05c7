package reservation

import (
	"errors"
	"strings"
	"time"
)

const (
	OpeningHour     = 8
	LastBookingHour = 21
	MaxAdvance      = 3 * 24 * time.Hour
)

// Rejections, in the order the rules are checked.
var (
	ErrTimeRequired     = errors.New("please choose a reservation time")
	ErrTimeInPast       = errors.New("cannot choose a time in the past")
	ErrTooFarAhead      = errors.New("bookings accepted at most 3 days ahead")
	ErrBeforeOpening    = errors.New("restaurant opens at 08:00")
	ErrAfterLastBooking = errors.New("last booking accepted at 21:00 (closing at 23:00)")
)

// WireLayout is the naive local date-time format sent to the backend.
const WireLayout = "2006-01-02T15:04:05"

var inputLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseLocal reads a date-time without zone information. The result carries
// the wall-clock fields exactly as written; its location is not meaningful.
func ParseLocal(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// wallClock rebuilds t from its own calendar fields so it compares directly
// against values returned by ParseLocal.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ValidateTime checks a proposed start time against now. The first failing
// rule decides the error; nil means the time is bookable.
func ValidateTime(value string, now time.Time) error {
	start, ok := ParseLocal(value)
	if !ok {
		return ErrTimeRequired
	}
	return ValidateStart(start, now)
}

func ValidateStart(start, now time.Time) error {
	start = wallClock(start)
	now = wallClock(now)

	switch {
	case start.Before(now):
		return ErrTimeInPast
	case start.After(now.Add(MaxAdvance)):
		return ErrTooFarAhead
	case start.Hour() < OpeningHour:
		return ErrBeforeOpening
	case start.Hour() > LastBookingHour || (start.Hour() == LastBookingHour && start.Minute() > 0):
		return ErrAfterLastBooking
	}
	return nil
}

// FormatLocal renders a start time for the backend without any zone shift.
func FormatLocal(t time.Time) string {
	return wallClock(t).Format(WireLayout)
}
