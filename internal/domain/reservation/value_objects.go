package reservation

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// Operating window for requested slots, applied where requests are parsed.
const (
	OpeningTime   TimeOfDay = 7 * 60
	LastStartTime TimeOfDay = 23 * 60
	FirstEndTime  TimeOfDay = 8 * 60
	ClosingTime   TimeOfDay = minutesPerDay
)

// Date is a civil calendar date with no zone attached.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, ErrInvalidDate
	}
	return Date{year: year, month: month, day: day}, nil
}

// ParseDate accepts ISO-8601 calendar dates (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) Year() int          { return d.year }
func (d Date) Month() time.Month  { return d.month }
func (d Date) Day() int           { return d.day }
func (d Date) IsZero() bool       { return d.year == 0 && d.month == 0 && d.day == 0 }
func (d Date) Equal(o Date) bool  { return d == o }
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

// At returns the instant at which tod begins on d in loc.
func (d Date) At(tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, tod.Hour(), tod.Minute(), 0, 0, loc)
}

// Midnight returns d at 00:00 UTC, the form date columns are bound with.
func (d Date) Midnight() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// TimeOfDay counts minutes since midnight. 24:00 is representable as end of day.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay accepts zero-padded "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeOfDay
	}
	hour, ok := twoDigits(s[0:2])
	if !ok {
		return 0, ErrInvalidTimeOfDay
	}
	minute, ok := twoDigits(s[3:5])
	if !ok {
		return 0, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

// ClockOf truncates t to the minute in t's own location.
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Hour() int    { return int(t) / 60 }
func (t TimeOfDay) Minute() int  { return int(t) % 60 }
func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t <= minutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func IsValidStartTime(t TimeOfDay) bool {
	return t >= OpeningTime && t <= LastStartTime
}

func IsValidEndTime(t TimeOfDay) bool {
	return t >= FirstEndTime && t <= ClosingTime
}

// TimeSlot occupies the closed interval [Start, End] of minutes. End is the
// last occupied minute, one minute before the requested end, so back to back
// bookings such as 09:00-10:00 and 10:00-11:00 do not touch.
type TimeSlot struct {
	start TimeOfDay
	until TimeOfDay
}

// NewTimeSlot builds a slot from a requested half-open range [start, requestedEnd).
func NewTimeSlot(start, requestedEnd TimeOfDay) (TimeSlot, error) {
	if !start.IsValid() || !requestedEnd.IsValid() || start >= requestedEnd {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, until: requestedEnd}, nil
}

// ReconstructTimeSlot restores a slot from its stored, already normalized end.
func ReconstructTimeSlot(start, end TimeOfDay) TimeSlot {
	return TimeSlot{start: start, until: end + 1}
}

func (s TimeSlot) Start() TimeOfDay        { return s.start }
func (s TimeSlot) End() TimeOfDay          { return s.until - 1 }
func (s TimeSlot) RequestedEnd() TimeOfDay { return s.until }
func (s TimeSlot) IsZero() bool            { return s.until == 0 }

func (s TimeSlot) Duration() time.Duration {
	return time.Duration(s.until-s.start) * time.Minute
}

func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.start <= o.End() && s.End() >= o.start
}

func (s TimeSlot) String() string {
	return s.start.String() + "-" + s.until.String()
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
