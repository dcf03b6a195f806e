// File: services/schedule/timezone.go
//
// All zone math in the engine goes through this file. Civil dates and clock
// times stay strings at the boundary ("YYYY-MM-DD", "HH:MM"); everything
// derived is an absolute UTC instant.
package schedule

import (
	"time"
)

const (
	// DateLayout is the civil date format used at the boundary.
	DateLayout = "2006-01-02"
	// ClockLayout is the civil time-of-day format used at the boundary.
	ClockLayout = "15:04"
)

// LoadZone resolves an IANA zone id.
func LoadZone(id string) (*time.Location, error) {
	if id == "" {
		return nil, UnknownTimezoneError{Zone: id}
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, UnknownTimezoneError{Zone: id}
	}
	return loc, nil
}

// ParseClock parses a strict "HH:MM" value into minutes from midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, InvalidCivilTimeError{Value: s}
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, InvalidCivilTimeError{Value: s}
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	if hh > 23 || mm > 59 {
		return 0, InvalidCivilTimeError{Value: s}
	}
	return hh*60 + mm, nil
}

// ParseDate parses a strict "YYYY-MM-DD" value.
func ParseDate(s string) (int, time.Month, int, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return 0, 0, 0, InvalidCivilTimeError{Value: s}
	}
	return t.Year(), t.Month(), t.Day(), nil
}

// ToInstant converts a civil date and clock time in a named zone to an
// absolute UTC instant.
//
// A civil time inside a DST spring-forward gap does not exist and is rejected
// with AmbiguousCivilTimeError. A civil time inside a fall-back overlap occurs
// twice; the policy here is the first occurrence (the earlier UTC instant).
func ToInstant(date, clock, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	mins, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(y, m, d, mins/60, mins%60, 0, 0, loc)
	// time.Date normalizes a nonexistent civil time out of the gap, so a
	// round-trip mismatch means the requested time never occurred.
	if !sameCivil(t, y, m, d, mins) {
		return time.Time{}, AmbiguousCivilTimeError{Date: date, Clock: clock, Zone: zone}
	}
	// Ambiguous fall-back times: probe one transition-width earlier and keep
	// the earliest instant that renders the same civil time.
	for _, back := range []time.Duration{time.Hour, 30 * time.Minute} {
		if alt := t.Add(-back); sameCivil(alt, y, m, d, mins) {
			t = alt
			break
		}
	}
	return t.UTC(), nil
}

// ToCivil converts an absolute instant to the civil date and clock time in a
// named zone.
func ToCivil(instant time.Time, zone string) (string, string, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", "", err
	}
	lt := instant.In(loc)
	return lt.Format(DateLayout), lt.Format(ClockLayout), nil
}

// ZoneOffsetAt returns the zone's UTC offset in minutes at the given instant.
func ZoneOffsetAt(instant time.Time, zone string) (int, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return 0, err
	}
	_, off := instant.In(loc).Zone()
	return off / 60, nil
}

// DayStart returns the first instant of a civil date in a named zone. In some
// zones midnight does not exist on spring-forward dates; the day then begins
// at the far side of the gap instead of failing like ToInstant would.
func DayStart(date, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	// Normalization of a nonexistent midnight may land on either side of the
	// transition; walk forward until the civil date matches.
	for t.Year() != y || t.Month() != m || t.Day() != d {
		t = t.Add(time.Hour)
	}
	return t.UTC(), nil
}

// WeekdayOf returns the weekday of a civil date in a named zone. Anchored at
// noon: in some zones midnight does not exist on transition days.
func WeekdayOf(date, zone string) (time.Weekday, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return 0, err
	}
	y, m, d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return time.Date(y, m, d, 12, 0, 0, 0, loc).Weekday(), nil
}

// AddDays performs calendar arithmetic on a civil date.
func AddDays(date string, n int) (string, error) {
	y, m, d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n).Format(DateLayout), nil
}

func sameCivil(t time.Time, y int, m time.Month, d int, mins int) bool {
	return t.Year() == y && t.Month() == m && t.Day() == d && t.Hour()*60+t.Minute() == mins
}
