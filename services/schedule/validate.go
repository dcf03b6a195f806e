package schedule

import (
	"fmt"

	"slotwise/models"
)

// ValidateWeekly checks a weekly template: exactly the seven lowercase
// weekday keys, parseable times, and start before end on available days.
// Violations fail fast at construction time, never at resolution time.
func ValidateWeekly(ws models.WeeklySchedule) error {
	if len(ws) != len(models.WeekdayKeys) {
		return MalformedWeeklyScheduleError{Detail: fmt.Sprintf("expected %d weekday keys, got %d", len(models.WeekdayKeys), len(ws))}
	}
	for _, key := range models.WeekdayKeys {
		day, ok := ws[key]
		if !ok {
			return MalformedWeeklyScheduleError{Detail: fmt.Sprintf("missing weekday key %q", key)}
		}
		if !day.Available {
			continue
		}
		start, err := ParseClock(day.StartTime)
		if err != nil {
			return MalformedWeeklyScheduleError{Detail: fmt.Sprintf("%s: invalid startTime %q", key, day.StartTime)}
		}
		end, err := ParseClock(day.EndTime)
		if err != nil {
			return MalformedWeeklyScheduleError{Detail: fmt.Sprintf("%s: invalid endTime %q", key, day.EndTime)}
		}
		if start >= end {
			return MalformedWeeklyScheduleError{Detail: fmt.Sprintf("%s: startTime %s is not before endTime %s", key, day.StartTime, day.EndTime)}
		}
	}
	return nil
}

// ValidateBlockSet checks every entry of a block set: parseable dates and
// ranges whose start does not exceed their end.
func ValidateBlockSet(bs models.BlockSet) error {
	for _, bd := range bs.Dates {
		if _, _, _, err := ParseDate(bd.Date); err != nil {
			return err
		}
	}
	for _, br := range bs.Ranges {
		if br.EndAt.Before(br.StartAt) {
			return InvalidRangeError{Start: br.StartAt, End: br.EndAt}
		}
	}
	return nil
}
