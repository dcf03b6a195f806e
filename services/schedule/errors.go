package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsatisfiable is returned when the search horizon is exhausted without a
// feasible window. It is a valid negative result, not a failure; callers must
// check for it with errors.Is before treating an error as fatal.
var ErrUnsatisfiable = errors.New("no feasible window within the search horizon")

// InvalidCivilTimeError indicates an unparsable or out-of-range "HH:MM" or
// "YYYY-MM-DD" value.
type InvalidCivilTimeError struct {
	Value string
}

func (e InvalidCivilTimeError) Error() string {
	return fmt.Sprintf("invalid civil time %q", e.Value)
}

// UnknownTimezoneError indicates a zone id not present in the IANA database.
type UnknownTimezoneError struct {
	Zone string
}

func (e UnknownTimezoneError) Error() string {
	return fmt.Sprintf("unknown timezone %q", e.Zone)
}

// AmbiguousCivilTimeError indicates a civil time that does not exist in the
// given zone because it falls inside a DST spring-forward gap.
type AmbiguousCivilTimeError struct {
	Date  string
	Clock string
	Zone  string
}

func (e AmbiguousCivilTimeError) Error() string {
	return fmt.Sprintf("civil time %s %s does not exist in %s (DST gap)", e.Date, e.Clock, e.Zone)
}

// InvalidRangeError indicates a blocked range whose end precedes its start.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("blocked range end %s precedes start %s", e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// MalformedWeeklyScheduleError indicates a weekly template with missing or
// unknown weekday keys, or an available day whose start is not before its end.
type MalformedWeeklyScheduleError struct {
	Detail string
}

func (e MalformedWeeklyScheduleError) Error() string {
	return fmt.Sprintf("malformed weekly schedule: %s", e.Detail)
}
