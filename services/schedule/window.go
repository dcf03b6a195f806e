// File: services/schedule/window.go
package schedule

import (
	"errors"
	"fmt"
	"time"

	"slotwise/models"
)

// DefaultHorizonDays bounds the forward scan when the caller does not.
const DefaultHorizonDays = 180

// EarliestWindow projects a work request onto the availability stream served
// by resolve and returns the earliest feasible start together with the
// shortest start-to-finish window. The scan runs forward from now (in the
// professional's zone) for at most horizonDays; an exhausted horizon yields
// ErrUnsatisfiable.
func EarliestWindow(req models.WorkRequest, resolve ResolveFunc, now time.Time, zone string, horizonDays int) (models.BookingWindow, error) {
	if err := ValidateWorkRequest(req); err != nil {
		return models.BookingWindow{}, err
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	startDate, _, err := ToCivil(now, zone)
	if err != nil {
		return models.BookingWindow{}, err
	}

	switch req.TimeMode {
	case models.TimeModeHours:
		return hoursWindow(req, resolve, now, startDate, horizonDays)
	case models.TimeModeDays:
		return daysWindow(req, resolve, now, startDate, horizonDays)
	case models.TimeModeMixed:
		return mixedWindow(req, resolve, now, startDate, horizonDays)
	}
	return models.BookingWindow{}, fmt.Errorf("unknown time mode %q", req.TimeMode)
}

// ValidateWorkRequest fails fast on malformed durations or modes.
func ValidateWorkRequest(req models.WorkRequest) error {
	if err := validateDuration(req.Execution); err != nil {
		return fmt.Errorf("executionDuration: %w", err)
	}
	if req.Buffer != nil {
		if err := validateDuration(*req.Buffer); err != nil {
			return fmt.Errorf("bufferDuration: %w", err)
		}
	}
	if req.Preparation != nil {
		if err := validateDuration(*req.Preparation); err != nil {
			return fmt.Errorf("preparationDuration: %w", err)
		}
	}
	switch req.TimeMode {
	case models.TimeModeHours, models.TimeModeDays, models.TimeModeMixed:
		return nil
	}
	return fmt.Errorf("unknown time mode %q", req.TimeMode)
}

func validateDuration(d models.Duration) error {
	if d.Value <= 0 {
		return fmt.Errorf("value must be positive, got %v", d.Value)
	}
	if d.Unit != models.UnitHours && d.Unit != models.UnitDays {
		return fmt.Errorf("unknown unit %q", d.Unit)
	}
	return nil
}

// hoursWindow finds the first open day whose working window fits the whole
// execution duration. Work is never split across days in hours mode; a day
// whose remaining window is too short is rejected and the scan continues.
func hoursWindow(req models.WorkRequest, resolve ResolveFunc, now time.Time, startDate string, horizonDays int) (models.BookingWindow, error) {
	need := req.Execution.AsTime()
	date := startDate
	for i := 0; i < horizonDays; i++ {
		day, err := resolve(date)
		if err != nil {
			return models.BookingWindow{}, err
		}
		if day.Open {
			start := day.Window.Start
			if now.After(start) {
				start = now
			}
			completion := start.Add(need)
			if !completion.After(day.Window.End) {
				return assemble(req, start, completion), nil
			}
		}
		if date, err = AddDays(date, 1); err != nil {
			return models.BookingWindow{}, err
		}
	}
	return models.BookingWindow{}, ErrUnsatisfiable
}

// daysWindow finds the first run of consecutive open calendar days long
// enough for the execution duration. A closed day breaks consecutiveness and
// restarts the count.
func daysWindow(req models.WorkRequest, resolve ResolveFunc, now time.Time, startDate string, horizonDays int) (models.BookingWindow, error) {
	first, completion, err := consecutiveRun(req.Execution.WholeDays(), resolve, now, startDate, horizonDays)
	if err != nil {
		return models.BookingWindow{}, err
	}
	return assemble(req, first, completion), nil
}

// mixedWindow satisfies the preparation duration first, hours-style within a
// single open day, then runs the execution duration days-style starting the
// next open day. Without a preparation duration mixed mode degenerates to
// days mode.
func mixedWindow(req models.WorkRequest, resolve ResolveFunc, now time.Time, startDate string, horizonDays int) (models.BookingWindow, error) {
	if req.Preparation == nil {
		return daysWindow(req, resolve, now, startDate, horizonDays)
	}
	prepNeed := req.Preparation.AsTime()
	date := startDate
	for i := 0; i < horizonDays; i++ {
		day, err := resolve(date)
		if err != nil {
			return models.BookingWindow{}, err
		}
		if day.Open {
			prepStart := day.Window.Start
			if now.After(prepStart) {
				prepStart = now
			}
			prepEnd := prepStart.Add(prepNeed)
			if !prepEnd.After(day.Window.End) {
				execFrom, err := AddDays(date, 1)
				if err != nil {
					return models.BookingWindow{}, err
				}
				_, completion, err := consecutiveRun(req.Execution.WholeDays(), resolve, now, execFrom, horizonDays-i-1)
				if err != nil {
					// A later preparation day only shrinks the remaining
					// horizon, so an unsatisfiable run stays unsatisfiable.
					return models.BookingWindow{}, err
				}
				return assemble(req, prepStart, completion), nil
			}
		}
		if date, err = AddDays(date, 1); err != nil {
			return models.BookingWindow{}, err
		}
	}
	return models.BookingWindow{}, ErrUnsatisfiable
}

// consecutiveRun scans forward for need consecutive open calendar days and
// returns the run's start and end instants. The start is clipped to now when
// the run begins on the current day.
func consecutiveRun(need int, resolve ResolveFunc, now time.Time, startDate string, maxDays int) (time.Time, time.Time, error) {
	if need < 1 {
		need = 1
	}
	var run []models.ResolvedDay
	date := startDate
	for i := 0; i < maxDays; i++ {
		day, err := resolve(date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// A day whose window already ended cannot take part in a run.
		if day.Open && !now.After(day.Window.End) {
			run = append(run, day)
		} else {
			run = run[:0]
		}
		if len(run) == need {
			first := run[0].Window.Start
			if now.After(first) {
				first = now
			}
			return first, run[len(run)-1].Window.End, nil
		}
		if date, err = AddDays(date, 1); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return time.Time{}, time.Time{}, ErrUnsatisfiable
}

// assemble appends the buffer and builds the result. Buffer time does not
// need to be open time: hours advance the completion instant directly, days
// advance it by whole calendar days, neither consults the resolver.
func assemble(req models.WorkRequest, first, completion time.Time) models.BookingWindow {
	if req.Buffer != nil {
		if req.Buffer.Unit == models.UnitDays {
			completion = completion.AddDate(0, 0, req.Buffer.WholeDays())
		} else {
			completion = completion.Add(req.Buffer.AsTime())
		}
	}
	return models.BookingWindow{
		FirstAvailable: first,
		Throughput:     models.Window{Start: first, End: completion},
	}
}

// IsUnsatisfiable reports whether err is the valid no-window-found result.
func IsUnsatisfiable(err error) bool {
	return errors.Is(err, ErrUnsatisfiable)
}
