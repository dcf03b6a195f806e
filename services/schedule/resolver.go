// File: services/schedule/resolver.go
package schedule

import (
	"slotwise/models"
)

// ResolveFunc yields the availability verdict for one civil date. The window
// calculator and the overlap engine drive their forward scans through it.
type ResolveFunc func(date string) (models.ResolvedDay, error)

// Snapshot bundles the immutable schedule state a resolution pass reads: the
// company's weekly template, both block layers, and the professional's zone.
// Callers copy the references once per request; a concurrent mutation never
// corrupts a running pass, it only makes the result stale.
type Snapshot struct {
	Weekly         models.WeeklySchedule
	CompanyBlocks  models.BlockSet
	PersonalBlocks models.BlockSet
	Zone           string
}

// Validate fails fast on malformed snapshot input.
func (s Snapshot) Validate() error {
	if _, err := LoadZone(s.Zone); err != nil {
		return err
	}
	if err := ValidateWeekly(s.Weekly); err != nil {
		return err
	}
	if err := ValidateBlockSet(s.CompanyBlocks); err != nil {
		return err
	}
	return ValidateBlockSet(s.PersonalBlocks)
}

// Resolver returns the snapshot's ResolveFunc.
func (s Snapshot) Resolver() ResolveFunc {
	return func(date string) (models.ResolvedDay, error) {
		return Resolve(date, s.Weekly, s.CompanyBlocks, s.PersonalBlocks, s.Zone)
	}
}

// blockingLayer is one ordered blocking predicate over a date. Resolution is
// "first layer that matches wins"; adding a layer (say, regional holidays)
// means adding an entry here, not touching resolver internals.
type blockingLayer struct {
	name   string
	blocks models.BlockSet
}

type blockMatch struct {
	reason  string
	holiday bool
}

func (l blockingLayer) match(date string, window models.Window) (blockMatch, bool) {
	for _, bd := range l.blocks.Dates {
		if bd.Date == date {
			return blockMatch{reason: bd.Reason}, true
		}
	}
	for _, br := range l.blocks.Ranges {
		// Closed interval on both ends: a bound that lands exactly on the
		// window boundary still blocks.
		if !br.EndAt.Before(window.Start) && !br.StartAt.After(window.End) {
			return blockMatch{reason: br.Reason, holiday: br.IsHoliday}, true
		}
	}
	return blockMatch{}, false
}

// Resolve computes the verdict for one date: weekly template first, then the
// company block layer, then the personal one. Company blocks always take
// precedence over personal blocks and are never overridable by the worker.
// The holiday flag does not form a separate precedence tier; it is carried
// through for display only.
func Resolve(date string, weekly models.WeeklySchedule, companyBlocks, personalBlocks models.BlockSet, zone string) (models.ResolvedDay, error) {
	wd, err := WeekdayOf(date, zone)
	if err != nil {
		return models.ResolvedDay{}, err
	}
	day, ok := weekly.Day(wd)
	if !ok {
		return models.ResolvedDay{}, MalformedWeeklyScheduleError{Detail: "missing weekday key " + models.WeekdayKey(wd)}
	}
	if !day.Available {
		return models.ResolvedDay{Date: date, BlockedBy: models.BlockedByWeeklyClosed}, nil
	}

	start, err := ToInstant(date, day.StartTime, zone)
	if err != nil {
		return models.ResolvedDay{}, err
	}
	end, err := ToInstant(date, day.EndTime, zone)
	if err != nil {
		return models.ResolvedDay{}, err
	}
	window := models.Window{Start: start, End: end}

	layers := []blockingLayer{
		{name: models.BlockedByCompany, blocks: companyBlocks},
		{name: models.BlockedByPersonal, blocks: personalBlocks},
	}
	for _, layer := range layers {
		if m, ok := layer.match(date, window); ok {
			return models.ResolvedDay{
				Date:      date,
				BlockedBy: layer.name,
				Reason:    m.reason,
				IsHoliday: m.holiday,
			}, nil
		}
	}

	return models.ResolvedDay{Date: date, Open: true, Window: &window}, nil
}

// ResolveRange resolves a contiguous run of dates starting at from.
func ResolveRange(s Snapshot, from string, days int) ([]models.ResolvedDay, error) {
	resolve := s.Resolver()
	out := make([]models.ResolvedDay, 0, days)
	date := from
	for i := 0; i < days; i++ {
		day, err := resolve(date)
		if err != nil {
			return nil, err
		}
		out = append(out, day)
		if date, err = AddDays(date, 1); err != nil {
			return nil, err
		}
	}
	return out, nil
}
