package models

import (
	"math"
	"time"
)

// Duration units and time modes accepted in a WorkRequest.
const (
	UnitHours = "hours"
	UnitDays  = "days"

	TimeModeHours = "hours"
	TimeModeDays  = "days"
	TimeModeMixed = "mixed"
)

// Duration is a relative amount of work time.
type Duration struct {
	Value float64 `json:"value" binding:"required,gt=0"`
	Unit  string  `json:"unit" binding:"required,oneof=hours days"`
}

// Minutes converts the duration to whole minutes (days at 24h).
func (d Duration) Minutes() int {
	switch d.Unit {
	case UnitDays:
		return int(math.Ceil(d.Value * 24 * 60))
	default:
		return int(math.Ceil(d.Value * 60))
	}
}

// WholeDays converts the duration to whole calendar days, rounding up.
func (d Duration) WholeDays() int {
	switch d.Unit {
	case UnitDays:
		return int(math.Ceil(d.Value))
	default:
		return int(math.Ceil(d.Value / 24))
	}
}

// AsTime returns the duration as a time.Duration (days at 24h).
func (d Duration) AsTime() time.Duration {
	return time.Duration(d.Minutes()) * time.Minute
}

// WorkRequest describes one unit of work to be projected onto a resolved
// availability stream: the execution time itself, optional preparation/intake
// time that precedes it, optional recovery buffer appended after it, and the
// mode governing how days and hours are summed.
type WorkRequest struct {
	Execution   Duration  `json:"executionDuration" binding:"required"`
	Buffer      *Duration `json:"bufferDuration,omitempty"`
	Preparation *Duration `json:"preparationDuration,omitempty"`
	TimeMode    string    `json:"timeMode" binding:"required,oneof=hours days mixed"`
}

// BookingWindow is the derived result of a work-request projection: the
// earliest feasible start and the shortest start-to-finish span, both as
// absolute instants.
type BookingWindow struct {
	FirstAvailable time.Time `json:"firstAvailableInstant"`
	Throughput     Window    `json:"shortestThroughputWindow"`
}
