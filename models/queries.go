package models

import "time"

// ResolutionQuery is the stateless boundary shape: a full schedule snapshot
// plus the date range to resolve. Consumers that store schedules server-side
// use the worker availability endpoints instead.
type ResolutionQuery struct {
	WeeklySchedule   WeeklySchedule `json:"weeklySchedule" binding:"required"`
	CompanyBlocks    BlockSet       `json:"companyBlocks"`
	PersonalBlocks   BlockSet       `json:"personalBlocks"`
	ProfessionalZone string         `json:"professionalZone" binding:"required"` // IANA id
	From             string         `json:"from,omitempty"`                      // "YYYY-MM-DD"; defaults to today in the professional's zone
	HorizonDays      int            `json:"horizonDays,omitempty"`
}

// WindowQuery projects a work request onto a schedule snapshot.
type WindowQuery struct {
	ResolutionQuery
	WorkRequest WorkRequest `json:"workRequest" binding:"required"`
	ViewerZone  string      `json:"viewerZone,omitempty"`
}

// TeamMemberSnapshot carries one worker's personal exceptions; the weekly
// template and company blocks are shared across the team.
type TeamMemberSnapshot struct {
	WorkerID       string   `json:"workerId" binding:"required"`
	PersonalBlocks BlockSet `json:"personalBlocks"`
}

// TeamWindowQuery is the multi-resource variant of WindowQuery.
type TeamWindowQuery struct {
	WeeklySchedule       WeeklySchedule       `json:"weeklySchedule" binding:"required"`
	CompanyBlocks        BlockSet             `json:"companyBlocks"`
	Members              []TeamMemberSnapshot `json:"members" binding:"required,min=1"`
	ProfessionalZone     string               `json:"professionalZone" binding:"required"`
	From                 string               `json:"from,omitempty"`
	HorizonDays          int                  `json:"horizonDays,omitempty"`
	WorkRequest          WorkRequest          `json:"workRequest" binding:"required"`
	MinResourceCount     int                  `json:"minResourceCount" binding:"required,gte=1"`
	MinOverlapPercentage float64              `json:"minOverlapPercentage" binding:"gte=0,lte=100"`
	ViewerZone           string               `json:"viewerZone,omitempty"`
}

// DualZoneLabel is an instant rendered in the professional's zone and in the
// viewer's zone.
type DualZoneLabel struct {
	Professional string `json:"professional"`
	Viewer       string `json:"viewer"`
}

// BookingWindowResponse is the boundary form of a BookingWindow. An exhausted
// horizon is reported as unsatisfiable, not as an error.
type BookingWindowResponse struct {
	Unsatisfiable            bool           `json:"unsatisfiable,omitempty"`
	FirstAvailableInstant    *time.Time     `json:"firstAvailableInstant,omitempty"`
	FirstAvailableDate       string         `json:"firstAvailableDate,omitempty"`
	FirstAvailableWindow     *Window        `json:"firstAvailableWindow,omitempty"`
	ShortestThroughputWindow *Window        `json:"shortestThroughputWindow,omitempty"`
	StartLabel               *DualZoneLabel `json:"startLabel,omitempty"`
}
