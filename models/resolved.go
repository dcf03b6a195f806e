package models

import "time"

// Blocking layers, in precedence order. The first layer that matches a date
// wins; company blocks are never overridable by the worker.
const (
	BlockedByWeeklyClosed = "weekly-closed"
	BlockedByCompany      = "company"
	BlockedByPersonal     = "personal"
)

// Window is a span between two absolute instants (UTC). Localization happens
// only at the presentation boundary.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Minutes returns the window length in whole minutes.
func (w Window) Minutes() int {
	return int(w.End.Sub(w.Start) / time.Minute)
}

// ResolvedDay is the derived per-date verdict. It is computed fresh on every
// query from the weekly template plus both block sets and is never persisted.
type ResolvedDay struct {
	Date      string  `json:"date"` // "YYYY-MM-DD" in the professional's zone
	Open      bool    `json:"isOpen"`
	BlockedBy string  `json:"blockedBy,omitempty"` // "company", "personal" or "weekly-closed"
	Reason    string  `json:"reason,omitempty"`
	IsHoliday bool    `json:"isHoliday,omitempty"` // informational, display only
	Window    *Window `json:"window,omitempty"`    // working window when open
}
