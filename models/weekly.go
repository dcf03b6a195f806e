package models

import (
	"strings"
	"time"
)

// DaySchedule is the recurring template for one weekday: whether the day is
// open at all and, if so, the civil working hours in the owner's timezone.
type DaySchedule struct {
	Available bool   `bson:"available" json:"available"`
	StartTime string `bson:"startTime" json:"startTime"` // "HH:MM", e.g. "09:00"
	EndTime   string `bson:"endTime" json:"endTime"`     // "HH:MM", e.g. "17:00"
}

// WeeklySchedule maps the seven lowercase weekday keys ("monday".."sunday")
// to their day templates. It is owned by a company and shared by all of its
// workers; workers layer exceptions on top, they never redefine the template.
type WeeklySchedule map[string]DaySchedule

// WeekdayKeys lists the accepted keys in calendar order.
var WeekdayKeys = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// WeekdayKey returns the schedule key for a time.Weekday.
func WeekdayKey(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// Day looks up the template for a weekday.
func (ws WeeklySchedule) Day(wd time.Weekday) (DaySchedule, bool) {
	day, ok := ws[WeekdayKey(wd)]
	return day, ok
}

// CompanySchedule is the stored form of a company's weekly template. Version
// increases on every mutation; derived availability is keyed by it and is
// therefore invalidated by any schedule edit.
type CompanySchedule struct {
	CompanyID string         `bson:"company_id" json:"companyId"`
	Zone      string         `bson:"zone" json:"zone"` // IANA id, e.g. "Europe/Brussels"
	Weekly    WeeklySchedule `bson:"weekly" json:"weekly"`
	Version   int64          `bson:"version" json:"version"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updatedAt"`
}
