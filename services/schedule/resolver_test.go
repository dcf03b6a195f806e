package schedule

import (
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nineToFiveWeek is the shared fixture: Monday to Friday 09:00-17:00,
// weekend closed.
func nineToFiveWeek() models.WeeklySchedule {
	ws := models.WeeklySchedule{}
	for _, key := range models.WeekdayKeys {
		ws[key] = models.DaySchedule{Available: true, StartTime: "09:00", EndTime: "17:00"}
	}
	ws["saturday"] = models.DaySchedule{Available: false}
	ws["sunday"] = models.DaySchedule{Available: false}
	return ws
}

func utc(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestResolveOpenDay(t *testing.T) {
	day, err := Resolve("2025-06-02", nineToFiveWeek(), models.BlockSet{}, models.BlockSet{}, "Europe/Brussels")
	require.NoError(t, err)
	assert.True(t, day.Open)
	assert.Equal(t, "2025-06-02", day.Date)
	require.NotNil(t, day.Window)
	// 09:00-17:00 CEST is 07:00-15:00 UTC.
	assert.Equal(t, utc(2025, 6, 2, 7, 0), day.Window.Start)
	assert.Equal(t, utc(2025, 6, 2, 15, 0), day.Window.End)
}

func TestResolveWeeklyClosed(t *testing.T) {
	// 2025-06-01 is a Sunday.
	day, err := Resolve("2025-06-01", nineToFiveWeek(), models.BlockSet{}, models.BlockSet{}, "Europe/Brussels")
	require.NoError(t, err)
	assert.False(t, day.Open)
	assert.Equal(t, models.BlockedByWeeklyClosed, day.BlockedBy)
	assert.Nil(t, day.Window)
}

func TestResolveCompanyPrecedesPersonal(t *testing.T) {
	company := models.BlockSet{Dates: []models.BlockedDate{{Date: "2025-06-02", Reason: "inventory"}}}
	personal := models.BlockSet{Dates: []models.BlockedDate{{Date: "2025-06-02", Reason: "dentist"}}}

	day, err := Resolve("2025-06-02", nineToFiveWeek(), company, personal, "Europe/Brussels")
	require.NoError(t, err)
	assert.False(t, day.Open)
	assert.Equal(t, models.BlockedByCompany, day.BlockedBy)
	assert.Equal(t, "inventory", day.Reason)
}

func TestResolvePersonalBlock(t *testing.T) {
	personal := models.BlockSet{Dates: []models.BlockedDate{{Date: "2025-06-02", Reason: "dentist"}}}
	day, err := Resolve("2025-06-02", nineToFiveWeek(), models.BlockSet{}, personal, "Europe/Brussels")
	require.NoError(t, err)
	assert.False(t, day.Open)
	assert.Equal(t, models.BlockedByPersonal, day.BlockedBy)
	assert.Equal(t, "dentist", day.Reason)
}

func TestResolveRangeBoundariesInclusive(t *testing.T) {
	// The working window on 2025-06-02 is 07:00-15:00 UTC. A range whose end
	// touches the window start exactly still blocks the day.
	touching := models.BlockSet{Ranges: []models.BlockedRange{{
		StartAt: utc(2025, 6, 1, 20, 0),
		EndAt:   utc(2025, 6, 2, 7, 0),
	}}}
	day, err := Resolve("2025-06-02", nineToFiveWeek(), touching, models.BlockSet{}, "Europe/Brussels")
	require.NoError(t, err)
	assert.False(t, day.Open)
	assert.Equal(t, models.BlockedByCompany, day.BlockedBy)

	// One minute short of the window start leaves the day open.
	clear := models.BlockSet{Ranges: []models.BlockedRange{{
		StartAt: utc(2025, 6, 1, 20, 0),
		EndAt:   utc(2025, 6, 2, 6, 59),
	}}}
	day, err = Resolve("2025-06-02", nineToFiveWeek(), clear, models.BlockSet{}, "Europe/Brussels")
	require.NoError(t, err)
	assert.True(t, day.Open)
}

func TestResolveCarriesHolidayFlag(t *testing.T) {
	company := models.BlockSet{Ranges: []models.BlockedRange{{
		StartAt:   utc(2025, 6, 2, 0, 0),
		EndAt:     utc(2025, 6, 2, 23, 59),
		Reason:    "national holiday",
		IsHoliday: true,
	}}}
	day, err := Resolve("2025-06-02", nineToFiveWeek(), company, models.BlockSet{}, "Europe/Brussels")
	require.NoError(t, err)
	assert.False(t, day.Open)
	assert.True(t, day.IsHoliday)
	assert.Equal(t, "national holiday", day.Reason)
}

func TestResolveMissingWeekdayKey(t *testing.T) {
	partial := models.WeeklySchedule{"monday": {Available: true, StartTime: "09:00", EndTime: "17:00"}}
	_, err := Resolve("2025-06-03", partial, models.BlockSet{}, models.BlockSet{}, "Europe/Brussels")
	var malformed MalformedWeeklyScheduleError
	assert.ErrorAs(t, err, &malformed)
}

func TestResolveUnknownZone(t *testing.T) {
	_, err := Resolve("2025-06-02", nineToFiveWeek(), models.BlockSet{}, models.BlockSet{}, "Nowhere/Nope")
	var unknown UnknownTimezoneError
	assert.ErrorAs(t, err, &unknown)
}

func TestSnapshotValidate(t *testing.T) {
	snap := Snapshot{Weekly: nineToFiveWeek(), Zone: "Europe/Brussels"}
	require.NoError(t, snap.Validate())

	snap.Zone = "Nowhere/Nope"
	assert.Error(t, snap.Validate())

	snap.Zone = "Europe/Brussels"
	snap.CompanyBlocks = models.BlockSet{Ranges: []models.BlockedRange{{
		StartAt: utc(2025, 6, 2, 10, 0),
		EndAt:   utc(2025, 6, 2, 9, 0),
	}}}
	var rng InvalidRangeError
	assert.ErrorAs(t, snap.Validate(), &rng)
}

func TestValidateWeeklyRejectsInvertedHours(t *testing.T) {
	ws := nineToFiveWeek()
	ws["monday"] = models.DaySchedule{Available: true, StartTime: "17:00", EndTime: "09:00"}
	var malformed MalformedWeeklyScheduleError
	assert.ErrorAs(t, ValidateWeekly(ws), &malformed)

	// Closed days may leave their times empty.
	ws["monday"] = models.DaySchedule{Available: false}
	assert.NoError(t, ValidateWeekly(ws))
}

func TestResolveRange(t *testing.T) {
	snap := Snapshot{
		Weekly:         nineToFiveWeek(),
		PersonalBlocks: models.BlockSet{Dates: []models.BlockedDate{{Date: "2025-06-03"}}},
		Zone:           "Europe/Brussels",
	}
	days, err := ResolveRange(snap, "2025-06-02", 7)
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, "2025-06-02", days[0].Date)
	assert.Equal(t, "2025-06-08", days[6].Date)
	assert.True(t, days[0].Open)
	assert.Equal(t, models.BlockedByPersonal, days[1].BlockedBy)
	assert.Equal(t, models.BlockedByWeeklyClosed, days[5].BlockedBy) // Saturday
	assert.Equal(t, models.BlockedByWeeklyClosed, days[6].BlockedBy) // Sunday
}
