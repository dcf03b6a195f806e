package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelDualZones(t *testing.T) {
	instant := utc(2025, 6, 2, 7, 0)
	label := Label(instant, "Europe/Brussels", "America/New_York")
	assert.Equal(t, "2025-06-02 09:00 CEST", label.Professional)
	assert.Equal(t, "2025-06-02 03:00 EDT", label.Viewer)
}

func TestLabelSameZoneBothSides(t *testing.T) {
	instant := utc(2025, 6, 2, 7, 0)
	label := Label(instant, "Europe/Brussels", "Europe/Brussels")
	assert.Equal(t, label.Professional, label.Viewer)
}

func TestLabelUnknownZoneFallsBackToUTC(t *testing.T) {
	instant := utc(2025, 6, 2, 7, 0)
	label := Label(instant, "Europe/Brussels", "Nowhere/Nope")
	assert.Equal(t, "2025-06-02 07:00 UTC", label.Viewer)
}

func TestLabelAcrossDateLine(t *testing.T) {
	// Late evening in New York is already the next calendar day in Tokyo.
	instant := utc(2025, 6, 3, 1, 0)
	label := Label(instant, "America/New_York", "Asia/Tokyo")
	assert.Equal(t, "2025-06-02 21:00 EDT", label.Professional)
	assert.Equal(t, "2025-06-03 10:00 JST", label.Viewer)
}
