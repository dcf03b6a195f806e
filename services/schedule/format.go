// File: services/schedule/format.go
package schedule

import (
	"time"

	"slotwise/config"
	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// LabelLayout is how instants are rendered at the display boundary.
const LabelLayout = "2006-01-02 15:04 MST"

// Label renders an absolute instant as paired labels in the professional's
// zone and the viewer's zone. Presentation only: it never participates in
// resolution. An unrecognized zone falls back to UTC instead of failing the
// whole computation.
func Label(instant time.Time, professionalZone, viewerZone string) models.DualZoneLabel {
	return models.DualZoneLabel{
		Professional: instant.In(zoneOrUTC(professionalZone)).Format(LabelLayout),
		Viewer:       instant.In(zoneOrUTC(viewerZone)).Format(LabelLayout),
	}
}

func zoneOrUTC(id string) *time.Location {
	loc, err := LoadZone(id)
	if err == nil {
		return loc
	}
	utils.GetLogger().Warn("unrecognized display zone, falling back", zap.String("zone", id))
	if fb := config.AppConfig.FallbackZone; fb != "" {
		if loc, err := time.LoadLocation(fb); err == nil {
			return loc
		}
	}
	return time.UTC
}
