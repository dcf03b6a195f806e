// File: handlers/availability.go
//
// Stateless availability endpoints: the caller supplies the full schedule
// snapshot inline and receives derived results. Nothing here reads storage.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"slotwise/models"
	"slotwise/services/schedule"
	"slotwise/utils"
)

// AvailabilityHandler serves the stateless resolution and window endpoints.
type AvailabilityHandler struct {
	Now func() time.Time // defaults to time.Now
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler() *AvailabilityHandler {
	return &AvailabilityHandler{}
}

func (h *AvailabilityHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// ResolveHandler computes the resolved-day stream for an inline snapshot.
func (h *AvailabilityHandler) ResolveHandler(c *gin.Context) {
	var q models.ResolutionQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	snap := snapshotOf(q)
	if err := snap.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid resolution query", err.Error())
		return
	}

	from, days, err := h.scanRange(q, snap.Zone)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid scan range", err.Error())
		return
	}
	resolved, err := schedule.ResolveRange(snap, from, days)
	if err != nil {
		utils.JSONError(c, statusForEngineError(err), "failed to resolve availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "horizonDays": days, "days": resolved})
}

// WindowHandler projects a work request onto an inline snapshot.
func (h *AvailabilityHandler) WindowHandler(c *gin.Context) {
	var q models.WindowQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	snap := snapshotOf(q.ResolutionQuery)
	if err := snap.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid window query", err.Error())
		return
	}

	now, err := h.scanStart(q.From, snap.Zone)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid scan start", err.Error())
		return
	}
	bw, err := schedule.EarliestWindow(q.WorkRequest, snap.Resolver(), now, snap.Zone, q.HorizonDays)
	if schedule.IsUnsatisfiable(err) {
		c.JSON(http.StatusOK, models.BookingWindowResponse{Unsatisfiable: true})
		return
	}
	if err != nil {
		utils.JSONError(c, statusForEngineError(err), "failed to compute booking window", err.Error())
		return
	}
	c.JSON(http.StatusOK, WindowResponse(bw, snap.Resolver(), snap.Zone, q.ViewerZone))
}

// TeamWindowHandler projects a work request onto a team sharing the weekly
// template and company blocks, each member with their own exceptions.
func (h *AvailabilityHandler) TeamWindowHandler(c *gin.Context) {
	var q models.TeamWindowQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	team := models.Team{
		MinResourceCount:     q.MinResourceCount,
		MinOverlapPercentage: q.MinOverlapPercentage,
	}
	resolvers := make(map[string]schedule.ResolveFunc, len(q.Members))
	for _, member := range q.Members {
		snap := schedule.Snapshot{
			Weekly:         q.WeeklySchedule,
			CompanyBlocks:  q.CompanyBlocks,
			PersonalBlocks: member.PersonalBlocks,
			Zone:           q.ProfessionalZone,
		}
		if err := snap.Validate(); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid team member snapshot", err.Error())
			return
		}
		team.WorkerIDs = append(team.WorkerIDs, member.WorkerID)
		resolvers[member.WorkerID] = snap.Resolver()
	}

	now, err := h.scanStart(q.From, q.ProfessionalZone)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid scan start", err.Error())
		return
	}
	bw, err := schedule.FindTeamWindow(q.WorkRequest, team, resolvers, now, q.ProfessionalZone, q.HorizonDays)
	if schedule.IsUnsatisfiable(err) {
		c.JSON(http.StatusOK, models.BookingWindowResponse{Unsatisfiable: true})
		return
	}
	if err != nil {
		utils.JSONError(c, statusForEngineError(err), "failed to compute team window", err.Error())
		return
	}

	teamResolve, err := schedule.TeamResolver(team, resolvers)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid team", err.Error())
		return
	}
	c.JSON(http.StatusOK, WindowResponse(bw, teamResolve, q.ProfessionalZone, q.ViewerZone))
}

// LabelHandler renders an instant in the professional's and viewer's zones.
func (h *AvailabilityHandler) LabelHandler(c *gin.Context) {
	var input struct {
		Instant          time.Time `json:"instant" binding:"required"`
		ProfessionalZone string    `json:"professionalZone" binding:"required"`
		ViewerZone       string    `json:"viewerZone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	c.JSON(http.StatusOK, schedule.Label(input.Instant, input.ProfessionalZone, input.ViewerZone))
}

func snapshotOf(q models.ResolutionQuery) schedule.Snapshot {
	return schedule.Snapshot{
		Weekly:         q.WeeklySchedule,
		CompanyBlocks:  q.CompanyBlocks,
		PersonalBlocks: q.PersonalBlocks,
		Zone:           q.ProfessionalZone,
	}
}

// scanRange defaults the resolve range to today-for-the-default-horizon.
func (h *AvailabilityHandler) scanRange(q models.ResolutionQuery, zone string) (string, int, error) {
	from := q.From
	if from == "" {
		var err error
		if from, _, err = schedule.ToCivil(h.now(), zone); err != nil {
			return "", 0, err
		}
	}
	days := q.HorizonDays
	if days <= 0 {
		days = schedule.DefaultHorizonDays
	}
	return from, days, nil
}

// scanStart turns an optional "from" date into the scan's starting instant.
// DayStart rather than ToInstant at midnight: a spring-forward gap starting
// at 00:00 must move the scan start, not reject the date.
func (h *AvailabilityHandler) scanStart(from, zone string) (time.Time, error) {
	if from == "" {
		return h.now(), nil
	}
	return schedule.DayStart(from, zone)
}

// WindowResponse builds the boundary form of a booking window: instant plus
// date projection, the first day's working window, and dual-zone labels when
// a viewer zone was supplied.
func WindowResponse(bw models.BookingWindow, resolve schedule.ResolveFunc, professionalZone, viewerZone string) models.BookingWindowResponse {
	resp := models.BookingWindowResponse{
		FirstAvailableInstant:    &bw.FirstAvailable,
		ShortestThroughputWindow: &bw.Throughput,
	}
	if date, _, err := schedule.ToCivil(bw.FirstAvailable, professionalZone); err == nil {
		resp.FirstAvailableDate = date
		if day, err := resolve(date); err == nil && day.Open {
			resp.FirstAvailableWindow = day.Window
		}
	}
	if viewerZone != "" {
		label := schedule.Label(bw.FirstAvailable, professionalZone, viewerZone)
		resp.StartLabel = &label
	}
	return resp
}

// statusForEngineError maps engine validation errors to 400 and anything
// unexpected to 500.
func statusForEngineError(err error) int {
	var (
		civil     schedule.InvalidCivilTimeError
		zone      schedule.UnknownTimezoneError
		ambiguous schedule.AmbiguousCivilTimeError
		rng       schedule.InvalidRangeError
		weekly    schedule.MalformedWeeklyScheduleError
	)
	switch {
	case errors.As(err, &civil),
		errors.As(err, &zone),
		errors.As(err, &ambiguous),
		errors.As(err, &rng),
		errors.As(err, &weekly):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
