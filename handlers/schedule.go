// File: handlers/schedule.go
//
// Stored-schedule endpoints: companies publish their weekly template and
// exceptions here, and availability is served from the stored documents.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"slotwise/models"
	"slotwise/services/schedule"
	"slotwise/utils"
)

// ScheduleHandler serves the schedule publishing and stored-availability
// endpoints.
type ScheduleHandler struct {
	Service schedule.AvailabilityService
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(svc schedule.AvailabilityService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// PublishScheduleHandler replaces a company's weekly template.
func (h *ScheduleHandler) PublishScheduleHandler(c *gin.Context) {
	companyID := c.Param("id")
	var input struct {
		Zone   string                `json:"zone" binding:"required"`
		Weekly models.WeeklySchedule `json:"weekly" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	version, err := h.Service.PublishWeeklySchedule(c.Request.Context(), companyID, input.Zone, input.Weekly)
	if err != nil {
		utils.JSONError(c, statusForEngineError(err), "failed to publish schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"companyId": companyID, "version": version})
}

// blockInput accepts either a single-date block or an instant-range block.
type blockInput struct {
	Date      string     `json:"date"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Reason    string     `json:"reason"`
	IsHoliday bool       `json:"isHoliday"`
}

// AddCompanyBlockHandler appends a block to the company layer.
func (h *ScheduleHandler) AddCompanyBlockHandler(c *gin.Context) {
	h.addBlock(c, models.OwnerCompany, c.Param("id"))
}

// AddWorkerBlockHandler appends a block to one worker's personal layer.
func (h *ScheduleHandler) AddWorkerBlockHandler(c *gin.Context) {
	h.addBlock(c, models.OwnerWorker, c.Param("workerID"))
}

func (h *ScheduleHandler) addBlock(c *gin.Context, ownerKind, ownerID string) {
	var input blockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	var (
		version int64
		err     error
	)
	switch {
	case input.Date != "":
		version, err = h.Service.AddBlockedDate(c.Request.Context(), ownerKind, ownerID, models.BlockedDate{
			Date:   input.Date,
			Reason: input.Reason,
		})
	case input.StartDate != nil && input.EndDate != nil:
		version, err = h.Service.AddBlockedRange(c.Request.Context(), ownerKind, ownerID, models.BlockedRange{
			StartAt:   *input.StartDate,
			EndAt:     *input.EndDate,
			Reason:    input.Reason,
			IsHoliday: input.IsHoliday,
		})
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "either date or startDate+endDate is required")
		return
	}
	if err != nil {
		utils.JSONError(c, statusForEngineError(err), "failed to add block", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ownerKind": ownerKind, "ownerId": ownerID, "version": version})
}

// RemoveCompanyBlockHandler deletes one block from the company layer.
func (h *ScheduleHandler) RemoveCompanyBlockHandler(c *gin.Context) {
	h.removeBlock(c, models.OwnerCompany, c.Param("id"))
}

// RemoveWorkerBlockHandler deletes one block from a worker's personal layer.
func (h *ScheduleHandler) RemoveWorkerBlockHandler(c *gin.Context) {
	h.removeBlock(c, models.OwnerWorker, c.Param("workerID"))
}

func (h *ScheduleHandler) removeBlock(c *gin.Context, ownerKind, ownerID string) {
	blockID := c.Param("blockID")
	version, err := h.Service.RemoveBlock(c.Request.Context(), ownerKind, ownerID, blockID)
	if err != nil {
		utils.JSONError(c, statusForEngineError(err), "failed to remove block", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ownerKind": ownerKind, "ownerId": ownerID, "version": version})
}

// WorkerAvailabilityHandler streams resolved days for one worker.
func (h *ScheduleHandler) WorkerAvailabilityHandler(c *gin.Context) {
	companyID := c.Param("id")
	workerID := c.Param("workerID")
	from := c.Query("from")
	if from != "" {
		if _, err := time.Parse("2006-01-02", from); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid from date", from)
			return
		}
	}
	days := 0
	if v := c.Query("days"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid days parameter", v)
			return
		}
		days = n
	}

	resolved, err := h.Service.WorkerAvailability(c.Request.Context(), companyID, workerID, from, days)
	if err != nil {
		utils.JSONError(c, statusForEngineError(err), "failed to resolve availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"companyId": companyID, "workerId": workerID, "days": resolved})
}

// WorkerWindowHandler projects a work request onto one worker's stored
// schedule.
func (h *ScheduleHandler) WorkerWindowHandler(c *gin.Context) {
	companyID := c.Param("id")
	workerID := c.Param("workerID")
	var input struct {
		WorkRequest models.WorkRequest `json:"workRequest" binding:"required"`
		HorizonDays int                `json:"horizonDays"`
		ViewerZone  string             `json:"viewerZone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bw, err := h.Service.WorkerBookingWindow(c.Request.Context(), companyID, workerID, input.WorkRequest, input.HorizonDays)
	if schedule.IsUnsatisfiable(err) {
		c.JSON(http.StatusOK, models.BookingWindowResponse{Unsatisfiable: true})
		return
	}
	if err != nil {
		utils.JSONError(c, statusForEngineError(err), "failed to compute booking window", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.storedWindowResponse(c, companyID, bw, input.ViewerZone))
}

// TeamWindowHandler projects a work request onto a stored team.
func (h *ScheduleHandler) TeamWindowHandler(c *gin.Context) {
	companyID := c.Param("id")
	var input struct {
		Team        models.Team        `json:"team" binding:"required"`
		WorkRequest models.WorkRequest `json:"workRequest" binding:"required"`
		HorizonDays int                `json:"horizonDays"`
		ViewerZone  string             `json:"viewerZone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bw, err := h.Service.TeamBookingWindow(c.Request.Context(), companyID, input.Team, input.WorkRequest, input.HorizonDays)
	if schedule.IsUnsatisfiable(err) {
		c.JSON(http.StatusOK, models.BookingWindowResponse{Unsatisfiable: true})
		return
	}
	if err != nil {
		utils.JSONError(c, statusForEngineError(err), "failed to compute team window", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.storedWindowResponse(c, companyID, bw, input.ViewerZone))
}

// storedWindowResponse is WindowResponse for the stored path: the company's
// zone drives the date projection and the professional-side label.
func (h *ScheduleHandler) storedWindowResponse(c *gin.Context, companyID string, bw models.BookingWindow, viewerZone string) models.BookingWindowResponse {
	resp := models.BookingWindowResponse{
		FirstAvailableInstant:    &bw.FirstAvailable,
		ShortestThroughputWindow: &bw.Throughput,
	}
	zone, err := h.Service.CompanyZone(c.Request.Context(), companyID)
	if err != nil || zone == "" {
		zone = "UTC"
	}
	if date, _, err := schedule.ToCivil(bw.FirstAvailable, zone); err == nil {
		resp.FirstAvailableDate = date
	}
	if viewerZone != "" {
		label := schedule.Label(bw.FirstAvailable, zone, viewerZone)
		resp.StartLabel = &label
	}
	return resp
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, schedule.InvalidCivilTimeError{Value: s}
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
